package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient_SequentialIDs(t *testing.T) {
	m := &MockClient{}
	ctx := context.Background()

	vpc1, err := m.CreateVPC(ctx, "10.0.0.0/16")
	require.NoError(t, err)
	vpc2, err := m.CreateVPC(ctx, "10.1.0.0/16")
	require.NoError(t, err)

	assert.Equal(t, "vpc-0001", vpc1)
	assert.Equal(t, "vpc-0002", vpc2)

	subnet, err := m.CreateSubnet(ctx, vpc1, "10.0.1.0/24", "us-east-1a")
	require.NoError(t, err)
	assert.Equal(t, "subnet-0001", subnet)
}

func TestMockClient_RecordsCallOrder(t *testing.T) {
	m := &MockClient{}
	ctx := context.Background()

	_, _ = m.CreateVPC(ctx, "10.0.0.0/16")
	_ = m.WaitVPCAvailable(ctx, "vpc-0001")
	_, _ = m.CreateInternetGateway(ctx)
	_ = m.AttachInternetGateway(ctx, "igw-0001", "vpc-0001")

	assert.Equal(t, []string{
		"CreateVPC",
		"WaitVPCAvailable",
		"CreateInternetGateway",
		"AttachInternetGateway",
	}, m.Ops())

	assert.Equal(t, []string{"10.0.0.0/16"}, m.Calls[0].Args)
	assert.Equal(t, []string{"igw-0001", "vpc-0001"}, m.Calls[3].Args)
}

func TestMockClient_FuncOverride(t *testing.T) {
	m := &MockClient{
		CreateVPCFunc: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("limit exceeded")
		},
	}

	_, err := m.CreateVPC(context.Background(), "10.0.0.0/16")
	assert.ErrorContains(t, err, "limit exceeded")
	assert.Equal(t, []string{"CreateVPC"}, m.Ops())
}

func TestMockClient_AllocateAddressDefaults(t *testing.T) {
	m := &MockClient{}

	allocID, publicIP, err := m.AllocateAddress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "eipalloc-0001", allocID)
	assert.Equal(t, "198.51.100.1", publicIP)
}
