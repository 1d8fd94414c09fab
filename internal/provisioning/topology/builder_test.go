package topology

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpcforge/vpcforge/internal/config"
	"github.com/vpcforge/vpcforge/internal/platform/aws"
	"github.com/vpcforge/vpcforge/internal/provisioning"
)

func newTestBuilder(mock *aws.MockClient) *Builder {
	return NewBuilder(mock, provisioning.NewConsoleObserver(false))
}

func TestCreateNetwork(t *testing.T) {
	mock := &aws.MockClient{}
	builder := newTestBuilder(mock)
	ctx := context.Background()

	var tagged map[string]string
	mock.CreateTagsFunc = func(_ context.Context, _ string, tags map[string]string) error {
		tagged = tags
		return nil
	}

	vpcID, err := builder.CreateNetwork(ctx, "10.0.0.0/16", "test", true, true, map[string]string{"env": "dev"})
	require.NoError(t, err)
	assert.Equal(t, "vpc-0001", vpcID)

	assert.Equal(t, []string{
		"CreateVPC",
		"WaitVPCAvailable",
		"EnableDNSHostnames",
		"EnableDNSSupport",
		"CreateTags",
	}, mock.Ops())

	assert.Equal(t, map[string]string{"env": "dev", "Name": "test"}, tagged)
}

func TestCreateNetwork_DNSDisabled(t *testing.T) {
	mock := &aws.MockClient{}
	builder := newTestBuilder(mock)

	_, err := builder.CreateNetwork(context.Background(), "10.0.0.0/16", "test", false, false, nil)
	require.NoError(t, err)

	assert.NotContains(t, mock.Ops(), "EnableDNSHostnames")
	assert.NotContains(t, mock.Ops(), "EnableDNSSupport")
}

func TestCreateNetwork_WaitFailure(t *testing.T) {
	mock := &aws.MockClient{
		WaitVPCAvailableFunc: func(_ context.Context, _ string) error {
			return errors.New("timed out")
		},
	}
	builder := newTestBuilder(mock)

	_, err := builder.CreateNetwork(context.Background(), "10.0.0.0/16", "test", true, true, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "did not become available")
	assert.NotContains(t, mock.Ops(), "CreateTags")
}

func TestCreateSubnet_PublicTier(t *testing.T) {
	mock := &aws.MockClient{}
	builder := newTestBuilder(mock)

	var tagged map[string]string
	mock.CreateTagsFunc = func(_ context.Context, _ string, tags map[string]string) error {
		tagged = tags
		return nil
	}

	subnetID, err := builder.CreateSubnet(context.Background(), "vpc-1", "10.0.1.0/24", "us-east-1a", "pub-a", config.TierPublic)
	require.NoError(t, err)
	assert.Equal(t, "subnet-0001", subnetID)

	assert.Equal(t, []string{"CreateSubnet", "EnablePublicIPOnLaunch", "CreateTags"}, mock.Ops())
	assert.Equal(t, map[string]string{"Name": "pub-a", "Type": "public"}, tagged)
}

func TestCreateSubnet_PrivateTier(t *testing.T) {
	mock := &aws.MockClient{}
	builder := newTestBuilder(mock)

	_, err := builder.CreateSubnet(context.Background(), "vpc-1", "10.0.2.0/24", "us-east-1a", "priv-a", config.TierPrivate)
	require.NoError(t, err)

	assert.NotContains(t, mock.Ops(), "EnablePublicIPOnLaunch")
}

func TestCreateRouteTable(t *testing.T) {
	mock := &aws.MockClient{}
	builder := newTestBuilder(mock)

	routeTableID, err := builder.CreateRouteTable(context.Background(), "vpc-1", "test-public-rt")
	require.NoError(t, err)
	assert.Equal(t, "rtb-0001", routeTableID)
	assert.Equal(t, []string{"CreateRouteTable", "CreateTags"}, mock.Ops())
}

func TestAddRoute(t *testing.T) {
	var got aws.RouteSpec
	mock := &aws.MockClient{
		CreateRouteFunc: func(_ context.Context, route aws.RouteSpec) error {
			got = route
			return nil
		},
	}
	builder := newTestBuilder(mock)

	err := builder.AddRoute(context.Background(), "rtb-1", "0.0.0.0/0", "igw-1", "")
	require.NoError(t, err)
	assert.Equal(t, aws.RouteSpec{
		RouteTableID:    "rtb-1",
		DestinationCIDR: "0.0.0.0/0",
		GatewayID:       "igw-1",
	}, got)
}

func TestDeleteOperations(t *testing.T) {
	mock := &aws.MockClient{}
	builder := newTestBuilder(mock)
	ctx := context.Background()

	require.NoError(t, builder.DeleteSubnet(ctx, "subnet-1"))
	require.NoError(t, builder.DeleteRouteTable(ctx, "rtb-1"))
	require.NoError(t, builder.DeleteNetwork(ctx, "vpc-1"))

	assert.Equal(t, []string{"DeleteSubnet", "DeleteRouteTable", "DeleteVPC"}, mock.Ops())
}

func TestDeleteNetwork_Error(t *testing.T) {
	mock := &aws.MockClient{
		DeleteVPCFunc: func(_ context.Context, _ string) error {
			return errors.New("dependency violation")
		},
	}
	builder := newTestBuilder(mock)

	err := builder.DeleteNetwork(context.Background(), "vpc-1")
	assert.ErrorContains(t, err, "dependency violation")
}
