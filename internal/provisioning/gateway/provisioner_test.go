package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpcforge/vpcforge/internal/platform/aws"
	"github.com/vpcforge/vpcforge/internal/provisioning"
)

func newTestProvisioner(mock *aws.MockClient) *Provisioner {
	p := NewProvisioner(mock, provisioning.NewConsoleObserver(false))
	p.DeletionGrace = 0
	return p
}

func TestCreateInternetGateway(t *testing.T) {
	mock := &aws.MockClient{}
	p := newTestProvisioner(mock)

	gatewayID, err := p.CreateInternetGateway(context.Background(), "vpc-1", "test-igw")
	require.NoError(t, err)
	assert.Equal(t, "igw-0001", gatewayID)

	assert.Equal(t, []string{"CreateInternetGateway", "CreateTags", "AttachInternetGateway"}, mock.Ops())
	assert.Equal(t, []string{"igw-0001", "vpc-1"}, mock.Calls[2].Args)
}

func TestCreateInternetGateway_AttachFailure(t *testing.T) {
	mock := &aws.MockClient{
		AttachInternetGatewayFunc: func(_ context.Context, _, _ string) error {
			return errors.New("vpc not found")
		},
	}
	p := newTestProvisioner(mock)

	_, err := p.CreateInternetGateway(context.Background(), "vpc-1", "test-igw")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to attach internet gateway")
}

func TestCreateNATGateway(t *testing.T) {
	mock := &aws.MockClient{}
	p := newTestProvisioner(mock)

	natID, elasticIP, err := p.CreateNATGateway(context.Background(), "subnet-1", "test-nat")
	require.NoError(t, err)
	assert.Equal(t, "nat-0001", natID)
	assert.Equal(t, "198.51.100.1", elasticIP)

	assert.Equal(t, []string{
		"AllocateAddress",
		"CreateNATGateway",
		"CreateTags",
		"WaitNATGatewayAvailable",
	}, mock.Ops())

	// The gateway is bound to the allocated address in the given subnet.
	assert.Equal(t, []string{"subnet-1", "eipalloc-0001"}, mock.Calls[1].Args)
}

func TestCreateNATGateway_AllocateFailure(t *testing.T) {
	mock := &aws.MockClient{
		AllocateAddressFunc: func(_ context.Context) (string, string, error) {
			return "", "", errors.New("address limit exceeded")
		},
	}
	p := newTestProvisioner(mock)

	_, _, err := p.CreateNATGateway(context.Background(), "subnet-1", "test-nat")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to allocate elastic IP")
	assert.Equal(t, []string{"AllocateAddress"}, mock.Ops())
}

func TestCreateNATGateway_WaitFailure(t *testing.T) {
	mock := &aws.MockClient{
		WaitNATGatewayAvailableFunc: func(_ context.Context, _ string) error {
			return errors.New("exceeded max wait time")
		},
	}
	p := newTestProvisioner(mock)

	_, _, err := p.CreateNATGateway(context.Background(), "subnet-1", "test-nat")
	require.Error(t, err)
	assert.ErrorContains(t, err, "did not become available")
}

func TestDeleteInternetGateway_DetachBeforeDelete(t *testing.T) {
	mock := &aws.MockClient{}
	p := newTestProvisioner(mock)

	require.NoError(t, p.DeleteInternetGateway(context.Background(), "igw-1", "vpc-1"))
	assert.Equal(t, []string{"DetachInternetGateway", "DeleteInternetGateway"}, mock.Ops())
}

func TestDeleteInternetGateway_DetachFailureSkipsDelete(t *testing.T) {
	mock := &aws.MockClient{
		DetachInternetGatewayFunc: func(_ context.Context, _, _ string) error {
			return errors.New("dependency violation")
		},
	}
	p := newTestProvisioner(mock)

	err := p.DeleteInternetGateway(context.Background(), "igw-1", "vpc-1")
	require.Error(t, err)
	assert.NotContains(t, mock.Ops(), "DeleteInternetGateway")
}

func TestDeleteNATGateway_ReleasesAddressAfterDelete(t *testing.T) {
	mock := &aws.MockClient{}
	p := newTestProvisioner(mock)

	res, err := p.DeleteNATGateway(context.Background(), "nat-1")
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, []string{"NATGatewayAllocation", "DeleteNATGateway", "ReleaseAddress"}, mock.Ops())
	assert.Equal(t, []string{"eipalloc-0001"}, mock.Calls[2].Args)
}

func TestDeleteNATGateway_ReleaseFailureIsWarning(t *testing.T) {
	mock := &aws.MockClient{
		ReleaseAddressFunc: func(_ context.Context, _ string) error {
			return errors.New("address still in use")
		},
	}
	p := newTestProvisioner(mock)

	res, err := p.DeleteNATGateway(context.Background(), "nat-1")
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].String(), "could not release elastic IP eipalloc-0001")
	assert.Contains(t, res.Warnings[0].String(), "address still in use")
}

func TestDeleteNATGateway_DeleteFailureIsFatal(t *testing.T) {
	mock := &aws.MockClient{
		DeleteNATGatewayFunc: func(_ context.Context, _ string) error {
			return errors.New("throttled")
		},
	}
	p := newTestProvisioner(mock)

	_, err := p.DeleteNATGateway(context.Background(), "nat-1")
	require.Error(t, err)
	assert.NotContains(t, mock.Ops(), "ReleaseAddress")
}

func TestDeleteNATGateway_NoAllocationSkipsRelease(t *testing.T) {
	mock := &aws.MockClient{
		NATGatewayAllocationFunc: func(_ context.Context, _ string) (string, error) {
			return "", nil
		},
	}
	p := newTestProvisioner(mock)

	res, err := p.DeleteNATGateway(context.Background(), "nat-1")
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.NotContains(t, mock.Ops(), "ReleaseAddress")
}
