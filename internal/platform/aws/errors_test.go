package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderError_Message(t *testing.T) {
	err := providerErr("CreateSubnet", "10.0.1.0/24", errors.New("quota exceeded"))
	assert.Equal(t, "CreateSubnet 10.0.1.0/24: quota exceeded", err.Error())

	err = providerErr("CreateInternetGateway", "", errors.New("throttled"))
	assert.Equal(t, "CreateInternetGateway: throttled", err.Error())
}

func TestProviderError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := providerErr("DeleteVPC", "vpc-1", inner)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "DeleteVPC", provErr.Op)
	assert.ErrorIs(t, err, inner)
}

func TestIsDuplicateRule(t *testing.T) {
	dup := &smithy.GenericAPIError{Code: "InvalidPermission.Duplicate", Message: "rule exists"}

	assert.True(t, IsDuplicateRule(dup))
	assert.True(t, IsDuplicateRule(providerErr("AuthorizeIngress", "sg-1", dup)))
	assert.True(t, IsDuplicateRule(fmt.Errorf("wrapped: %w", dup)))

	assert.False(t, IsDuplicateRule(nil))
	assert.False(t, IsDuplicateRule(errors.New("InvalidPermission.Duplicate")))
	assert.False(t, IsDuplicateRule(&smithy.GenericAPIError{Code: "InvalidGroup.NotFound"}))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&smithy.GenericAPIError{Code: "InvalidVpcID.NotFound"}))
	assert.True(t, IsNotFound(&smithy.GenericAPIError{Code: "NatGatewayNotFound.NotFound"}))
	assert.True(t, IsNotFound(providerErr("DeleteSubnet", "subnet-1",
		&smithy.GenericAPIError{Code: "InvalidSubnetID.NotFound"})))

	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("not found")))
	assert.False(t, IsNotFound(&smithy.GenericAPIError{Code: "InvalidPermission.Duplicate"}))
}
