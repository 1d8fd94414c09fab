// Package aws wraps the EC2 API behind narrow interfaces so the
// provisioning pipeline can run against the real cloud or a mock.
package aws

import "context"

// Tag keys applied to every created resource.
const (
	TagName = "Name"
	TagType = "Type"
)

// RouteSpec describes one route to add to a route table. Exactly one of
// GatewayID and NATGatewayID should be set; the provider call decides
// precedence if both are supplied.
type RouteSpec struct {
	RouteTableID    string
	DestinationCIDR string
	GatewayID       string
	NATGatewayID    string
}

// RulePermission is one security-group rule authorization.
type RulePermission struct {
	Protocol string
	FromPort int32
	ToPort   int32
	CIDR     string
}

// NetworkManager exposes VPC, subnet, and route-table operations.
type NetworkManager interface {
	CreateVPC(ctx context.Context, cidr string) (string, error)
	// WaitVPCAvailable blocks until the VPC reaches the available state,
	// bounded by the provider waiter's own ceiling.
	WaitVPCAvailable(ctx context.Context, vpcID string) error
	EnableDNSHostnames(ctx context.Context, vpcID string) error
	EnableDNSSupport(ctx context.Context, vpcID string) error
	DeleteVPC(ctx context.Context, vpcID string) error

	CreateSubnet(ctx context.Context, vpcID, cidr, az string) (string, error)
	EnablePublicIPOnLaunch(ctx context.Context, subnetID string) error
	DeleteSubnet(ctx context.Context, subnetID string) error

	CreateRouteTable(ctx context.Context, vpcID string) (string, error)
	CreateRoute(ctx context.Context, route RouteSpec) error
	AssociateRouteTable(ctx context.Context, subnetID, routeTableID string) error
	DeleteRouteTable(ctx context.Context, routeTableID string) error
}

// GatewayManager exposes internet/NAT gateway and elastic address operations.
type GatewayManager interface {
	CreateInternetGateway(ctx context.Context) (string, error)
	AttachInternetGateway(ctx context.Context, gatewayID, vpcID string) error
	DetachInternetGateway(ctx context.Context, gatewayID, vpcID string) error
	DeleteInternetGateway(ctx context.Context, gatewayID string) error

	// AllocateAddress allocates an elastic IP and returns its allocation
	// ID and public address.
	AllocateAddress(ctx context.Context) (allocationID, publicIP string, err error)
	ReleaseAddress(ctx context.Context, allocationID string) error

	CreateNATGateway(ctx context.Context, subnetID, allocationID string) (string, error)
	// WaitNATGatewayAvailable blocks until the NAT gateway is available,
	// bounded by the provider waiter's own ceiling.
	WaitNATGatewayAvailable(ctx context.Context, natGatewayID string) error
	// NATGatewayAllocation looks up the allocation ID of the elastic IP
	// bound to a NAT gateway, or "" if none is found.
	NATGatewayAllocation(ctx context.Context, natGatewayID string) (string, error)
	DeleteNATGateway(ctx context.Context, natGatewayID string) error
}

// SecurityGroupManager exposes security-group operations.
type SecurityGroupManager interface {
	CreateSecurityGroup(ctx context.Context, vpcID, name, description string) (string, error)
	AuthorizeIngress(ctx context.Context, groupID string, perm RulePermission) error
	AuthorizeEgress(ctx context.Context, groupID string, perm RulePermission) error
	DeleteSecurityGroup(ctx context.Context, groupID string) error
}

// Tagger applies tag sets to created resources.
type Tagger interface {
	CreateTags(ctx context.Context, resourceID string, tags map[string]string) error
}

// ResourceManager is the full provider surface used by the pipeline.
type ResourceManager interface {
	NetworkManager
	GatewayManager
	SecurityGroupManager
	Tagger
}
