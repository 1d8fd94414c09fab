package aws

import (
	"context"
	"fmt"
)

// Call records one provider operation observed by the MockClient.
type Call struct {
	Op   string
	Args []string
}

// MockClient implements ResourceManager for tests. Every method records its
// call and returns a canned identifier; individual methods can be overridden
// per test through the corresponding Func field, following the same pattern
// used for provider mocks elsewhere in the codebase.
type MockClient struct {
	Calls    []Call
	counters map[string]int

	CreateVPCFunc               func(ctx context.Context, cidr string) (string, error)
	WaitVPCAvailableFunc        func(ctx context.Context, vpcID string) error
	EnableDNSHostnamesFunc      func(ctx context.Context, vpcID string) error
	EnableDNSSupportFunc        func(ctx context.Context, vpcID string) error
	DeleteVPCFunc               func(ctx context.Context, vpcID string) error
	CreateTagsFunc              func(ctx context.Context, resourceID string, tags map[string]string) error
	CreateSubnetFunc            func(ctx context.Context, vpcID, cidr, az string) (string, error)
	EnablePublicIPOnLaunchFunc  func(ctx context.Context, subnetID string) error
	DeleteSubnetFunc            func(ctx context.Context, subnetID string) error
	CreateRouteTableFunc        func(ctx context.Context, vpcID string) (string, error)
	CreateRouteFunc             func(ctx context.Context, route RouteSpec) error
	AssociateRouteTableFunc     func(ctx context.Context, subnetID, routeTableID string) error
	DeleteRouteTableFunc        func(ctx context.Context, routeTableID string) error
	CreateInternetGatewayFunc   func(ctx context.Context) (string, error)
	AttachInternetGatewayFunc   func(ctx context.Context, gatewayID, vpcID string) error
	DetachInternetGatewayFunc   func(ctx context.Context, gatewayID, vpcID string) error
	DeleteInternetGatewayFunc   func(ctx context.Context, gatewayID string) error
	AllocateAddressFunc         func(ctx context.Context) (string, string, error)
	ReleaseAddressFunc          func(ctx context.Context, allocationID string) error
	CreateNATGatewayFunc        func(ctx context.Context, subnetID, allocationID string) (string, error)
	WaitNATGatewayAvailableFunc func(ctx context.Context, natGatewayID string) error
	NATGatewayAllocationFunc    func(ctx context.Context, natGatewayID string) (string, error)
	DeleteNATGatewayFunc        func(ctx context.Context, natGatewayID string) error
	CreateSecurityGroupFunc     func(ctx context.Context, vpcID, name, description string) (string, error)
	AuthorizeIngressFunc        func(ctx context.Context, groupID string, perm RulePermission) error
	AuthorizeEgressFunc         func(ctx context.Context, groupID string, perm RulePermission) error
	DeleteSecurityGroupFunc     func(ctx context.Context, groupID string) error
}

var _ ResourceManager = (*MockClient)(nil)

func (m *MockClient) record(op string, args ...string) {
	m.Calls = append(m.Calls, Call{Op: op, Args: args})
}

func (m *MockClient) nextID(prefix string) string {
	if m.counters == nil {
		m.counters = make(map[string]int)
	}
	m.counters[prefix]++
	return fmt.Sprintf("%s-%04d", prefix, m.counters[prefix])
}

// Ops returns the recorded operation names in call order.
func (m *MockClient) Ops() []string {
	ops := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		ops[i] = c.Op
	}
	return ops
}

// CreateVPC implements NetworkManager.
func (m *MockClient) CreateVPC(ctx context.Context, cidr string) (string, error) {
	m.record("CreateVPC", cidr)
	if m.CreateVPCFunc != nil {
		return m.CreateVPCFunc(ctx, cidr)
	}
	return m.nextID("vpc"), nil
}

// WaitVPCAvailable implements NetworkManager.
func (m *MockClient) WaitVPCAvailable(ctx context.Context, vpcID string) error {
	m.record("WaitVPCAvailable", vpcID)
	if m.WaitVPCAvailableFunc != nil {
		return m.WaitVPCAvailableFunc(ctx, vpcID)
	}
	return nil
}

// EnableDNSHostnames implements NetworkManager.
func (m *MockClient) EnableDNSHostnames(ctx context.Context, vpcID string) error {
	m.record("EnableDNSHostnames", vpcID)
	if m.EnableDNSHostnamesFunc != nil {
		return m.EnableDNSHostnamesFunc(ctx, vpcID)
	}
	return nil
}

// EnableDNSSupport implements NetworkManager.
func (m *MockClient) EnableDNSSupport(ctx context.Context, vpcID string) error {
	m.record("EnableDNSSupport", vpcID)
	if m.EnableDNSSupportFunc != nil {
		return m.EnableDNSSupportFunc(ctx, vpcID)
	}
	return nil
}

// DeleteVPC implements NetworkManager.
func (m *MockClient) DeleteVPC(ctx context.Context, vpcID string) error {
	m.record("DeleteVPC", vpcID)
	if m.DeleteVPCFunc != nil {
		return m.DeleteVPCFunc(ctx, vpcID)
	}
	return nil
}

// CreateTags implements Tagger.
func (m *MockClient) CreateTags(ctx context.Context, resourceID string, tags map[string]string) error {
	m.record("CreateTags", resourceID)
	if m.CreateTagsFunc != nil {
		return m.CreateTagsFunc(ctx, resourceID, tags)
	}
	return nil
}

// CreateSubnet implements NetworkManager.
func (m *MockClient) CreateSubnet(ctx context.Context, vpcID, cidr, az string) (string, error) {
	m.record("CreateSubnet", vpcID, cidr, az)
	if m.CreateSubnetFunc != nil {
		return m.CreateSubnetFunc(ctx, vpcID, cidr, az)
	}
	return m.nextID("subnet"), nil
}

// EnablePublicIPOnLaunch implements NetworkManager.
func (m *MockClient) EnablePublicIPOnLaunch(ctx context.Context, subnetID string) error {
	m.record("EnablePublicIPOnLaunch", subnetID)
	if m.EnablePublicIPOnLaunchFunc != nil {
		return m.EnablePublicIPOnLaunchFunc(ctx, subnetID)
	}
	return nil
}

// DeleteSubnet implements NetworkManager.
func (m *MockClient) DeleteSubnet(ctx context.Context, subnetID string) error {
	m.record("DeleteSubnet", subnetID)
	if m.DeleteSubnetFunc != nil {
		return m.DeleteSubnetFunc(ctx, subnetID)
	}
	return nil
}

// CreateRouteTable implements NetworkManager.
func (m *MockClient) CreateRouteTable(ctx context.Context, vpcID string) (string, error) {
	m.record("CreateRouteTable", vpcID)
	if m.CreateRouteTableFunc != nil {
		return m.CreateRouteTableFunc(ctx, vpcID)
	}
	return m.nextID("rtb"), nil
}

// CreateRoute implements NetworkManager.
func (m *MockClient) CreateRoute(ctx context.Context, route RouteSpec) error {
	m.record("CreateRoute", route.RouteTableID, route.DestinationCIDR, route.GatewayID, route.NATGatewayID)
	if m.CreateRouteFunc != nil {
		return m.CreateRouteFunc(ctx, route)
	}
	return nil
}

// AssociateRouteTable implements NetworkManager.
func (m *MockClient) AssociateRouteTable(ctx context.Context, subnetID, routeTableID string) error {
	m.record("AssociateRouteTable", subnetID, routeTableID)
	if m.AssociateRouteTableFunc != nil {
		return m.AssociateRouteTableFunc(ctx, subnetID, routeTableID)
	}
	return nil
}

// DeleteRouteTable implements NetworkManager.
func (m *MockClient) DeleteRouteTable(ctx context.Context, routeTableID string) error {
	m.record("DeleteRouteTable", routeTableID)
	if m.DeleteRouteTableFunc != nil {
		return m.DeleteRouteTableFunc(ctx, routeTableID)
	}
	return nil
}

// CreateInternetGateway implements GatewayManager.
func (m *MockClient) CreateInternetGateway(ctx context.Context) (string, error) {
	m.record("CreateInternetGateway")
	if m.CreateInternetGatewayFunc != nil {
		return m.CreateInternetGatewayFunc(ctx)
	}
	return m.nextID("igw"), nil
}

// AttachInternetGateway implements GatewayManager.
func (m *MockClient) AttachInternetGateway(ctx context.Context, gatewayID, vpcID string) error {
	m.record("AttachInternetGateway", gatewayID, vpcID)
	if m.AttachInternetGatewayFunc != nil {
		return m.AttachInternetGatewayFunc(ctx, gatewayID, vpcID)
	}
	return nil
}

// DetachInternetGateway implements GatewayManager.
func (m *MockClient) DetachInternetGateway(ctx context.Context, gatewayID, vpcID string) error {
	m.record("DetachInternetGateway", gatewayID, vpcID)
	if m.DetachInternetGatewayFunc != nil {
		return m.DetachInternetGatewayFunc(ctx, gatewayID, vpcID)
	}
	return nil
}

// DeleteInternetGateway implements GatewayManager.
func (m *MockClient) DeleteInternetGateway(ctx context.Context, gatewayID string) error {
	m.record("DeleteInternetGateway", gatewayID)
	if m.DeleteInternetGatewayFunc != nil {
		return m.DeleteInternetGatewayFunc(ctx, gatewayID)
	}
	return nil
}

// AllocateAddress implements GatewayManager.
func (m *MockClient) AllocateAddress(ctx context.Context) (string, string, error) {
	m.record("AllocateAddress")
	if m.AllocateAddressFunc != nil {
		return m.AllocateAddressFunc(ctx)
	}
	return m.nextID("eipalloc"), "198.51.100.1", nil
}

// ReleaseAddress implements GatewayManager.
func (m *MockClient) ReleaseAddress(ctx context.Context, allocationID string) error {
	m.record("ReleaseAddress", allocationID)
	if m.ReleaseAddressFunc != nil {
		return m.ReleaseAddressFunc(ctx, allocationID)
	}
	return nil
}

// CreateNATGateway implements GatewayManager.
func (m *MockClient) CreateNATGateway(ctx context.Context, subnetID, allocationID string) (string, error) {
	m.record("CreateNATGateway", subnetID, allocationID)
	if m.CreateNATGatewayFunc != nil {
		return m.CreateNATGatewayFunc(ctx, subnetID, allocationID)
	}
	return m.nextID("nat"), nil
}

// WaitNATGatewayAvailable implements GatewayManager.
func (m *MockClient) WaitNATGatewayAvailable(ctx context.Context, natGatewayID string) error {
	m.record("WaitNATGatewayAvailable", natGatewayID)
	if m.WaitNATGatewayAvailableFunc != nil {
		return m.WaitNATGatewayAvailableFunc(ctx, natGatewayID)
	}
	return nil
}

// NATGatewayAllocation implements GatewayManager.
func (m *MockClient) NATGatewayAllocation(ctx context.Context, natGatewayID string) (string, error) {
	m.record("NATGatewayAllocation", natGatewayID)
	if m.NATGatewayAllocationFunc != nil {
		return m.NATGatewayAllocationFunc(ctx, natGatewayID)
	}
	return "eipalloc-0001", nil
}

// DeleteNATGateway implements GatewayManager.
func (m *MockClient) DeleteNATGateway(ctx context.Context, natGatewayID string) error {
	m.record("DeleteNATGateway", natGatewayID)
	if m.DeleteNATGatewayFunc != nil {
		return m.DeleteNATGatewayFunc(ctx, natGatewayID)
	}
	return nil
}

// CreateSecurityGroup implements SecurityGroupManager.
func (m *MockClient) CreateSecurityGroup(ctx context.Context, vpcID, name, description string) (string, error) {
	m.record("CreateSecurityGroup", vpcID, name)
	if m.CreateSecurityGroupFunc != nil {
		return m.CreateSecurityGroupFunc(ctx, vpcID, name, description)
	}
	return m.nextID("sg"), nil
}

// AuthorizeIngress implements SecurityGroupManager.
func (m *MockClient) AuthorizeIngress(ctx context.Context, groupID string, perm RulePermission) error {
	m.record("AuthorizeIngress", groupID, perm.Protocol, perm.CIDR)
	if m.AuthorizeIngressFunc != nil {
		return m.AuthorizeIngressFunc(ctx, groupID, perm)
	}
	return nil
}

// AuthorizeEgress implements SecurityGroupManager.
func (m *MockClient) AuthorizeEgress(ctx context.Context, groupID string, perm RulePermission) error {
	m.record("AuthorizeEgress", groupID, perm.Protocol, perm.CIDR)
	if m.AuthorizeEgressFunc != nil {
		return m.AuthorizeEgressFunc(ctx, groupID, perm)
	}
	return nil
}

// DeleteSecurityGroup implements SecurityGroupManager.
func (m *MockClient) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	m.record("DeleteSecurityGroup", groupID)
	if m.DeleteSecurityGroupFunc != nil {
		return m.DeleteSecurityGroupFunc(ctx, groupID)
	}
	return nil
}
