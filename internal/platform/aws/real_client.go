package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Waiter ceilings mirror the EC2 defaults (15s poll, 40 attempts).
const (
	vpcAvailableMaxWait = 10 * time.Minute
	natAvailableMaxWait = 10 * time.Minute
)

// EC2API is the subset of the EC2 client the RealClient depends on. It is
// satisfied by *ec2.Client and by test doubles.
type EC2API interface {
	CreateVpc(ctx context.Context, params *ec2.CreateVpcInput, optFns ...func(*ec2.Options)) (*ec2.CreateVpcOutput, error)
	DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	ModifyVpcAttribute(ctx context.Context, params *ec2.ModifyVpcAttributeInput, optFns ...func(*ec2.Options)) (*ec2.ModifyVpcAttributeOutput, error)
	DeleteVpc(ctx context.Context, params *ec2.DeleteVpcInput, optFns ...func(*ec2.Options)) (*ec2.DeleteVpcOutput, error)

	CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)

	CreateSubnet(ctx context.Context, params *ec2.CreateSubnetInput, optFns ...func(*ec2.Options)) (*ec2.CreateSubnetOutput, error)
	ModifySubnetAttribute(ctx context.Context, params *ec2.ModifySubnetAttributeInput, optFns ...func(*ec2.Options)) (*ec2.ModifySubnetAttributeOutput, error)
	DeleteSubnet(ctx context.Context, params *ec2.DeleteSubnetInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSubnetOutput, error)

	CreateRouteTable(ctx context.Context, params *ec2.CreateRouteTableInput, optFns ...func(*ec2.Options)) (*ec2.CreateRouteTableOutput, error)
	CreateRoute(ctx context.Context, params *ec2.CreateRouteInput, optFns ...func(*ec2.Options)) (*ec2.CreateRouteOutput, error)
	AssociateRouteTable(ctx context.Context, params *ec2.AssociateRouteTableInput, optFns ...func(*ec2.Options)) (*ec2.AssociateRouteTableOutput, error)
	DeleteRouteTable(ctx context.Context, params *ec2.DeleteRouteTableInput, optFns ...func(*ec2.Options)) (*ec2.DeleteRouteTableOutput, error)

	CreateInternetGateway(ctx context.Context, params *ec2.CreateInternetGatewayInput, optFns ...func(*ec2.Options)) (*ec2.CreateInternetGatewayOutput, error)
	AttachInternetGateway(ctx context.Context, params *ec2.AttachInternetGatewayInput, optFns ...func(*ec2.Options)) (*ec2.AttachInternetGatewayOutput, error)
	DetachInternetGateway(ctx context.Context, params *ec2.DetachInternetGatewayInput, optFns ...func(*ec2.Options)) (*ec2.DetachInternetGatewayOutput, error)
	DeleteInternetGateway(ctx context.Context, params *ec2.DeleteInternetGatewayInput, optFns ...func(*ec2.Options)) (*ec2.DeleteInternetGatewayOutput, error)

	AllocateAddress(ctx context.Context, params *ec2.AllocateAddressInput, optFns ...func(*ec2.Options)) (*ec2.AllocateAddressOutput, error)
	ReleaseAddress(ctx context.Context, params *ec2.ReleaseAddressInput, optFns ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error)

	CreateNatGateway(ctx context.Context, params *ec2.CreateNatGatewayInput, optFns ...func(*ec2.Options)) (*ec2.CreateNatGatewayOutput, error)
	DescribeNatGateways(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error)
	DeleteNatGateway(ctx context.Context, params *ec2.DeleteNatGatewayInput, optFns ...func(*ec2.Options)) (*ec2.DeleteNatGatewayOutput, error)

	CreateSecurityGroup(ctx context.Context, params *ec2.CreateSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error)
	AuthorizeSecurityGroupIngress(ctx context.Context, params *ec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
	AuthorizeSecurityGroupEgress(ctx context.Context, params *ec2.AuthorizeSecurityGroupEgressInput, optFns ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupEgressOutput, error)
	DeleteSecurityGroup(ctx context.Context, params *ec2.DeleteSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSecurityGroupOutput, error)
}

// RealClient implements ResourceManager against the EC2 API.
type RealClient struct {
	api EC2API
}

var _ ResourceManager = (*RealClient)(nil)

// NewRealClient resolves AWS credentials and region and returns a client
// ready for provider calls. An empty region falls back to the default
// resolution chain (environment, shared config).
func NewRealClient(ctx context.Context, region string) (*RealClient, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &RealClient{api: ec2.NewFromConfig(awsCfg)}, nil
}

// NewRealClientWithAPI wraps an existing EC2 API implementation.
func NewRealClientWithAPI(api EC2API) *RealClient {
	return &RealClient{api: api}
}

// CreateVPC creates the VPC and returns its identifier.
func (c *RealClient) CreateVPC(ctx context.Context, cidr string) (string, error) {
	out, err := c.api.CreateVpc(ctx, &ec2.CreateVpcInput{CidrBlock: aws.String(cidr)})
	if err != nil {
		return "", providerErr("create vpc", "", err)
	}
	return aws.ToString(out.Vpc.VpcId), nil
}

// WaitVPCAvailable blocks until the VPC reaches the available state.
func (c *RealClient) WaitVPCAvailable(ctx context.Context, vpcID string) error {
	waiter := ec2.NewVpcAvailableWaiter(c.api)
	input := &ec2.DescribeVpcsInput{VpcIds: []string{vpcID}}
	if err := waiter.Wait(ctx, input, vpcAvailableMaxWait); err != nil {
		return providerErr("wait for vpc available", vpcID, err)
	}
	return nil
}

// EnableDNSHostnames turns on DNS hostname assignment for the VPC.
func (c *RealClient) EnableDNSHostnames(ctx context.Context, vpcID string) error {
	_, err := c.api.ModifyVpcAttribute(ctx, &ec2.ModifyVpcAttributeInput{
		VpcId:              aws.String(vpcID),
		EnableDnsHostnames: &ec2types.AttributeBooleanValue{Value: aws.Bool(true)},
	})
	if err != nil {
		return providerErr("enable dns hostnames", vpcID, err)
	}
	return nil
}

// EnableDNSSupport turns on DNS resolution for the VPC.
func (c *RealClient) EnableDNSSupport(ctx context.Context, vpcID string) error {
	_, err := c.api.ModifyVpcAttribute(ctx, &ec2.ModifyVpcAttributeInput{
		VpcId:            aws.String(vpcID),
		EnableDnsSupport: &ec2types.AttributeBooleanValue{Value: aws.Bool(true)},
	})
	if err != nil {
		return providerErr("enable dns support", vpcID, err)
	}
	return nil
}

// DeleteVPC deletes the VPC.
func (c *RealClient) DeleteVPC(ctx context.Context, vpcID string) error {
	_, err := c.api.DeleteVpc(ctx, &ec2.DeleteVpcInput{VpcId: aws.String(vpcID)})
	if err != nil {
		return providerErr("delete vpc", vpcID, err)
	}
	return nil
}

// CreateTags applies a tag set to a resource. Keys are applied in sorted
// order so provider calls are deterministic.
func (c *RealClient) CreateTags(ctx context.Context, resourceID string, tags map[string]string) error {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ec2Tags := make([]ec2types.Tag, 0, len(tags))
	for _, k := range keys {
		ec2Tags = append(ec2Tags, ec2types.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}

	_, err := c.api.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{resourceID},
		Tags:      ec2Tags,
	})
	if err != nil {
		return providerErr("create tags", resourceID, err)
	}
	return nil
}

// CreateSubnet creates a subnet in the given availability zone.
func (c *RealClient) CreateSubnet(ctx context.Context, vpcID, cidr, az string) (string, error) {
	out, err := c.api.CreateSubnet(ctx, &ec2.CreateSubnetInput{
		VpcId:            aws.String(vpcID),
		CidrBlock:        aws.String(cidr),
		AvailabilityZone: aws.String(az),
	})
	if err != nil {
		return "", providerErr("create subnet", cidr, err)
	}
	return aws.ToString(out.Subnet.SubnetId), nil
}

// EnablePublicIPOnLaunch enables automatic public address assignment for
// instances launched in the subnet.
func (c *RealClient) EnablePublicIPOnLaunch(ctx context.Context, subnetID string) error {
	_, err := c.api.ModifySubnetAttribute(ctx, &ec2.ModifySubnetAttributeInput{
		SubnetId:            aws.String(subnetID),
		MapPublicIpOnLaunch: &ec2types.AttributeBooleanValue{Value: aws.Bool(true)},
	})
	if err != nil {
		return providerErr("enable public ip on launch", subnetID, err)
	}
	return nil
}

// DeleteSubnet deletes a subnet.
func (c *RealClient) DeleteSubnet(ctx context.Context, subnetID string) error {
	_, err := c.api.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{SubnetId: aws.String(subnetID)})
	if err != nil {
		return providerErr("delete subnet", subnetID, err)
	}
	return nil
}

// CreateRouteTable creates a route table in the VPC.
func (c *RealClient) CreateRouteTable(ctx context.Context, vpcID string) (string, error) {
	out, err := c.api.CreateRouteTable(ctx, &ec2.CreateRouteTableInput{VpcId: aws.String(vpcID)})
	if err != nil {
		return "", providerErr("create route table", vpcID, err)
	}
	return aws.ToString(out.RouteTable.RouteTableId), nil
}

// CreateRoute adds a route to a route table.
func (c *RealClient) CreateRoute(ctx context.Context, route RouteSpec) error {
	input := &ec2.CreateRouteInput{
		RouteTableId:         aws.String(route.RouteTableID),
		DestinationCidrBlock: aws.String(route.DestinationCIDR),
	}
	if route.GatewayID != "" {
		input.GatewayId = aws.String(route.GatewayID)
	}
	if route.NATGatewayID != "" {
		input.NatGatewayId = aws.String(route.NATGatewayID)
	}

	if _, err := c.api.CreateRoute(ctx, input); err != nil {
		return providerErr("create route", route.RouteTableID, err)
	}
	return nil
}

// AssociateRouteTable associates a route table with a subnet.
func (c *RealClient) AssociateRouteTable(ctx context.Context, subnetID, routeTableID string) error {
	_, err := c.api.AssociateRouteTable(ctx, &ec2.AssociateRouteTableInput{
		SubnetId:     aws.String(subnetID),
		RouteTableId: aws.String(routeTableID),
	})
	if err != nil {
		return providerErr("associate route table", subnetID, err)
	}
	return nil
}

// DeleteRouteTable deletes a route table.
func (c *RealClient) DeleteRouteTable(ctx context.Context, routeTableID string) error {
	_, err := c.api.DeleteRouteTable(ctx, &ec2.DeleteRouteTableInput{RouteTableId: aws.String(routeTableID)})
	if err != nil {
		return providerErr("delete route table", routeTableID, err)
	}
	return nil
}

// CreateInternetGateway creates an unattached internet gateway.
func (c *RealClient) CreateInternetGateway(ctx context.Context) (string, error) {
	out, err := c.api.CreateInternetGateway(ctx, &ec2.CreateInternetGatewayInput{})
	if err != nil {
		return "", providerErr("create internet gateway", "", err)
	}
	return aws.ToString(out.InternetGateway.InternetGatewayId), nil
}

// AttachInternetGateway attaches an internet gateway to a VPC.
func (c *RealClient) AttachInternetGateway(ctx context.Context, gatewayID, vpcID string) error {
	_, err := c.api.AttachInternetGateway(ctx, &ec2.AttachInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
		VpcId:             aws.String(vpcID),
	})
	if err != nil {
		return providerErr("attach internet gateway", gatewayID, err)
	}
	return nil
}

// DetachInternetGateway detaches an internet gateway from a VPC.
func (c *RealClient) DetachInternetGateway(ctx context.Context, gatewayID, vpcID string) error {
	_, err := c.api.DetachInternetGateway(ctx, &ec2.DetachInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
		VpcId:             aws.String(vpcID),
	})
	if err != nil {
		return providerErr("detach internet gateway", gatewayID, err)
	}
	return nil
}

// DeleteInternetGateway deletes a detached internet gateway.
func (c *RealClient) DeleteInternetGateway(ctx context.Context, gatewayID string) error {
	_, err := c.api.DeleteInternetGateway(ctx, &ec2.DeleteInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
	})
	if err != nil {
		return providerErr("delete internet gateway", gatewayID, err)
	}
	return nil
}

// AllocateAddress allocates a VPC-scoped elastic IP.
func (c *RealClient) AllocateAddress(ctx context.Context) (string, string, error) {
	out, err := c.api.AllocateAddress(ctx, &ec2.AllocateAddressInput{
		Domain: ec2types.DomainTypeVpc,
	})
	if err != nil {
		return "", "", providerErr("allocate address", "", err)
	}
	return aws.ToString(out.AllocationId), aws.ToString(out.PublicIp), nil
}

// ReleaseAddress releases an elastic IP allocation.
func (c *RealClient) ReleaseAddress(ctx context.Context, allocationID string) error {
	_, err := c.api.ReleaseAddress(ctx, &ec2.ReleaseAddressInput{AllocationId: aws.String(allocationID)})
	if err != nil {
		return providerErr("release address", allocationID, err)
	}
	return nil
}

// CreateNATGateway creates a NAT gateway bound to a subnet and an elastic
// IP allocation.
func (c *RealClient) CreateNATGateway(ctx context.Context, subnetID, allocationID string) (string, error) {
	out, err := c.api.CreateNatGateway(ctx, &ec2.CreateNatGatewayInput{
		SubnetId:     aws.String(subnetID),
		AllocationId: aws.String(allocationID),
	})
	if err != nil {
		return "", providerErr("create nat gateway", subnetID, err)
	}
	return aws.ToString(out.NatGateway.NatGatewayId), nil
}

// WaitNATGatewayAvailable blocks until the NAT gateway becomes available.
func (c *RealClient) WaitNATGatewayAvailable(ctx context.Context, natGatewayID string) error {
	waiter := ec2.NewNatGatewayAvailableWaiter(c.api)
	input := &ec2.DescribeNatGatewaysInput{NatGatewayIds: []string{natGatewayID}}
	if err := waiter.Wait(ctx, input, natAvailableMaxWait); err != nil {
		return providerErr("wait for nat gateway available", natGatewayID, err)
	}
	return nil
}

// NATGatewayAllocation returns the allocation ID of the elastic IP bound to
// the NAT gateway, or "" when none is attached.
func (c *RealClient) NATGatewayAllocation(ctx context.Context, natGatewayID string) (string, error) {
	out, err := c.api.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{
		NatGatewayIds: []string{natGatewayID},
	})
	if err != nil {
		return "", providerErr("describe nat gateway", natGatewayID, err)
	}
	if len(out.NatGateways) == 0 || len(out.NatGateways[0].NatGatewayAddresses) == 0 {
		return "", nil
	}
	return aws.ToString(out.NatGateways[0].NatGatewayAddresses[0].AllocationId), nil
}

// DeleteNATGateway initiates NAT gateway deletion. Deletion completes
// asynchronously on the provider side.
func (c *RealClient) DeleteNATGateway(ctx context.Context, natGatewayID string) error {
	_, err := c.api.DeleteNatGateway(ctx, &ec2.DeleteNatGatewayInput{NatGatewayId: aws.String(natGatewayID)})
	if err != nil {
		return providerErr("delete nat gateway", natGatewayID, err)
	}
	return nil
}

// CreateSecurityGroup creates a security group in the VPC.
func (c *RealClient) CreateSecurityGroup(ctx context.Context, vpcID, name, description string) (string, error) {
	out, err := c.api.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
		GroupName:   aws.String(name),
		Description: aws.String(description),
		VpcId:       aws.String(vpcID),
	})
	if err != nil {
		return "", providerErr("create security group", name, err)
	}
	return aws.ToString(out.GroupId), nil
}

// AuthorizeIngress adds one ingress rule to a security group.
func (c *RealClient) AuthorizeIngress(ctx context.Context, groupID string, perm RulePermission) error {
	_, err := c.api.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId:       aws.String(groupID),
		IpPermissions: []ec2types.IpPermission{ipPermission(perm)},
	})
	if err != nil {
		return providerErr("authorize ingress", groupID, err)
	}
	return nil
}

// AuthorizeEgress adds one egress rule to a security group.
func (c *RealClient) AuthorizeEgress(ctx context.Context, groupID string, perm RulePermission) error {
	_, err := c.api.AuthorizeSecurityGroupEgress(ctx, &ec2.AuthorizeSecurityGroupEgressInput{
		GroupId:       aws.String(groupID),
		IpPermissions: []ec2types.IpPermission{ipPermission(perm)},
	})
	if err != nil {
		return providerErr("authorize egress", groupID, err)
	}
	return nil
}

// DeleteSecurityGroup deletes a security group. The provider rejects the
// call while other groups still reference it.
func (c *RealClient) DeleteSecurityGroup(ctx context.Context, groupID string) error {
	_, err := c.api.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{GroupId: aws.String(groupID)})
	if err != nil {
		return providerErr("delete security group", groupID, err)
	}
	return nil
}

func ipPermission(perm RulePermission) ec2types.IpPermission {
	return ec2types.IpPermission{
		IpProtocol: aws.String(perm.Protocol),
		FromPort:   aws.Int32(perm.FromPort),
		ToPort:     aws.Int32(perm.ToPort),
		IpRanges:   []ec2types.IpRange{{CidrIp: aws.String(perm.CIDR)}},
	}
}
