package config

// Subnet tier literals. Every subnet and route table belongs to exactly
// one of these.
const (
	TierPublic  = "public"
	TierPrivate = "private"
)

// Rule directions.
const (
	DirectionIngress = "ingress"
	DirectionEgress  = "egress"
)

// Config is the declarative description of one VPC deployment.
// It is loaded once per invocation and never mutated afterwards.
type Config struct {
	VPCName string `yaml:"vpc_name"`
	CIDR    string `yaml:"cidr"`
	Region  string `yaml:"region"`

	// DNS flags default to true when omitted; pointers distinguish
	// "not set" from an explicit false.
	EnableDNSHostnames *bool `yaml:"enable_dns_hostnames,omitempty"`
	EnableDNSSupport   *bool `yaml:"enable_dns_support,omitempty"`

	Tags map[string]string `yaml:"tags,omitempty"`

	Subnets []SubnetSpec `yaml:"subnets"`

	NATGateway NATGatewayConfig `yaml:"nat_gateway"`

	// SecurityGroups maps group name to its ordered rule list.
	SecurityGroups map[string][]SecurityRule `yaml:"security_groups,omitempty"`

	// StateBackend optionally mirrors the state file to an S3 bucket.
	StateBackend *StateBackendConfig `yaml:"state_backend,omitempty"`
}

// SubnetSpec describes one subnet to create, in declaration order.
type SubnetSpec struct {
	Name string `yaml:"name"`
	CIDR string `yaml:"cidr"`
	AZ   string `yaml:"az"`
	Type string `yaml:"type"`
}

// NATGatewayConfig controls NAT gateway creation for private subnets.
type NATGatewayConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SecurityRule is one security-group rule. Direction defaults to ingress.
type SecurityRule struct {
	Protocol  string `yaml:"protocol"`
	FromPort  int32  `yaml:"from_port"`
	ToPort    int32  `yaml:"to_port"`
	CIDR      string `yaml:"cidr"`
	Direction string `yaml:"direction,omitempty"`
}

// StateBackendConfig configures the optional S3 state mirror.
// Endpoint and static credentials support S3-compatible stores.
type StateBackendConfig struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// DNSHostnamesEnabled reports the effective enable_dns_hostnames value.
func (c *Config) DNSHostnamesEnabled() bool {
	return c.EnableDNSHostnames == nil || *c.EnableDNSHostnames
}

// DNSSupportEnabled reports the effective enable_dns_support value.
func (c *Config) DNSSupportEnabled() bool {
	return c.EnableDNSSupport == nil || *c.EnableDNSSupport
}

// EffectiveDirection returns the rule direction, defaulting to ingress.
func (r SecurityRule) EffectiveDirection() string {
	if r.Direction == "" {
		return DirectionIngress
	}
	return r.Direction
}
