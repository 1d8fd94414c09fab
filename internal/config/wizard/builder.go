package wizard

import (
	"fmt"

	"github.com/vpcforge/vpcforge/internal/config"
)

// azSuffixes maps subnet index to an availability-zone letter.
const azSuffixes = "abcdef"

// ToConfig expands the wizard answers into a full deployment configuration.
// Subnet CIDRs are carved out of the VPC CIDR as consecutive /24-style
// blocks (8 extra prefix bits), public first.
func (r *Result) ToConfig() (*config.Config, error) {
	cfg := &config.Config{
		VPCName: r.VPCName,
		CIDR:    r.CIDR,
		Region:  r.Region,
		Tags:    map[string]string{"ManagedBy": "vpcforge"},
		NATGateway: config.NATGatewayConfig{
			Enabled: r.NATEnabled,
		},
	}

	netnum := 1
	for i := 0; i < r.PublicSubnets; i++ {
		spec, err := r.subnetSpec("public", i, netnum)
		if err != nil {
			return nil, err
		}
		cfg.Subnets = append(cfg.Subnets, spec)
		netnum++
	}
	for i := 0; i < r.PrivateSubnets; i++ {
		spec, err := r.subnetSpec("private", i, netnum)
		if err != nil {
			return nil, err
		}
		cfg.Subnets = append(cfg.Subnets, spec)
		netnum++
	}

	if r.WebSecurityGroup {
		cfg.SecurityGroups = map[string][]config.SecurityRule{
			"web": {
				{Protocol: "tcp", FromPort: 80, ToPort: 80, CIDR: "0.0.0.0/0"},
				{Protocol: "tcp", FromPort: 443, ToPort: 443, CIDR: "0.0.0.0/0"},
			},
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *Result) subnetSpec(tier string, index, netnum int) (config.SubnetSpec, error) {
	if index >= len(azSuffixes) {
		return config.SubnetSpec{}, fmt.Errorf("too many %s subnets", tier)
	}

	cidr, err := config.CIDRSubnet(r.CIDR, 8, netnum)
	if err != nil {
		return config.SubnetSpec{}, fmt.Errorf("failed to derive %s subnet CIDR: %w", tier, err)
	}

	suffix := string(azSuffixes[index])
	return config.SubnetSpec{
		Name: fmt.Sprintf("%s-%s", tier, suffix),
		CIDR: cidr,
		AZ:   r.Region + suffix,
		Type: tier,
	}, nil
}
