package config

import "fmt"

// Validate checks the configuration for missing required fields and
// structurally invalid values. CIDR syntax is deliberately not checked
// here; that is the dry-run gate's job.
func (c *Config) Validate() error {
	if c.VPCName == "" {
		return errRequired("vpc_name")
	}
	if c.CIDR == "" {
		return errRequired("cidr")
	}
	if c.Region == "" {
		return errRequired("region")
	}
	if len(c.Subnets) == 0 {
		return errRequired("subnets")
	}

	if err := c.validateSubnets(); err != nil {
		return err
	}
	if err := c.validateSecurityGroups(); err != nil {
		return err
	}

	if c.StateBackend != nil && c.StateBackend.Bucket == "" {
		return errRequired("state_backend.bucket")
	}

	return nil
}

func (c *Config) validateSubnets() error {
	seen := make(map[string]bool, len(c.Subnets))
	for i, s := range c.Subnets {
		field := fmt.Sprintf("subnets[%d]", i)
		if s.Name == "" {
			return errRequired(field + ".name")
		}
		if s.CIDR == "" {
			return errRequired(field + ".cidr")
		}
		if s.AZ == "" {
			return errRequired(field + ".az")
		}
		if s.Type != TierPublic && s.Type != TierPrivate {
			return &Error{
				Field: field + ".type",
				Msg:   fmt.Sprintf("must be %q or %q, got %q", TierPublic, TierPrivate, s.Type),
			}
		}
		if seen[s.Name] {
			return &Error{Field: field + ".name", Msg: fmt.Sprintf("duplicate subnet name %q", s.Name)}
		}
		seen[s.Name] = true
	}
	return nil
}

func (c *Config) validateSecurityGroups() error {
	for name, rules := range c.SecurityGroups {
		for i, r := range rules {
			field := fmt.Sprintf("security_groups.%s[%d]", name, i)
			if r.Protocol == "" {
				return errRequired(field + ".protocol")
			}
			if r.CIDR == "" {
				return errRequired(field + ".cidr")
			}
			// -1/-1 is the EC2 wildcard for protocols without ports (ICMP).
			wildcard := r.FromPort == -1 && r.ToPort == -1
			if !wildcard && (r.FromPort < 0 || r.ToPort > 65535 || r.FromPort > r.ToPort) {
				return &Error{
					Field: field,
					Msg:   fmt.Sprintf("invalid port range %d-%d", r.FromPort, r.ToPort),
				}
			}
			if d := r.Direction; d != "" && d != DirectionIngress && d != DirectionEgress {
				return &Error{
					Field: field + ".direction",
					Msg:   fmt.Sprintf("must be %q or %q, got %q", DirectionIngress, DirectionEgress, d),
				}
			}
		}
	}
	return nil
}
