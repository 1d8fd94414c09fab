package provisioning

import (
	"fmt"

	"github.com/vpcforge/vpcforge/internal/config"
)

// ValidationError reports a syntactically invalid CIDR found during a
// dry run. Validation stops at the first offending value.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidateCIDRs checks that the network CIDR and every subnet CIDR parse
// as valid IPv4 network blocks. This is the single dry-run gate; semantic
// checks such as overlap or capacity are out of scope.
func ValidateCIDRs(cfg *config.Config) error {
	if err := config.ValidateIPv4CIDR(cfg.CIDR); err != nil {
		return &ValidationError{Field: "cidr", Value: cfg.CIDR, Err: err}
	}
	for i, s := range cfg.Subnets {
		if err := config.ValidateIPv4CIDR(s.CIDR); err != nil {
			return &ValidationError{
				Field: fmt.Sprintf("subnets[%d].cidr", i),
				Value: s.CIDR,
				Err:   err,
			}
		}
	}
	return nil
}
