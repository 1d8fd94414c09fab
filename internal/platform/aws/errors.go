package aws

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ProviderError wraps a failed provider call with the operation and the
// resource identifier involved. Any ProviderError during deployment is
// fatal to the remaining pipeline.
type ProviderError struct {
	Op       string
	Resource string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func providerErr(op, resource string, err error) error {
	return &ProviderError{Op: op, Resource: resource, Err: err}
}

// IsDuplicateRule reports whether err is the provider's "rule already
// exists" response for a security-group authorization.
func IsDuplicateRule(err error) bool {
	return hasAPIErrorCode(err, "InvalidPermission.Duplicate")
}

// IsNotFound reports whether err indicates the referenced resource does
// not exist (e.g. re-deleting after a partially completed teardown).
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return strings.HasSuffix(apiErr.ErrorCode(), ".NotFound")
	}
	return false
}

func hasAPIErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}
