// Package provisioning contains the shared plumbing for the deployment and
// teardown pipelines: the execution context, the phase runner, observability
// events, dry-run validation, and the warning result type for best-effort
// steps.
package provisioning
