package provisioning

import (
	"context"

	"github.com/vpcforge/vpcforge/internal/config"
	"github.com/vpcforge/vpcforge/internal/platform/aws"
	"github.com/vpcforge/vpcforge/internal/state"
)

// Context wraps the dependencies and shared state for one pipeline run.
// State is owned exclusively by the running pipeline: identifiers are added
// only after the corresponding create call succeeded.
type Context struct {
	context.Context
	Config   *config.Config
	State    *state.DeploymentState
	Cloud    aws.ResourceManager
	Store    state.Store
	Observer Observer
}

// NewContext creates a pipeline context with a fresh state record.
// Config may be nil for teardown, where the state file is the sole input.
func NewContext(ctx context.Context, cfg *config.Config, cloud aws.ResourceManager, store state.Store) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    state.New(),
		Cloud:    cloud,
		Store:    store,
		Observer: NewConsoleObserver(false),
	}
}
