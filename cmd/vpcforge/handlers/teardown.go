package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/vpcforge/vpcforge/internal/config"
	"github.com/vpcforge/vpcforge/internal/provisioning"
	"github.com/vpcforge/vpcforge/internal/provisioning/teardown"
	"github.com/vpcforge/vpcforge/internal/state"
)

// newRemoteStore creates the store used to fetch s3:// state references.
// Replaced in tests.
var newRemoteStore = func(ctx context.Context) (state.Store, error) {
	return state.NewS3Store(ctx, &config.StateBackendConfig{})
}

// Teardown deletes all resources recorded in a state document. The reference
// is either a local file path or an s3://bucket/key URI.
func Teardown(ctx context.Context, stateRef string, verbose bool) error {
	store := newFileStore()
	if state.IsS3Ref(stateRef) {
		var err error
		store, err = newRemoteStore(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize state backend: %w", err)
		}
	}

	st, err := store.Load(ctx, stateRef)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	log.Printf("Loaded state for VPC %s, deployed %s", st.VPCID, st.Timestamp)

	// The state document carries no region, so the client falls back to the
	// ambient AWS configuration (AWS_REGION, profile, instance metadata).
	cloud, err := newCloudClient(ctx, "")
	if err != nil {
		return err
	}

	pCtx := provisioning.NewContext(ctx, nil, cloud, store)
	pCtx.State = st
	pCtx.Observer = provisioning.NewConsoleObserver(verbose)

	if err := teardown.NewProvisioner().Teardown(pCtx); err != nil {
		return fmt.Errorf("teardown failed: %w", err)
	}

	pCtx.Observer.Printf("Teardown of %s complete", st.VPCID)
	return nil
}
