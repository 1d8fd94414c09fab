package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpcforge/vpcforge/internal/config"
	"github.com/vpcforge/vpcforge/internal/platform/aws"
	"github.com/vpcforge/vpcforge/internal/state"
)

func stubConfig() *config.Config {
	return &config.Config{
		VPCName: "test",
		CIDR:    "10.0.0.0/16",
		Region:  "us-east-1",
		Subnets: []config.SubnetSpec{
			{Name: "pub-a", CIDR: "10.0.1.0/24", AZ: "us-east-1a", Type: config.TierPublic},
		},
	}
}

func TestDeploy_Success(t *testing.T) {
	saveAndRestoreFactories(t)

	mock := &aws.MockClient{}
	loadConfigFile = func(string) (*config.Config, error) { return stubConfig(), nil }
	newCloudClient = func(context.Context, string) (aws.ResourceManager, error) { return mock, nil }
	stateDir := t.TempDir()
	newFileStore = func() state.Store { return state.NewFileStore(stateDir) }
	stdoutIsTerminal = func() bool { return false }

	output := captureOutput(func() {
		err := Deploy(context.Background(), "network.yaml", false, false)
		require.NoError(t, err)
	})

	assert.Contains(t, mock.Ops(), "CreateVPC")
	assert.Contains(t, mock.Ops(), "CreateSubnet")
	assert.Contains(t, output, "Deployment complete")
	assert.Contains(t, output, "vpc: vpc-0001")
	assert.Contains(t, output, "test-state.json")
}

func TestDeploy_ConfigLoadFailure(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(string) (*config.Config, error) {
		return nil, errors.New("no such file")
	}
	newCloudClient = func(context.Context, string) (aws.ResourceManager, error) {
		t.Fatal("client must not be created when the config fails to load")
		return nil, nil
	}

	err := Deploy(context.Background(), "missing.yaml", false, false)
	assert.ErrorContains(t, err, "failed to load config")
}

func TestDeploy_DryRunSkipsClient(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(string) (*config.Config, error) { return stubConfig(), nil }
	newCloudClient = func(context.Context, string) (aws.ResourceManager, error) {
		t.Fatal("dry run must not create a provider client")
		return nil, nil
	}

	err := Deploy(context.Background(), "network.yaml", true, false)
	assert.NoError(t, err)
}

func TestDeploy_DryRunInvalidCIDR(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := stubConfig()
	cfg.Subnets[0].CIDR = "10.0.1.5/24"
	loadConfigFile = func(string) (*config.Config, error) { return cfg, nil }

	err := Deploy(context.Background(), "network.yaml", true, false)
	assert.ErrorContains(t, err, "host bits set")
}

func TestDeploy_ClientFailure(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(string) (*config.Config, error) { return stubConfig(), nil }
	newCloudClient = func(context.Context, string) (aws.ResourceManager, error) {
		return nil, errors.New("no credentials found")
	}

	err := Deploy(context.Background(), "network.yaml", false, false)
	assert.ErrorContains(t, err, "no credentials found")
}

func TestDeploy_MirrorConfigured(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := stubConfig()
	cfg.StateBackend = &config.StateBackendConfig{Bucket: "states"}
	loadConfigFile = func(string) (*config.Config, error) { return cfg, nil }
	newCloudClient = func(context.Context, string) (aws.ResourceManager, error) {
		return &aws.MockClient{}, nil
	}
	stateDir := t.TempDir()
	newFileStore = func() state.Store { return state.NewFileStore(stateDir) }
	stdoutIsTerminal = func() bool { return false }

	mirror := &memoryStore{}
	var gotBackend *config.StateBackendConfig
	newMirrorStore = func(_ context.Context, backend *config.StateBackendConfig) (state.Store, error) {
		gotBackend = backend
		return mirror, nil
	}

	_ = captureOutput(func() {
		require.NoError(t, Deploy(context.Background(), "network.yaml", false, false))
	})

	require.NotNil(t, gotBackend)
	assert.Equal(t, "states", gotBackend.Bucket)
	assert.Equal(t, 1, mirror.saves, "the state is mirrored exactly once")
}

// memoryStore counts saves.
type memoryStore struct {
	saves int
	last  *state.DeploymentState
}

func (m *memoryStore) Save(_ context.Context, st *state.DeploymentState, vpcName string) (string, error) {
	m.saves++
	m.last = st
	return "s3://states/" + state.StateFileName(vpcName), nil
}

func (m *memoryStore) Load(context.Context, string) (*state.DeploymentState, error) {
	if m.last == nil {
		return nil, errors.New("nothing stored")
	}
	return m.last, nil
}
