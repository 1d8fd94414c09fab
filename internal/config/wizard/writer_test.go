package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpcforge/vpcforge/internal/config"
)

func TestWriteConfig(t *testing.T) {
	cfg, err := sampleResult().ToConfig()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "network.yaml")
	require.NoError(t, WriteConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "# vpcforge deployment configuration")
	assert.Contains(t, content, "vpcforge deploy -c "+path)
	assert.Contains(t, content, "vpc_name: dev-network")

	// Optional DNS flags were never set and must not be serialized.
	assert.NotContains(t, content, "enable_dns_hostnames")

	// The written file round-trips through the loader.
	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.VPCName, loaded.VPCName)
	assert.Equal(t, cfg.Subnets, loaded.Subnets)
	assert.Equal(t, cfg.SecurityGroups, loaded.SecurityGroups)
}

func TestWriteConfig_BadPath(t *testing.T) {
	cfg, err := sampleResult().ToConfig()
	require.NoError(t, err)

	err = WriteConfig(cfg, filepath.Join(t.TempDir(), "missing", "network.yaml"))
	assert.ErrorContains(t, err, "failed to write file")
}
