package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	content := `
vpc_name: "prod-network"
cidr: "10.0.0.0/16"
region: "eu-central-1"
tags:
  team: platform
subnets:
  - name: "pub-a"
    cidr: "10.0.1.0/24"
    az: "eu-central-1a"
    type: "public"
  - name: "priv-a"
    cidr: "10.0.2.0/24"
    az: "eu-central-1a"
    type: "private"
nat_gateway:
  enabled: true
security_groups:
  web:
    - protocol: tcp
      from_port: 443
      to_port: 443
      cidr: "0.0.0.0/0"
`
	tmpfile, err := os.CreateTemp("", "network-*.yaml")
	require.NoError(t, err)
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	_, err = tmpfile.Write([]byte(content))
	require.NoError(t, err)
	_ = tmpfile.Close()

	cfg, err := LoadFile(tmpfile.Name())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "prod-network", cfg.VPCName)
	assert.Equal(t, "10.0.0.0/16", cfg.CIDR)
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, map[string]string{"team": "platform"}, cfg.Tags)
	assert.True(t, cfg.NATGateway.Enabled)

	require.Len(t, cfg.Subnets, 2)
	assert.Equal(t, "pub-a", cfg.Subnets[0].Name)
	assert.Equal(t, TierPublic, cfg.Subnets[0].Type)
	assert.Equal(t, "priv-a", cfg.Subnets[1].Name)
	assert.Equal(t, TierPrivate, cfg.Subnets[1].Type)

	require.Len(t, cfg.SecurityGroups["web"], 1)
	rule := cfg.SecurityGroups["web"][0]
	assert.Equal(t, "tcp", rule.Protocol)
	assert.Equal(t, int32(443), rule.FromPort)
	assert.Equal(t, int32(443), rule.ToPort)
	assert.Equal(t, DirectionIngress, rule.EffectiveDirection())
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile("/nonexistent/network.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_DNSDefaults(t *testing.T) {
	cfg, err := Load([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Nil(t, cfg.EnableDNSHostnames)
	assert.Nil(t, cfg.EnableDNSSupport)
	assert.True(t, cfg.DNSHostnamesEnabled())
	assert.True(t, cfg.DNSSupportEnabled())
	assert.False(t, cfg.NATGateway.Enabled)
}

func TestLoad_DNSExplicitFalse(t *testing.T) {
	content := minimalYAML + `
enable_dns_hostnames: false
enable_dns_support: false
`
	cfg, err := Load([]byte(content))
	require.NoError(t, err)

	assert.False(t, cfg.DNSHostnamesEnabled())
	assert.False(t, cfg.DNSSupportEnabled())
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	content := minimalYAML + `
vpc_nam: "typo"
`
	_, err := Load([]byte(content))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal yaml")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load([]byte("vpc_name: [unterminated"))
	assert.Error(t, err)
}

func TestLoad_StateBackend(t *testing.T) {
	content := minimalYAML + `
state_backend:
  bucket: "deploy-states"
  region: "us-east-1"
  prefix: "networks"
`
	cfg, err := Load([]byte(content))
	require.NoError(t, err)
	require.NotNil(t, cfg.StateBackend)
	assert.Equal(t, "deploy-states", cfg.StateBackend.Bucket)
	assert.Equal(t, "networks", cfg.StateBackend.Prefix)
}

const minimalYAML = `
vpc_name: "test"
cidr: "10.0.0.0/16"
region: "us-east-1"
subnets:
  - name: "pub-a"
    cidr: "10.0.1.0/24"
    az: "us-east-1a"
    type: "public"
`
