package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultOutputDir is where state files are written unless overridden.
const DefaultOutputDir = "output"

// Store persists and loads deployment state documents. Save returns the
// location the state was written to (a file path or an s3:// URI).
type Store interface {
	Save(ctx context.Context, st *DeploymentState, vpcName string) (string, error)
	Load(ctx context.Context, ref string) (*DeploymentState, error)
}

// FileStore writes one JSON state document per deployment into a directory,
// named after the VPC.
type FileStore struct {
	Dir string
}

// NewFileStore creates a FileStore rooted at dir, or DefaultOutputDir when
// dir is empty.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultOutputDir
	}
	return &FileStore{Dir: dir}
}

// Save writes the state document to <dir>/<vpcName>-state.json.
func (f *FileStore) Save(_ context.Context, st *DeploymentState, vpcName string) (string, error) {
	if err := os.MkdirAll(f.Dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := Marshal(st)
	if err != nil {
		return "", err
	}

	path := filepath.Join(f.Dir, StateFileName(vpcName))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write state file: %w", err)
	}
	return path, nil
}

// Load reads a state document from the given file path.
func (f *FileStore) Load(_ context.Context, ref string) (*DeploymentState, error) {
	// #nosec G304
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	return Unmarshal(data)
}

// StateFileName returns the canonical state file name for a VPC.
func StateFileName(vpcName string) string {
	return vpcName + "-state.json"
}

// Marshal encodes a state document as indented JSON.
func Marshal(st *DeploymentState) ([]byte, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a state document.
func Unmarshal(data []byte) (*DeploymentState, error) {
	var st DeploymentState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if st.Subnets == nil {
		st.Subnets = make(map[string]SubnetRecord)
	}
	if st.SecurityGroups == nil {
		st.SecurityGroups = make(map[string]string)
	}
	if st.RouteTables == nil {
		st.RouteTables = make(map[string]string)
	}
	return &st, nil
}
