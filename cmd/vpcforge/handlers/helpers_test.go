package handlers

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// captureOutput captures stdout produced by f.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// saveAndRestoreFactories saves and restores the handler factory functions.
func saveAndRestoreFactories(t *testing.T) {
	origLoadConfigFile := loadConfigFile
	origNewCloudClient := newCloudClient
	origNewFileStore := newFileStore
	origNewMirrorStore := newMirrorStore
	origNewRemoteStore := newRemoteStore
	origFileExists := fileExists
	origRunWizard := runWizard
	origWriteConfig := writeConfig
	origStdoutIsTerminal := stdoutIsTerminal

	t.Cleanup(func() {
		loadConfigFile = origLoadConfigFile
		newCloudClient = origNewCloudClient
		newFileStore = origNewFileStore
		newMirrorStore = origNewMirrorStore
		newRemoteStore = origNewRemoteStore
		fileExists = origFileExists
		runWizard = origRunWizard
		writeConfig = origWriteConfig
		stdoutIsTerminal = origStdoutIsTerminal
	})
}
