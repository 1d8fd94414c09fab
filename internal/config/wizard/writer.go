package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vpcforge/vpcforge/internal/config"
)

// WriteConfig writes the config to a YAML file with a descriptive header.
func WriteConfig(cfg *config.Config, outputPath string) error {
	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# vpcforge deployment configuration
# Generated by 'vpcforge init' on %s
#
# Deploy with:    vpcforge deploy -c %s
# Validate with:  vpcforge deploy -c %s --dry-run
`, time.Now().Format("2006-01-02"), outputPath, outputPath)
}
