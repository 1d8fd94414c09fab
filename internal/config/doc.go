// Package config defines the declarative deployment configuration,
// its YAML loader, and validation rules.
package config
