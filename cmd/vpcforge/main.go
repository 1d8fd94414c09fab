// Package main is the entry point for the vpcforge CLI.
//
// vpcforge provisions secure multi-tier VPC network infrastructure on AWS
// from a declarative YAML configuration, and tears it down again from the
// state file a deployment produces.
//
// Commands: init, deploy, teardown, version.
//
// For detailed usage information, run:
//
//	vpcforge --help
package main

import (
	"fmt"
	"os"

	"github.com/vpcforge/vpcforge/cmd/vpcforge/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
