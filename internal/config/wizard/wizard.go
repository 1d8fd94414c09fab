// Package wizard implements the interactive configuration generator behind
// the init command.
package wizard

import (
	"context"
	"fmt"
	"regexp"

	"github.com/charmbracelet/huh"

	"github.com/vpcforge/vpcforge/internal/config"
)

// vpcNameRegex validates VPC name format: 1-48 lowercase alphanumeric with hyphens.
var vpcNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,46}[a-z0-9])?$`)

// Result holds all the answers from the interactive wizard.
type Result struct {
	VPCName string
	Region  string
	CIDR    string

	PublicSubnets  int
	PrivateSubnets int

	NATEnabled       bool
	WebSecurityGroup bool
}

// Run runs the interactive configuration wizard. The context is used for
// cancellation support (e.g. Ctrl+C).
func Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Region:         "us-east-1",
		CIDR:           "10.0.0.0/16",
		PublicSubnets:  1,
		PrivateSubnets: 1,
	}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("network identity: %w", err)
	}
	if err := runSubnetGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("subnet layout: %w", err)
	}
	if err := runOptionsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	return result, nil
}

func runIdentityGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("VPC Name").
				Description("1-48 lowercase alphanumeric characters or hyphens").
				Placeholder("prod-secure-network").
				Value(&result.VPCName).
				Validate(validateVPCName),
			huh.NewSelect[string]().
				Title("Region").
				Description("AWS region to deploy into").
				Options(regionOptions()...).
				Value(&result.Region),
			huh.NewInput().
				Title("VPC CIDR").
				Description("IPv4 network block for the VPC").
				Placeholder("10.0.0.0/16").
				Value(&result.CIDR).
				Validate(config.ValidateIPv4CIDR),
		).Title("Network Identity"),
	).RunWithContext(ctx)
}

func runSubnetGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Public Subnets").
				Description("Internet-facing subnets, one per availability zone").
				Options(countOptions()...).
				Value(&result.PublicSubnets),
			huh.NewSelect[int]().
				Title("Private Subnets").
				Description("Internal subnets without direct internet access").
				Options(countOptions()...).
				Validate(func(private int) error {
					return validateSubnetCounts(result.PublicSubnets, private)
				}).
				Value(&result.PrivateSubnets),
		).Title("Subnet Layout"),
	).RunWithContext(ctx)
}

func runOptionsGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("NAT Gateway").
				Description("Give private subnets outbound internet access (billed hourly)").
				Value(&result.NATEnabled),
			huh.NewConfirm().
				Title("Web Security Group").
				Description("Create a 'web' security group allowing HTTP/HTTPS from anywhere").
				Value(&result.WebSecurityGroup),
		).Title("Options"),
	).RunWithContext(ctx)
}

func validateSubnetCounts(public, private int) error {
	if public+private == 0 {
		return fmt.Errorf("at least one subnet is required")
	}
	return nil
}

func validateVPCName(name string) error {
	if !vpcNameRegex.MatchString(name) {
		return fmt.Errorf("must be 1-48 lowercase alphanumeric characters or hyphens")
	}
	return nil
}

func regionOptions() []huh.Option[string] {
	regions := []string{
		"us-east-1", "us-east-2", "us-west-1", "us-west-2",
		"eu-west-1", "eu-central-1", "ap-southeast-1", "ap-northeast-1",
	}
	opts := make([]huh.Option[string], len(regions))
	for i, r := range regions {
		opts[i] = huh.NewOption(r, r)
	}
	return opts
}

func countOptions() []huh.Option[int] {
	return []huh.Option[int]{
		huh.NewOption("0", 0),
		huh.NewOption("1", 1),
		huh.NewOption("2", 2),
		huh.NewOption("3", 3),
	}
}
