package handlers

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/vpcforge/vpcforge/internal/state"
)

var (
	summaryColorGreen = lipgloss.Color("#22c55e")
	summaryColorBlue  = lipgloss.Color("#3b82f6")
	summaryColorDim   = lipgloss.Color("#6b7280")
	summaryColorWhite = lipgloss.Color("#f9fafb")
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorWhite)

	summarySectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorBlue)

	summaryDimStyle = lipgloss.NewStyle().
			Foreground(summaryColorDim)

	summaryGreenStyle = lipgloss.NewStyle().
				Foreground(summaryColorGreen)
)

// stdoutIsTerminal is replaced in tests.
var stdoutIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// printDeploySummary prints the created resources and the state location.
// Styled output is used only on a terminal; pipes get plain text.
func printDeploySummary(st *state.DeploymentState, stateLocation string) {
	if !stdoutIsTerminal() {
		fmt.Print(renderPlainSummary(st, stateLocation))
		return
	}
	fmt.Print(renderStyledSummary(st, stateLocation))
}

// renderStyledSummary produces a lipgloss-styled deployment summary string.
func renderStyledSummary(st *state.DeploymentState, stateLocation string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render("  Deployment complete"))
	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(summarySectionStyle.Render("  Resources"))
	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("─", 40)))
	b.WriteString("\n")

	writeRow := func(label, value string) {
		b.WriteString(fmt.Sprintf("    %-18s %s\n", label, summaryGreenStyle.Render(value)))
	}

	writeRow("VPC", st.VPCID)
	if igw := st.Gateways.InternetGateway; igw != "" {
		writeRow("Internet gateway", igw)
	}
	if nat := st.Gateways.NATGateway; nat != nil {
		writeRow("NAT gateway", fmt.Sprintf("%s (%s)", nat.ID, nat.ElasticIP))
	}
	for _, tier := range []string{"public", "private"} {
		if id, ok := st.RouteTables[tier]; ok {
			writeRow(tier+" route table", id)
		}
	}
	for _, name := range st.SubnetNames() {
		rec := st.Subnets[name]
		writeRow("subnet "+name, fmt.Sprintf("%s (%s, %s)", rec.ID, rec.CIDR, rec.Type))
	}
	for _, name := range sortedGroupNames(st.SecurityGroups) {
		writeRow("group "+name, st.SecurityGroups[name])
	}

	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  State: " + stateLocation))
	b.WriteString("\n")

	return b.String()
}

// renderPlainSummary is the unstyled fallback for non-terminal output.
func renderPlainSummary(st *state.DeploymentState, stateLocation string) string {
	var b strings.Builder

	b.WriteString("\nDeployment complete\n")
	b.WriteString(fmt.Sprintf("  vpc: %s\n", st.VPCID))
	if igw := st.Gateways.InternetGateway; igw != "" {
		b.WriteString(fmt.Sprintf("  internet gateway: %s\n", igw))
	}
	if nat := st.Gateways.NATGateway; nat != nil {
		b.WriteString(fmt.Sprintf("  nat gateway: %s (%s)\n", nat.ID, nat.ElasticIP))
	}
	for _, tier := range []string{"public", "private"} {
		if id, ok := st.RouteTables[tier]; ok {
			b.WriteString(fmt.Sprintf("  %s route table: %s\n", tier, id))
		}
	}
	for _, name := range st.SubnetNames() {
		rec := st.Subnets[name]
		b.WriteString(fmt.Sprintf("  subnet %s: %s (%s, %s)\n", name, rec.ID, rec.CIDR, rec.Type))
	}
	for _, name := range sortedGroupNames(st.SecurityGroups) {
		b.WriteString(fmt.Sprintf("  security group %s: %s\n", name, st.SecurityGroups[name]))
	}
	b.WriteString(fmt.Sprintf("  state: %s\n", stateLocation))

	return b.String()
}

func sortedGroupNames(groups map[string]string) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
