package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"voiceprint/internal/analysis"
	"voiceprint/internal/traits"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	severityStyles = map[traits.Severity]lipgloss.Style{
		traits.SeverityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		traits.SeverityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		traits.SeverityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	}
)

const barWidth = 20

func renderReport(r analysis.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Voiceprint"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  run %s · %d samples · %d words", r.RunID, len(r.Samples), r.Stylometric.Stats.Words)))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(r.Voiceprint.Summary))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Signature traits"))
	b.WriteString("\n")
	if len(r.Voiceprint.SignatureTraits) == 0 {
		b.WriteString(mutedStyle.Render("  none detected") + "\n")
	}
	for _, t := range r.Voiceprint.SignatureTraits {
		fmt.Fprintf(&b, "  %-24s %s %.2f\n", t.Name, bar(t.Strength), t.Strength)
		b.WriteString(mutedStyle.Render("    "+t.Description) + "\n")
	}

	b.WriteString(headingStyle.Render("Pitfalls"))
	b.WriteString("\n")
	if len(r.Voiceprint.Pitfalls) == 0 {
		b.WriteString(mutedStyle.Render("  none detected") + "\n")
	}
	for _, p := range r.Voiceprint.Pitfalls {
		fmt.Fprintf(&b, "  %-24s %s\n", p.Name, severityStyles[p.Severity].Render(strings.ToUpper(string(p.Severity))))
		b.WriteString(mutedStyle.Render("    "+p.Suggestion) + "\n")
	}

	b.WriteString(headingStyle.Render("Target ranges"))
	b.WriteString("\n")
	names := make([]string, 0, len(r.Voiceprint.TargetThresholds))
	for name := range r.Voiceprint.TargetThresholds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		th := r.Voiceprint.TargetThresholds[name]
		fmt.Fprintf(&b, "  %-24s optimal %6.3f  range %.3f..%.3f\n", name, th.Optimal, th.Min, th.Max)
	}

	if len(r.Errors) > 0 {
		b.WriteString(headingStyle.Render("Problems"))
		b.WriteString("\n")
		for _, e := range r.Errors {
			b.WriteString(severityStyles[traits.SeverityHigh].Render(fmt.Sprintf("  [%s] %s: %s", e.Type, e.Stage, e.Message)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func bar(v float64) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	filled := int(v*barWidth + 0.5)
	return strings.Repeat("█", filled) + mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}
