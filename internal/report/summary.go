package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/varalys/licensecheck/internal/types"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	findingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// SummaryOptions controls the terminal summary.
type SummaryOptions struct {
	NoColor bool
	// New holds the findings not covered by the baseline. Findings absent
	// from it are shown as accepted. Nil means every finding is new.
	New []types.Finding
}

// WriteSummary prints a dependency table and the findings list.
func WriteSummary(w io.Writer, r Report, opts SummaryOptions) error {
	style := func(s lipgloss.Style, text string) string {
		if opts.NoColor {
			return text
		}
		return s.Render(text)
	}

	fmt.Fprintln(w, style(headingStyle, fmt.Sprintf("%s dependencies (%d)", r.Meta.Ecosystem.Title(), len(r.Dependencies))))
	table := tablewriter.NewWriter(w)
	table.Header("Package", "Version", "License")
	for _, d := range r.Dependencies {
		if err := table.Append([]string{d.Name, d.Version, d.License}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(r.Findings) == 0 {
		fmt.Fprintln(w, style(okStyle, "No incompatible licenses."))
		return nil
	}

	fresh := map[types.Finding]bool{}
	for _, f := range opts.New {
		fresh[f] = true
	}
	fmt.Fprintln(w, style(headingStyle, fmt.Sprintf("Incompatible licenses (%d)", len(r.Findings))))
	for _, f := range r.Findings {
		line := " - " + style(findingStyle, f.String())
		switch {
		case opts.New == nil:
		case fresh[f]:
			line += " " + style(newStyle, "[new]")
		default:
			line += " " + style(dimStyle, "[baseline]")
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// PlainSummary is an uncoloured one-line-per-item summary suitable for the
// clipboard.
func PlainSummary(r Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", Title, r.Meta.Ecosystem.Title())
	fmt.Fprintf(&sb, "Dependencies: %d\n", len(r.Dependencies))
	for _, d := range r.Dependencies {
		fmt.Fprintf(&sb, "  %s\t%s\n", d.Name, d.License)
	}
	if len(r.Findings) == 0 {
		sb.WriteString("No incompatible licenses found.\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Incompatible licenses: %d\n", len(r.Findings))
	for _, f := range r.Findings {
		fmt.Fprintf(&sb, "  - %s\n", f.String())
	}
	return sb.String()
}
