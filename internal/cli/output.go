package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/tendertools/tender-autofill/constants"
	"github.com/tendertools/tender-autofill/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// FormatRunSummary renders the end-of-run summary box plus one line per
// problem file.
func FormatRunSummary(w io.Writer, outPath string, stats pipeline.Stats, results []pipeline.FileResult) {
	line1 := fmt.Sprintf("%s %d  %s %d",
		dimStyle.Render("Scanned:"), stats.Scanned,
		dimStyle.Render("Matched:"), stats.Matched,
	)
	line2 := fmt.Sprintf("%s %s  %s %s  %s %s",
		dimStyle.Render("Filled:"), successStyle.Render(fmt.Sprintf("%d", stats.Filled)),
		dimStyle.Render("Empty:"), warnStyle.Render(fmt.Sprintf("%d", stats.Empty)),
		dimStyle.Render("Failed:"), errorStyle.Render(fmt.Sprintf("%d", stats.Failed)),
	)
	line3 := fmt.Sprintf("%s %s", dimStyle.Render("Output:"), outPath)

	content := titleStyle.Render("Fill Complete") + "\n" + line1 + "\n" + line2 + "\n" + line3
	fmt.Fprintln(w, boxStyle.Render(content))

	for _, r := range results {
		switch r.Status {
		case constants.JobStatusFailed:
			fmt.Fprintf(w, "%s %s: %s\n", errorStyle.Render("✗"), r.SourcePath, r.Err)
		case constants.JobStatusEmpty:
			fmt.Fprintf(w, "%s %s: no text extracted\n", warnStyle.Render("•"), r.SourcePath)
		}
	}
}
