package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/parashu/slicer"
)

const defaultWidth = 100

var (
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}
)

var (
	styleHeading  = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta     = lipgloss.NewStyle().Foreground(colorDim)
	styleChecksum = lipgloss.NewStyle().Foreground(colorAccent)
)

func termWidth() int {
	if w, _, err := term.GetSize(os.Stderr.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// printCandidates lists up to maxCandidates matches so the user can pick an
// --index. Long titles are truncated to the terminal width.
func printCandidates(w io.Writer, matches []candidate) {
	width := termWidth()

	fmt.Fprintln(w, styleHeading.Render("Matching conversations:"))
	for i, c := range matches {
		if i >= maxCandidates {
			fmt.Fprintln(w, styleMeta.Render(fmt.Sprintf("  … and %d more", len(matches)-maxCandidates)))
			break
		}

		id := c.Record.ID()
		if id == "" {
			id = "(no id)"
		}
		title := c.Record.Title()
		if title == "" {
			title = "(no title)"
		}

		line := fmt.Sprintf("  [%d] source_index=%d, id=%s, title=%s, start=%s",
			i, c.Position, id, title, c.startString())
		fmt.Fprintln(w, truncateLine(line, width))
	}
}

func printExtractSummary(w io.Writer, c candidate, output string) {
	id := c.Record.ID()
	if id == "" {
		id = "(no id)"
	}
	title := c.Record.Title()
	if title == "" {
		title = "(no title)"
	}

	fmt.Fprintf(w, "%s id=%s, title=%s, start=%s\n",
		styleHeading.Render("Extracted conversation:"), id, title, c.startString())
	fmt.Fprintf(w, "%s\n", styleMeta.Render("Saved to "+output))
}

// printSliceSummary reports the run outcome, one line per slice with the
// leading checksum bytes when checksums are enabled.
func printSliceSummary(w io.Writer, artifacts []slicer.Artifact, outdir string, withChecksum, dryRun bool) {
	if dryRun {
		fmt.Fprintln(w, styleHeading.Render(fmt.Sprintf("Planned %d slices (dry run)", len(artifacts))))
	} else {
		fmt.Fprintln(w, styleHeading.Render(fmt.Sprintf("Slices written: %d -> %s", len(artifacts), outdir)))
	}

	for _, a := range artifacts {
		line := " - " + a.File
		if withChecksum {
			line += "  " + styleChecksum.Render("["+a.Checksum[:8]+"…]")
		}
		fmt.Fprintln(w, line)
	}
}

func truncateLine(s string, width int) string {
	if width <= 1 || len(s) <= width {
		return s
	}
	return s[:width-1] + "…"
}
