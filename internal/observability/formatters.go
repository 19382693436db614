package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/seed"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/suggestions"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of the completeness bar
	barWidth = 20
)

// Printer writes boxed summaries for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// bar draws a proportional bar for points out of total
func bar(points, total int) string {
	filled := 0
	if total > 0 {
		filled = points * barWidth / total
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintScore outputs the completeness checklist of a resume and its total.
func (p *Printer) PrintScore(r *resume.Resume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	total := resume.Score(r)
	sb.WriteString(fmt.Sprintf("Completeness: %d%%\n", total))
	sb.WriteString(fmt.Sprintf("[%s]\n\n", bar(total, resume.MaxScore)))

	for _, item := range resume.Breakdown(r) {
		mark := "✓"
		if item.Points == 0 {
			mark = "✗"
		} else if item.Points < item.Max {
			mark = "~"
		}
		sb.WriteString(fmt.Sprintf("%s %-16s %2d/%d\n", mark, item.Category, item.Points, item.Max))
	}

	p.printBox("RESUME COMPLETENESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs writing advice grouped by section.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSuggestions(s suggestions.Suggestions) {
	if s.Count() == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO SUGGESTIONS", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	groups := []struct {
		name  string
		items []suggestions.Suggestion
	}{
		{"Summary", s.Summary},
		{"Experience", s.Experience},
		{"Skills", s.Skills},
		{"General", s.General},
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d suggestions:\n", s.Count()))
	for _, g := range groups {
		if len(g.items) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", g.name))
		count := min(len(g.items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %s %s\n", suggestionIcon(g.items[i].Type), g.items[i].Message))
		}
		if len(g.items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(g.items)-maxItemsToShow))
		}
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

func suggestionIcon(kind string) string {
	switch kind {
	case suggestions.TypeWarning:
		return "⚠"
	case suggestions.TypeImprovement:
		return "↑"
	case suggestions.TypeInfo:
		return "ℹ"
	default:
		return "•"
	}
}

// PrintKeywords outputs suggested keywords for a role.
func (p *Printer) PrintKeywords(role string, keywords []string) {
	var sb strings.Builder
	if role != "" {
		sb.WriteString(fmt.Sprintf("Role: %s\n\n", role))
	}
	for _, k := range keywords {
		sb.WriteString(fmt.Sprintf("  • %s\n", k))
	}
	p.printBox("KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSeedResult outputs what a seed run created.
func (p *Printer) PrintSeedResult(res *seed.Result) {
	if res == nil {
		return
	}

	admin := "already present or skipped"
	if res.AdminCreated {
		admin = "created"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Admin account:     %s\n", admin))
	sb.WriteString(fmt.Sprintf("Templates created: %d\n", res.TemplatesCreated))
	sb.WriteString(fmt.Sprintf("Templates skipped: %d", res.TemplatesSkipped))

	p.printBox("SEED", sb.String())
}
