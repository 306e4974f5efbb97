package stylecheck

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FormatOptions controls the diagnostic formatter
type FormatOptions struct {
	Collapse  bool // one marker line per source line instead of one per warning
	UseColors bool
}

// trailingRule matches the " (rule-name)" suffix linters append to messages
var trailingRule = regexp.MustCompile(` \([\w-]+\)$`)

// ComponentLabel names where a fragment came from. The test path is left as
// TestPathToken for the assertion to fill in.
func ComponentLabel(selector string, component *ComponentMeta) string {
	if component != nil {
		return fmt.Sprintf("%s rendered in %s with className %s and ID %s",
			component.Name, TestPathToken, component.Hash, component.ID)
	}
	if selector != "" {
		return fmt.Sprintf("Component rendered in %s with className %s",
			TestPathToken, strings.TrimPrefix(selector, "."))
	}
	return "Component rendered in " + TestPathToken
}

// NewFormatter builds the default formatter for one fragment. code is the
// source the (already remapped) warnings point into.
func NewFormatter(selector, code string, component *ComponentMeta, opts FormatOptions) Formatter {
	lines := splitLines(code)
	label := ComponentLabel(selector, component)

	return func(results []FileResult) string {
		var b strings.Builder
		for _, result := range results {
			if len(result.Warnings) == 0 {
				continue
			}
			b.WriteString(RenderStyle(StyleUnderline, label, opts.UseColors))
			b.WriteString("\n")
			writeWarnings(&b, lines, result.Warnings, opts)
		}
		return b.String()
	}
}

// writeWarnings renders the excerpts for one result, grouped by source line
func writeWarnings(b *strings.Builder, lines []string, warnings []Warning, opts FormatOptions) {
	sorted := make([]Warning, len(warnings))
	copy(sorted, warnings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].Column < sorted[j].Column
	})

	width := len(strconv.Itoa(sorted[len(sorted)-1].Line))
	gutter := strings.Repeat(" ", width)

	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) && sorted[end].Line == sorted[start].Line {
			end++
		}
		group := sorted[start:end]
		start = end

		lineNumber := group[0].Line
		source := sourceLine(lines, lineNumber)
		excerpt := RenderStyle(StyleDim, fmt.Sprintf("%*d | %s", width, lineNumber, source), opts.UseColors)

		if opts.Collapse {
			fmt.Fprintf(b, "\n%s\n", excerpt)
			b.WriteString(RenderStyle(StyleDim, gutter+"   ", opts.UseColors))
			b.WriteString(caretLine(source, group, opts.UseColors))
			b.WriteString("\n")
			for _, w := range group {
				writeMessage(b, gutter, w, opts.UseColors)
			}
			continue
		}

		for _, w := range group {
			fmt.Fprintf(b, "\n%s\n", excerpt)
			b.WriteString(RenderStyle(StyleDim, gutter+"   ", opts.UseColors))
			b.WriteString(caretLine(source, []Warning{w}, opts.UseColors))
			b.WriteString("\n")
			writeMessage(b, gutter, w, opts.UseColors)
		}
	}
}

// caretLine places one caret under each warning column. Padding keeps the
// tabs of the source line so carets line up in any tab width.
func caretLine(source string, warnings []Warning, useColors bool) string {
	size := utf8.RuneCountInString(source)
	for _, w := range warnings {
		if column(w) > size {
			size = column(w)
		}
	}

	cells := make([]string, size)
	for i := range cells {
		cells[i] = " "
	}
	i := 0
	for _, r := range source {
		if r == '\t' {
			cells[i] = "\t"
		}
		i++
	}
	last := 0
	for _, w := range warnings {
		cells[column(w)-1] = RenderStyle(StyleRed, "^", useColors)
		if column(w) > last {
			last = column(w)
		}
	}
	return strings.Join(cells[:last], "")
}

func writeMessage(b *strings.Builder, gutter string, w Warning, useColors bool) {
	b.WriteString(RenderStyle(StyleRed, gutter+" ✖ ", useColors))
	b.WriteString(trailingRule.ReplaceAllString(w.Text, ""))
	b.WriteString(RenderStyle(StyleDim, " ("+w.Rule+")", useColors))
	b.WriteString("\n")
}

// sourceLine returns the 1-based line, or "" when the warning points past the source
func sourceLine(lines []string, n int) string {
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

func column(w Warning) int {
	if w.Column < 1 {
		return 1
	}
	return w.Column
}
