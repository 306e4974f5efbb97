package stylecheck

import (
	"regexp"
	"unicode/utf8"

	"github.com/lithammer/dedent"
)

// WarningFilter decides whether a warning survives and may adjust its
// coordinates in place. A nil filter keeps everything unchanged.
type WarningFilter func(w *Warning) bool

// Normalized is a fragment prepared for linting
type Normalized struct {
	Text   string        // what the linter sees
	Source string        // what diagnostics point into (Text without the synthetic wrapper)
	Filter WarningFilter // undoes the wrapper; nil when nothing was wrapped
}

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// splitLines splits on any line terminator
func splitLines(s string) []string {
	return lineBreak.Split(s, -1)
}

// StripIndent removes the indentation common to every non-blank line, so CSS
// written inside an indented template literal reads as if it started at column 1.
// Whitespace-only lines are blanked.
func StripIndent(css string) string {
	return dedent.Dedent(css)
}

// Normalize makes a fragment independently lintable. Fragments without a
// selector are passed through untouched. Fragments with a selector are wrapped
// as "selector { css }" and paired with a filter that maps warnings back onto
// the unwrapped text.
func Normalize(selector, css string, stripIndent bool) Normalized {
	if selector == "" {
		return Normalized{Text: css, Source: css}
	}

	source := css
	if stripIndent {
		source = StripIndent(css)
	}

	prefix := selector + " { "
	text := prefix + source + " }"

	prefixLen := utf8.RuneCountInString(prefix)
	lines := splitLines(text)
	lastLine := len(lines)
	lastColumn := utf8.RuneCountInString(lines[lastLine-1])

	// Columns past the source's last line point into the synthetic " }".
	sourceLines := splitLines(source)
	lastSourceColumn := utf8.RuneCountInString(sourceLines[len(sourceLines)-1])
	if lastSourceColumn < 1 {
		lastSourceColumn = 1
	}

	clampLast := func(w *Warning) {
		if w.Line == lastLine && w.Column > lastSourceColumn {
			w.Column = lastSourceColumn
		}
	}

	filter := func(w *Warning) bool {
		// The closing brace is ours, and so is any complaint about the space before it.
		if w.Line == lastLine && w.Column == lastColumn && w.Rule == RuleClosingBraceSpaceBefore {
			return false
		}
		if w.Line != 1 {
			clampLast(w)
			return true
		}
		// Inside "selector {".
		if w.Column < prefixLen {
			return false
		}
		if w.Column == prefixLen && w.Rule == RuleOpeningBraceSpaceAfter {
			return false
		}
		w.Column -= prefixLen
		if w.Column < 1 {
			w.Column = 1
		}
		clampLast(w)
		return true
	}

	return Normalized{Text: text, Source: source, Filter: filter}
}

// WrapFormatter pre-filters results before handing them to formatter, and
// recomputes each result's Errored flag from the warnings that survive.
func WrapFormatter(formatter Formatter, filter WarningFilter) Formatter {
	if filter == nil {
		return formatter
	}
	return func(results []FileResult) string {
		for i := range results {
			kept := make([]Warning, 0, len(results[i].Warnings))
			errored := false
			for _, w := range results[i].Warnings {
				if !filter(&w) {
					continue
				}
				if w.Severity == SeverityError {
					errored = true
				}
				kept = append(kept, w)
			}
			results[i].Warnings = kept
			results[i].Errored = errored
		}
		if formatter == nil {
			return ""
		}
		return formatter(results)
	}
}
