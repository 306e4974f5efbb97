// Package stylecheck implements the capture, normalize, lint and aggregate pipeline
// that turns CSS emitted by a styling engine during a test into a test verdict.
package stylecheck

import "context"

// Placeholder tokens substituted by the assertion before output reaches the user.
const (
	// CodeFilename is the filename label handed to the linter for every fragment.
	CodeFilename = "__COMPONENT_PATH__"
	// TestPathToken marks where the relative test file path goes in formatter output.
	TestPathToken = "__TEST_PATH__"
)

// Rule names the normalizer knows to be artifacts of wrapping a fragment.
const (
	RuleOpeningBraceSpaceAfter  = "block-opening-brace-space-after"
	RuleClosingBraceSpaceBefore = "block-closing-brace-space-before"
)

// Severity of a lint warning
type Severity string

// Severity constants
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Fragment is one unit of generated CSS plus the selector it was generated for.
// Selector is empty for global style blocks.
type Fragment struct {
	Selector string
	CSS      string
}

// ComponentMeta describes the component that produced a selector
type ComponentMeta struct {
	ID       string `json:"id"`                  // "Kx9__Title-bcCCNc"
	Name     string `json:"name"`                // "Title"
	FileHash string `json:"file_hash,omitempty"` // "Kx9", empty when declared without a file
	Hash     string `json:"hash"`                // class hash without the leading dot
}

// Warning is a single diagnostic reported by a linter
type Warning struct {
	Line     int      `json:"line"`     // 1-based
	Column   int      `json:"column"`   // 1-based, in runes
	Severity Severity `json:"severity"` // "error", "warning"
	Text     string   `json:"text"`     // message, usually ending with " (rule-name)"
	Rule     string   `json:"rule"`
}

// FileResult holds the warnings for one linted source
type FileResult struct {
	Source   string
	Errored  bool
	Warnings []Warning
}

// Result is what a linter returns for one invocation.
// Errored is computed by the linter before any formatter runs.
type Result struct {
	Errored bool
	Results []FileResult
	Output  string // formatter output
}

// Formatter renders lint results to text. Formatters may rewrite the results in
// place, so linters must hand over Result.Results itself rather than a copy.
type Formatter func(results []FileResult) string

// LintOptions is the per-fragment linter invocation
type LintOptions struct {
	Code         string
	CodeFilename string
	Syntax       string
	Formatter    Formatter
	Extra        map[string]any // forwarded verbatim from configuration
}

// Linter is the external lint engine.
// A returned error means the engine itself failed, not that the code has violations.
type Linter interface {
	Lint(ctx context.Context, opts LintOptions) (*Result, error)
}

// LinterFunc adapts a function to the Linter interface
type LinterFunc func(ctx context.Context, opts LintOptions) (*Result, error)

// Lint calls f(ctx, opts)
func (f LinterFunc) Lint(ctx context.Context, opts LintOptions) (*Result, error) {
	return f(ctx, opts)
}

// Outcome is the lint result of one fragment together with where it came from
type Outcome struct {
	Fragment         Fragment
	Component        *ComponentMeta // nil when unresolved
	Result           *Result
	Options          LintOptions
	DefaultFormatter bool // Options.Formatter wraps the built-in diagnostic formatter
}
