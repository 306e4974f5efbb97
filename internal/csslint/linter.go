// Package csslint is a small CSS/SCSS lint engine built on the tdewolff CSS lexer.
//
// It implements the stylecheck.Linter contract so the test harness can lint
// generated styles without an external process. Rules follow stylelint's names
// and message style, e.g.
//
//	Unexpected unknown property "test-decoration" (property-no-unknown)
package csslint

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/stylecheck/internal/stylecheck"
)

// Rule names
const (
	RuleSyntax                  = "CssSyntaxError"
	RulePropertyNoUnknown       = "property-no-unknown"
	RuleValueNoUnknown          = "declaration-property-value-no-unknown"
	RuleUnitNoUnknown           = "unit-no-unknown"
	RuleColorNoInvalidHex       = "color-no-invalid-hex"
	RuleNoDuplicateProperties   = "declaration-block-no-duplicate-properties"
	RuleOpeningBraceSpaceAfter  = stylecheck.RuleOpeningBraceSpaceAfter
	RuleClosingBraceSpaceBefore = stylecheck.RuleClosingBraceSpaceBefore
)

// Rule severities
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityOff     = "off"
)

// Supported syntaxes
const (
	SyntaxCSS  = "css"
	SyntaxSCSS = "scss"
)

// Rules maps a rule name to its severity ("error", "warning" or "off")
type Rules map[string]string

// DefaultRules returns the built-in rule configuration
func DefaultRules() Rules {
	return Rules{
		RulePropertyNoUnknown:       SeverityError,
		RuleValueNoUnknown:          SeverityError,
		RuleUnitNoUnknown:           SeverityError,
		RuleColorNoInvalidHex:       SeverityError,
		RuleNoDuplicateProperties:   SeverityWarning,
		RuleOpeningBraceSpaceAfter:  SeverityError,
		RuleClosingBraceSpaceBefore: SeverityError,
	}
}

// Merge returns a copy of r overridden by raw, which may be a Rules,
// map[string]string or map[string]any (as decoded from YAML).
func (r Rules) Merge(raw any) (Rules, error) {
	merged := make(Rules, len(r))
	for name, severity := range r {
		merged[name] = severity
	}

	set := func(name string, value any) error {
		severity, ok := value.(string)
		if !ok {
			return fmt.Errorf("rule %q: severity must be a string, got %T", name, value)
		}
		switch severity {
		case SeverityError, SeverityWarning, SeverityOff:
			merged[name] = severity
			return nil
		default:
			return fmt.Errorf("rule %q: unknown severity %q", name, severity)
		}
	}

	switch v := raw.(type) {
	case nil:
	case Rules:
		for name, severity := range v {
			if err := set(name, severity); err != nil {
				return nil, err
			}
		}
	case map[string]string:
		for name, severity := range v {
			if err := set(name, severity); err != nil {
				return nil, err
			}
		}
	case map[string]any:
		for name, severity := range v {
			if err := set(name, severity); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("rules: unsupported type %T", raw)
	}
	return merged, nil
}

// Linter lints CSS source text
type Linter struct {
	log   *zap.Logger
	rules Rules
}

// New creates a linter. A nil rules map selects DefaultRules.
func New(log *zap.Logger, rules Rules) *Linter {
	if log == nil {
		log = zap.NewNop()
	}
	if rules == nil {
		rules = DefaultRules()
	}
	return &Linter{log: log, rules: rules}
}

// Lint checks opts.Code. opts.Extra["rules"] overrides rule severities for
// this invocation. Violations are reported in the result; an error means the
// options could not be honoured.
func (l *Linter) Lint(ctx context.Context, opts stylecheck.LintOptions) (*stylecheck.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	syntax := opts.Syntax
	if syntax == "" {
		syntax = SyntaxCSS
	}
	if syntax != SyntaxCSS && syntax != SyntaxSCSS {
		return nil, fmt.Errorf("unsupported syntax %q", syntax)
	}

	rules, err := l.rules.Merge(opts.Extra["rules"])
	if err != nil {
		return nil, fmt.Errorf("invalid rule configuration: %w", err)
	}

	warnings := Check(opts.Code, syntax == SyntaxSCSS, rules)
	l.log.Debug("linted source",
		zap.String("source", opts.CodeFilename),
		zap.String("syntax", syntax),
		zap.Int("warnings", len(warnings)))

	errored := false
	for _, w := range warnings {
		if w.Severity == stylecheck.SeverityError {
			errored = true
			break
		}
	}

	result := &stylecheck.Result{
		Errored: errored,
		Results: []stylecheck.FileResult{{
			Source:   opts.CodeFilename,
			Errored:  errored,
			Warnings: warnings,
		}},
	}

	formatter := opts.Formatter
	if formatter == nil {
		formatter = StringFormatter
	}
	result.Output = formatter(result.Results)
	return result, nil
}

// StringFormatter renders one "source:line:col: text" line per warning
func StringFormatter(results []stylecheck.FileResult) string {
	var b strings.Builder
	for _, result := range results {
		warnings := make([]stylecheck.Warning, len(result.Warnings))
		copy(warnings, result.Warnings)
		sort.SliceStable(warnings, func(i, j int) bool {
			if warnings[i].Line != warnings[j].Line {
				return warnings[i].Line < warnings[j].Line
			}
			return warnings[i].Column < warnings[j].Column
		})
		for _, w := range warnings {
			fmt.Fprintf(&b, "%s:%d:%d: %s [%s]\n", result.Source, w.Line, w.Column, w.Text, w.Severity)
		}
	}
	return b.String()
}
