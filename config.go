package stylecheck

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
)

// Config holds suite-wide settings. Start from DefaultConfig; the zero value
// disables failing on errors and indentation stripping.
type Config struct {
	FailOnError bool   // a lint error fails the test; otherwise it is printed to Stderr
	StripIndent bool   // remove common indentation before wrapping a fragment
	Syntax      string // passed to the linter, e.g. "scss"
	Collapse    bool   // one caret line per source line instead of one per warning
	UseColors   bool   // render diagnostics with lipgloss styles

	// Extra is forwarded verbatim to every linter invocation. The built-in
	// linter reads rule severities from Extra["rules"].
	Extra map[string]any

	Formatter Formatter // nil selects the diagnostic formatter
	Linter    Linter    // nil selects the built-in linter
	Resolver  Resolver  // nil resolves nothing

	Stderr io.Writer   // non-fatal reports; nil means os.Stderr
	Logger *zap.Logger // nil discards debug events
}

// DefaultConfig returns the default settings
func DefaultConfig() Config {
	return Config{
		FailOnError: true,
		StripIndent: true,
		Syntax:      "scss",
		Collapse:    true,
		Stderr:      os.Stderr,
	}
}

// ConfigFromMap builds a Config from loosely typed options, as decoded from a
// YAML file. Known keys are consumed, codeFilename and formatter are ignored
// because both are fixed by the suite, and everything else lands in Extra.
func ConfigFromMap(options map[string]any) (Config, error) {
	cfg := DefaultConfig()

	for key, value := range options {
		var err error
		switch key {
		case "failOnError", "fail-on-error":
			err = setBool(&cfg.FailOnError, key, value)
		case "stripIndent", "strip-indent":
			err = setBool(&cfg.StripIndent, key, value)
		case "collapse":
			err = setBool(&cfg.Collapse, key, value)
		case "color":
			err = setBool(&cfg.UseColors, key, value)
		case "syntax":
			s, ok := value.(string)
			if !ok {
				err = fmt.Errorf("option %q: expected string, got %T", key, value)
			}
			cfg.Syntax = s
		case "codeFilename", "formatter":
		default:
			if cfg.Extra == nil {
				cfg.Extra = make(map[string]any)
			}
			cfg.Extra[key] = value
		}
		if err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// setBool accepts a bool or its string form, as environment variables only
// carry strings.
func setBool(dst *bool, key string, value any) error {
	switch v := value.(type) {
	case bool:
		*dst = v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("option %q: %w", key, err)
		}
		*dst = b
	default:
		return fmt.Errorf("option %q: expected bool, got %T", key, value)
	}
	return nil
}
