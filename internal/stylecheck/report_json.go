package stylecheck

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string         `json:"version"`
	Timestamp string         `json:"timestamp"`
	Source    string         `json:"source"`
	Summary   JSONSummary    `json:"summary"`
	Fragments []JSONFragment `json:"fragments"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	Fragments int  `json:"fragments"`
	Errors    int  `json:"errors"`
	Warnings  int  `json:"warnings"`
	Pass      bool `json:"pass"`
}

// JSONFragment is one linted fragment
type JSONFragment struct {
	Selector  string         `json:"selector,omitempty"`
	Component *ComponentMeta `json:"component,omitempty"`
	Warnings  []Warning      `json:"warnings"`
}

// WriteJSON writes outcomes as JSON. Warnings must already be filtered, which
// is the case once the linter has run the wrapped formatter.
func WriteJSON(w io.Writer, outcomes []Outcome, source string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(outcomes, source))
}

// buildJSONOutput converts outcomes to JSONOutput
func buildJSONOutput(outcomes []Outcome, source string) JSONOutput {
	errorCount := CountErrors(outcomes)

	fragments := make([]JSONFragment, 0, len(outcomes))
	warnings := 0
	for _, outcome := range outcomes {
		fragment := JSONFragment{
			Selector:  outcome.Fragment.Selector,
			Component: outcome.Component,
			Warnings:  []Warning{},
		}
		if outcome.Result != nil {
			for _, result := range outcome.Result.Results {
				for _, warning := range result.Warnings {
					if warning.Severity != SeverityError {
						warnings++
					}
					fragment.Warnings = append(fragment.Warnings, warning)
				}
			}
		}
		fragments = append(fragments, fragment)
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Source:    source,
		Summary: JSONSummary{
			Fragments: len(outcomes),
			Errors:    errorCount,
			Warnings:  warnings,
			Pass:      errorCount == 0,
		},
		Fragments: fragments,
	}
}
