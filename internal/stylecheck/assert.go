package stylecheck

import (
	"fmt"
	"io"
	"strings"
)

// Verdict is the aggregated result for one test
type Verdict struct {
	Pass       bool
	ErrorCount int
	Message    func() string
}

// CountErrors counts error-severity warnings across outcomes. A result flagged
// errored without any enumerated error warning still counts as one.
func CountErrors(outcomes []Outcome) int {
	count := 0
	for _, outcome := range outcomes {
		if outcome.Result == nil || !outcome.Result.Errored {
			continue
		}
		for _, result := range outcome.Result.Results {
			if !result.Errored {
				continue
			}
			errorWarnings := 0
			for _, w := range result.Warnings {
				if w.Severity == SeverityError {
					errorWarnings++
				}
			}
			if errorWarnings == 0 {
				errorWarnings = 1
			}
			count += errorWarnings
		}
	}
	return count
}

// Evaluate turns outcomes into a verdict. testPath replaces the placeholder
// tokens in the message. With failOnError false a failing message is written
// to stderr and the verdict passes anyway.
func Evaluate(outcomes []Outcome, testPath string, failOnError bool, stderr io.Writer) Verdict {
	errorCount := CountErrors(outcomes)
	if errorCount == 0 {
		return Verdict{
			Pass: true,
			Message: func() string {
				return "Expected styles not to pass lint, but no errors were found"
			},
		}
	}

	message := func() string {
		return failureMessage(outcomes, errorCount, testPath)
	}
	if !failOnError {
		if stderr != nil {
			fmt.Fprintln(stderr, message())
		}
		return Verdict{Pass: true, ErrorCount: errorCount, Message: message}
	}
	return Verdict{Pass: false, ErrorCount: errorCount, Message: message}
}

func failureMessage(outcomes []Outcome, errorCount int, testPath string) string {
	outputs := make([]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Result == nil {
			continue
		}
		output := outcome.Result.Output
		if outcome.DefaultFormatter {
			output = strings.Trim(output, "\n")
		}
		if output != "" {
			outputs = append(outputs, output)
		}
	}

	msg := fmt.Sprintf("Expected styles to pass lint, but it found %s:\n\n%s",
		pluralizeCount(errorCount, "error", "errors"),
		strings.Join(outputs, "\n\n"))

	msg = strings.ReplaceAll(msg, TestPathToken, testPath)
	return strings.ReplaceAll(msg, CodeFilename, testPath)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
