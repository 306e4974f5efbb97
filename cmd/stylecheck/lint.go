package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/stylecheck"
	core "github.com/yacobolo/stylecheck/internal/stylecheck"
)

// errLintFailed signals a failing run whose report has already been written
var errLintFailed = errors.New("lint failed")

var lintCmd = &cobra.Command{
	Use:   "lint [patterns...]",
	Short: "Lint CSS files",
	Long: `Lint every file matched by the glob patterns as one fragment.
Patterns given as arguments replace --paths. Files excluded by .gitignore are skipped.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runLint,
}

func init() {
	f := lintCmd.Flags()
	f.StringSlice("paths", []string{"**/*.css"}, "File patterns to lint")
	f.String("selector", "", "Wrap each file in this selector before linting")
	f.Bool("fail-on-error", true, "Exit 1 when a file has lint errors")
	f.Bool("strip-indent", true, "Strip common indentation from wrapped files")
	f.String("syntax", "scss", "Syntax passed to the linter: scss|css")
	f.Bool("collapse", true, "Show one caret line per source line")
	f.String("output-format", outputText, "Output format: text|json")
}

// runLint is shared between `stylecheck lint` and the bare root command
func runLint(cmd *cobra.Command, args []string) error {
	settings, err := buildLintConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		settings.Paths = args
	}

	logger := newLogger(settings.Verbose)
	defer func() { _ = logger.Sync() }()

	out, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if settings.Quiet {
		out, stderr = io.Discard, io.Discard
	}

	config := settings.Config
	config.Logger = logger
	config.Stderr = stderr
	suite := stylecheck.Configure(config)

	files, err := expandGlobPatterns(settings.Paths)
	if err != nil {
		return fmt.Errorf("expanding paths: %w", err)
	}
	logger.Debug("expanded lint paths",
		zap.Strings("patterns", settings.Paths),
		zap.Int("files", len(files)))

	failed, errorCount := 0, 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		fragment := stylecheck.Fragment{Selector: settings.Selector, CSS: string(data)}
		outcomes, err := suite.Lint(cmd.Context(), []stylecheck.Fragment{fragment})
		if err != nil {
			return fmt.Errorf("linting %s: %w", path, err)
		}

		if settings.OutputFormat == outputJSON {
			if err := core.WriteJSON(out, outcomes, path); err != nil {
				return fmt.Errorf("writing JSON: %w", err)
			}
			count := core.CountErrors(outcomes)
			errorCount += count
			if count > 0 && config.FailOnError {
				failed++
			}
			continue
		}

		verdict := core.Evaluate(outcomes, path, config.FailOnError, stderr)
		errorCount += verdict.ErrorCount
		if !verdict.Pass {
			failed++
			fmt.Fprintf(out, "%s\n\n", verdict.Message())
		}
	}

	if settings.OutputFormat == outputText {
		fmt.Fprintf(out, "%s linted, %s\n",
			plural(len(files), "file", "files"),
			plural(errorCount, "error", "errors"))
	}

	if failed > 0 {
		return errLintFailed
	}
	return nil
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
