package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/stylecheck"
)

var k = koanf.New(".")

// Output formats
const (
	outputText = "text"
	outputJSON = "json"
)

// cliOnlyKeys are lint settings the CLI consumes itself. Everything else in
// the lint section is library configuration.
var cliOnlyKeys = []string{"paths", "selector", "output-format"}

// lintSettings is the resolved configuration of one lint run
type lintSettings struct {
	Paths        []string
	Selector     string
	OutputFormat string
	Verbose      bool
	Quiet        bool
	Config       stylecheck.Config
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = configFileName
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence). Unchanged flags are skipped so their
	// defaults never shadow the file or the environment.
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (STYLECHECK_* prefix)
	if err := k.Load(env.Provider("STYLECHECK_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	STYLECHECK_LINT_FAIL_ON_ERROR -> lint.fail-on-error
//	STYLECHECK_VERBOSE            -> verbose
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "STYLECHECK_"))
	if rest, ok := strings.CutPrefix(key, "lint_"); ok {
		return "lint." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildLintConfig constructs the lint settings from koanf state
func buildLintConfig() (lintSettings, error) {
	options := k.Cut("lint").Raw()
	for _, key := range cliOnlyKeys {
		delete(options, key)
	}

	config, err := stylecheck.ConfigFromMap(options)
	if err != nil {
		return lintSettings{}, fmt.Errorf("lint config: %w", err)
	}

	// Flags are stored under their own names and win over the lint section
	config.FailOnError = getBoolWithFallback("fail-on-error", "lint.fail-on-error", config.FailOnError)
	config.StripIndent = getBoolWithFallback("strip-indent", "lint.strip-indent", config.StripIndent)
	config.Collapse = getBoolWithFallback("collapse", "lint.collapse", config.Collapse)
	config.Syntax = getStringWithFallback("syntax", "lint.syntax", config.Syntax)
	config.UseColors = getBoolWithFallback("color", "lint.color", config.UseColors)

	settings := lintSettings{
		Selector:     getStringWithFallback("selector", "lint.selector", ""),
		OutputFormat: getStringWithFallback("output-format", "lint.output-format", outputText),
		Verbose:      getBoolWithFallback("verbose", "verbose", false),
		Quiet:        getBoolWithFallback("quiet", "quiet", false),
		Config:       config,
	}

	// Handle paths: check flag key first, then config key
	if paths := k.Strings("paths"); len(paths) > 0 {
		settings.Paths = paths
	} else if paths := k.Strings("lint.paths"); len(paths) > 0 {
		settings.Paths = paths
	} else {
		settings.Paths = []string{"**/*.css"}
	}

	switch settings.OutputFormat {
	case outputText, outputJSON:
	default:
		return lintSettings{}, fmt.Errorf("unsupported output format %q (use text or json)", settings.OutputFormat)
	}

	return settings, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
