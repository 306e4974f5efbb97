package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const configFileName = ".stylecheck.yaml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .stylecheck.yaml config file",
	Long:  `Create a .stylecheck.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(configFileName); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
		}

		if err := os.WriteFile(configFileName, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
		return nil
	},
}

const defaultConfig = `# stylecheck configuration

# Shared settings
verbose: false
color: false

# Linting settings
lint:
  paths:
    - "**/*.css"
  selector: ""          # wrap each file in this selector, e.g. ".component"
  fail-on-error: true   # false prints failures and exits 0
  strip-indent: true
  syntax: scss          # scss | css
  collapse: true        # one caret line per source line
  output-format: text   # text | json

  # Rule severities: error | warning | off
  rules:
    property-no-unknown: error
    unit-no-unknown: error
    color-no-invalid-hex: error
    declaration-block-no-duplicate-properties: warning
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
