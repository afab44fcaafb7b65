package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shopkit/paytoggle/internal/cli"
	"github.com/shopkit/paytoggle/internal/client"
)

var (
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the rule set from a file",
	Long: `Import rules from a YAML or JSON file, replacing the entire persisted
rule set. The save is a full overwrite: rules absent from the file are gone
after the import.

Examples:
  paytoggle import rules.yaml --env prod
  paytoggle import rules.yaml --env staging --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var importData ExportFormat
		if err := yaml.Unmarshal(data, &importData); err != nil {
			return fmt.Errorf("failed to parse file: %w", err)
		}

		if verbose {
			fmt.Printf("Found %d rule(s) to import\n", len(importData.Rules))
		}

		// Dry run mode - just validate and show what would be imported
		if importDryRun {
			fmt.Println("Dry run mode - the rule set would be replaced with:")
			for _, row := range importData.Rules {
				fmt.Printf("  - region %s: %s %s\n", row.Region, row.Visibility, row.Method)
			}
			return nil
		}

		envCfg, _, err := cli.GetEnvConfig(env, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL, envCfg.APIKey)
		ctx := context.Background()

		result, err := c.SaveRules(ctx, importData.Rules)
		if err != nil {
			return fmt.Errorf("failed to save rules: %w", err)
		}

		if !quiet {
			fmt.Printf("Import complete: %d rule(s) saved (etag %s)\n", result.Count, result.ETag)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate without importing")
}
