package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopkit/paytoggle/internal/cli"
	"github.com/shopkit/paytoggle/internal/client"
)

var queryCmd = &cobra.Command{
	Use:   "query <state>",
	Short: "Look up the rule that applies to a shipping state",
	Long: `Query the storefront lookup endpoint for the first rule matching the
given state. Matching ignores case and surrounding whitespace.

Examples:
  paytoggle query TX --env prod
  paytoggle query " tx " --env prod --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state := args[0]

		envCfg, _, err := cli.GetEnvConfig(env, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL, envCfg.APIKey)

		ctx := context.Background()
		rule, err := c.QueryState(ctx, state)
		if err != nil {
			return fmt.Errorf("failed to query state: %w", err)
		}

		if rule == nil {
			if !quiet {
				fmt.Printf("No rule matches state %q\n", state)
			}
			return nil
		}

		if !quiet {
			return cli.PrintRule(*rule, cli.OutputFormat(format))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
