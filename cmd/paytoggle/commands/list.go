package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopkit/paytoggle/internal/cli"
	"github.com/shopkit/paytoggle/internal/client"
	"github.com/shopkit/paytoggle/internal/rules"
)

var (
	listRegion   string
	listHideOnly bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the payment visibility rules",
	Long: `List the rule set currently persisted by the service.

Examples:
  paytoggle list --env prod
  paytoggle list --env prod --format json
  paytoggle list --env prod --region TX
  paytoggle list --env prod --hide-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		envCfg, _, err := cli.GetEnvConfig(env, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL, envCfg.APIKey)

		ctx := context.Background()
		rs, etag, err := c.ListRules(ctx)
		if err != nil {
			return fmt.Errorf("failed to list rules: %w", err)
		}

		if listRegion != "" {
			want := rules.NormalizeRegion(listRegion)
			var filtered rules.RuleSet
			for _, rule := range rs {
				if rules.NormalizeRegion(rule.Region) == want {
					filtered = append(filtered, rule)
				}
			}
			rs = filtered
		}
		if listHideOnly {
			var hidden rules.RuleSet
			for _, rule := range rs {
				if rule.Visibility == rules.Hide {
					hidden = append(hidden, rule)
				}
			}
			rs = hidden
		}

		if !quiet {
			if len(rs) == 0 {
				fmt.Println("No rules found")
				return nil
			}
			if verbose {
				fmt.Printf("ETag: %s\n", etag)
			}
			return cli.PrintRules(rs, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listRegion, "region", "", "Show only rules for this region")
	listCmd.Flags().BoolVar(&listHideOnly, "hide-only", false, "Show only hide rules")
}
