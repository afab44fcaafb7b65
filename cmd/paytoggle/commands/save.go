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
	saveVisibility string
)

var saveCmd = &cobra.Command{
	Use:   "save <region> <method>",
	Short: "Add or update a single rule",
	Long: `Add a rule for the given region and payment method, or update its
visibility if one already exists. The command fetches the current rule set,
modifies the matching row, and writes the whole set back.

Examples:
  paytoggle save TX cod --visibility hide --env prod
  paytoggle save CA bacs --visibility show --env prod`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		region := args[0]
		method := args[1]

		envCfg, _, err := cli.GetEnvConfig(env, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL, envCfg.APIKey)
		ctx := context.Background()

		rs, _, err := c.ListRules(ctx)
		if err != nil {
			return fmt.Errorf("failed to list rules: %w", err)
		}

		vis := rules.ParseVisibility(saveVisibility)
		updated := false
		rows := make([]rules.Row, 0, len(rs)+1)
		for _, rule := range rs {
			if rules.NormalizeRegion(rule.Region) == rules.NormalizeRegion(region) && rule.Method == method {
				rule.Visibility = vis
				updated = true
			}
			rows = append(rows, rules.Row{
				Region:     rule.Region,
				Method:     rule.Method,
				Visibility: string(rule.Visibility),
			})
		}
		if !updated {
			rows = append(rows, rules.Row{
				Region:     region,
				Method:     method,
				Visibility: string(vis),
			})
		}

		result, err := c.SaveRules(ctx, rows)
		if err != nil {
			return fmt.Errorf("failed to save rules: %w", err)
		}

		if !quiet {
			verb := "Added"
			if updated {
				verb = "Updated"
			}
			fmt.Printf("%s rule: region %s, method %s, visibility %s (%d rule(s) total)\n",
				verb, region, method, vis, result.Count)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)

	saveCmd.Flags().StringVar(&saveVisibility, "visibility", "hide", "Visibility for the rule (show, hide)")
}
