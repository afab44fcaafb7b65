package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopkit/paytoggle/internal/cli"
	"github.com/shopkit/paytoggle/internal/client"
	"github.com/shopkit/paytoggle/internal/rules"
)

var (
	deleteMethod string
	deleteForce  bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <region>",
	Short: "Delete rules for a region",
	Long: `Delete all rules for the given region, or only the rule for one
payment method when --method is set. The command fetches the current rule
set, drops the matching rows, and writes the remainder back.

Examples:
  paytoggle delete TX --env prod
  paytoggle delete TX --method cod --env prod
  paytoggle delete TX --env prod --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		region := args[0]

		envCfg, _, err := cli.GetEnvConfig(env, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// Confirm deletion unless --force
		if !deleteForce && !quiet {
			target := fmt.Sprintf("all rules for region '%s'", region)
			if deleteMethod != "" {
				target = fmt.Sprintf("the rule for region '%s', method '%s'", region, deleteMethod)
			}
			fmt.Printf("Are you sure you want to delete %s? (y/N): ", target)
			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			response = strings.ToLower(strings.TrimSpace(response))
			if response != "y" && response != "yes" {
				fmt.Println("Deletion cancelled")
				return nil
			}
		}

		c := client.NewClient(envCfg.BaseURL, envCfg.APIKey)
		ctx := context.Background()

		rs, _, err := c.ListRules(ctx)
		if err != nil {
			return fmt.Errorf("failed to list rules: %w", err)
		}

		want := rules.NormalizeRegion(region)
		rows := make([]rules.Row, 0, len(rs))
		removed := 0
		for _, rule := range rs {
			if rules.NormalizeRegion(rule.Region) == want && (deleteMethod == "" || rule.Method == deleteMethod) {
				removed++
				continue
			}
			rows = append(rows, rules.Row{
				Region:     rule.Region,
				Method:     rule.Method,
				Visibility: string(rule.Visibility),
			})
		}

		if removed == 0 {
			return fmt.Errorf("no matching rules for region '%s'", region)
		}

		result, err := c.SaveRules(ctx, rows)
		if err != nil {
			return fmt.Errorf("failed to save rules: %w", err)
		}

		if !quiet {
			fmt.Printf("Deleted %d rule(s); %d rule(s) remain\n", removed, result.Count)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteMethod, "method", "", "Delete only the rule for this payment method")
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Skip confirmation prompt")
}
