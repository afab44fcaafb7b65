package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/shopkit/paytoggle/internal/rules"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// PrintRules outputs a rule set in the specified format
func PrintRules(rs rules.RuleSet, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(rs)
	case FormatYAML:
		return printYAML(rs)
	case FormatTable:
		return printTable(rs)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintRule outputs a single rule in the specified format
func PrintRule(rule rules.Rule, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(rule)
	case FormatYAML:
		return printYAML(rule)
	case FormatTable:
		return printTable(rules.RuleSet{rule})
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	// Wrap rule sets in a "rules" key for consistency with the API responses
	if rs, ok := data.(rules.RuleSet); ok {
		return encoder.Encode(map[string]rules.RuleSet{"rules": rs})
	}
	return encoder.Encode(data)
}

func printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printTable(rs rules.RuleSet) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.Header("#", "Region", "Payment Method", "Visibility")

	for i, rule := range rs {
		method := rule.Method
		if method == "" {
			method = "-"
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			rule.Region,
			method,
			string(rule.Visibility),
		)
	}

	return table.Render()
}
