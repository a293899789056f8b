package main

import (
	"fmt"

	"github.com/arthur-debert/methodlog/pkg/config"
	"github.com/arthur-debert/methodlog/pkg/pattern"
	"github.com/arthur-debert/methodlog/pkg/registry"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <config-file>",
	Short: "Validate a config file and show the compiled rules",
	Long: `check loads the given configuration file the same way the library
does (defaults, file, then METHODLOG_* environment overrides), compiles
every pattern, and prints the resulting rule table in match-priority
order. A configuration the library would reject fails the check.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}

		reg := registry.New(cfg.Defaults(), cfg.Rules)

		status := "enabled"
		if !cfg.Enabled {
			status = "DISABLED"
		}
		pterm.Info.Printfln("Logging globally %s, %d active rule(s) (%d configured)",
			status, reg.Len(), len(cfg.Rules))

		data := pterm.TableData{
			{"#", "Pattern", "Kind", "Args", "Result", "Min ms", "Max size", "Masked"},
		}
		for i, entry := range reg.Snapshot().Entries() {
			c := entry.Config
			data = append(data, []string{
				fmt.Sprintf("%d", i+1),
				entry.Matcher.Pattern(),
				entry.Matcher.Kind().String(),
				yesNo(c.LogArguments),
				yesNo(c.LogReturnValue),
				fmt.Sprintf("%d", c.MinDurationMs),
				fmt.Sprintf("%d", c.MaxResultSize),
				yesNo(c.MaskSensitive),
			})
		}

		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}

		// Disabled rules never make it into the snapshot; surface them
		// so a silently ignored rule is visible to the operator.
		for i, rule := range cfg.Rules {
			if rule.Pattern != "" && !rule.IsEnabled() {
				pterm.Warning.Printfln("Rule %d (%s) is disabled and will be skipped", i+1, rule.Pattern)
			}
		}
		for i, rule := range cfg.Rules {
			if rule.Pattern != "" && pattern.Classify(rule.Pattern) == pattern.KindExpression {
				pterm.Info.Printfln("Rule %d uses a raw expression: %s", i+1, rule.Pattern)
			}
		}

		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
