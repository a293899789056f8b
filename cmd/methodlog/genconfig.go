package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/methodlog/pkg/config"
	"github.com/arthur-debert/methodlog/pkg/rules"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const genConfigHeader = `# methodlog configuration
#
# Top-level fields are the global defaults; each [[rules]] entry may
# override any of them for the calls its pattern matches. Rules are
# matched in order, first match wins. Pattern shapes:
#   svc.order.*           every call in the package and subpackages
#   svc.order.Repo        every method of one type
#   svc.order.Repo.save   one method (last segment must start lowercase)
#   execution(...)        raw matcher expression, used as-is
`

var genConfigCmd = &cobra.Command{
	Use:   "gen-config",
	Short: "Print a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		cfg.BasePackage = "svc"
		cfg.Rules = []rules.Rule{
			{
				Pattern:       "svc.order.*",
				MinDurationMs: int64Ptr(100),
			},
			{
				Pattern:       "svc.pay.Gateway.charge",
				MaskSensitive: boolPtr(true),
			},
		}

		body, err := toml.Marshal(cfg)
		if err != nil {
			return err
		}

		out := genConfigHeader + "\n" + string(body)

		write, _ := cmd.Flags().GetString("write")
		if write == "" {
			fmt.Print(out)
			return nil
		}
		return os.WriteFile(write, []byte(out), 0644)
	},
}

func init() {
	genConfigCmd.Flags().StringP("write", "w", "", "Write config to the given file instead of stdout")
}

func boolPtr(b bool) *bool    { return &b }
func int64Ptr(n int64) *int64 { return &n }
