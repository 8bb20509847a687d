// Root command for the cairn CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cairn/internal/paths"
	"github.com/mesh-intelligence/cairn/pkg/types"
)

// Global flag values.
var (
	flagPath string
	flagJSON bool
)

// Values loaded from config.yaml by PersistentPreRunE, available to
// all subcommands.
var (
	cfgEncoding  string
	cfgRetention types.Retention
)

var rootCmd = &cobra.Command{
	Use:   "cairn",
	Short: "Cairn tracks the state of long-running agent projects",
	Long: `Cairn persists a project's tasks, phase, and session in a state
document under a project directory, and provides validation and
checkpointing over it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(dir)
		if err != nil {
			return err
		}

		cfgEncoding = cfg.GetString(cfgKeyEncoding)
		cfgRetention = types.Retention{
			KeepLast:       cfg.GetInt(cfgKeyKeepLast),
			KeepMilestones: cfg.GetBool(cfgKeyKeepMilestones),
			MaxAgeDays:     cfg.GetInt(cfgKeyMaxAgeDays),
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", "", "project directory (default: $(CWD)/.cairn)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkpointCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(reportCmd)
}

// resolveDir returns the project directory following the precedence
// chain: --path flag > CAIRN_DIR env > $(CWD)/.cairn.
func resolveDir() (string, error) {
	return paths.ResolveDir(flagPath)
}
