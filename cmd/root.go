package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Terminal quiz runner",
	Long: "QuizDeck: walk through a sectioned multiple-choice question bank in the\n" +
		"terminal, with hints, follow-up questions, and remote answer logging.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides QUIZDECK_CONFIG)")
	rootCmd.PersistentFlags().String("bank", "", "Path to question bank JSON (overrides config)")
	rootCmd.PersistentFlags().String("db", "", "Path to journal database (overrides QUIZDECK_DB)")
	rootCmd.PersistentFlags().String("webhook", "", "Remote logging endpoint URL (overrides config)")

	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the effective configuration from file, env, and
// flags (highest priority).
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.BankPath = p
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if u, _ := cmd.Flags().GetString("webhook"); u != "" {
		cfg.WebhookURL = u
	}
	return cfg, nil
}

// resolveDBPath returns the journal path from config or the default
// location.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
