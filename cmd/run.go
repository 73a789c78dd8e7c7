package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/report"
	"github.com/abhisek/quizdeck/internal/store"
)

// runApp wires the bank, journal, and reporter together and starts the
// TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	b, err := bank.Load(cfg.BankPath)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer st.Close()

	// Every event lands in the local journal; the webhook is optional.
	sinks := report.Tee{st.Journal()}
	if cfg.WebhookURL != "" {
		sinks = append(sinks, report.NewWebhook(cfg.WebhookURL, cfg.WebhookTimeout))
	}
	dispatcher := report.NewDispatcher(sinks)
	defer dispatcher.Close()

	return app.Run(app.Options{
		Bank: b,
		Sink: dispatcher,
	})
}
