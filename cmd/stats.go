package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz history from the local journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
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

		scores, err := st.Journal().ScoreEvents(cmd.Context())
		if err != nil {
			return err
		}
		if len(scores) == 0 {
			fmt.Println("No completed quizzes yet.")
			return nil
		}

		fmt.Printf("%-36s  %-24s  %7s  %9s  %6s\n", "SESSION", "WHEN", "CORRECT", "INCORRECT", "SCORE")
		for _, s := range scores {
			fmt.Printf("%-36s  %-24s  %7d  %9d  %5s%%\n",
				s.SessionID, s.Timestamp, s.CorrectCount, s.IncorrectCount, s.PercentageScore)
		}
		return nil
	},
}
