package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/bank"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the question bank's sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b, err := bank.Load(cfg.BankPath)
		if err != nil {
			return err
		}

		for _, sec := range b.Sections() {
			fmt.Printf("%-40s %d questions\n", sec.Tag, sec.Count)
		}
		return nil
	},
}
