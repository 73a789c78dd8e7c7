package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/bank"
)

var checkCmd = &cobra.Command{
	Use:   "check [bank.json]",
	Short: "Validate a question bank file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path = cfg.BankPath
		}

		b, err := bank.Load(path)
		if err != nil {
			return err
		}

		followUps := 0
		for _, sec := range b.Sections() {
			for _, q := range b.ForSection(sec.Tag) {
				if q.FollowUp != nil {
					followUps++
				}
			}
		}
		fmt.Printf("%s: OK: %d questions, %d sections, %d follow-ups\n",
			path, b.Len(), len(b.Sections()), followUps)
		return nil
	},
}
