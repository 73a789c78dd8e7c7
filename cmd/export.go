package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/quizdeck/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <output.xlsx>",
	Short: "Export the local event journal to an Excel workbook",
	Args:  cobra.ExactArgs(1),
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

		journal := st.Journal()
		questions, err := journal.QuestionEvents(cmd.Context())
		if err != nil {
			return err
		}
		scores, err := journal.ScoreEvents(cmd.Context())
		if err != nil {
			return err
		}

		f := excelize.NewFile()
		defer f.Close()

		const qSheet = "Questions"
		f.SetSheetName("Sheet1", qSheet)
		qHeader := []any{"Session", "Email", "Question #", "Question ID", "Question",
			"Used Hint", "Answer Given", "Correct", "Time Spent", "Feedback", "Follow-up Answer", "Timestamp"}
		if err := f.SetSheetRow(qSheet, "A1", &qHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for i, q := range questions {
			row := []any{q.SessionID, q.Email, q.QuestionNumber, q.QuestionID, q.QuestionText,
				q.UsedHint, q.AnswerGiven, q.Correct, q.TimeSpent, q.FeedbackShown, q.FollowupAnswer, q.Timestamp}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(qSheet, cell, &row); err != nil {
				return fmt.Errorf("write row %d: %w", i+2, err)
			}
		}

		const sSheet = "Scores"
		if _, err := f.NewSheet(sSheet); err != nil {
			return fmt.Errorf("create scores sheet: %w", err)
		}
		sHeader := []any{"Session", "Email", "Total", "Correct", "Incorrect", "Score %", "Timestamp"}
		if err := f.SetSheetRow(sSheet, "A1", &sHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for i, s := range scores {
			row := []any{s.SessionID, s.Email, s.TotalQuestions, s.CorrectCount,
				s.IncorrectCount, s.PercentageScore, s.Timestamp}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(sSheet, cell, &row); err != nil {
				return fmt.Errorf("write row %d: %w", i+2, err)
			}
		}

		if err := f.SaveAs(args[0]); err != nil {
			return fmt.Errorf("save workbook: %w", err)
		}
		fmt.Printf("Exported %d question events and %d scores to %s\n",
			len(questions), len(scores), args[0])
		return nil
	},
}
