package quizplay

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	q := s.sess.CurrentQuestion()

	var b strings.Builder

	// Progress line.
	b.WriteString(theme.Dim.Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("Question %d of %d · %s", s.sess.Current+1, len(s.sess.Questions), s.sess.Section)))
	b.WriteString("\n\n")

	// Prompt.
	b.WriteString(theme.Body.Bold(true).Width(width).Align(lipgloss.Center).
		Render(q.Question.Question))
	b.WriteString("\n\n")

	// Options.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View()))

	// Hint box (only while the current entry requested it).
	if s.hintText != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("Hint: " + s.hintText))
		b.WriteString("\n")
	}

	// Frozen feedback for a committed question.
	if q.Committed() {
		b.WriteString("\n")
		style := theme.Incorrect
		if q.WasCorrect {
			style = theme.Correct
		}
		b.WriteString(style.Width(width).Align(lipgloss.Center).Render(q.FeedbackText))
		b.WriteString("\n")
	}

	// Follow-up block, shown while pending or after being answered.
	if q.FollowUp != nil && (q.FollowUpPending || q.FollowUpDone) {
		b.WriteString("\n")
		b.WriteString(theme.Dim.Width(width).Align(lipgloss.Center).Render("Follow-up"))
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(width).Align(lipgloss.Center).Render(q.FollowUp.Question))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.followUp.View()))
		if q.FollowUpDone {
			style := theme.Incorrect
			if q.FollowUpCorrect {
				style = theme.Correct
			}
			b.WriteString("\n")
			b.WriteString(style.Width(width).Align(lipgloss.Center).Render(q.FollowUpFeedback))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
