package score

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// RestartMsg asks the app to discard the finished session and return to
// a fresh section list.
type RestartMsg struct{}

// ScoreScreen shows the terminal section result.
type ScoreScreen struct {
	summary *quiz.ScoreSummary
}

var _ router.Screen = (*ScoreScreen)(nil)
var _ router.KeyHintProvider = (*ScoreScreen)(nil)

// New creates the final score screen.
func New(summary *quiz.ScoreSummary) *ScoreScreen {
	return &ScoreScreen{summary: summary}
}

func (s *ScoreScreen) Init() tea.Cmd {
	return nil
}

func (s *ScoreScreen) Title() string {
	return "Quiz complete"
}

func (s *ScoreScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Take another quiz"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ScoreScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return RestartMsg{} }
		}
	}
	return s, nil
}

func (s *ScoreScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Quiz Completed!"))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("Correct Answers: %d", sum.CorrectCount)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("Incorrect Answers: %d", sum.IncorrectCount)))
	b.WriteString("\n\n")

	b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).
		Render(fmt.Sprintf("Score: %s%%", sum.Percentage)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
