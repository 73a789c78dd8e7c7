package signin

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/report"
	"github.com/abhisek/quizdeck/internal/router"
	quizscreen "github.com/abhisek/quizdeck/internal/screens/quizplay"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// SigninScreen collects the user's email before starting a session.
// Validation failures keep the user here; Esc goes back to the section
// list.
type SigninScreen struct {
	bank    *bank.Bank
	section string
	sink    report.Sink
	input   components.TextInput
}

var _ router.Screen = (*SigninScreen)(nil)
var _ router.KeyHintProvider = (*SigninScreen)(nil)

// New creates the sign-in screen for the given section.
func New(b *bank.Bank, section string, sink report.Sink) *SigninScreen {
	return &SigninScreen{
		bank:    b,
		section: section,
		sink:    sink,
		input:   components.NewTextInput("you@example.com", 120),
	}
}

func (s *SigninScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SigninScreen) Title() string {
	return s.section
}

func (s *SigninScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SigninScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s.start()
		case "esc":
			return s, func() tea.Msg { return router.PopMsg{} }
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// start validates the identifier and opens the quiz session.
func (s *SigninScreen) start() (router.Screen, tea.Cmd) {
	email := strings.TrimSpace(s.input.Value())

	sess, err := quiz.NewSession(s.bank, s.section, email, s.sink)
	if err != nil {
		var invalidID *quiz.InvalidIdentifierError
		var emptySection *quiz.EmptySectionError
		switch {
		case errors.As(err, &invalidID):
			s.input.ErrMsg = "Please enter a valid email address."
		case errors.As(err, &emptySection):
			s.input.ErrMsg = "No questions found for this section."
		default:
			s.input.ErrMsg = err.Error()
		}
		return s, nil
	}

	return s, func() tea.Msg {
		return router.PushMsg{Screen: quizscreen.New(sess)}
	}
}

func (s *SigninScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Who's playing?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Dim.Width(width).Align(lipgloss.Center).
		Render("Your answers for \"" + s.section + "\" will be logged under this address."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
