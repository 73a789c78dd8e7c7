package quizplay

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screens/score"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// QuizScreen drives one section attempt: it renders the current
// question and translates key presses into engine operations.
type QuizScreen struct {
	sess        *quiz.Session
	options     components.OptionList
	followUp    components.OptionList
	hintText    string
	followFocus bool
}

var _ router.Screen = (*QuizScreen)(nil)
var _ router.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen positioned on the session's first
// question.
func New(sess *quiz.Session) *QuizScreen {
	s := &QuizScreen{sess: sess}
	sess.Enter(sess.Current)
	s.syncFromState()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return fmt.Sprintf("Question %d of %d", s.sess.Current+1, len(s.sess.Questions))
}

func (s *QuizScreen) Tally() string {
	return fmt.Sprintf("✓ %d  ✗ %d", s.sess.CorrectCount, s.sess.IncorrectCount)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	q := s.sess.CurrentQuestion()
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
	}
	if !q.Committed() && q.Hint != "" {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "Hint"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "←", Description: "Previous"},
		layout.KeyHint{Key: "→", Description: "Next"},
	)
	return hints
}

// syncFromState rebuilds the option lists from the engine's view of the
// current question. Committed questions render their recorded selection
// and frozen feedback; the hint box starts empty on every entry.
func (s *QuizScreen) syncFromState() {
	q := s.sess.CurrentQuestion()

	s.options = components.NewOptionList(q.Options)
	if q.Committed() {
		s.options = s.options.Restore(q.Selected, q.WasCorrect)
	}

	s.followUp = components.OptionList{}
	s.followFocus = false
	if q.FollowUp != nil {
		s.followUp = components.NewOptionList(q.FollowUp.Options)
		if q.FollowUpDone {
			s.followUp = s.followUp.Restore(q.FollowUpSelected, q.FollowUpCorrect)
		} else if q.FollowUpPending {
			s.followFocus = true
		}
	}

	s.hintText = ""
}

func (s *QuizScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "p":
		if s.sess.Previous() != nil {
			s.syncFromState()
		}
		return s, nil

	case "right", "n":
		_, summary := s.sess.Next()
		if summary != nil {
			return s, func() tea.Msg {
				return router.PushMsg{Screen: score.New(summary)}
			}
		}
		s.syncFromState()
		return s, nil

	case "h", "H":
		if hint := s.sess.RequestHint(); hint != "" {
			s.hintText = hint
		}
		return s, nil

	case "enter":
		return s.commit()
	}

	// Cursor movement goes to whichever list is live.
	if s.followFocus {
		s.followUp, _ = s.followUp.Update(msg)
	} else {
		s.options, _ = s.options.Update(msg)
	}
	return s, nil
}

// commit submits the focused list's selection to the engine.
func (s *QuizScreen) commit() (router.Screen, tea.Cmd) {
	q := s.sess.CurrentQuestion()

	if s.followFocus {
		s.sess.SubmitFollowUp(s.followUp.Letter())
		s.followUp = s.followUp.Restore(q.FollowUpSelected, q.FollowUpCorrect)
		s.followFocus = false
		return s, nil
	}

	if q.Committed() {
		return s, nil
	}

	letter := s.options.Letter()
	s.sess.SubmitAnswer(letter)
	s.options = s.options.Restore(q.Selected, q.WasCorrect)
	if q.FollowUpPending {
		s.followFocus = true
	}
	return s, nil
}
