package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/report"
)

// Session is one quiz attempt by one user through one section. It
// exclusively owns its question copies and all per-question annotations;
// a fresh Session starts from a clean slate regardless of prior attempts.
type Session struct {
	// ID uniquely identifies this section-attempt on every reported event.
	ID string

	// Email is the user-supplied identifier attached to every event.
	Email string

	// Section is the tag the active questions were filtered by.
	Section string

	// Questions holds the section's questions in original bank order,
	// fixed for the lifetime of the session.
	Questions []*ActiveQuestion

	// Current is the 0-based cursor into Questions.
	Current int

	// Answered is the set of committed indices (answered or skipped).
	Answered map[int]bool

	CorrectCount   int
	IncorrectCount int

	// UsedHint tracks hint usage for the current question only; it is
	// reset every time a question is entered.
	UsedHint bool

	// FollowUpAnswered is the set of question ids whose follow-up has
	// been answered. Keyed by id, not index, so a revisit never
	// re-prompts.
	FollowUpAnswered map[string]bool

	// Completed is set once the final score has been computed; no
	// further answer or navigation operations are valid after that.
	Completed bool

	sink report.Sink
	now  func() time.Time
}

// ScoreSummary is the terminal result of a session.
type ScoreSummary struct {
	TotalQuestions int
	CorrectCount   int
	IncorrectCount int
	Percentage     string
}

// ValidateIdentifier applies the minimal identifier check: non-empty
// and containing "@".
func ValidateIdentifier(identifier string) error {
	id := strings.TrimSpace(identifier)
	if id == "" || !strings.Contains(id, "@") {
		return &InvalidIdentifierError{Identifier: identifier}
	}
	return nil
}

// NewSession filters the bank to the given section and starts a session
// for the identified user. Fails with *EmptySectionError when the
// section has no questions and *InvalidIdentifierError when the
// identifier is malformed; no session exists in either case.
func NewSession(b *bank.Bank, section, email string, sink report.Sink) (*Session, error) {
	if err := ValidateIdentifier(email); err != nil {
		return nil, err
	}

	selected := b.ForSection(section)
	if len(selected) == 0 {
		return nil, &EmptySectionError{Section: section}
	}

	questions := make([]*ActiveQuestion, len(selected))
	for i, q := range selected {
		questions[i] = &ActiveQuestion{Question: q}
	}

	if sink == nil {
		sink = report.Nop{}
	}

	return &Session{
		ID:               uuid.New().String(),
		Email:            strings.TrimSpace(email),
		Section:          section,
		Questions:        questions,
		Answered:         make(map[int]bool),
		FollowUpAnswered: make(map[string]bool),
		sink:             sink,
		now:              time.Now,
	}, nil
}

// CurrentQuestion returns the question under the cursor.
func (s *Session) CurrentQuestion() *ActiveQuestion {
	return s.Questions[s.Current]
}

// Enter marks the question at index as the one on screen. The start
// time is recorded only for uncommitted questions, and the hint flag is
// reset unconditionally: restoring an answered question's prior state
// is a render concern, not a transition.
func (s *Session) Enter(index int) *ActiveQuestion {
	if index < 0 || index >= len(s.Questions) {
		return nil
	}
	q := s.Questions[index]
	s.UsedHint = false
	if !s.Answered[index] {
		q.StartTime = s.now()
	}
	return q
}

// RequestHint marks the current question's hint as used and returns its
// text. Answered questions never re-arm the flag: the hint box is a
// read-only restore at that point.
func (s *Session) RequestHint() string {
	q := s.CurrentQuestion()
	if s.Completed || s.Answered[s.Current] {
		return ""
	}
	s.UsedHint = true
	return q.Hint
}

// SubmitAnswer grades the given letter against the current question.
// A second submission for an already-committed question is a no-op:
// no counter moves and no event is emitted.
func (s *Session) SubmitAnswer(letter string) {
	if s.Completed || s.Answered[s.Current] {
		return
	}
	q := s.CurrentQuestion()

	q.EndTime = s.now()
	elapsed := q.elapsedSeconds(q.EndTime)

	correct := letter == q.CorrectAnswer
	q.Selected = letter
	q.WasCorrect = correct
	q.FeedbackText = q.Feedback.Text(correct, s.UsedHint)
	s.Answered[s.Current] = true

	if correct {
		s.CorrectCount++
		if q.FollowUp != nil && !s.FollowUpAnswered[q.ID] {
			q.FollowUpPending = true
		}
	} else {
		s.IncorrectCount++
	}

	status := "Incorrect"
	if correct {
		status = "Correct"
	}
	s.emitQuestion(q, s.Current, questionEmit{
		usedHint:    yesNo(s.UsedHint),
		answerGiven: letter,
		status:      status,
		timeSpent:   fmt.Sprintf("%.2f", elapsed),
		feedback:    q.FeedbackText,
	})
}

// SkipIfUnanswered converts an uncommitted question into a skipped
// (incorrect) entry. Navigation calls this before moving the cursor in
// either direction; the Answered guard makes it run at most once per
// question.
func (s *Session) SkipIfUnanswered(index int) {
	if s.Completed || index < 0 || index >= len(s.Questions) || s.Answered[index] {
		return
	}
	q := s.Questions[index]

	q.EndTime = s.now()
	elapsed := q.elapsedSeconds(q.EndTime)

	q.Selected = report.NASkipped
	q.WasCorrect = false
	q.FeedbackText = SkipFeedback
	s.Answered[index] = true
	s.IncorrectCount++

	s.emitQuestion(q, index, questionEmit{
		usedHint:    yesNo(s.UsedHint),
		answerGiven: report.NASkipped,
		status:      "Skipped",
		timeSpent:   fmt.Sprintf("%.2f", elapsed),
		feedback:    q.FeedbackText,
	})
}

// Previous moves the cursor back one question, committing the departed
// question as skipped if needed. No-op at index 0.
func (s *Session) Previous() *ActiveQuestion {
	if s.Completed || s.Current == 0 {
		return nil
	}
	s.SkipIfUnanswered(s.Current)
	s.Current--
	return s.Enter(s.Current)
}

// Next moves the cursor forward, committing the departed question as
// skipped if needed. On the last question it computes the final score
// instead and returns it; otherwise the summary is nil.
func (s *Session) Next() (*ActiveQuestion, *ScoreSummary) {
	if s.Completed {
		return nil, nil
	}
	s.SkipIfUnanswered(s.Current)
	if s.Current < len(s.Questions)-1 {
		s.Current++
		return s.Enter(s.Current), nil
	}
	return nil, s.FinalScore()
}

// SubmitFollowUp grades the follow-up answer for the current question.
// A follow-up can be answered at most once per question id per session;
// correctness is informational only and never moves the main counters.
func (s *Session) SubmitFollowUp(letter string) {
	q := s.CurrentQuestion()
	if s.Completed || q.FollowUp == nil || s.FollowUpAnswered[q.ID] {
		return
	}

	correct := letter == q.FollowUp.Answer
	feedback := FollowUpIncorrectFeedback
	if correct {
		feedback = FollowUpCorrectFeedback
	}

	s.FollowUpAnswered[q.ID] = true
	q.FollowUpDone = true
	q.FollowUpPending = false
	q.FollowUpCorrect = correct
	q.FollowUpSelected = letter
	q.FollowUpFeedback = feedback

	status := "Incorrect"
	if correct {
		status = "Correct"
	}
	s.emitFollowUp(q, s.Current, letter, status, feedback)
}

// FinalScore computes the section percentage, emits the final-score
// event, and marks the session terminal. Subsequent calls return the
// same summary without emitting again.
func (s *Session) FinalScore() *ScoreSummary {
	summary := &ScoreSummary{
		TotalQuestions: len(s.Questions),
		CorrectCount:   s.CorrectCount,
		IncorrectCount: s.IncorrectCount,
		Percentage:     formatPercentage(s.CorrectCount, len(s.Questions)),
	}
	if s.Completed {
		return summary
	}
	s.Completed = true

	_ = s.sink.LogFinalScore(context.Background(), report.ScoreEvent{
		Action:          report.ActionLogFinalScore,
		Email:           s.Email,
		SessionID:       s.ID,
		TotalQuestions:  summary.TotalQuestions,
		CorrectCount:    summary.CorrectCount,
		IncorrectCount:  summary.IncorrectCount,
		PercentageScore: summary.Percentage,
		Timestamp:       s.timestamp(),
	})
	return summary
}

// formatPercentage renders correct/total as a percentage with two
// decimal places. An empty section scores "0", not "0.00".
func formatPercentage(correct, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.2f", float64(correct)/float64(total)*100)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
