package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/report"
)

// recordSink captures every event handed to it for later assertions.
type recordSink struct {
	questions []report.QuestionEvent
	scores    []report.ScoreEvent
}

func (r *recordSink) LogQuestion(_ context.Context, ev report.QuestionEvent) error {
	r.questions = append(r.questions, ev)
	return nil
}

func (r *recordSink) LogFinalScore(_ context.Context, ev report.ScoreEvent) error {
	r.scores = append(r.scores, ev)
	return nil
}

const testBankJSON = `[
	{
		"id": "alg1",
		"section": "Algebra",
		"question": "What is 2x when x = 3?",
		"options": ["4", "6", "9"],
		"correctAnswer": "B",
		"hint": "Substitute x first.",
		"feedback": {
			"correct_hint": "Right, with a little help.",
			"incorrect_hint": "Not quite, even with the hint.",
			"correct_no_hint": "Exactly right.",
			"incorrect_no_hint": "Not quite."
		},
		"followUpQuestion": "And 2x when x = 5?",
		"followUpOptions": ["8", "10"],
		"followUpAnswer": "B"
	},
	{
		"id": "alg2",
		"section": "Algebra",
		"question": "Solve x + 1 = 2.",
		"options": ["0", "1", "2"],
		"correctAnswer": "B",
		"feedback": {
			"correct_hint": "Good.",
			"incorrect_hint": "No.",
			"correct_no_hint": "Good.",
			"incorrect_no_hint": "No."
		}
	},
	{
		"id": "geo1",
		"section": "Geometry",
		"question": "How many sides does a triangle have?",
		"options": ["2", "3", "4"],
		"correctAnswer": "B",
		"feedback": {
			"correct_hint": "Yes.",
			"incorrect_hint": "No.",
			"correct_no_hint": "Yes.",
			"incorrect_no_hint": "No."
		}
	}
]`

func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.Parse([]byte(testBankJSON))
	if err != nil {
		t.Fatalf("Parse test bank: %v", err)
	}
	return b
}

// testSession starts an Algebra session with a recording sink and a
// clock that advances one second per reading.
func testSession(t *testing.T) (*Session, *recordSink) {
	t.Helper()
	sink := &recordSink{}
	s, err := NewSession(testBank(t), "Algebra", "student@example.com", sink)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s, sink
}

func TestNewSession_InvalidIdentifier(t *testing.T) {
	for _, email := range []string{"", "   ", "no-at-sign"} {
		_, err := NewSession(testBank(t), "Algebra", email, nil)
		var ie *InvalidIdentifierError
		if !errors.As(err, &ie) {
			t.Errorf("NewSession(%q): got %v, want *InvalidIdentifierError", email, err)
		}
	}
}

func TestNewSession_EmptySection(t *testing.T) {
	_, err := NewSession(testBank(t), "Calculus", "student@example.com", nil)
	var ee *EmptySectionError
	if !errors.As(err, &ee) {
		t.Fatalf("got %v, want *EmptySectionError", err)
	}
	if ee.Section != "Calculus" {
		t.Errorf("Section = %q, want Calculus", ee.Section)
	}
}

func TestNewSession_FiltersAndOrders(t *testing.T) {
	s, _ := testSession(t)
	if len(s.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(s.Questions))
	}
	if s.Questions[0].ID != "alg1" || s.Questions[1].ID != "alg2" {
		t.Errorf("order = %s, %s; want alg1, alg2", s.Questions[0].ID, s.Questions[1].ID)
	}
	if s.ID == "" {
		t.Error("expected a generated session id")
	}
}

func TestSubmitAnswer_Correct(t *testing.T) {
	s, sink := testSession(t)
	s.Enter(0)
	s.SubmitAnswer("B")

	q := s.Questions[0]
	if !q.WasCorrect || q.Selected != "B" {
		t.Errorf("WasCorrect=%v Selected=%q, want true/B", q.WasCorrect, q.Selected)
	}
	if q.FeedbackText != "Exactly right." {
		t.Errorf("FeedbackText = %q, want the no-hint correct variant", q.FeedbackText)
	}
	if s.CorrectCount != 1 || s.IncorrectCount != 0 {
		t.Errorf("counters = %d/%d, want 1/0", s.CorrectCount, s.IncorrectCount)
	}
	if !q.FollowUpPending {
		t.Error("correct answer with a follow-up should set FollowUpPending")
	}

	if len(sink.questions) != 1 {
		t.Fatalf("got %d question events, want 1", len(sink.questions))
	}
	ev := sink.questions[0]
	if ev.Action != report.ActionLogQuestion {
		t.Errorf("Action = %q", ev.Action)
	}
	if ev.QuestionNumberDisplay != "1/2" {
		t.Errorf("QuestionNumberDisplay = %q, want 1/2", ev.QuestionNumberDisplay)
	}
	if ev.Correct != "Correct" || ev.UsedHint != "No" || ev.AnswerGiven != "B" {
		t.Errorf("event = %+v", ev)
	}
	if ev.TimeSpent != "1.00" {
		t.Errorf("TimeSpent = %q, want 1.00", ev.TimeSpent)
	}
	if ev.FollowupAnswer != report.NA || ev.OverallScore != report.NA {
		t.Errorf("sentinels = %q/%q, want N/A", ev.FollowupAnswer, ev.OverallScore)
	}
}

func TestSubmitAnswer_IncorrectWithHint(t *testing.T) {
	s, sink := testSession(t)
	s.Enter(0)
	if hint := s.RequestHint(); hint != "Substitute x first." {
		t.Errorf("RequestHint = %q", hint)
	}
	s.SubmitAnswer("A")

	q := s.Questions[0]
	if q.WasCorrect {
		t.Error("A should be incorrect")
	}
	if q.FeedbackText != "Not quite, even with the hint." {
		t.Errorf("FeedbackText = %q, want the hint incorrect variant", q.FeedbackText)
	}
	if q.FollowUpPending {
		t.Error("incorrect answer must not unlock the follow-up")
	}
	if s.IncorrectCount != 1 {
		t.Errorf("IncorrectCount = %d, want 1", s.IncorrectCount)
	}
	if sink.questions[0].UsedHint != "Yes" {
		t.Errorf("UsedHint = %q, want Yes", sink.questions[0].UsedHint)
	}
}

func TestSubmitAnswer_Idempotent(t *testing.T) {
	s, sink := testSession(t)
	s.Enter(0)
	s.SubmitAnswer("B")
	s.SubmitAnswer("A")

	if s.CorrectCount != 1 || s.IncorrectCount != 0 {
		t.Errorf("counters = %d/%d after resubmit, want 1/0", s.CorrectCount, s.IncorrectCount)
	}
	if s.Questions[0].Selected != "B" {
		t.Errorf("Selected = %q, resubmit must not overwrite", s.Questions[0].Selected)
	}
	if len(sink.questions) != 1 {
		t.Errorf("got %d question events, want 1", len(sink.questions))
	}
}

func TestRequestHint_AfterCommitIsInert(t *testing.T) {
	s, _ := testSession(t)
	s.Enter(0)
	s.SubmitAnswer("B")
	if hint := s.RequestHint(); hint != "" {
		t.Errorf("RequestHint after commit = %q, want empty", hint)
	}
	if s.UsedHint {
		t.Error("hint flag must not arm on an answered question")
	}
}

func TestEnter_ResetsHintNotStartTime(t *testing.T) {
	s, _ := testSession(t)
	s.Enter(0)
	s.RequestHint()
	s.SubmitAnswer("B")
	started := s.Questions[0].StartTime

	s.Enter(1)
	s.Enter(0)
	if s.UsedHint {
		t.Error("hint flag should reset on entry")
	}
	if !s.Questions[0].StartTime.Equal(started) {
		t.Error("re-entering an answered question must not reset its start time")
	}
}

func TestNext_SkipsUnanswered(t *testing.T) {
	s, sink := testSession(t)
	s.Enter(0)
	q, summary := s.Next()

	if summary != nil {
		t.Fatal("Next from question 1 of 2 should not finish the session")
	}
	if q == nil || q.ID != "alg2" {
		t.Fatalf("cursor should land on alg2")
	}
	skipped := s.Questions[0]
	if skipped.Selected != report.NASkipped {
		t.Errorf("Selected = %q, want %q", skipped.Selected, report.NASkipped)
	}
	if skipped.FeedbackText != SkipFeedback {
		t.Errorf("FeedbackText = %q, want %q", skipped.FeedbackText, SkipFeedback)
	}
	if s.IncorrectCount != 1 {
		t.Errorf("IncorrectCount = %d, want 1", s.IncorrectCount)
	}

	ev := sink.questions[0]
	if ev.Correct != "Skipped" || ev.AnswerGiven != report.NASkipped {
		t.Errorf("skip event = %+v", ev)
	}
}

func TestPrevious_SkipsDeparted(t *testing.T) {
	s, _ := testSession(t)
	s.Enter(0)
	s.SubmitAnswer("B")
	s.Next()

	q := s.Previous()
	if q == nil || q.ID != "alg1" {
		t.Fatal("Previous should land on alg1")
	}
	if s.Questions[1].Selected != report.NASkipped {
		t.Error("departed unanswered question should be skipped")
	}
}

func TestPrevious_NoopAtFirst(t *testing.T) {
	s, _ := testSession(t)
	s.Enter(0)
	if q := s.Previous(); q != nil {
		t.Error("Previous at index 0 should be a no-op")
	}
	if s.Current != 0 || s.IncorrectCount != 0 {
		t.Error("no state should change on a refused Previous")
	}
}

func TestFollowUp_OncePerQuestion(t *testing.T) {
	s, sink := testSession(t)
	s.Enter(0)
	s.SubmitAnswer("B")
	s.SubmitFollowUp("A")
	s.SubmitFollowUp("B")

	q := s.Questions[0]
	if !q.FollowUpDone || q.FollowUpPending {
		t.Error("follow-up should be done and no longer pending")
	}
	if q.FollowUpCorrect {
		t.Error("A is the wrong follow-up answer")
	}
	if q.FollowUpFeedback != FollowUpIncorrectFeedback {
		t.Errorf("FollowUpFeedback = %q", q.FollowUpFeedback)
	}
	if s.CorrectCount != 1 || s.IncorrectCount != 0 {
		t.Error("follow-up outcome must not move the main counters")
	}

	// One primary event plus exactly one follow-up event.
	if len(sink.questions) != 2 {
		t.Fatalf("got %d question events, want 2", len(sink.questions))
	}
	fu := sink.questions[1]
	if fu.QuestionID != "alg1_followup" {
		t.Errorf("QuestionID = %q, want alg1_followup", fu.QuestionID)
	}
	if fu.QuestionNumberDisplay != "1/2 (Follow-up)" {
		t.Errorf("QuestionNumberDisplay = %q", fu.QuestionNumberDisplay)
	}
	if fu.UsedHint != report.NA || fu.TimeSpent != report.NA {
		t.Errorf("follow-up sentinels = %q/%q, want N/A", fu.UsedHint, fu.TimeSpent)
	}
	if fu.AnswerGiven != "A" || fu.FollowupAnswer != "A" || fu.Correct != "Incorrect" {
		t.Errorf("follow-up event = %+v", fu)
	}
}

func TestFollowUp_AbsentIsInert(t *testing.T) {
	s, sink := testSession(t)
	s.Enter(0)
	s.Next()
	s.SubmitAnswer("B")
	s.SubmitFollowUp("A")

	if s.Questions[1].FollowUpDone {
		t.Error("alg2 has no follow-up; nothing should be recorded")
	}
	// Skip event for alg1 plus answer event for alg2, nothing more.
	if len(sink.questions) != 2 {
		t.Errorf("got %d question events, want 2", len(sink.questions))
	}
}

func TestFinalScore_EmitsOnce(t *testing.T) {
	s, sink := testSession(t)
	s.Enter(0)
	s.SubmitAnswer("B")
	s.Next()
	s.SubmitAnswer("A")
	_, summary := s.Next()

	if summary == nil {
		t.Fatal("Next on the last question should finish the session")
	}
	if summary.TotalQuestions != 2 || summary.CorrectCount != 1 || summary.IncorrectCount != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Percentage != "50.00" {
		t.Errorf("Percentage = %q, want 50.00", summary.Percentage)
	}
	if !s.Completed {
		t.Error("session should be terminal")
	}

	again := s.FinalScore()
	if again.Percentage != "50.00" {
		t.Errorf("repeat summary = %+v", again)
	}
	if len(sink.scores) != 1 {
		t.Fatalf("got %d score events, want 1", len(sink.scores))
	}
	sc := sink.scores[0]
	if sc.Action != report.ActionLogFinalScore {
		t.Errorf("Action = %q", sc.Action)
	}
	if sc.TotalQuestions != 2 || sc.CorrectCount != 1 || sc.IncorrectCount != 1 || sc.PercentageScore != "50.00" {
		t.Errorf("score event = %+v", sc)
	}
}

func TestCompletedSession_RefusesEverything(t *testing.T) {
	s, sink := testSession(t)
	s.Enter(0)
	s.Next()
	s.Next()
	if !s.Completed {
		t.Fatal("session should be complete")
	}

	before := len(sink.questions)
	s.SubmitAnswer("B")
	s.SkipIfUnanswered(1)
	s.Previous()
	if _, sum := s.Next(); sum != nil && len(sink.scores) != 1 {
		t.Error("a finished session must not emit another score")
	}
	if len(sink.questions) != before {
		t.Error("a finished session must not emit question events")
	}
}

func TestFullRun_EventCount(t *testing.T) {
	s, sink := testSession(t)
	s.Enter(0)
	s.SubmitAnswer("B")
	s.SubmitFollowUp("B")
	s.Next()
	s.SubmitAnswer("A")
	_, summary := s.Next()

	if summary == nil || summary.Percentage != "50.00" {
		t.Fatalf("summary = %+v, want 50.00", summary)
	}
	if s.CorrectCount != 1 || s.IncorrectCount != 1 {
		t.Errorf("counters = %d/%d, want 1/1", s.CorrectCount, s.IncorrectCount)
	}
	// Two answers plus one follow-up.
	if len(sink.questions) != 3 {
		t.Errorf("got %d question events, want 3", len(sink.questions))
	}
	if len(sink.scores) != 1 {
		t.Errorf("got %d score events, want 1", len(sink.scores))
	}
	for _, ev := range sink.questions {
		if ev.SessionID != s.ID || ev.Email != "student@example.com" {
			t.Errorf("event attribution = %+v", ev)
		}
		if _, err := time.Parse(time.RFC3339, ev.Timestamp); err != nil {
			t.Errorf("Timestamp %q not RFC3339: %v", ev.Timestamp, err)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		correct, total int
		want           string
	}{
		{7, 10, "70.00"},
		{1, 3, "33.33"},
		{0, 4, "0.00"},
		{2, 2, "100.00"},
		{0, 0, "0"},
	}
	for _, tt := range tests {
		if got := formatPercentage(tt.correct, tt.total); got != tt.want {
			t.Errorf("formatPercentage(%d, %d) = %q, want %q", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestOptionLetters(t *testing.T) {
	if OptionLetter(0) != "A" || OptionLetter(2) != "C" {
		t.Error("letters are positional from A")
	}
	if LetterIndex("B", 3) != 1 {
		t.Error("LetterIndex(B, 3) should be 1")
	}
	for _, bad := range []string{"", "D", "AB", "a"} {
		if LetterIndex(bad, 3) != -1 {
			t.Errorf("LetterIndex(%q, 3) should be -1", bad)
		}
	}
}
