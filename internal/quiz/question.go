package quiz

import (
	"time"

	"github.com/abhisek/quizdeck/internal/bank"
)

// Feedback texts that are fixed rather than bank-supplied.
const (
	SkipFeedback              = "❌ Question skipped."
	FollowUpCorrectFeedback   = "✅ Correct!"
	FollowUpIncorrectFeedback = "❌ Incorrect."
)

// ActiveQuestion is a session-owned copy of a bank question plus the
// mutable per-session annotations accumulated during play. Annotations
// start zeroed every session; the bank itself is never touched.
type ActiveQuestion struct {
	bank.Question

	// Selected is the letter committed for this question, or the
	// skipped sentinel. Empty until the question is committed.
	Selected string

	// WasCorrect records the graded outcome at submission time.
	WasCorrect bool

	// FeedbackText is frozen at submission and never recomputed, even
	// if the hint flag has since been reset by a revisit.
	FeedbackText string

	// FollowUpPending is set when a correct answer unlocks a follow-up
	// that has not been answered yet this session.
	FollowUpPending bool

	FollowUpDone     bool
	FollowUpCorrect  bool
	FollowUpSelected string
	FollowUpFeedback string

	// StartTime is set on first entry; EndTime at commit.
	StartTime time.Time
	EndTime   time.Time
}

// Committed reports whether the question has been answered or skipped.
func (q *ActiveQuestion) Committed() bool {
	return q.Selected != ""
}

// elapsedSeconds returns the seconds between entry and the given end
// time. A question that was never entered reports zero, matching the
// skip-before-entry edge case.
func (q *ActiveQuestion) elapsedSeconds(end time.Time) float64 {
	if q.StartTime.IsZero() {
		return 0
	}
	return end.Sub(q.StartTime).Seconds()
}
