// Package report defines the event payloads sent to the remote logging
// endpoint and the sinks that carry them. Delivery is fire-and-forget:
// the quiz never waits on, retries, or surfaces a failed report.
package report

import "context"

// Event actions, used as the payload discriminator by the sink.
const (
	ActionLogQuestion   = "logQuestion"
	ActionLogFinalScore = "logFinalScore"
)

// Sentinel values for fields that do not apply to a given event shape.
const (
	NA        = "N/A"
	NASkipped = "N/A (Skipped)"
)

// QuestionEvent is the payload for a single answer, skip, or follow-up
// submission.
type QuestionEvent struct {
	Action                string `json:"action"`
	Email                 string `json:"email"`
	SessionID             string `json:"sessionId"`
	QuestionNumberDisplay string `json:"questionNumberDisplay"`
	QuestionID            string `json:"questionId"`
	QuestionText          string `json:"questionText"`
	UsedHint              string `json:"usedHint"`     // "Yes", "No", or "N/A"
	AnswerGiven           string `json:"answerGiven"`  // letter or "N/A (Skipped)"
	Correct               string `json:"correct"`      // "Correct", "Incorrect", "Skipped"
	TimeSpent             string `json:"timeSpent"`    // seconds with 2 decimals, or "N/A"
	FeedbackShown         string `json:"feedbackShown"`
	FollowupAnswer        string `json:"followupAnswer"` // letter or "N/A"
	OverallScore          string `json:"overallScore"`   // always "N/A" for question events
	Timestamp             string `json:"timestamp"`      // ISO-8601
}

// ScoreEvent is the payload for the end-of-section final score.
type ScoreEvent struct {
	Action          string `json:"action"`
	Email           string `json:"email"`
	SessionID       string `json:"sessionId"`
	TotalQuestions  int    `json:"totalQuestions"`
	CorrectCount    int    `json:"correctCount"`
	IncorrectCount  int    `json:"incorrectCount"`
	PercentageScore string `json:"percentageScore"`
	Timestamp       string `json:"timestamp"` // ISO-8601
}

// Sink accepts quiz events. Implementations must treat each event as
// independently attributable (sessionId + questionId + timestamp); no
// ordering is guaranteed between in-flight events.
type Sink interface {
	LogQuestion(ctx context.Context, ev QuestionEvent) error
	LogFinalScore(ctx context.Context, ev ScoreEvent) error
}

// Nop is a Sink that discards everything. Used when no webhook is
// configured.
type Nop struct{}

func (Nop) LogQuestion(context.Context, QuestionEvent) error  { return nil }
func (Nop) LogFinalScore(context.Context, ScoreEvent) error   { return nil }

// Tee fans each event out to every sink in order, returning the first
// error encountered after all sinks have been attempted.
type Tee []Sink

func (t Tee) LogQuestion(ctx context.Context, ev QuestionEvent) error {
	var first error
	for _, s := range t {
		if err := s.LogQuestion(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t Tee) LogFinalScore(ctx context.Context, ev ScoreEvent) error {
	var first error
	for _, s := range t {
		if err := s.LogFinalScore(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
