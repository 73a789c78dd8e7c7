package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/quizdeck/internal/report"
)

// questionEmit carries the per-commit values that differ between an
// answer and a skip.
type questionEmit struct {
	usedHint    string
	answerGiven string
	status      string
	timeSpent   string
	feedback    string
}

// emitQuestion hands a primary-question event to the sink. Delivery is
// the sink's problem; the session state is already updated and a
// failure must never roll it back.
func (s *Session) emitQuestion(q *ActiveQuestion, index int, e questionEmit) {
	_ = s.sink.LogQuestion(context.Background(), report.QuestionEvent{
		Action:                report.ActionLogQuestion,
		Email:                 s.Email,
		SessionID:             s.ID,
		QuestionNumberDisplay: fmt.Sprintf("%d/%d", index+1, len(s.Questions)),
		QuestionID:            q.ID,
		QuestionText:          q.Question.Question,
		UsedHint:              e.usedHint,
		AnswerGiven:           e.answerGiven,
		Correct:               e.status,
		TimeSpent:             e.timeSpent,
		FeedbackShown:         e.feedback,
		FollowupAnswer:        report.NA,
		OverallScore:          report.NA,
		Timestamp:             s.timestamp(),
	})
}

// emitFollowUp hands a follow-up event to the sink. Hint usage and time
// spent belong to the primary question, so both report "N/A".
func (s *Session) emitFollowUp(q *ActiveQuestion, index int, letter, status, feedback string) {
	_ = s.sink.LogQuestion(context.Background(), report.QuestionEvent{
		Action:                report.ActionLogQuestion,
		Email:                 s.Email,
		SessionID:             s.ID,
		QuestionNumberDisplay: fmt.Sprintf("%d/%d (Follow-up)", index+1, len(s.Questions)),
		QuestionID:            q.ID + "_followup",
		QuestionText:          q.FollowUp.Question,
		UsedHint:              report.NA,
		AnswerGiven:           letter,
		Correct:               status,
		TimeSpent:             report.NA,
		FeedbackShown:         feedback,
		FollowupAnswer:        letter,
		OverallScore:          report.NA,
		Timestamp:             s.timestamp(),
	})
}

func (s *Session) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
