package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/quizdeck/internal/report"
)

// Journal appends every reported event to the local database so quiz
// history survives the endpoint being unreachable. It implements
// report.Sink and can be teed with the webhook.
type Journal struct {
	db *sql.DB
}

var _ report.Sink = (*Journal)(nil)

// QuestionRow is one journaled question event.
type QuestionRow struct {
	Sequence       int64
	SessionID      string
	Email          string
	QuestionNumber string
	QuestionID     string
	QuestionText   string
	UsedHint       string
	AnswerGiven    string
	Correct        string
	TimeSpent      string
	FeedbackShown  string
	FollowupAnswer string
	Timestamp      string
}

// ScoreRow is one journaled final-score event.
type ScoreRow struct {
	Sequence        int64
	SessionID       string
	Email           string
	TotalQuestions  int
	CorrectCount    int
	IncorrectCount  int
	PercentageScore string
	Timestamp       string
}

func (j *Journal) LogQuestion(ctx context.Context, ev report.QuestionEvent) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO question_events (
			session_id, email, question_number, question_id, question_text,
			used_hint, answer_given, correct, time_spent, feedback_shown,
			followup_answer, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.Email, ev.QuestionNumberDisplay, ev.QuestionID, ev.QuestionText,
		ev.UsedHint, ev.AnswerGiven, ev.Correct, ev.TimeSpent, ev.FeedbackShown,
		ev.FollowupAnswer, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("journal question event: %w", err)
	}
	return nil
}

func (j *Journal) LogFinalScore(ctx context.Context, ev report.ScoreEvent) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO score_events (
			session_id, email, total_questions, correct_count,
			incorrect_count, percentage_score, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.Email, ev.TotalQuestions, ev.CorrectCount,
		ev.IncorrectCount, ev.PercentageScore, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("journal score event: %w", err)
	}
	return nil
}

// QuestionEvents returns all journaled question events in append order.
func (j *Journal) QuestionEvents(ctx context.Context) ([]QuestionRow, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, session_id, email, question_number, question_id, question_text,
			used_hint, answer_given, correct, time_spent, feedback_shown,
			followup_answer, timestamp
		 FROM question_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query question events: %w", err)
	}
	defer rows.Close()

	var out []QuestionRow
	for rows.Next() {
		var r QuestionRow
		if err := rows.Scan(&r.Sequence, &r.SessionID, &r.Email, &r.QuestionNumber,
			&r.QuestionID, &r.QuestionText, &r.UsedHint, &r.AnswerGiven, &r.Correct,
			&r.TimeSpent, &r.FeedbackShown, &r.FollowupAnswer, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan question event: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ScoreEvents returns all journaled final-score events in append order.
func (j *Journal) ScoreEvents(ctx context.Context) ([]ScoreRow, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, session_id, email, total_questions, correct_count,
			incorrect_count, percentage_score, timestamp
		 FROM score_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query score events: %w", err)
	}
	defer rows.Close()

	var out []ScoreRow
	for rows.Next() {
		var r ScoreRow
		if err := rows.Scan(&r.Sequence, &r.SessionID, &r.Email, &r.TotalQuestions,
			&r.CorrectCount, &r.IncorrectCount, &r.PercentageScore, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan score event: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
