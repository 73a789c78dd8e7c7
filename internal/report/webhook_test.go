package report

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestionEvent() QuestionEvent {
	return QuestionEvent{
		Action:                ActionLogQuestion,
		Email:                 "student@example.com",
		SessionID:             "sess-1",
		QuestionNumberDisplay: "1/2",
		QuestionID:            "q1",
		QuestionText:          "First?",
		UsedHint:              "No",
		AnswerGiven:           "B",
		Correct:               "Correct",
		TimeSpent:             "4.20",
		FeedbackShown:         "Nice.",
		FollowupAnswer:        NA,
		OverallScore:          NA,
		Timestamp:             "2026-03-14T09:00:00Z",
	}
}

func TestWebhook_LogQuestion(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"status":"success","message":"Question data logged"}`))
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second)
	require.NoError(t, wh.LogQuestion(context.Background(), sampleQuestionEvent()))

	// Wire field names must match what the endpoint expects.
	for _, key := range []string{
		"action", "email", "sessionId", "questionNumberDisplay", "questionId",
		"questionText", "usedHint", "answerGiven", "correct", "timeSpent",
		"feedbackShown", "followupAnswer", "overallScore", "timestamp",
	} {
		assert.Contains(t, got, key)
	}
	assert.Equal(t, "logQuestion", got["action"])
	assert.Equal(t, "N/A", got["overallScore"])
}

func TestWebhook_LogFinalScore(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"status":"success","message":"Final score logged"}`))
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second)
	err := wh.LogFinalScore(context.Background(), ScoreEvent{
		Action:          ActionLogFinalScore,
		Email:           "student@example.com",
		SessionID:       "sess-1",
		TotalQuestions:  10,
		CorrectCount:    7,
		IncorrectCount:  3,
		PercentageScore: "70.00",
		Timestamp:       "2026-03-14T09:05:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "logFinalScore", got["action"])
	assert.Equal(t, float64(10), got["totalQuestions"])
	assert.Equal(t, "70.00", got["percentageScore"])
}

func TestWebhook_RejectedAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"unknown action"}`))
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second)
	err := wh.LogQuestion(context.Background(), sampleQuestionEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action")
}

func TestWebhook_BadStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, time.Second)
	err := wh.LogQuestion(context.Background(), sampleQuestionEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

// countSink counts deliveries and optionally fails.
type countSink struct {
	mu        sync.Mutex
	questions int
	scores    int
	err       error
}

func (c *countSink) LogQuestion(context.Context, QuestionEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions++
	return c.err
}

func (c *countSink) LogFinalScore(context.Context, ScoreEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores++
	return c.err
}

func TestTee_FansOutAndKeepsFirstError(t *testing.T) {
	bad := &countSink{err: errors.New("down")}
	good := &countSink{}
	tee := Tee{bad, good}

	err := tee.LogQuestion(context.Background(), sampleQuestionEvent())
	assert.EqualError(t, err, "down")
	assert.Equal(t, 1, bad.questions)
	assert.Equal(t, 1, good.questions, "later sinks still receive the event")

	require.NoError(t, Tee{good}.LogFinalScore(context.Background(), ScoreEvent{}))
	assert.Equal(t, 1, good.scores)
}

func TestDispatcher_DeliversAndCloses(t *testing.T) {
	inner := &countSink{}
	d := NewDispatcher(inner)

	require.NoError(t, d.LogQuestion(context.Background(), sampleQuestionEvent()))
	require.NoError(t, d.LogQuestion(context.Background(), sampleQuestionEvent()))
	require.NoError(t, d.LogFinalScore(context.Background(), ScoreEvent{}))
	d.Close()

	inner.mu.Lock()
	defer inner.mu.Unlock()
	assert.Equal(t, 2, inner.questions)
	assert.Equal(t, 1, inner.scores)
}

func TestDispatcher_SwallowsSinkErrors(t *testing.T) {
	inner := &countSink{err: errors.New("unreachable")}
	d := NewDispatcher(inner)

	require.NoError(t, d.LogQuestion(context.Background(), sampleQuestionEvent()))
	d.Close()

	inner.mu.Lock()
	defer inner.mu.Unlock()
	assert.Equal(t, 1, inner.questions)
}

func TestDispatcher_OutlivesCancelledContext(t *testing.T) {
	delivered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","message":"ok"}`))
		close(delivered)
	}))
	defer srv.Close()

	d := NewDispatcher(NewWebhook(srv.URL, time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.LogQuestion(ctx, sampleQuestionEvent()))
	cancel()
	d.Close()

	select {
	case <-delivered:
	default:
		t.Error("event should be delivered even after the caller's context is cancelled")
	}
}
