package report

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// closeGrace is how long Close waits for in-flight sends.
const closeGrace = 5 * time.Second

// Dispatcher wraps a Sink and delivers each event on its own goroutine.
// Failures are logged and otherwise dropped, so callers return
// immediately and quiz state transitions never block on the network.
type Dispatcher struct {
	inner Sink
	wg    sync.WaitGroup
}

// NewDispatcher wraps inner with asynchronous, fire-and-forget delivery.
func NewDispatcher(inner Sink) *Dispatcher {
	return &Dispatcher{inner: inner}
}

func (d *Dispatcher) LogQuestion(ctx context.Context, ev QuestionEvent) error {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.inner.LogQuestion(context.WithoutCancel(ctx), ev); err != nil {
			slog.Warn("question event not delivered",
				"sessionId", ev.SessionID,
				"questionId", ev.QuestionID,
				"err", err)
		}
	}()
	return nil
}

func (d *Dispatcher) LogFinalScore(ctx context.Context, ev ScoreEvent) error {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.inner.LogFinalScore(context.WithoutCancel(ctx), ev); err != nil {
			slog.Warn("final score event not delivered",
				"sessionId", ev.SessionID,
				"err", err)
		}
	}()
	return nil
}

// Close waits for in-flight sends, giving up after a grace period so a
// hung endpoint cannot stall shutdown.
func (d *Dispatcher) Close() {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(closeGrace):
		slog.Warn("gave up waiting for in-flight event reports")
	}
}
