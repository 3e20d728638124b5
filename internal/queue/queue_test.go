package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestConsumer_Process(t *testing.T) {
	var got ScheduleUpdatedEvent
	c := NewConsumer("amqp://unused", func(_ context.Context, ev ScheduleUpdatedEvent) error {
		got = ev
		return nil
	})

	ev := ScheduleUpdatedEvent{
		RunID:        "run-1",
		ChangedDays:  []string{"2026-02-03"},
		FilmsChanged: true,
		RefreshedAt:  time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC),
	}
	body, _ := json.Marshal(ev)
	if err := c.process(context.Background(), body); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if got.RunID != "run-1" || len(got.ChangedDays) != 1 || !got.FilmsChanged || !got.RefreshedAt.Equal(ev.RefreshedAt) {
		t.Errorf("handler received %+v", got)
	}
}

func TestConsumer_ProcessErrors(t *testing.T) {
	boom := errors.New("reload failed")
	c := NewConsumer("amqp://unused", func(context.Context, ScheduleUpdatedEvent) error { return boom })

	if err := c.process(context.Background(), []byte("not json")); err == nil {
		t.Error("process() accepted invalid JSON")
	}
	if err := c.process(context.Background(), []byte(`{"run_id":"x"}`)); !errors.Is(err, boom) {
		t.Errorf("process() error = %v, want handler error", err)
	}
}

func TestConsumer_RunStopsOnCancel(t *testing.T) {
	c := NewConsumer("amqp://127.0.0.1:1/", func(context.Context, ScheduleUpdatedEvent) error { return nil })
	c.minBackoff = 10 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Run() = %v, want deadline exceeded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestScheduleUpdatedEvent_Empty(t *testing.T) {
	if !(ScheduleUpdatedEvent{RunID: "x"}).Empty() {
		t.Error("event without changes not empty")
	}
	if (ScheduleUpdatedEvent{RemovedDays: []string{"2026-02-01"}}).Empty() {
		t.Error("event with removed day reported empty")
	}
}
