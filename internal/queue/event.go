// Package queue carries schedule change notifications over RabbitMQ.
package queue

import "time"

// ScheduleUpdatedQueue is the durable queue refresh runs publish to.
const ScheduleUpdatedQueue = "schedule.updated"

// ScheduleUpdatedEvent is published after an incremental refresh imported
// something.  Consumers reload their program snapshot and drop cached
// responses.
type ScheduleUpdatedEvent struct {
	RunID        string    `json:"run_id"`
	ChangedDays  []string  `json:"changed_days"`
	RemovedDays  []string  `json:"removed_days,omitempty"`
	FilmsChanged bool      `json:"films_changed"`
	RefreshedAt  time.Time `json:"refreshed_at"`
}

// Empty reports whether the event describes no change at all.
func (e ScheduleUpdatedEvent) Empty() bool {
	return len(e.ChangedDays) == 0 && len(e.RemovedDays) == 0 && !e.FilmsChanged
}
