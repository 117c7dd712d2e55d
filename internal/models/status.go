package models

import "time"

// ScheduleEntry describes one registered cron job.
type ScheduleEntry struct {
	Name     string    `json:"name"`
	Spec     string    `json:"spec"`
	NextRun  time.Time `json:"next_run,omitempty"`
	PrevRun  time.Time `json:"prev_run,omitempty"`
	Location string    `json:"location"`
}

// Status is a point-in-time snapshot of the bridge.
type Status struct {
	ControlChannelID string          `json:"control_channel_id,omitempty"`
	SchedulerRunning bool            `json:"scheduler_running"`
	Schedule         []ScheduleEntry `json:"schedule"`
	GeneratedAt      time.Time       `json:"generated_at"`
}
