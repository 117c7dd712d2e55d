package models

import "time"

// Event types recorded in the command log.
const (
	EventOn      = "ON"
	EventOff     = "OFF"
	EventTimedOn = "TIMED_ON"
	EventAutoOff = "AUTO_OFF"
)

// Trigger identifies what caused a device command.
type Trigger string

const (
	TriggerInteraction Trigger = "interaction"
	TriggerSchedule    Trigger = "schedule"
	TriggerAPI         Trigger = "api"
	TriggerUnknown     Trigger = "unknown"
)

// CommandEvent is a single entry of the command log.
type CommandEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // ON | OFF | TIMED_ON | AUTO_OFF
	Trigger     Trigger   `json:"trigger"`
	Success     bool      `json:"success"`
	Description string    `json:"description"`
	Error       string    `json:"error,omitempty"`
	Metadata    any       `json:"metadata,omitempty"`
}
