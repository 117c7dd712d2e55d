package service

import (
	"context"

	"kasa_bridge/internal/kasa"
	"kasa_bridge/internal/logger"
	"kasa_bridge/internal/models"
	"kasa_bridge/internal/repository"
)

// Light composes kasa commands into device state transitions. Each step's
// failure stops the sequence and is returned to the caller.
type Light interface {
	TurnOff(ctx context.Context) error
	TurnOnPlain(ctx context.Context) error
	TurnOnTimed(ctx context.Context, minutes int) error
	SetAutoOff(ctx context.Context, enabled bool, minutes *int) error
}

// EventLog exposes the command log.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.CommandEvent, error)
}

// Authorization guards the admin HTTP API.
type Authorization interface {
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Service aggregates all sub-services.
type Service struct {
	Light
	EventLog
	Authorization
}

func NewService(repos *repository.Repository, exec kasa.Executor, auth AuthConfig, log *logger.Logger) *Service {
	return &Service{
		Light:         NewLightService(exec, repos.EventRepo, log),
		EventLog:      NewEventLogService(repos.EventRepo),
		Authorization: NewAuthService(auth),
	}
}

type triggerKey struct{}

// WithTrigger tags ctx with what caused the commands issued under it.
func WithTrigger(ctx context.Context, t models.Trigger) context.Context {
	return context.WithValue(ctx, triggerKey{}, t)
}

// TriggerFrom returns the trigger stored by WithTrigger.
func TriggerFrom(ctx context.Context) models.Trigger {
	if t, ok := ctx.Value(triggerKey{}).(models.Trigger); ok {
		return t
	}
	return models.TriggerUnknown
}
