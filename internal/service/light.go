package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"kasa_bridge/internal/kasa"
	"kasa_bridge/internal/logger"
	"kasa_bridge/internal/models"
	"kasa_bridge/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidMinutes = errors.New("auto-off minutes must be positive")

// LightService drives the plug through a kasa.Executor and records every
// transition in the command log.
type LightService struct {
	exec      kasa.Executor
	eventRepo repository.EventRepo
	log       *logger.Logger
	now       func() time.Time
}

func NewLightService(exec kasa.Executor, eventRepo repository.EventRepo, log *logger.Logger) *LightService {
	if log == nil {
		log = logger.Nop()
	}
	return &LightService{exec: exec, eventRepo: eventRepo, log: log, now: time.Now}
}

// TurnOff issues `off`.
func (s *LightService) TurnOff(ctx context.Context) error {
	err := s.exec.Execute(ctx, "off")
	if err != nil {
		err = fmt.Errorf("turn off: %w", err)
	}
	s.record(ctx, models.EventOff, "light off", nil, err)
	return err
}

// TurnOnPlain issues `on` and then disables auto-off.
func (s *LightService) TurnOnPlain(ctx context.Context) error {
	err := s.turnOn(ctx, false, nil)
	s.record(ctx, models.EventOn, "light on", nil, err)
	return err
}

// TurnOnTimed issues `on`, programs the auto-off minutes and enables auto-off.
func (s *LightService) TurnOnTimed(ctx context.Context, minutes int) error {
	if minutes <= 0 {
		return ErrInvalidMinutes
	}
	err := s.turnOn(ctx, true, &minutes)
	s.record(ctx, models.EventTimedOn,
		fmt.Sprintf("light on for %d minutes", minutes),
		map[string]any{"minutes": minutes}, err)
	return err
}

// SetAutoOff sets the minutes (when given) and then the enabled flag.
func (s *LightService) SetAutoOff(ctx context.Context, enabled bool, minutes *int) error {
	if minutes != nil && *minutes <= 0 {
		return ErrInvalidMinutes
	}
	err := s.setAutoOff(ctx, enabled, minutes)
	meta := map[string]any{"enabled": enabled}
	if minutes != nil {
		meta["minutes"] = *minutes
	}
	s.record(ctx, models.EventAutoOff, "auto-off updated", meta, err)
	return err
}

// the device must be on before the auto-off policy is programmed
func (s *LightService) turnOn(ctx context.Context, autoOff bool, minutes *int) error {
	if err := s.exec.Execute(ctx, "on"); err != nil {
		return fmt.Errorf("turn on: %w", err)
	}
	return s.setAutoOff(ctx, autoOff, minutes)
}

func (s *LightService) setAutoOff(ctx context.Context, enabled bool, minutes *int) error {
	if minutes != nil {
		if err := s.exec.Execute(ctx, "feature", "auto_off_minutes", strconv.Itoa(*minutes)); err != nil {
			return fmt.Errorf("set auto-off minutes: %w", err)
		}
	}
	flag := "False"
	if enabled {
		flag = "True"
	}
	if err := s.exec.Execute(ctx, "feature", "auto_off_enabled", flag); err != nil {
		return fmt.Errorf("set auto-off enabled: %w", err)
	}
	return nil
}

// record never changes the outcome of a transition.
func (s *LightService) record(ctx context.Context, typ, desc string, meta any, opErr error) {
	if s.eventRepo == nil {
		return
	}
	ev := models.CommandEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  s.now().UTC(),
		Type:        typ,
		Trigger:     TriggerFrom(ctx),
		Success:     opErr == nil,
		Description: desc,
		Metadata:    meta,
	}
	if opErr != nil {
		ev.Error = opErr.Error()
	}
	// a cancelled caller still gets its command logged
	if err := s.eventRepo.Append(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warnw("command_event_append_failed", "type", typ, "err", err)
	}
}
