// Package scheduler fires fixed wall-clock jobs against the light.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"kasa_bridge/internal/logger"
	"kasa_bridge/internal/metrics"
	"kasa_bridge/internal/models"
	"kasa_bridge/internal/service"

	"github.com/robfig/cron/v3"
)

// Six-field expressions: sec min hour dom month dow.
const (
	MidnightOffSpec = "0 0 0 * * *"
	EveningOnSpec   = "0 0 17 * * *"
)

var ErrAlreadyRunning = errors.New("scheduler already running")

// Job is one recurring action. Run receives a context tagged with the
// schedule trigger.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// DefaultJobs turns the light off at midnight and on at 17:00.
func DefaultJobs(light service.Light) []Job {
	return []Job{
		{Name: "midnight-off", Spec: MidnightOffSpec, Run: light.TurnOff},
		{Name: "evening-on", Spec: EveningOnSpec, Run: light.TurnOnPlain},
	}
}

type entry struct {
	job Job
	id  cron.EntryID
}

// Scheduler goes from not-started to running once. Each firing runs in its
// own goroutine and reports only through logs and metrics.
type Scheduler struct {
	cron    *cron.Cron
	loc     *time.Location
	log     *logger.Logger
	entries []entry

	mu      sync.Mutex
	running bool
	baseCtx context.Context
}

// New registers jobs; an invalid expression aborts construction.
func New(jobs []Job, loc *time.Location, log *logger.Logger) (*Scheduler, error) {
	if log == nil {
		log = logger.Nop()
	}
	if loc == nil {
		loc = time.Local
	}
	cl := cronLogger{log: log}
	s := &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		loc:     loc,
		log:     log,
		baseCtx: context.Background(),
	}
	for _, j := range jobs {
		if j.Run == nil {
			return nil, fmt.Errorf("register job %q: no action", j.Name)
		}
		id, err := s.cron.AddFunc(j.Spec, s.wrap(j))
		if err != nil {
			return nil, fmt.Errorf("register job %q (%s): %w", j.Name, j.Spec, err)
		}
		s.entries = append(s.entries, entry{job: j, id: id})
		log.Infow("job_registered", "job", j.Name, "spec", j.Spec, "location", loc.String())
	}
	return s, nil
}

// Start begins firing jobs. Job runs derive from ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	if ctx != nil {
		s.baseCtx = ctx
	}
	now := time.Now()
	s.log.Infow("scheduler_starting",
		"utc", now.UTC().Format(time.RFC3339),
		"local", now.Local().Format(time.RFC3339),
		"schedule_zone", now.In(s.loc).Format(time.RFC3339),
	)
	s.cron.Start()
	s.running = true
	return nil
}

// Stop halts future firings; the returned context is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	return s.cron.Stop()
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Entries reports every job with its next and previous firing.
func (s *Scheduler) Entries() []models.ScheduleEntry {
	now := time.Now().In(s.loc)
	out := make([]models.ScheduleEntry, 0, len(s.entries))
	for _, e := range s.entries {
		ce := s.cron.Entry(e.id)
		next := ce.Next
		if next.IsZero() && ce.Schedule != nil {
			next = ce.Schedule.Next(now)
		}
		out = append(out, models.ScheduleEntry{
			Name:     e.job.Name,
			Spec:     e.job.Spec,
			NextRun:  next,
			PrevRun:  ce.Prev,
			Location: s.loc.String(),
		})
	}
	return out
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseCtx
}

func (s *Scheduler) wrap(j Job) func() {
	return func() {
		ctx := service.WithTrigger(s.context(), models.TriggerSchedule)
		s.log.Infow("job_running", "job", j.Name, "at", time.Now().In(s.loc).Format(time.RFC3339))
		err := j.Run(ctx)
		metrics.ObserveJobRun(j.Name, err)
		if err != nil {
			s.log.Errorw("job_failed", "job", j.Name, "err", err)
			return
		}
		s.log.Infow("job_succeeded", "job", j.Name)
	}
}

// cronLogger adapts the zap logger to cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw("cron_"+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw("cron_"+msg, append(keysAndValues, "err", err)...)
}
