package reminders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pillpal/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

const DefaultSchedule = "* * * * *"

var ErrAlreadyStarted = errors.New("reminder scheduler already started")

// Scheduler dispara Evaluator.Tick según una expresión cron (cada minuto por defecto).
// Los ticks no se solapan y los perdidos no se recuperan.
type Scheduler struct {
	eval *Evaluator
	spec string
	log  logger.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	started bool
}

func NewScheduler(eval *Evaluator, spec string, log logger.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{eval: eval, spec: spec, log: log.With(map[string]any{"component": "scheduler"})}, nil
}

// Start corre el gate de permiso, registra el job y vuelve enseguida.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}

	s.eval.EnsurePermission(ctx)

	cronLog := logger.NewCronAdapter(s.log)
	c := cron.New(
		cron.WithLocation(time.Local),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	tickCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if _, err := c.AddFunc(s.spec, func() { s.eval.Tick(tickCtx) }); err != nil {
		cancel()
		return fmt.Errorf("schedule reminders: %w", err)
	}
	c.Start()

	s.cron = c
	s.cancel = cancel
	s.started = true
	s.log.Info("reminder scheduler started", map[string]any{"schedule": s.spec})
	return nil
}

// Stop deja de programar ticks y espera al que esté corriendo, o a que ctx venza.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c, cancel := s.cron, s.cancel
	s.cron, s.cancel, s.started = nil, nil, false
	s.mu.Unlock()

	if c == nil {
		return nil
	}

	done := c.Stop()
	defer cancel()

	select {
	case <-done.Done():
		s.log.Info("reminder scheduler stopped", nil)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
