package reminders

import (
	"context"
	"time"

	"pillpal/internal/domain/doses"
	"pillpal/internal/domain/medications"
	"pillpal/internal/platform/logger"
	"pillpal/internal/ports/notify"

	"github.com/patrickmn/go-cache"
)

// Source entrega una copia consistente del estado (tracker.Service).
type Source interface {
	Snapshot(ctx context.Context) ([]medications.Medication, []doses.Dose)
}

// Recorder cuenta ticks y resultados (métricas). Puede ser nil.
type Recorder interface {
	ReminderTick()
	Reminder(outcome string)
}

const (
	OutcomeSent       = "sent"
	OutcomeSuppressed = "suppressed"
	OutcomeFailed     = "failed"
	OutcomeDuplicate  = "duplicate"
)

type Options struct {
	Source      Source
	Notifier    notify.Notifier
	Permissions PermissionStore
	Icon        string

	Logger   logger.Logger
	Recorder Recorder
}

// Evaluator decide y envía los recordatorios de cada tick.
type Evaluator struct {
	src      Source
	notifier notify.Notifier
	icon     string
	log      logger.Logger
	rec      Recorder
	gate     *permissionGate

	// tag+minuto ya enviados; sin janitor, se limpia en cada tick
	sent *cache.Cache
	now  func() time.Time
}

func NewEvaluator(opts Options) *Evaluator {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "reminders"})

	rec := opts.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}

	return &Evaluator{
		src:      opts.Source,
		notifier: opts.Notifier,
		icon:     opts.Icon,
		log:      log,
		rec:      rec,
		gate: &permissionGate{
			notifier: opts.Notifier,
			store:    opts.Permissions,
			log:      log,
		},
		sent: cache.New(2*time.Minute, 0),
		now:  time.Now,
	}
}

// EnsurePermission corre el gate de permiso (una vez al arrancar).
func (e *Evaluator) EnsurePermission(ctx context.Context) notify.Permission {
	return e.gate.Ensure(ctx)
}

// Tick evalúa el minuto actual y envía lo que corresponda. Los errores de envío
// se loguean y cuentan; nunca cortan el tick.
func (e *Evaluator) Tick(ctx context.Context) {
	e.rec.ReminderTick()
	e.sent.DeleteExpired()

	if e.gate.Effective(ctx) != notify.PermissionGranted {
		return
	}

	now := e.now()
	meds, history := e.src.Snapshot(ctx)

	for _, d := range Evaluate(meds, history, now) {
		fields := map[string]any{
			"medication_id": d.Medication.ID,
			"scheduled":     d.Scheduled.Format(time.RFC3339),
		}

		if d.Taken {
			e.rec.Reminder(OutcomeSuppressed)
			e.log.Debug("reminder suppressed, dose already taken", fields)
			continue
		}

		key := d.Medication.ID + "@" + now.Format("2006-01-02T15:04")
		if err := e.sent.Add(key, struct{}{}, cache.DefaultExpiration); err != nil {
			e.rec.Reminder(OutcomeDuplicate)
			continue
		}

		if err := e.notifier.Send(ctx, NotificationFor(d.Medication, e.icon)); err != nil {
			e.sent.Delete(key)
			e.rec.Reminder(OutcomeFailed)
			fields["error"] = err
			e.log.Error("reminder delivery failed", fields)
			continue
		}

		e.rec.Reminder(OutcomeSent)
		e.log.Info("reminder sent", fields)
	}
}

type nopRecorder struct{}

func (nopRecorder) ReminderTick()   {}
func (nopRecorder) Reminder(string) {}
