package medinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pillpal/internal/domain/medications"
	"pillpal/internal/platform/logger"
)

const (
	MsgNotConfigured = "Gemini API is not configured. Please provide an API key."
	MsgFailed        = "Sorry, we couldn't fetch information for this medication. Please try again later."
)

var (
	ErrNotConfigured = errors.New("text generation not configured")
	ErrUpstream      = errors.New("text generation upstream error")
)

// Summarizer genera texto a partir de un prompt (Gemini en prod).
type Summarizer interface {
	IsConfigured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result es lo que se muestra al usuario. Content y Error son excluyentes.
type Result struct {
	MedicationID   string
	MedicationName string

	Content string
	Error   string
}

func (r Result) OK() bool { return r.Error == "" }

// Recorder cuenta resultados de consultas (métricas).
type Recorder interface {
	InfoLookup(result string)
}

type Service struct {
	gen Summarizer
	log logger.Logger
	rec Recorder
}

func NewService(gen Summarizer, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{gen: gen, log: log.With(map[string]any{"component": "medinfo"})}
}

func (s *Service) WithRecorder(r Recorder) *Service {
	s.rec = r
	return s
}

func (s *Service) record(result string) {
	if s.rec != nil {
		s.rec.InfoLookup(result)
	}
}

// Prompt arma el pedido para el modelo.
func Prompt(name string) string {
	return `Provide a brief, simple, one-paragraph explanation for the common use of the medication "` + name + `". ` +
		`Do not provide medical advice, dosage information, or side effects. ` +
		`Start the explanation with "This medication is commonly used for...". ` +
		`Keep the language easy to understand for a non-medical person.`
}

// Lookup hace un único intento, sin reintentos ni cache. Nunca devuelve error:
// las fallas se traducen a mensajes para el usuario.
func (s *Service) Lookup(ctx context.Context, med medications.Medication) Result {
	res := Result{MedicationID: med.ID, MedicationName: med.Name}

	if s.gen == nil || !s.gen.IsConfigured() {
		s.record("not_configured")
		res.Error = MsgNotConfigured
		return res
	}

	text, err := s.gen.Generate(ctx, Prompt(med.Name))
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("%w: empty response", ErrUpstream)
	}
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			s.record("not_configured")
			res.Error = MsgNotConfigured
			return res
		}
		s.record("failed")
		s.log.Error("medication info lookup failed", map[string]any{
			"medication_id": med.ID,
			"error":         err,
		})
		res.Error = MsgFailed
		return res
	}

	s.record("ok")
	res.Content = strings.TrimSpace(text)
	return res
}

// LookupAsync corre Lookup en una goroutine. El canal recibe exactamente un Result.
// El Result lleva la medicación capturada al invocar, aunque luego se edite o borre.
func (s *Service) LookupAsync(ctx context.Context, med medications.Medication) <-chan Result {
	out := make(chan Result, 1)
	med = med.Clone()
	go func() {
		defer close(out)
		out <- s.Lookup(ctx, med)
	}()
	return out
}
