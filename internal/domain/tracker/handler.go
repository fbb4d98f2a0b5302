package tracker

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pillpal/internal/domain/doses"
	"pillpal/internal/domain/medications"
	"pillpal/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc))
		mr.Post("/", createMedicationHandler(svc))

		mr.Get("/{medicationID}", getMedicationHandler(svc))
		mr.Put("/{medicationID}", updateMedicationHandler(svc))

		// Requiere X-Confirm: yes (el borrado es irreversible)
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc))

		mr.Post("/{medicationID}/doses", recordDoseHandler(svc))
	})

	r.Get("/history", historyHandler(svc))
}

// medicationRequest sirve para alta y edición (PUT reemplaza todos los campos editables).
type medicationRequest struct {
	Name         string   `json:"name"`
	Dosage       string   `json:"dosage"`
	Frequency    string   `json:"frequency"`
	TimesOfDay   []string `json:"times_of_day"`
	ReminderTime *string  `json:"reminder_time"` // "HH:MM" o null = sin recordatorio
}

type scheduleResponse struct {
	Frequency  string   `json:"frequency"`
	TimesOfDay []string `json:"times_of_day"`
	Label      string   `json:"label"`
}

type medicationResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Dosage       string           `json:"dosage"`
	Schedule     scheduleResponse `json:"schedule"`
	ReminderTime *string          `json:"reminder_time"`
}

type doseResponse struct {
	ID             string    `json:"id"`
	MedicationID   string    `json:"medication_id"`
	MedicationName string    `json:"medication_name"`
	Dosage         string    `json:"dosage"`
	Timestamp      time.Time `json:"timestamp"`
	TakenAt        string    `json:"taken_at"`
}

// listMedicationsHandler godoc
// @Summary Listar medicaciones
// @Description Lista las medicaciones en orden de alta. `filter` acepta All, Morning, Afternoon o Evening; sin franjas se usa la hora del recordatorio.
// @Tags medications
// @Produce json
// @Param filter query string false "All | Morning | Afternoon | Evening"
// @Success 200 {array} medicationResponse
// @Failure 400 {string} string "unknown filter"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := medications.ParseFilter(r.URL.Query().Get("filter"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items := svc.Medications(r.Context(), f)
		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createMedicationHandler godoc
// @Summary Registrar medicación
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body medicationRequest true "Datos de la medicación"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / validación"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.AddMedication(r.Context(), req.toInput())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

// getMedicationHandler godoc
// @Summary Obtener medicación
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID de la medicación"
// @Success 200 {object} medicationResponse
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Medication(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// updateMedicationHandler godoc
// @Summary Editar medicación
// @Description Reemplaza nombre, dosis, schedule y recordatorio. El ID se conserva y el historial no cambia.
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID de la medicación"
// @Param payload body medicationRequest true "Datos completos; reminder_time null quita el recordatorio"
// @Success 200 {object} medicationResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [put]
func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.UpdateMedication(r.Context(), chi.URLParam(r, "medicationID"), req.toInput())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// deleteMedicationHandler godoc
// @Summary Borrar medicación
// @Description Borra la medicación y todas sus dosis. Irreversible: exige `X-Confirm: yes`.
// @Tags medications
// @Param medicationID path string true "ID de la medicación"
// @Param X-Confirm header string true "yes"
// @Success 204
// @Failure 404 {string} string "medication not found"
// @Failure 428 {string} string "confirmation required"
// @Router /medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "medicationID")

		if !middleware.Confirmed(r.Context()) {
			m, err := svc.Medication(r.Context(), id)
			if err != nil {
				writeError(w, err)
				return
			}
			http.Error(w, "confirmation required: "+DeletePrompt(m.Name), http.StatusPreconditionRequired)
			return
		}

		if err := svc.DeleteMedication(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// recordDoseHandler godoc
// @Summary Marcar dosis como tomada
// @Tags doses
// @Produce json
// @Param medicationID path string true "ID de la medicación"
// @Success 201 {object} doseResponse
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/doses [post]
func recordDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.RecordDose(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDoseResponse(d))
	}
}

// historyHandler godoc
// @Summary Historial de dosis
// @Tags doses
// @Produce json
// @Param order query string false "desc (default) | asc"
// @Success 200 {array} doseResponse
// @Failure 400 {string} string "unknown order"
// @Router /history [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := doses.ParseOrder(r.URL.Query().Get("order"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items := svc.History(r.Context(), order)
		out := make([]doseResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDoseResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// DeletePrompt es el texto de confirmación que muestran HTTP y CLI.
func DeletePrompt(name string) string {
	return "Are you sure you want to delete " + name + "? This action cannot be undone."
}

func (req medicationRequest) toInput() medications.Input {
	times := make([]medications.TimeOfDay, 0, len(req.TimesOfDay))
	for _, t := range req.TimesOfDay {
		times = append(times, medications.TimeOfDay(t))
	}
	return medications.Input{
		Name:         req.Name,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		TimesOfDay:   times,
		ReminderTime: req.ReminderTime,
	}
}

func toMedicationResponse(m medications.Medication) medicationResponse {
	times := make([]string, 0, len(m.Schedule.TimesOfDay))
	for _, t := range m.Schedule.TimesOfDay {
		times = append(times, string(t))
	}
	return medicationResponse{
		ID:     m.ID,
		Name:   m.Name,
		Dosage: m.Dosage,
		Schedule: scheduleResponse{
			Frequency:  m.Schedule.Frequency,
			TimesOfDay: times,
			Label:      m.Schedule.String(),
		},
		ReminderTime: m.ReminderTime,
	}
}

func toDoseResponse(d doses.Dose) doseResponse {
	return doseResponse{
		ID:             d.ID,
		MedicationID:   d.MedicationID,
		MedicationName: d.MedicationName,
		Dosage:         d.Dosage,
		Timestamp:      d.Timestamp,
		TakenAt:        doses.FormatTimestamp(d.Timestamp),
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, medications.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado en los handlers de cada módulo (tracker/medinfo).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
