package medinfo

import (
	"context"
	"encoding/json"
	"net/http"

	"pillpal/internal/domain/medications"

	"github.com/go-chi/chi/v5"
)

// MedicationFinder lo implementa tracker.Service.
type MedicationFinder interface {
	Medication(ctx context.Context, id string) (medications.Medication, error)
}

func RegisterRoutes(r chi.Router, svc *Service, meds MedicationFinder) {
	r.Get("/medications/{medicationID}/info", infoHandler(svc, meds))
}

type infoResponse struct {
	MedicationID   string `json:"medication_id"`
	MedicationName string `json:"medication_name"`
	Content        string `json:"content,omitempty"`
	Error          string `json:"error,omitempty"`
}

// infoHandler godoc
// @Summary Descripción de la medicación
// @Description Pide al servicio de texto una explicación breve del uso común. Sin API key o ante fallas responde 200 con `error` para mostrar al usuario.
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID de la medicación"
// @Success 200 {object} infoResponse
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/info [get]
func infoHandler(svc *Service, meds MedicationFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := meds.Medication(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}

		res := svc.Lookup(r.Context(), m)
		writeJSON(w, http.StatusOK, infoResponse{
			MedicationID:   res.MedicationID,
			MedicationName: res.MedicationName,
			Content:        res.Content,
			Error:          res.Error,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
