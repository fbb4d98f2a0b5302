package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pillpal/internal/domain/medinfo"
	"pillpal/internal/observability/metrics"
	"pillpal/internal/router"

	"github.com/go-chi/chi/v5"
)

func TestHTTP_EndToEnd_MedicationLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Alta
	ibuID := createMedication(t, ts.URL, map[string]any{
		"name":          "Ibuprofen",
		"dosage":        "200mg",
		"frequency":     "Twice daily",
		"times_of_day":  []string{"Morning", "Evening"},
		"reminder_time": "09:00",
	})
	vitID := createMedication(t, ts.URL, map[string]any{
		"name":      "Vitamin D",
		"dosage":    "1000 IU",
		"frequency": "Once daily",
	})

	// 2) Filtro por franja
	{
		st, body := doReq(t, ts.URL, "GET", "/medications?filter=Morning", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var items []struct {
			ID       string `json:"id"`
			Schedule struct {
				Label string `json:"label"`
			} `json:"schedule"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].ID != ibuID {
			t.Fatalf("expected only ibuprofen for Morning, got %s", string(body))
		}
		if items[0].Schedule.Label != "Twice daily (Morning, Evening)" {
			t.Fatalf("unexpected schedule label %q", items[0].Schedule.Label)
		}
	}

	// 3) Tomas
	takeDose(t, ts.URL, ibuID)
	takeDose(t, ts.URL, vitID)
	takeDose(t, ts.URL, ibuID)

	{
		st, body := doReq(t, ts.URL, "GET", "/history", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 3 {
			t.Fatalf("expected 3 doses, got %d", len(items))
		}
		if items[0]["medication_name"] != "Ibuprofen" || items[0]["dosage"] != "200mg" {
			t.Fatalf("unexpected newest dose %v", items[0])
		}
	}

	// 4) Edición: conserva ID, limpia recordatorio
	{
		st, body := doReq(t, ts.URL, "PUT", "/medications/"+ibuID, map[string]any{
			"name":          "Ibuprofen",
			"dosage":        "400mg",
			"frequency":     "Once daily",
			"times_of_day":  []string{"Evening"},
			"reminder_time": nil,
		}, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID           string  `json:"id"`
			Dosage       string  `json:"dosage"`
			ReminderTime *string `json:"reminder_time"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID != ibuID || resp.Dosage != "400mg" || resp.ReminderTime != nil {
			t.Fatalf("unexpected update response %s", string(body))
		}
	}

	// 5) Borrado sin confirmación => 428
	{
		st, body := doReq(t, ts.URL, "DELETE", "/medications/"+ibuID, nil, nil)
		if st != http.StatusPreconditionRequired {
			t.Fatalf("expected 428 without confirmation, got %d", st)
		}
		if !strings.Contains(string(body), "Are you sure you want to delete Ibuprofen?") {
			t.Fatalf("expected confirmation prompt, got %s", string(body))
		}
	}

	// 6) Borrado confirmado: cascada sobre el historial
	{
		st, body := doReq(t, ts.URL, "DELETE", "/medications/"+ibuID, nil, map[string]string{"X-Confirm": "yes"})
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d body=%s", st, string(body))
		}
	}
	{
		_, body := doReq(t, ts.URL, "GET", "/history?order=asc", nil, nil)
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0]["medication_id"] != vitID {
			t.Fatalf("expected only vitamin D dose after cascade, got %s", string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/medications/"+ibuID, nil, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_ValidationAndNotFound(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	cases := []map[string]any{
		{"name": "", "dosage": "1", "frequency": "Once daily"},
		{"name": "A", "dosage": "1", "frequency": "Hourly"},
		{"name": "A", "dosage": "1", "frequency": "Once daily", "times_of_day": []string{"Morning", "Evening"}},
		{"name": "A", "dosage": "1", "frequency": "Once daily", "reminder_time": "25:00"},
	}
	for _, payload := range cases {
		st, _ := doReq(t, ts.URL, "POST", "/medications", payload, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", payload, st)
		}
	}

	if st, _ := doReq(t, ts.URL, "POST", "/medications/missing/doses", nil, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 dose for missing medication, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/medications?filter=Night", nil, nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown filter, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/history", nil, nil); st != http.StatusOK {
		t.Fatalf("expected 200 empty history, got %d", st)
	}
}

func TestHTTP_InfoNotConfigured(t *testing.T) {
	m, err := metrics.New(nil)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	ts := httptest.NewServer(router.NewRouter(router.Options{Metrics: m}))
	defer ts.Close()

	id := createMedication(t, ts.URL, map[string]any{"name": "Aspirin", "dosage": "81mg", "frequency": "Once daily"})

	st, body := doReq(t, ts.URL, "GET", "/medications/"+id+"/info", nil, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 info, got %d body=%s", st, string(body))
	}
	var resp struct {
		MedicationID string `json:"medication_id"`
		Error        string `json:"error"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.MedicationID != id || resp.Error != medinfo.MsgNotConfigured {
		t.Fatalf("unexpected info response %s", string(body))
	}

	if st, _ := doReq(t, ts.URL, "GET", "/medications/missing/info", nil, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 info for missing medication, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/metrics", nil, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "pillpal_http_requests_total") {
		t.Fatalf("expected metrics exposition, got %d", st)
	}
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	if st, body := doReq(t, ts.URL, "GET", "/health", nil, nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected health ok, got %d %s", st, string(body))
	}
	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "/medications/{medicationID}/doses") {
		t.Fatalf("expected swagger doc, got %d", st)
	}
}

func TestHTTP_SwaggerDocumentsEveryRoute(t *testing.T) {
	h := router.NewRouter(router.Options{})
	ts := httptest.NewServer(h)
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil, nil)
	if st != http.StatusOK {
		t.Fatalf("expected swagger doc, got %d", st)
	}
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("decode swagger doc: %v", err)
	}

	routes, ok := h.(chi.Routes)
	if !ok {
		t.Fatalf("router is not chi.Routes")
	}
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if strings.HasPrefix(route, "/swagger") || route == "/metrics" {
			return nil
		}
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		if _, ok := doc.Paths[route][strings.ToLower(method)]; !ok {
			t.Errorf("route %s %s missing from swagger doc", method, route)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}
}

func createMedication(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/medications", payload, nil)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create medication, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create medication: missing id body=%s", string(body))
	}
	return resp.ID
}

func takeDose(t *testing.T, baseURL, medicationID string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/medications/"+medicationID+"/doses", nil, nil)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 record dose, got %d body=%s", st, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any, headers map[string]string) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
