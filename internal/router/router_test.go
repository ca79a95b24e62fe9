package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"medication-tracker/internal/router"
)

type todayDose struct {
	ID             string     `json:"id"`
	MedicationID   string     `json:"medication_id"`
	TimeSlotID     string     `json:"time_slot_id"`
	Day            string     `json:"day"`
	State          string     `json:"state"`
	TakenAt        *time.Time `json:"taken_at"`
	MedicationName string     `json:"medication_name"`
	Time           string     `json:"time"`
	WithFood       bool       `json:"with_food"`
	Late           bool       `json:"late"`
}

type stats struct {
	Total   int `json:"total"`
	Taken   int `json:"taken"`
	Pending int `json:"pending"`
	Skipped int `json:"skipped"`
}

type today struct {
	Date     string      `json:"date"`
	Greeting string      `json:"greeting"`
	Doses    []todayDose `json:"doses"`
	NextDue  *todayDose  `json:"next_due"`
	Stats    stats       `json:"stats"`
}

// 2024-03-10 09:30 UTC
var fixedNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_DailyDoses(t *testing.T) {
	ts := newServer(t)

	// 1) Alta de Ibuprofeno con tres horarios
	medID := createMedication(t, ts.URL, map[string]any{
		"name":      "Ibuprofeno",
		"dose":      "600mg",
		"times":     []string{"22:00", "08:00", "14:00"},
		"with_food": true,
	})

	// 2) Primer GET /today materializa las tres tomas
	first := getToday(t, ts.URL, "")
	if first.Date != "2024-03-10" {
		t.Fatalf("expected date 2024-03-10, got %s", first.Date)
	}
	if first.Greeting != "Buenos días" {
		t.Fatalf("expected morning greeting, got %s", first.Greeting)
	}
	if len(first.Doses) != 3 {
		t.Fatalf("expected 3 doses, got %d", len(first.Doses))
	}
	for i, want := range []string{"08:00", "14:00", "22:00"} {
		d := first.Doses[i]
		if d.Time != want || d.State != "pending" || d.MedicationID != medID {
			t.Fatalf("unexpected dose %d: %+v", i, d)
		}
	}
	if !first.Doses[0].Late || first.Doses[1].Late {
		t.Fatalf("expected only 08:00 late at 09:30: %+v", first.Doses)
	}
	if first.NextDue == nil || first.NextDue.Time != "14:00" {
		t.Fatalf("expected next due 14:00, got %+v", first.NextDue)
	}
	if first.Stats != (stats{Total: 3, Pending: 3}) {
		t.Fatalf("unexpected stats: %+v", first.Stats)
	}

	// 3) Segundo GET no duplica: mismas tomas, mismos ids
	second := getToday(t, ts.URL, "")
	require.Len(t, second.Doses, 3)
	for i := range first.Doses {
		if first.Doses[i].ID != second.Doses[i].ID {
			t.Fatalf("dose %d changed id: %s -> %s", i, first.Doses[i].ID, second.Doses[i].ID)
		}
	}

	// 4) Confirmar la de 08:00
	morningID := first.Doses[0].ID
	taken := confirm(t, ts.URL, morningID, "taken")
	if taken.State != "taken" || taken.TakenAt == nil || !taken.TakenAt.Equal(fixedNow) {
		t.Fatalf("unexpected taken dose: %+v", taken)
	}

	// 5) Repetir taken / pedir skipped no modifica nada
	again := confirm(t, ts.URL, morningID, "taken")
	if again.State != "taken" || !again.TakenAt.Equal(*taken.TakenAt) {
		t.Fatalf("taken dose changed on repeat: %+v", again)
	}
	skipped := confirm(t, ts.URL, morningID, "skipped")
	if skipped.State != "taken" {
		t.Fatalf("terminal dose moved to %s", skipped.State)
	}

	// 6) Omitir la de 22:00
	if d := confirm(t, ts.URL, first.Doses[2].ID, "skipped"); d.State != "skipped" || d.TakenAt != nil {
		t.Fatalf("unexpected skipped dose: %+v", d)
	}

	// 7) Stats reflejan las transiciones
	{
		st, body := doReq(t, ts.URL, "GET", "/today/stats", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats, got %d body=%s", st, string(body))
		}
		var s stats
		require.NoError(t, json.Unmarshal(body, &s))
		if s != (stats{Total: 3, Taken: 1, Pending: 1, Skipped: 1}) {
			t.Fatalf("unexpected stats: %+v", s)
		}
	}

	// 8) A las 23:00 no queda ninguna por venir: la próxima es la pendiente más temprana
	{
		st, body := doReq(t, ts.URL, "GET", "/today/next?at=2024-03-10T23:00:00Z", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 next, got %d body=%s", st, string(body))
		}
		var d todayDose
		require.NoError(t, json.Unmarshal(body, &d))
		if d.Time != "14:00" {
			t.Fatalf("expected 14:00 fallback, got %s", d.Time)
		}
	}

	// 9) Historial del día
	{
		st, body := doReq(t, ts.URL, "GET", "/doses?from=2024-03-10&to=2024-03-10", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d body=%s", st, string(body))
		}
		var items []todayDose
		require.NoError(t, json.Unmarshal(body, &items))
		require.Len(t, items, 3)
	}

	// 10) Desactivar: deja de generar tomas pero el historial sigue
	{
		st, body := doReq(t, ts.URL, "DELETE", "/medications/"+medID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 deactivate, got %d body=%s", st, string(body))
		}
	}
	if after := getToday(t, ts.URL, ""); len(after.Doses) != 0 || after.NextDue != nil {
		t.Fatalf("expected no doses after deactivation, got %+v", after)
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/doses/"+morningID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get dose of inactive medication, got %d", st)
		}
	}
}

func TestHTTP_NextDue_NoPending(t *testing.T) {
	ts := newServer(t)

	st, _ := doReq(t, ts.URL, "GET", "/today/next", nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 with no medications, got %d", st)
	}
}

func TestHTTP_NotFoundAndBadInput(t *testing.T) {
	ts := newServer(t)

	cases := []struct {
		method, path string
		payload      any
		want         int
	}{
		{"GET", "/doses/missing", nil, http.StatusNotFound},
		{"POST", "/doses/missing/taken", nil, http.StatusNotFound},
		{"POST", "/doses/missing/skipped", nil, http.StatusNotFound},
		{"GET", "/medications/missing", nil, http.StatusNotFound},
		{"POST", "/medications", map[string]any{"name": "  "}, http.StatusBadRequest},
		{"POST", "/medications", map[string]any{"name": "X", "times": []string{"25:00"}}, http.StatusBadRequest},
		{"GET", "/today?at=yesterday", nil, http.StatusBadRequest},
		{"GET", "/doses?from=2024-03-10&to=2024-03-01", nil, http.StatusBadRequest},
	}

	for _, tc := range cases {
		st, body := doReq(t, ts.URL, tc.method, tc.path, tc.payload)
		if st != tc.want {
			t.Fatalf("%s %s: expected %d, got %d body=%s", tc.method, tc.path, tc.want, st, string(body))
		}
	}
}

func TestHTTP_AddSlotToInactiveMedication(t *testing.T) {
	ts := newServer(t)

	medID := createMedication(t, ts.URL, map[string]any{"name": "Omeprazol", "times": []string{"08:00"}})

	st, _ := doReq(t, ts.URL, "DELETE", "/medications/"+medID, nil)
	require.Equal(t, http.StatusOK, st)

	st, body := doReq(t, ts.URL, "POST", "/medications/"+medID+"/slots", map[string]any{"time": "20:00"})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 adding slot to inactive medication, got %d body=%s", st, string(body))
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, st)
	require.Equal(t, "ok", string(body))

	// una materialización para que los contadores existan
	createMedication(t, ts.URL, map[string]any{"name": "Vitamina D", "times": []string{"12:00"}})
	getToday(t, ts.URL, "")

	st, body = doReq(t, ts.URL, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, st)
	require.True(t, strings.Contains(string(body), "medtracker_doses_materialized_total"))
}

func TestHTTP_SwaggerDocumentsEveryRoute(t *testing.T) {
	h := router.NewRouter(router.Options{Location: time.UTC})
	routes, ok := h.(chi.Routes)
	require.True(t, ok)

	want := map[string]bool{}
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if route == "/health" || route == "/metrics" || strings.HasPrefix(route, "/swagger") {
			return nil
		}
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		want[strings.ToLower(method)+" "+route] = true
		return nil
	})
	require.NoError(t, err)
	require.Len(t, want, 17)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, st)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))

	got := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			got[method+" "+path] = true
		}
	}
	require.Equal(t, want, got)
}

func createMedication(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/medications", payload)
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

func getToday(t *testing.T, baseURL, at string) today {
	t.Helper()

	path := "/today"
	if at != "" {
		path += "?at=" + at
	}
	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 today, got %d body=%s", st, string(body))
	}

	var v today
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decode today: %v body=%s", err, string(body))
	}
	return v
}

func confirm(t *testing.T, baseURL, doseID, action string) todayDose {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/doses/"+doseID+"/"+action, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 %s, got %d body=%s", action, st, string(body))
	}

	var d todayDose
	if err := json.Unmarshal(body, &d); err != nil {
		t.Fatalf("decode dose: %v body=%s", err, string(body))
	}
	return d
}

func doReq(t *testing.T, baseURL, method, path string, payload any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
