package doses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/today", func(tr chi.Router) {
		tr.Get("/", todayHandler(svc))
		tr.Get("/doses", todayDosesHandler(svc))
		tr.Get("/next", nextDueHandler(svc))
		tr.Get("/stats", todayStatsHandler(svc))
	})

	r.Route("/doses", func(dr chi.Router) {
		dr.Get("/", historyHandler(svc))
		dr.Get("/{doseID}", getDoseHandler(svc))
		dr.Post("/{doseID}/taken", confirmTakenHandler(svc))
		dr.Post("/{doseID}/skipped", confirmSkippedHandler(svc))
	})
}

// doseResponse representa una toma registrada.
type doseResponse struct {
	ID           string     `json:"id"`
	MedicationID string     `json:"medication_id"`
	TimeSlotID   string     `json:"time_slot_id"`
	Day          string     `json:"day"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	State        State      `json:"state" enums:"pending,taken,skipped,postponed"`
	Notes        string     `json:"notes,omitempty"`
}

// todayDoseResponse agrega los datos del medicamento y del horario para mostrar.
type todayDoseResponse struct {
	doseResponse
	MedicationName  string `json:"medication_name"`
	MedicationDose  string `json:"medication_dose"`
	MedicationColor string `json:"medication_color"`
	Time            string `json:"time"`
	WithFood        bool   `json:"with_food"`
	Late            bool   `json:"late"`
}

type todayResponse struct {
	Date     string              `json:"date"`
	Greeting string              `json:"greeting"`
	Doses    []todayDoseResponse `json:"doses"`
	NextDue  *todayDoseResponse  `json:"next_due"`
	Stats    Stats               `json:"stats"`
}

// todayHandler godoc
// @Summary Resumen del día
// @Description Materializa las tomas del día (idempotente) y devuelve tomas, próxima toma y estadísticas.
// @Tags today
// @Produce json
// @Param at query string false "Instante de referencia RFC3339 (default: ahora)"
// @Success 200 {object} todayResponse
// @Failure 400 {string} string "at must be RFC3339"
// @Failure 500 {string} string "internal error"
// @Router /today [get]
func todayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, ok := referenceInstant(w, r, svc)
		if !ok {
			return
		}

		v, err := svc.Today(r.Context(), now)
		if err != nil {
			writeError(w, err)
			return
		}

		out := todayResponse{
			Date:     DayKey(v.Day),
			Greeting: v.Greeting,
			Doses:    toTodayDoseResponses(v.Doses),
			Stats:    v.Stats,
		}
		if v.NextDue != nil {
			next := toTodayDoseResponse(*v.NextDue)
			out.NextDue = &next
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// todayDosesHandler godoc
// @Summary Tomas del día
// @Tags today
// @Produce json
// @Param at query string false "Instante de referencia RFC3339"
// @Success 200 {array} todayDoseResponse
// @Router /today/doses [get]
func todayDosesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, ok := referenceInstant(w, r, svc)
		if !ok {
			return
		}
		items, err := svc.TodayDoses(r.Context(), now)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTodayDoseResponses(items))
	}
}

// nextDueHandler godoc
// @Summary Próxima toma
// @Description Primera pendiente que aún no pasó; si todas pasaron, la pendiente más temprana. 204 si no hay pendientes.
// @Tags today
// @Produce json
// @Param at query string false "Instante de referencia RFC3339"
// @Success 200 {object} todayDoseResponse
// @Success 204 {string} string "sin tomas pendientes"
// @Router /today/next [get]
func nextDueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, ok := referenceInstant(w, r, svc)
		if !ok {
			return
		}
		d, found, err := svc.NextDue(r.Context(), now)
		if err != nil {
			writeError(w, err)
			return
		}
		if !found {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, toTodayDoseResponse(d))
	}
}

// todayStatsHandler godoc
// @Summary Estadísticas del día
// @Tags today
// @Produce json
// @Param at query string false "Instante de referencia RFC3339"
// @Success 200 {object} Stats
// @Router /today/stats [get]
func todayStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, ok := referenceInstant(w, r, svc)
		if !ok {
			return
		}
		st, err := svc.TodayStats(r.Context(), now)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// historyHandler godoc
// @Summary Historial de tomas
// @Tags doses
// @Produce json
// @Param from query string false "Día inicial YYYY-MM-DD (default: hoy)"
// @Param to query string false "Día final YYYY-MM-DD (default: from)"
// @Success 200 {array} doseResponse
// @Failure 400 {string} string "from/to must be YYYY-MM-DD"
// @Router /doses [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := svc.Now()
		if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
			t, err := time.ParseInLocation(time.DateOnly, v, svc.Location())
			if err != nil {
				http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			from = t
		}
		to := from
		if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
			t, err := time.ParseInLocation(time.DateOnly, v, svc.Location())
			if err != nil {
				http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			to = t
		}

		items, err := svc.History(r.Context(), from, to)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]doseResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDoseResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getDoseHandler godoc
// @Summary Obtener toma
// @Description Las tomas de medicamentos desactivados siguen disponibles por id.
// @Tags doses
// @Produce json
// @Param doseID path string true "ID de la toma"
// @Success 200 {object} doseResponse
// @Failure 404 {string} string "dose not found"
// @Router /doses/{doseID} [get]
func getDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "doseID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoseResponse(d))
	}
}

// confirmTakenHandler godoc
// @Summary Confirmar toma
// @Description pending -> taken. Si la toma ya es terminal responde 200 con el estado actual sin modificarlo.
// @Tags doses
// @Produce json
// @Param doseID path string true "ID de la toma"
// @Success 200 {object} doseResponse
// @Failure 404 {string} string "dose not found"
// @Router /doses/{doseID}/taken [post]
func confirmTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.ConfirmTaken(r.Context(), chi.URLParam(r, "doseID"), svc.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoseResponse(d))
	}
}

// confirmSkippedHandler godoc
// @Summary Omitir toma
// @Description pending -> skipped. Idempotente igual que taken.
// @Tags doses
// @Produce json
// @Param doseID path string true "ID de la toma"
// @Success 200 {object} doseResponse
// @Failure 404 {string} string "dose not found"
// @Router /doses/{doseID}/skipped [post]
func confirmSkippedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.ConfirmSkipped(r.Context(), chi.URLParam(r, "doseID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDoseResponse(d))
	}
}

// referenceInstant usa ?at=RFC3339 si viene; si no, el reloj del servicio.
func referenceInstant(w http.ResponseWriter, r *http.Request, svc *Service) (time.Time, bool) {
	v := strings.TrimSpace(r.URL.Query().Get("at"))
	if v == "" {
		return svc.Now(), true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		http.Error(w, "at must be RFC3339", http.StatusBadRequest)
		return time.Time{}, false
	}
	return t, true
}

func toDoseResponse(d Dose) doseResponse {
	return doseResponse{
		ID:           d.ID,
		MedicationID: d.MedicationID,
		TimeSlotID:   d.TimeSlotID,
		Day:          d.Day,
		ScheduledAt:  d.ScheduledAt,
		TakenAt:      d.TakenAt,
		State:        d.State,
		Notes:        d.Notes,
	}
}

func toTodayDoseResponses(items []TodayDose) []todayDoseResponse {
	out := make([]todayDoseResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toTodayDoseResponse(d))
	}
	return out
}

func toTodayDoseResponse(d TodayDose) todayDoseResponse {
	return todayDoseResponse{
		doseResponse:    toDoseResponse(d.Dose),
		MedicationName:  d.MedicationName,
		MedicationDose:  d.MedicationDose,
		MedicationColor: d.MedicationColor,
		Time:            d.TimeOfDay.String(),
		WithFood:        d.WithFood,
		Late:            d.Late,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "dose not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
