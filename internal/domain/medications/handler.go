package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc))
		mr.Get("/", listMedicationsHandler(svc))

		mr.Get("/{medicationID}", getMedicationHandler(svc))
		mr.Patch("/{medicationID}", updateMedicationHandler(svc))
		mr.Delete("/{medicationID}", deactivateMedicationHandler(svc))

		mr.Get("/{medicationID}/slots", listSlotsHandler(svc))
		mr.Post("/{medicationID}/slots", addSlotHandler(svc))
		mr.Patch("/{medicationID}/slots/{slotID}", updateSlotHandler(svc))
		mr.Delete("/{medicationID}/slots/{slotID}", deactivateSlotHandler(svc))
	})
}

// createMedicationRequest es el cuerpo para registrar un medicamento con sus horarios iniciales.
type createMedicationRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Dose        string   `json:"dose"`
	Color       string   `json:"color"`     // opcional, se asigna de la paleta
	PhotoURL    string   `json:"photo_url"` // opcional
	Notes       string   `json:"notes"`
	StartDate   string   `json:"start_date"` // YYYY-MM-DD opcional
	EndDate     string   `json:"end_date"`   // YYYY-MM-DD opcional
	Times       []string `json:"times"`      // HH:MM
	WithFood    bool     `json:"with_food"`
}

type updateMedicationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Dose        *string `json:"dose"`
	Color       *string `json:"color"`
	PhotoURL    *string `json:"photo_url"`
	Notes       *string `json:"notes"`
}

type slotRequest struct {
	Time     string `json:"time"` // HH:MM
	WithFood bool   `json:"with_food"`
}

type updateSlotRequest struct {
	Time     *string `json:"time"`
	WithFood *bool   `json:"with_food"`
}

type medicationResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Dose        string         `json:"dose"`
	Color       string         `json:"color"`
	PhotoURL    string         `json:"photo_url,omitempty"`
	Notes       string         `json:"notes"`
	StartDate   *time.Time     `json:"start_date,omitempty"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	Slots       []slotResponse `json:"slots"`
	Schedule    string         `json:"schedule"`
}

type slotResponse struct {
	ID           string     `json:"id"`
	MedicationID string     `json:"medication_id"`
	Time         string     `json:"time"`
	Recurrence   Recurrence `json:"recurrence"`
	WithFood     bool       `json:"with_food"`
	Active       bool       `json:"active"`
}

// createMedicationHandler godoc
// @Summary Registrar medicamento
// @Description Crea un medicamento y, opcionalmente, sus horarios diarios (todos con el mismo with_food).
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body createMedicationRequest true "Datos del medicamento; times en HH:MM"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := parseOptionalDate(req.StartDate)
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := parseOptionalDate(req.EndDate)
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		times := make([]TimeOfDay, 0, len(req.Times))
		for _, raw := range req.Times {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			t, err := ParseTimeOfDay(raw)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			times = append(times, t)
		}

		m, slots, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Description: req.Description,
			Dose:        req.Dose,
			Color:       req.Color,
			PhotoURL:    req.PhotoURL,
			Notes:       req.Notes,
			StartDate:   start,
			EndDate:     end,
			Times:       times,
			WithFood:    req.WithFood,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicationResponse(m, slots))
	}
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Tags medications
// @Produce json
// @Param all query bool false "Incluir inactivos"
// @Param q query string false "Búsqueda en nombre/descripción"
// @Success 200 {array} medicationResponse
// @Failure 500 {string} string "internal error"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{
			IncludeInactive: strings.EqualFold(r.URL.Query().Get("all"), "true"),
			Query:           r.URL.Query().Get("q"),
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			slots, err := svc.ListActiveTimeSlots(r.Context(), m.ID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			out = append(out, toMedicationResponse(m, slots))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getMedicationHandler godoc
// @Summary Obtener medicamento
// @Description Devuelve el medicamento (activo o no) con sus horarios activos.
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} medicationResponse
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		slots, err := svc.ListActiveTimeSlots(r.Context(), m.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m, slots))
	}
}

// updateMedicationHandler godoc
// @Summary Actualizar medicamento
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body updateMedicationRequest true "Campos a modificar"
// @Success 200 {object} medicationResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [patch]
func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateMedicationRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Update(r.Context(), chi.URLParam(r, "medicationID"), UpdateInput{
			Name:        req.Name,
			Description: req.Description,
			Dose:        req.Dose,
			Color:       req.Color,
			PhotoURL:    req.PhotoURL,
			Notes:       req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		slots, err := svc.ListActiveTimeSlots(r.Context(), m.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m, slots))
	}
}

// deactivateMedicationHandler godoc
// @Summary Desactivar medicamento
// @Description Soft-delete: desactiva el medicamento y sus horarios. Las tomas registradas se conservan.
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {object} medicationResponse
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [delete]
func deactivateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.Deactivate(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMedicationResponse(m, nil))
	}
}

// listSlotsHandler godoc
// @Summary Listar horarios activos
// @Tags slots
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {array} slotResponse
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/slots [get]
func listSlotsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			writeError(w, err)
			return
		}
		slots, err := svc.ListActiveTimeSlots(r.Context(), m.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSlotResponses(slots))
	}
}

// addSlotHandler godoc
// @Summary Agregar horario
// @Tags slots
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body slotRequest true "Hora HH:MM"
// @Success 201 {object} slotResponse
// @Failure 400 {string} string "time must be HH:MM"
// @Failure 404 {string} string "medication not found"
// @Failure 409 {string} string "medication is inactive"
// @Router /medications/{medicationID}/slots [post]
func addSlotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req slotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		t, err := ParseTimeOfDay(req.Time)
		if err != nil {
			http.Error(w, "time must be HH:MM", http.StatusBadRequest)
			return
		}

		slot, err := svc.AddTimeSlot(r.Context(), chi.URLParam(r, "medicationID"), TimeSlotInput{
			TimeOfDay: t,
			WithFood:  req.WithFood,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSlotResponse(slot))
	}
}

// updateSlotHandler godoc
// @Summary Actualizar horario
// @Tags slots
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param slotID path string true "ID del horario"
// @Param payload body updateSlotRequest true "Campos a modificar"
// @Success 200 {object} slotResponse
// @Failure 400 {string} string "time must be HH:MM"
// @Failure 404 {string} string "slot not found"
// @Router /medications/{medicationID}/slots/{slotID} [patch]
func updateSlotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateTimeSlotInput{WithFood: req.WithFood}
		if req.Time != nil {
			t, err := ParseTimeOfDay(*req.Time)
			if err != nil {
				http.Error(w, "time must be HH:MM", http.StatusBadRequest)
				return
			}
			in.TimeOfDay = &t
		}

		slot, err := svc.UpdateTimeSlot(r.Context(), chi.URLParam(r, "medicationID"), chi.URLParam(r, "slotID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSlotResponse(slot))
	}
}

// deactivateSlotHandler godoc
// @Summary Desactivar horario
// @Tags slots
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param slotID path string true "ID del horario"
// @Success 200 {object} slotResponse
// @Failure 404 {string} string "slot not found"
// @Router /medications/{medicationID}/slots/{slotID} [delete]
func deactivateSlotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, err := svc.DeactivateTimeSlot(r.Context(), chi.URLParam(r, "medicationID"), chi.URLParam(r, "slotID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSlotResponse(slot))
	}
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toMedicationResponse(m Medication, slots []TimeSlot) medicationResponse {
	return medicationResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Dose:        m.Dose,
		Color:       m.Color,
		PhotoURL:    m.PhotoURL,
		Notes:       m.Notes,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		Slots:       toSlotResponses(slots),
		Schedule:    ScheduleSummary(slots),
	}
}

func toSlotResponses(slots []TimeSlot) []slotResponse {
	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, toSlotResponse(s))
	}
	return out
}

func toSlotResponse(s TimeSlot) slotResponse {
	return slotResponse{
		ID:           s.ID,
		MedicationID: s.MedicationID,
		Time:         s.TimeOfDay.String(),
		Recurrence:   s.Recurrence,
		WithFood:     s.WithFood,
		Active:       s.Active,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrInactive):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (medications/doses)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
