package doses

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/metrics"
)

// MaterializeToday deriva las tomas del día calendario de ref (en la zona del servicio)
// para cada medicamento activo y cada horario activo suyo. Reutiliza las tomas ya
// registradas para ese día/horario y crea las que faltan en estado pending.
// El resultado queda ordenado por hora del horario.
func (s *Service) MaterializeToday(ctx context.Context, ref time.Time) ([]TodayDose, error) {
	local := ref.In(s.loc)
	day := DayOf(local, s.loc)
	nowMinutes := medications.MinutesOf(local)

	meds, err := s.schedule.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	slots, err := s.schedule.ListActiveTimeSlots(ctx, "")
	if err != nil {
		return nil, err
	}

	active := make(map[string]struct{}, len(meds))
	for _, m := range meds {
		active[m.ID] = struct{}{}
	}

	byMedication := make(map[string][]medications.TimeSlot, len(meds))
	for _, slot := range slots {
		if _, ok := active[slot.MedicationID]; !ok {
			if err := s.checkOrphan(ctx, slot); err != nil {
				return nil, err
			}
			continue
		}
		byMedication[slot.MedicationID] = append(byMedication[slot.MedicationID], slot)
	}

	out := make([]TodayDose, 0, len(slots))
	for _, m := range meds {
		for _, slot := range byMedication[m.ID] {
			if !slot.TimeOfDay.Valid() {
				s.fault("time slot has invalid time of day", slot)
				continue
			}

			d, err := s.ensureDose(ctx, m, slot, day)
			if err != nil {
				return nil, err
			}

			out = append(out, TodayDose{
				Dose:            d,
				MedicationName:  m.Name,
				MedicationDose:  m.Dose,
				MedicationColor: m.Color,
				TimeOfDay:       slot.TimeOfDay,
				WithFood:        slot.WithFood,
				Late:            d.State == StatePending && slot.TimeOfDay.Minutes() < nowMinutes,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeOfDay.String() < out[j].TimeOfDay.String()
	})

	return out, nil
}

// ensureDose devuelve la toma de (medicamento, horario, día), creándola si no existe.
func (s *Service) ensureDose(ctx context.Context, m medications.Medication, slot medications.TimeSlot, day time.Time) (Dose, error) {
	key := Key{MedicationID: m.ID, TimeSlotID: slot.ID, Day: DayKey(day)}

	existing, err := s.repo.GetByKey(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Dose{}, err
	}

	d, created, err := s.repo.CreateIfAbsent(ctx, Dose{
		ID:           uuid.NewString(),
		MedicationID: key.MedicationID,
		TimeSlotID:   key.TimeSlotID,
		Day:          key.Day,
		ScheduledAt:  slot.TimeOfDay.On(day),
		State:        StatePending,
	})
	if err != nil {
		return Dose{}, err
	}
	if created {
		metrics.DoseMaterialized()
	}
	return d, nil
}

// checkOrphan distingue un horario de un medicamento inactivo (se ignora en silencio)
// de uno cuyo medicamento no existe (falla de integridad: se loguea y se salta).
func (s *Service) checkOrphan(ctx context.Context, slot medications.TimeSlot) error {
	_, err := s.schedule.GetByID(ctx, slot.MedicationID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, medications.ErrNotFound), errors.Is(err, medications.ErrInvalidInput):
		s.fault("time slot references missing medication", slot)
		return nil
	default:
		return err
	}
}

func (s *Service) fault(msg string, slot medications.TimeSlot) {
	metrics.DataIntegrityFault()
	s.log.Warn(msg, map[string]any{
		"error":         ErrDataIntegrity.Error(),
		"medication_id": slot.MedicationID,
		"time_slot_id":  slot.ID,
	})
}
