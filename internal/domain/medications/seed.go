package medications

import (
	"context"
)

type demoMedication struct {
	in    CreateInput
	slots []TimeSlotInput
}

func demoData() []demoMedication {
	return []demoMedication{
		{
			in: CreateInput{Name: "Ibuprofeno", Description: "Para el dolor y inflamación", Dose: "600mg - 1 comprimido", Color: "#FF5722"},
			slots: []TimeSlotInput{
				{TimeOfDay: TimeOfDay{Hour: 8}, WithFood: true},
				{TimeOfDay: TimeOfDay{Hour: 14}, WithFood: true},
				{TimeOfDay: TimeOfDay{Hour: 22}, WithFood: false},
			},
		},
		{
			in:    CreateInput{Name: "Omeprazol", Description: "Protector de estómago", Dose: "20mg - 1 cápsula", Color: "#2196F3"},
			slots: []TimeSlotInput{{TimeOfDay: TimeOfDay{Hour: 8}, WithFood: true}},
		},
		{
			in:    CreateInput{Name: "Vitamina D", Description: "Suplemento vitamínico", Dose: "1000 UI - 1 comprimido", Color: "#4CAF50"},
			slots: []TimeSlotInput{{TimeOfDay: TimeOfDay{Hour: 12}, WithFood: true}},
		},
	}
}

// SeedDemo carga datos de ejemplo solo si el store no tiene medicamentos (activos o no).
// Devuelve true si insertó algo.
func (s *Service) SeedDemo(ctx context.Context) (bool, error) {
	existing, err := s.repo.List(ctx, ListFilter{IncludeInactive: true})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	for _, d := range demoData() {
		m, _, err := s.Create(ctx, d.in)
		if err != nil {
			return false, err
		}
		for _, slot := range d.slots {
			if _, err := s.AddTimeSlot(ctx, m.ID, slot); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}
