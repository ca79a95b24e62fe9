package medications

import "context"

type Repository interface {
	// Create guarda el medicamento junto a sus horarios iniciales: todo o nada.
	Create(ctx context.Context, m Medication, slots []TimeSlot) error
	Update(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	List(ctx context.Context, filter ListFilter) ([]Medication, error)

	// Deactivate marca el medicamento y todos sus horarios como inactivos (cascada).
	Deactivate(ctx context.Context, id string) error

	CreateTimeSlot(ctx context.Context, s TimeSlot) error
	UpdateTimeSlot(ctx context.Context, s TimeSlot) error
	GetTimeSlot(ctx context.Context, id string) (TimeSlot, error)

	// ListTimeSlots filtra por medicationID si no viene vacío.
	ListTimeSlots(ctx context.Context, medicationID string, includeInactive bool) ([]TimeSlot, error)
}

type ListFilter struct {
	IncludeInactive bool
	Query           string // búsqueda en nombre/descripción, case-insensitive
}
