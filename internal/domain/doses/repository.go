package doses

import (
	"context"
	"time"
)

type Repository interface {
	// CreateIfAbsent inserta la toma salvo que ya exista otra con la misma Key.
	// Es atómico: devuelve la toma vigente y created=true solo si la insertó esta llamada.
	CreateIfAbsent(ctx context.Context, d Dose) (Dose, bool, error)

	GetByKey(ctx context.Context, key Key) (Dose, error)
	GetByID(ctx context.Context, id string) (Dose, error)

	// ListByDayRange devuelve las tomas con Day en [from, to] (YYYY-MM-DD), ordenadas por ScheduledAt.
	ListByDayRange(ctx context.Context, from, to string) ([]Dose, error)

	// Transition aplica pending -> to de forma atómica respecto de otras lecturas/escrituras
	// de la misma toma. Si ya era terminal devuelve la toma intacta y applied=false.
	// ErrNotFound si el id no existe.
	Transition(ctx context.Context, id string, to State, takenAt *time.Time) (Dose, bool, error)
}
