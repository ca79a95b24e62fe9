package doses

import "time"

// Terminal: taken y skipped no admiten más transiciones.
func (s State) Terminal() bool {
	return s == StateTaken || s == StateSkipped
}

// CanTransition solo permite pending -> taken y pending -> skipped.
func CanTransition(from, to State) bool {
	if from != StatePending {
		return false
	}
	return to == StateTaken || to == StateSkipped
}

// CheckTransition valida el pedido antes de tocar el almacenamiento:
// solo taken o skipped como destino, y taken siempre con instante.
func CheckTransition(to State, takenAt *time.Time) error {
	if to != StateTaken && to != StateSkipped {
		return ErrInvalidInput
	}
	if to == StateTaken && (takenAt == nil || takenAt.IsZero()) {
		return ErrInvalidInput
	}
	return nil
}

// Apply aplica la transición sobre una copia de la toma.
// Si la toma ya no está pending no cambia nada y applied=false: repetir la acción es un no-op.
// at solo se usa para taken.
func Apply(d Dose, to State, at time.Time) (Dose, bool, error) {
	if err := CheckTransition(to, &at); err != nil {
		return d, false, err
	}
	if !CanTransition(d.State, to) {
		return d, false, nil
	}

	d.State = to
	if to == StateTaken {
		t := at
		d.TakenAt = &t
	} else {
		d.TakenAt = nil
	}
	return d, true, nil
}
