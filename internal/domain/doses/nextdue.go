package doses

// SelectNextDue elige la toma a destacar como "próxima":
// la primera pendiente cuya hora todavía no pasó (minutos >= nowMinutes);
// si todas las pendientes ya pasaron, la pendiente más temprana del día.
// Sin pendientes devuelve false. Ante empates gana la que aparece primero.
func SelectNextDue(items []TodayDose, nowMinutes int) (TodayDose, bool) {
	var (
		upcoming, earliest       TodayDose
		hasUpcoming, hasEarliest bool
	)

	for _, d := range items {
		if d.State != StatePending {
			continue
		}
		mins := d.TimeOfDay.Minutes()

		if !hasEarliest || mins < earliest.TimeOfDay.Minutes() {
			earliest = d
			hasEarliest = true
		}
		if mins >= nowMinutes && (!hasUpcoming || mins < upcoming.TimeOfDay.Minutes()) {
			upcoming = d
			hasUpcoming = true
		}
	}

	if hasUpcoming {
		return upcoming, true
	}
	return earliest, hasEarliest
}
