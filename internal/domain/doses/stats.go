package doses

// Stats es una proyección: se recalcula en cada lectura.
type Stats struct {
	Total   int `json:"total"`
	Taken   int `json:"taken"`
	Pending int `json:"pending"`
	Skipped int `json:"skipped"`
}

func ComputeStats(items []TodayDose) Stats {
	st := Stats{Total: len(items)}
	for _, d := range items {
		switch d.State {
		case StateTaken:
			st.Taken++
		case StatePending:
			st.Pending++
		case StateSkipped:
			st.Skipped++
		}
	}
	return st
}

// Consistent: total == taken + pending + skipped.
// Solo puede fallar si aparece una toma postponed, que hoy ninguna operación produce.
func (s Stats) Consistent() bool {
	return s.Total == s.Taken+s.Pending+s.Skipped
}
