package batch

// RunStats tracks aggregate counters across a batch run. Current is the
// number of jobs attempted so far; it can stay below Total when the run is
// interrupted.
type RunStats struct {
	Total     int
	Current   int
	Succeeded int
	Failed    int
}

// SuccessRate returns the percentage of attempted jobs that succeeded.
func (s *RunStats) SuccessRate() float64 {
	if s.Current == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Current) * 100
}
