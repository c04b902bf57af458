package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
// Converted + Failed + Skipped always equals Total: when a run aborts on the
// first error, work never admitted past the gate is counted as Skipped.
type RunStats struct {
	Total            int
	Converted        int
	Failed           int
	Skipped          int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// SizeDelta returns the aggregate byte difference between outputs and inputs.
// Positive means the converted files grew (common for DDS→PNG); negative
// means they shrank.
func (s *RunStats) SizeDelta() int64 {
	return s.TotalOutputBytes - s.TotalInputBytes
}
