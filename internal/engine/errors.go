package engine

// ValidationError reports a malformed request, rejected before any judge
// call is made. It is distinct from per-metric judge failures, which are
// folded into MetricResult, and from internal errors, which fail the
// whole batch.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
