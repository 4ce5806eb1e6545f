package ports

// ProgressFunc receives monotonically increasing percentage milestones
// with a short status string. Fire-and-forget: implementations must not
// block the pipeline, and may be called zero or many times. Nil is a
// valid value and disables reporting.
type ProgressFunc func(percent int, message string)

// Report invokes the callback if one is set
func (p ProgressFunc) Report(percent int, message string) {
	if p != nil {
		p(percent, message)
	}
}
