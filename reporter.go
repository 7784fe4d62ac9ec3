package settings

// Reporter accumulates recoverable configuration-authoring problems. The
// registry and store only write to it; whoever owns the reporter lifecycle
// queries and clears it.
type Reporter interface {
	ReportError(message string)
	HasErrors() bool
	ResetErrors()
}

// CollectingReporter is the default Reporter. It keeps every reported
// message in order.
type CollectingReporter struct {
	messages []string
}

// NewCollectingReporter constructs an empty collecting reporter.
func NewCollectingReporter() *CollectingReporter {
	return &CollectingReporter{}
}

// ReportError records message.
func (r *CollectingReporter) ReportError(message string) {
	r.messages = append(r.messages, message)
}

// HasErrors reports whether any error was recorded since the last reset.
func (r *CollectingReporter) HasErrors() bool {
	return len(r.messages) > 0
}

// ResetErrors clears recorded messages.
func (r *CollectingReporter) ResetErrors() {
	r.messages = r.messages[:0]
}

// Errors returns a copy of the recorded messages.
func (r *CollectingReporter) Errors() []string {
	if len(r.messages) == 0 {
		return nil
	}
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// ReporterFunc adapts a function to Reporter for callers that forward
// messages elsewhere and keep no local state.
type ReporterFunc func(message string)

// ReportError invokes the function.
func (f ReporterFunc) ReportError(message string) {
	if f != nil {
		f(message)
	}
}

// HasErrors always reports false; the adapter keeps no state.
func (f ReporterFunc) HasErrors() bool { return false }

// ResetErrors is a no-op.
func (f ReporterFunc) ResetErrors() {}

type noopReporter struct{}

func (noopReporter) ReportError(string) {}
func (noopReporter) HasErrors() bool    { return false }
func (noopReporter) ResetErrors()       {}
