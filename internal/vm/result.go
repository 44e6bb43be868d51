package vm

// Status is the outcome of a run.
type Status int

// Run outcomes.
const (
	StatusOK    Status = 0
	StatusPanic Status = -1
)

func (s Status) String() string {
	if s == StatusPanic {
		return "panic"
	}
	return "ok"
}

// Result is the outcome of a finished run.
type Result struct {
	Status Status
	Fault  error // nil unless Status is StatusPanic
}

// Reason returns the fault description or an empty string for a normal halt.
func (r Result) Reason() string {
	if r.Fault == nil {
		return ""
	}
	return r.Fault.Error()
}

func (r Result) String() string {
	if r.Status == StatusPanic {
		return "panic: " + r.Reason()
	}
	return r.Status.String()
}
