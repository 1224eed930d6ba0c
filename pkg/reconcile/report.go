package reconcile

// Status is the outcome of one action.
type Status string

const (
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
	StatusPlanned Status = "planned"
	StatusSkipped Status = "skipped"
)

// Action is one step an applier took, planned or skipped.
type Action struct {
	Description string `json:"description" yaml:"description"`
	Command     string `json:"command,omitempty" yaml:"command,omitempty"`
	Status      Status `json:"status" yaml:"status"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SectionReport lists the actions of one section in execution order.
type SectionReport struct {
	Section Section  `json:"section" yaml:"section"`
	Actions []Action `json:"actions" yaml:"actions"`
}

// Report describes one apply run.
type Report struct {
	RunID    string          `json:"run_id" yaml:"run_id"`
	DryRun   bool            `json:"dry_run" yaml:"dry_run"`
	Sections []SectionReport `json:"sections" yaml:"sections"`
}

// Failed returns every failed action across sections.
func (r *Report) Failed() []Action {
	var failed []Action
	for _, s := range r.Sections {
		for _, a := range s.Actions {
			if a.Status == StatusFailed {
				failed = append(failed, a)
			}
		}
	}
	return failed
}

// Count returns how many actions ended with status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, s := range r.Sections {
		for _, a := range s.Actions {
			if a.Status == status {
				n++
			}
		}
	}
	return n
}

func (s *SectionReport) add(a Action) {
	s.Actions = append(s.Actions, a)
}
