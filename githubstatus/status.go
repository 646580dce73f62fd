package githubstatus

// Status is the page-wide status block.
type Status struct {
	Description string `json:"description" yaml:"description"`
	Indicator   string `json:"indicator" yaml:"indicator"`
}

// StatusEnvelope is the body of /api/v2/status.json.
type StatusEnvelope struct {
	Status Status `json:"status" yaml:"status"`
}

// Description is the human readable status, e.g. "All Systems Operational".
func (e *StatusEnvelope) Description() string { return e.Status.Description }

// Indicator is one of none, minor, major or critical.
func (e *StatusEnvelope) Indicator() string { return e.Status.Indicator }

// IsOK reports whether GitHub reports no incident.
func (e *StatusEnvelope) IsOK() bool { return e.Status.Indicator == "none" }
