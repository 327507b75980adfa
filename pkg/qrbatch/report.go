package qrbatch

// Status is the result of processing one row.
type Status string

const (
	StatusGenerated Status = "generated"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome records what happened to one row.
type Outcome struct {
	Sheet    string `json:"sheet"`
	Position int    `json:"position"`
	Line     int    `json:"line"`
	Status   Status `json:"status"`
	// Path is set for generated rows.
	Path string `json:"path,omitempty"`
	// Reason is set for skipped rows.
	Reason string `json:"reason,omitempty"`
	// Error is set for the failed row.
	Error string `json:"error,omitempty"`
}

// Report summarizes a batch run. When the run fails it covers the work done
// before the failure.
type Report struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	// CompletedSheets lists the sheets whose rows were all handled, in
	// processing order.
	CompletedSheets []string `json:"completed_sheets"`
	// FailedSheet names the sheet that aborted the run, if any.
	FailedSheet string    `json:"failed_sheet,omitempty"`
	Outcomes    []Outcome `json:"outcomes,omitempty"`
}

// OK reports whether every selected sheet completed.
func (r *Report) OK() bool {
	return r.FailedSheet == ""
}

func (r *Report) record(o Outcome) {
	switch o.Status {
	case StatusGenerated:
		r.Generated++
	case StatusSkipped:
		r.Skipped++
	}
	r.Outcomes = append(r.Outcomes, o)
}
