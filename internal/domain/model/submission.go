package model

// SubmissionStatus mirrors the judge's status object.
type SubmissionStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// SubmissionResult is the outcome of one solve attempt. A rejection by the
// judge is a normal result (Accepted false, diagnostics populated), not an
// error.
type SubmissionResult struct {
	Status         SubmissionStatus `json:"status"`
	Accepted       bool             `json:"accepted"`
	Stdout         string           `json:"stdout"`
	Stderr         string           `json:"stderr"`
	ExpectedOutput string           `json:"expected_output"`
	ActualOutput   string           `json:"actual_output"`
	Time           string           `json:"time"`
	Memory         int              `json:"memory"`
	Token          string           `json:"token"`
	CompileOutput  string           `json:"compile_output"`
	Message        string           `json:"message"`
	PointsAwarded  int              `json:"points_awarded"`
	BadgeAwarded   string           `json:"badge_awarded"` // Empty when no badge was granted
}
