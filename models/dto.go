package models

// CompileRequest is the body of POST /api/compile and /api/preview.
type CompileRequest struct {
	Article *Article `json:"article"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
}

// ErrorResponse is the uniform error body. Log carries the typesetting
// engine output and is only populated outside production mode.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Log     string `json:"log,omitempty"`
}
