package models

// ErrorResponse is the standard JSON error envelope returned by the API.
// Details carries the human-readable upstream message when one exists.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
