package model

// ErrorPayload is the structured error body returned by the API.
type ErrorPayload struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
