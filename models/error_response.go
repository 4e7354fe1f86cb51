package models

// ErrorResponse is the flat error body used by middleware rejections
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
