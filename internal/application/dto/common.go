package dto

// ErrorResponse cuerpo de error HTTP del portal local.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIError cuerpo de error del backend REST ({"error": "..."}); Code es opcional.
type APIError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse respuesta genérica de éxito del backend.
type MessageResponse struct {
	Message string `json:"message"`
}
