// Package respond implementa el sobre JSON estándar del API.
// Toda respuesta, de éxito o de error, pasa por acá para que los clientes
// reciban siempre la misma estructura.
package respond

import (
	"encoding/json"
	"net/http"
	"time"

	"livestock-api/internal/query"
)

type successEnvelope struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Data       any            `json:"data"`
	Timestamp  string         `json:"timestamp"`
	StatusCode int            `json:"status_code"`
	Meta       map[string]any `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	Error      errorBody `json:"error"`
	StatusCode int       `json:"status_code"`
}

type errorBody struct {
	Code      string `json:"code"`
	Details   any    `json:"details"`
	Timestamp string `json:"timestamp"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Success escribe una respuesta exitosa con el sobre estándar.
func Success(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, successEnvelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Timestamp:  now(),
		StatusCode: status,
	})
}

// List escribe una respuesta de listado con meta.pagination.
func List(w http.ResponseWriter, message string, data any, p query.Pagination) {
	writeJSON(w, http.StatusOK, successEnvelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Timestamp:  now(),
		StatusCode: http.StatusOK,
		Meta:       map[string]any{"pagination": p},
	})
}

// Error escribe una respuesta de error con el sobre estándar.
func Error(w http.ResponseWriter, status int, message, code string, details any) {
	if code == "" {
		code = "HTTP_" + http.StatusText(status)
	}
	if details == nil {
		details = map[string]any{}
	}
	writeJSON(w, status, errorEnvelope{
		Success: false,
		Message: message,
		Error: errorBody{
			Code:      code,
			Details:   details,
			Timestamp: now(),
		},
		StatusCode: status,
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message, "BAD_REQUEST", nil)
}

// Validation responde 422 con los errores por campo.
func Validation(w http.ResponseWriter, details any) {
	Error(w, http.StatusUnprocessableEntity, "Errores de validación", "VALIDATION_ERROR", details)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Acceso no autorizado"
	}
	Error(w, http.StatusUnauthorized, message, "UNAUTHORIZED", nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Acceso prohibido"
	}
	Error(w, http.StatusForbidden, message, "FORBIDDEN", nil)
}

func NotFound(w http.ResponseWriter, entity string) {
	Error(w, http.StatusNotFound, entity+" no encontrado", "NOT_FOUND", nil)
}

func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message, "CONFLICT", nil)
}

// Internal responde 500 con el request id para correlación en logs.
func Internal(w http.ResponseWriter, requestID string) {
	Error(w, http.StatusInternalServerError, "Error interno del servidor", "INTERNAL_ERROR",
		map[string]any{"request_id": requestID})
}
