// Package validation acumula errores de validación por campo para poder
// responder 422 con el detalle completo en una sola pasada.
package validation

import (
	"sort"
	"strings"
)

type Error struct {
	Fields map[string]string
}

func New() *Error {
	return &Error{Fields: make(map[string]string)}
}

func (e *Error) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Err devuelve nil si no se acumuló ningún error.
func (e *Error) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}
