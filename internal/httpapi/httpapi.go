// Package httpapi reúne helpers chicos compartidos por los handlers.
package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// DateLayout es el formato de fecha del API (solo día, sin hora).
const DateLayout = "2006-01-02"

// IDParam extrae y valida un parámetro de ruta numérico.
func IDParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s debe ser un entero positivo", name)
	}
	return id, nil
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("la fecha debe tener formato YYYY-MM-DD")
	}
	return t, nil
}

// FormatDate serializa una fecha al formato del API.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr serializa una fecha opcional; nil queda como nil en JSON.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
