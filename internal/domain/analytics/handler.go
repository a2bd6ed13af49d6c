package analytics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"livestock-api/internal/httpapi"
	"livestock-api/internal/httpapi/respond"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/analytics", func(ar chi.Router) {
		ar.Get("/dashboard", dashboardHandler(svc))
		ar.Get("/alerts", alertsHandler(svc))
		ar.Get("/animals/statistics", animalStatisticsHandler(svc))
		ar.Get("/health/statistics", healthStatisticsHandler(svc))
	})
}

// @Summary Tablero general
// @Description Resumen del hato, praderas, tratamientos activos y vacunaciones recientes.
// @Tags analytics
// @Success 200 {object} map[string]any
// @Router /analytics/dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Dashboard(r.Context())
		if err != nil {
			httpapi.WriteError(w, r, err, "Tablero")
			return
		}
		respond.Success(w, http.StatusOK, "Tablero generado", d)
	}
}

// @Summary Alertas sanitarias
// @Description Animales sin control veterinario en los últimos N días (?days, default 90).
// @Tags analytics
// @Param days query int false "Ventana en días"
// @Success 200 {object} map[string]any
// @Router /analytics/alerts [get]
func alertsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 0
		if raw := r.URL.Query().Get("days"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				respond.BadRequest(w, "days debe ser un entero positivo")
				return
			}
			days = n
		}
		a, err := svc.Alerts(r.Context(), days)
		if err != nil {
			httpapi.WriteError(w, r, err, "Alertas")
			return
		}
		respond.Success(w, http.StatusOK, "Alertas generadas", a)
	}
}

func animalStatisticsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.AnimalStatistics(r.Context())
		if err != nil {
			httpapi.WriteError(w, r, err, "Estadísticas")
			return
		}
		respond.Success(w, http.StatusOK, "Estadísticas de animales", b)
	}
}

func healthStatisticsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.HealthStatistics(r.Context())
		if err != nil {
			httpapi.WriteError(w, r, err, "Estadísticas")
			return
		}
		respond.Success(w, http.StatusOK, "Estadísticas de salud", h)
	}
}
