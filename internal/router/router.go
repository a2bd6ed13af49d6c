// Package router arma el árbol HTTP completo: middlewares globales,
// endpoints operativos (health, metrics, docs) y las rutas de cada módulo
// bajo /api/v1.
package router

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"

	_ "livestock-api/docs"
	"livestock-api/internal/adapters/storage/memory"
	"livestock-api/internal/adapters/storage/postgres"
	platformauth "livestock-api/internal/auth"
	"livestock-api/internal/config"
	"livestock-api/internal/domain/analytics"
	"livestock-api/internal/domain/animals"
	"livestock-api/internal/domain/auth"
	"livestock-api/internal/domain/breeds"
	"livestock-api/internal/domain/management"
	"livestock-api/internal/domain/medical"
	"livestock-api/internal/domain/relations"
	"livestock-api/internal/domain/users"
	"livestock-api/internal/httpapi/httpcache"
	"livestock-api/internal/middleware"
	"livestock-api/internal/platform/cache"
	"livestock-api/internal/platform/logger"
	"livestock-api/internal/platform/metrics"
)

// Repos agrupa todos los repositorios que consumen los services.
// Se arma con NewPostgresRepos o NewMemoryRepos según el arranque.
type Repos struct {
	Users     users.Repository
	Animals   animals.Repository
	Genetic   animals.GeneticRepository
	Breeds    breeds.BreedRepository
	Species   breeds.SpeciesRepository
	Medical   medical.Repos
	Fields    management.FieldRepository
	FoodTypes management.FoodTypeRepository
	Relations relations.Repos
	Analytics analytics.Repository

	// LastModified alimenta el cálculo de ETags de los listados.
	LastModified httpcache.LastModifiedFunc
}

func NewPostgresRepos(db *sql.DB) Repos {
	return Repos{
		Users:   postgres.NewUsersRepo(db),
		Animals: postgres.NewAnimalsRepo(db),
		Genetic: postgres.NewGeneticRepo(db),
		Breeds:  postgres.NewBreedsRepo(db),
		Species: postgres.NewSpeciesRepo(db),
		Medical: medical.Repos{
			Treatments:   postgres.NewTreatmentsRepo(db),
			Vaccinations: postgres.NewVaccinationsRepo(db),
			Vaccines:     postgres.NewVaccinesRepo(db),
			Medications:  postgres.NewMedicationsRepo(db),
			Diseases:     postgres.NewDiseasesRepo(db),
			Controls:     postgres.NewControlsRepo(db),
		},
		Fields:    postgres.NewFieldsRepo(db),
		FoodTypes: postgres.NewFoodTypesRepo(db),
		Relations: relations.Repos{
			AnimalDiseases:       postgres.NewAnimalDiseasesRepo(db),
			AnimalFields:         postgres.NewAnimalFieldsRepo(db),
			TreatmentMedications: postgres.NewTreatmentMedicationsRepo(db),
			TreatmentVaccines:    postgres.NewTreatmentVaccinesRepo(db),
		},
		Analytics:    postgres.NewAnalyticsRepo(db),
		LastModified: postgres.LastModified(db),
	}
}

func NewMemoryRepos() Repos {
	s := memory.NewStore()
	return Repos{
		Users:   memory.NewUsersRepo(s),
		Animals: memory.NewAnimalsRepo(s),
		Genetic: memory.NewGeneticRepo(s),
		Breeds:  memory.NewBreedsRepo(s),
		Species: memory.NewSpeciesRepo(s),
		Medical: medical.Repos{
			Treatments:   memory.NewTreatmentsRepo(s),
			Vaccinations: memory.NewVaccinationsRepo(s),
			Vaccines:     memory.NewVaccinesRepo(s),
			Medications:  memory.NewMedicationsRepo(s),
			Diseases:     memory.NewDiseasesRepo(s),
			Controls:     memory.NewControlsRepo(s),
		},
		Fields:    memory.NewFieldsRepo(s),
		FoodTypes: memory.NewFoodTypesRepo(s),
		Relations: relations.Repos{
			AnimalDiseases:       memory.NewAnimalDiseasesRepo(s),
			AnimalFields:         memory.NewAnimalFieldsRepo(s),
			TreatmentMedications: memory.NewTreatmentMedicationsRepo(s),
			TreatmentVaccines:    memory.NewTreatmentVaccinesRepo(s),
		},
		Analytics:    memory.NewAnalyticsRepo(s),
		LastModified: s.LastModified,
	}
}

type Options struct {
	Config config.Config
	Log    logger.Logger
	Repos  Repos
	Cache  cache.Cache
	Auth   *platformauth.Manager

	// DB solo se usa para el ping de /health; puede ser nil (modo memoria).
	DB *sql.DB

	// Metrics puede venir nil; en ese caso no se publican métricas.
	Metrics *metrics.Registry
}

// Rutas que no exigen token.
var publicPaths = []string{
	"/health",
	"/metrics",
	"/docs",
	"/swagger.json",
	"/api/v1/auth/login",
	"/api/v1/auth/refresh",
}

func New(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"ETag", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequestLogger(log, opts.Metrics))
	r.Use(middleware.AuthContext(middleware.AuthOptions{
		Manager:     opts.Auth,
		PublicPaths: publicPaths,
	}))

	hc := httpcache.NewManager(opts.Cache, opts.Config.CacheTTL, opts.Repos.LastModified, log)

	// Services por módulo. Los checkers cruzados van por referencia de método
	// para no acoplar los paquetes de dominio entre sí.
	usersSvc := users.NewService(opts.Repos.Users)
	breedsSvc := breeds.NewService(opts.Repos.Breeds, opts.Repos.Species)
	animalsSvc := animals.NewService(opts.Repos.Animals, opts.Repos.Genetic, breedsSvc)
	medicalSvc := medical.NewService(opts.Repos.Medical, animalsSvc, usersSvc)
	mgmtSvc := management.NewService(opts.Repos.Fields, opts.Repos.FoodTypes)
	relationsSvc := relations.NewService(opts.Repos.Relations, relations.Checkers{
		Animal:     animalsSvc.Exists,
		Disease:    medicalSvc.DiseaseExists,
		Field:      mgmtSvc.FieldExists,
		Treatment:  medicalSvc.TreatmentExists,
		Medication: medicalSvc.MedicationExists,
		Vaccine:    medicalSvc.VaccineExists,
		User:       usersSvc.Exists,
	})
	analyticsSvc := analytics.NewService(opts.Repos.Analytics)

	r.Get("/health", healthHandler(opts.DB, opts.Cache))
	r.Get("/metrics", metricsHandler(opts.Metrics, opts.Cache))

	r.Get("/swagger.json", swaggerJSONHandler)
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/swagger.json")))

	r.Route("/api/v1", func(api chi.Router) {
		auth.RegisterRoutes(api, usersSvc, opts.Auth)
		users.RegisterRoutes(api, usersSvc, hc)
		breeds.RegisterRoutes(api, breedsSvc, hc)
		animals.RegisterRoutes(api, animalsSvc, hc)
		medical.RegisterRoutes(api, medicalSvc, hc)
		management.RegisterRoutes(api, mgmtSvc, hc)
		relations.RegisterRoutes(api, relationsSvc, hc)
		analytics.RegisterRoutes(api, analyticsSvc)
	})

	return r
}

func healthHandler(db *sql.DB, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status":  "ok",
			"service": "livestock-api",
		}
		status := http.StatusOK

		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				body["status"] = "degraded"
				body["database"] = "unreachable"
				status = http.StatusServiceUnavailable
			} else {
				body["database"] = "ok"
			}
		} else {
			body["database"] = "memory"
		}
		if c != nil {
			body["cache"] = c.Stats(r.Context())
		}

		writeJSON(w, status, body)
	}
}

func metricsHandler(reg *metrics.Registry, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		if reg != nil {
			body["http"] = reg.Snapshot()
		}
		if c != nil {
			body["cache"] = c.Stats(r.Context())
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func swaggerJSONHandler(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "especificación no disponible", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
