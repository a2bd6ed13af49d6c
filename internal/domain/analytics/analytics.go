package analytics

import (
	"context"
	"time"
)

// AnimalBreakdown resume el hato por los ejes que reportan los tableros.
type AnimalBreakdown struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"by_status"`
	BySex     map[string]int `json:"by_sex"`
	ByBreed   map[string]int `json:"by_breed"`
	AvgWeight float64        `json:"avg_weight"`
}

// HealthBreakdown resume el último control de cada animal.
type HealthBreakdown struct {
	ByStatus         map[string]int `json:"by_status"`
	ControlledTotal  int            `json:"controlled_total"`
	ActiveDiagnoses  int            `json:"active_diagnoses"`
	ActiveTreatments int            `json:"active_treatments"`
}

// UncontrolledAnimal identifica un animal sin control reciente.
type UncontrolledAnimal struct {
	AnimalID    int        `json:"animal_id"`
	Record      string     `json:"record"`
	LastControl *time.Time `json:"last_control"`
}

// Repository expone las primitivas de agregación; cada adaptador de storage
// las resuelve con sus propios medios (SQL o recorrido en memoria).
type Repository interface {
	AnimalBreakdown(ctx context.Context) (AnimalBreakdown, error)
	HealthDistribution(ctx context.Context) (map[string]int, int, error)
	AnimalsWithoutControlSince(ctx context.Context, since time.Time) ([]UncontrolledAnimal, error)
	ActiveTreatments(ctx context.Context, on time.Time) (int, error)
	ActiveDiagnoses(ctx context.Context) (int, error)
	VaccinationsBetween(ctx context.Context, from, to time.Time) (int, error)
	FieldsByState(ctx context.Context) (map[string]int, error)
}
