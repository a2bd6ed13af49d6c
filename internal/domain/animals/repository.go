package animals

import (
	"context"

	"livestock-api/internal/query"
)

type Repository interface {
	Create(ctx context.Context, a Animal) (Animal, error)
	Update(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (Animal, error)
	List(ctx context.Context, p query.Params) ([]Animal, int, error)
	Exists(ctx context.Context, id int) (bool, error)
	Statistics(ctx context.Context) (Statistics, error)
}

type GeneticRepository interface {
	Create(ctx context.Context, g GeneticImprovement) (GeneticImprovement, error)
	Update(ctx context.Context, g GeneticImprovement) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (GeneticImprovement, error)
	List(ctx context.Context, p query.Params) ([]GeneticImprovement, int, error)
}

// Statistics resume el hato para el endpoint de estadísticas del módulo.
type Statistics struct {
	Total     int            `json:"total"`
	BySex     map[string]int `json:"by_sex"`
	ByStatus  map[string]int `json:"by_status"`
	AvgWeight float64        `json:"avg_weight"`
}
