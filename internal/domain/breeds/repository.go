package breeds

import (
	"context"

	"livestock-api/internal/query"
)

type BreedRepository interface {
	Create(ctx context.Context, b Breed) (Breed, error)
	Update(ctx context.Context, b Breed) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (Breed, error)
	List(ctx context.Context, p query.Params) ([]Breed, int, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type SpeciesRepository interface {
	Create(ctx context.Context, s Species) (Species, error)
	Update(ctx context.Context, s Species) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (Species, error)
	List(ctx context.Context, p query.Params) ([]Species, int, error)
	Exists(ctx context.Context, id int) (bool, error)
}
