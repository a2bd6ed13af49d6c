package management

import (
	"context"

	"livestock-api/internal/query"
)

type FieldRepository interface {
	Create(ctx context.Context, f Field) (Field, error)
	Update(ctx context.Context, f Field) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (Field, error)
	List(ctx context.Context, p query.Params) ([]Field, int, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type FoodTypeRepository interface {
	Create(ctx context.Context, ft FoodType) (FoodType, error)
	Update(ctx context.Context, ft FoodType) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (FoodType, error)
	List(ctx context.Context, p query.Params) ([]FoodType, int, error)
	Exists(ctx context.Context, id int) (bool, error)
}
