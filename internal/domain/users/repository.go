package users

import (
	"context"

	"livestock-api/internal/query"
)

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (User, error)
	GetByIdentification(ctx context.Context, identification int64) (User, error)
	List(ctx context.Context, p query.Params) ([]User, int, error)

	// Statistics devuelve conteos por rol y por estado.
	Statistics(ctx context.Context) (Statistics, error)
}

type Statistics struct {
	Total    int            `json:"total"`
	ByRole   map[string]int `json:"by_role"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
}
