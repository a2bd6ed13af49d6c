package breeds

import (
	"time"

	"livestock-api/internal/query"
)

// Breed es una raza dentro de una especie. (name, species_id) es único.
type Breed struct {
	ID        int
	Name      string
	SpeciesID int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Species es el catálogo de especies; el nombre es único.
type Species struct {
	ID   int
	Name string

	CreatedAt time.Time
	UpdatedAt time.Time
}

var BreedListAllowed = query.Allowed{
	Filterable: []string{"species_id", "name"},
	Searchable: []string{"name"},
	Sortable:   []string{"id", "name"},
}

var SpeciesListAllowed = query.Allowed{
	Searchable: []string{"name"},
	Sortable:   []string{"id", "name", "created_at"},
}
