package memory

import (
	"context"

	"livestock-api/internal/domain/breeds"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type SpeciesRepo struct {
	s *Store
}

func NewSpeciesRepo(s *Store) *SpeciesRepo {
	return &SpeciesRepo{s: s}
}

func (r *SpeciesRepo) Create(ctx context.Context, sp breeds.Species) (breeds.Species, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.species {
		if other.Name == sp.Name {
			return breeds.Species{}, storage.ErrDuplicate
		}
	}
	sp.ID = r.s.nextID("species")
	r.s.species[sp.ID] = sp
	r.s.touch("species")
	return sp, nil
}

func (r *SpeciesRepo) Update(ctx context.Context, sp breeds.Species) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.species[sp.ID]; !ok {
		return storage.ErrNotFound
	}
	for _, other := range r.s.species {
		if other.ID != sp.ID && other.Name == sp.Name {
			return storage.ErrDuplicate
		}
	}
	r.s.species[sp.ID] = sp
	r.s.touch("species")
	return nil
}

func (r *SpeciesRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.species[id]; !ok {
		return storage.ErrNotFound
	}
	for _, b := range r.s.breeds {
		if b.SpeciesID == id {
			return storage.ErrRestricted
		}
	}
	delete(r.s.species, id)
	r.s.touch("species")
	return nil
}

func (r *SpeciesRepo) GetByID(ctx context.Context, id int) (breeds.Species, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sp, ok := r.s.species[id]
	if !ok {
		return breeds.Species{}, storage.ErrNotFound
	}
	return sp, nil
}

func (r *SpeciesRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.species[id]
	return ok, nil
}

func (r *SpeciesRepo) List(ctx context.Context, p query.Params) ([]breeds.Species, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]breeds.Species, 0, len(r.s.species))
	for _, id := range sortedIDs(r.s.species) {
		sp := r.s.species[id]
		if p.Search != "" && !containsFold(sp.Name, p.Search) {
			continue
		}
		items = append(items, sp)
	}

	page, total := listPage(items, p, func(a, b breeds.Species) bool {
		switch p.SortBy {
		case "name":
			return a.Name < b.Name
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}

type BreedsRepo struct {
	s *Store
}

func NewBreedsRepo(s *Store) *BreedsRepo {
	return &BreedsRepo{s: s}
}

func (r *BreedsRepo) Create(ctx context.Context, b breeds.Breed) (breeds.Breed, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.species[b.SpeciesID]; !ok {
		return breeds.Breed{}, storage.ErrForeignKey
	}
	for _, other := range r.s.breeds {
		if other.Name == b.Name && other.SpeciesID == b.SpeciesID {
			return breeds.Breed{}, storage.ErrDuplicate
		}
	}
	b.ID = r.s.nextID("breeds")
	r.s.breeds[b.ID] = b
	r.s.touch("breeds")
	return b, nil
}

func (r *BreedsRepo) Update(ctx context.Context, b breeds.Breed) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.breeds[b.ID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := r.s.species[b.SpeciesID]; !ok {
		return storage.ErrForeignKey
	}
	for _, other := range r.s.breeds {
		if other.ID != b.ID && other.Name == b.Name && other.SpeciesID == b.SpeciesID {
			return storage.ErrDuplicate
		}
	}
	r.s.breeds[b.ID] = b
	r.s.touch("breeds")
	return nil
}

func (r *BreedsRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.breeds[id]; !ok {
		return storage.ErrNotFound
	}
	for _, a := range r.s.animals {
		if a.BreedID == id {
			return storage.ErrRestricted
		}
	}
	delete(r.s.breeds, id)
	r.s.touch("breeds")
	return nil
}

func (r *BreedsRepo) GetByID(ctx context.Context, id int) (breeds.Breed, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.breeds[id]
	if !ok {
		return breeds.Breed{}, storage.ErrNotFound
	}
	return b, nil
}

func (r *BreedsRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.breeds[id]
	return ok, nil
}

func (r *BreedsRepo) List(ctx context.Context, p query.Params) ([]breeds.Breed, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	speciesID, hasSpecies, err := p.IntFilter("species_id")
	if err != nil {
		return nil, 0, err
	}

	items := make([]breeds.Breed, 0, len(r.s.breeds))
	for _, id := range sortedIDs(r.s.breeds) {
		b := r.s.breeds[id]
		if hasSpecies && b.SpeciesID != speciesID {
			continue
		}
		if v := p.Filter("name"); v != "" && b.Name != v {
			continue
		}
		if p.Search != "" && !containsFold(b.Name, p.Search) {
			continue
		}
		items = append(items, b)
	}

	page, total := listPage(items, p, func(a, b breeds.Breed) bool {
		if p.SortBy == "name" {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return page, total, nil
}
