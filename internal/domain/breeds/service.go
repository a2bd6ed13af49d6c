package breeds

import (
	"context"
	"strings"
	"time"

	"livestock-api/internal/query"
	"livestock-api/internal/validation"
)

type Service struct {
	breeds  BreedRepository
	species SpeciesRepository
	now     func() time.Time
}

func NewService(breeds BreedRepository, species SpeciesRepository) *Service {
	return &Service{breeds: breeds, species: species, now: time.Now}
}

// ---- Razas ----

func (s *Service) CreateBreed(ctx context.Context, name string, speciesID int) (Breed, error) {
	v := validation.New()
	if strings.TrimSpace(name) == "" {
		v.Add("name", "el nombre es requerido")
	}
	if speciesID <= 0 {
		v.Add("species_id", "la especie es requerida")
	} else if ok, err := s.species.Exists(ctx, speciesID); err == nil && !ok {
		v.Add("species_id", "la especie indicada no existe")
	}
	if err := v.Err(); err != nil {
		return Breed{}, err
	}

	now := s.now()
	return s.breeds.Create(ctx, Breed{
		Name:      strings.TrimSpace(name),
		SpeciesID: speciesID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) UpdateBreed(ctx context.Context, id int, name *string, speciesID *int) (Breed, error) {
	b, err := s.breeds.GetByID(ctx, id)
	if err != nil {
		return Breed{}, err
	}

	v := validation.New()
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			v.Add("name", "el nombre no puede quedar vacío")
		} else {
			b.Name = strings.TrimSpace(*name)
		}
	}
	if speciesID != nil {
		if ok, err := s.species.Exists(ctx, *speciesID); err == nil && !ok {
			v.Add("species_id", "la especie indicada no existe")
		} else {
			b.SpeciesID = *speciesID
		}
	}
	if err := v.Err(); err != nil {
		return Breed{}, err
	}

	b.UpdatedAt = s.now()
	if err := s.breeds.Update(ctx, b); err != nil {
		return Breed{}, err
	}
	return b, nil
}

func (s *Service) DeleteBreed(ctx context.Context, id int) error {
	return s.breeds.Delete(ctx, id)
}

func (s *Service) GetBreed(ctx context.Context, id int) (Breed, error) {
	return s.breeds.GetByID(ctx, id)
}

func (s *Service) ListBreeds(ctx context.Context, p query.Params) ([]Breed, int, error) {
	return s.breeds.List(ctx, p)
}

// BreedExists implementa el checker que usan otros módulos (animales).
func (s *Service) BreedExists(ctx context.Context, id int) (bool, error) {
	return s.breeds.Exists(ctx, id)
}

// ---- Especies ----

func (s *Service) CreateSpecies(ctx context.Context, name string) (Species, error) {
	if strings.TrimSpace(name) == "" {
		v := validation.New()
		v.Add("name", "el nombre es requerido")
		return Species{}, v.Err()
	}

	now := s.now()
	return s.species.Create(ctx, Species{
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) UpdateSpecies(ctx context.Context, id int, name string) (Species, error) {
	sp, err := s.species.GetByID(ctx, id)
	if err != nil {
		return Species{}, err
	}
	if strings.TrimSpace(name) == "" {
		v := validation.New()
		v.Add("name", "el nombre no puede quedar vacío")
		return Species{}, v.Err()
	}

	sp.Name = strings.TrimSpace(name)
	sp.UpdatedAt = s.now()
	if err := s.species.Update(ctx, sp); err != nil {
		return Species{}, err
	}
	return sp, nil
}

func (s *Service) DeleteSpecies(ctx context.Context, id int) error {
	return s.species.Delete(ctx, id)
}

func (s *Service) GetSpecies(ctx context.Context, id int) (Species, error) {
	return s.species.GetByID(ctx, id)
}

func (s *Service) ListSpecies(ctx context.Context, p query.Params) ([]Species, int, error) {
	return s.species.List(ctx, p)
}
