package memory

import (
	"context"

	"livestock-api/internal/domain/animals"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type AnimalsRepo struct {
	s *Store
}

func NewAnimalsRepo(s *Store) *AnimalsRepo {
	return &AnimalsRepo{s: s}
}

// checkAnimalRefs valida raza y padres. Requiere el lock tomado.
func (r *AnimalsRepo) checkAnimalRefs(a animals.Animal) error {
	if _, ok := r.s.breeds[a.BreedID]; !ok {
		return storage.ErrForeignKey
	}
	if a.IDFather != nil {
		if _, ok := r.s.animals[*a.IDFather]; !ok {
			return storage.ErrForeignKey
		}
	}
	if a.IDMother != nil {
		if _, ok := r.s.animals[*a.IDMother]; !ok {
			return storage.ErrForeignKey
		}
	}
	return nil
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.animals {
		if other.Record == a.Record {
			return animals.Animal{}, storage.ErrDuplicate
		}
	}
	if err := r.checkAnimalRefs(a); err != nil {
		return animals.Animal{}, err
	}
	a.ID = r.s.nextID("animals")
	r.s.animals[a.ID] = a
	r.s.touch("animals")
	return a, nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[a.ID]; !ok {
		return storage.ErrNotFound
	}
	for _, other := range r.s.animals {
		if other.ID != a.ID && other.Record == a.Record {
			return storage.ErrDuplicate
		}
	}
	if err := r.checkAnimalRefs(a); err != nil {
		return err
	}
	r.s.animals[a.ID] = a
	r.s.touch("animals")
	return nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[id]; !ok {
		return storage.ErrNotFound
	}
	for _, other := range r.s.animals {
		if (other.IDFather != nil && *other.IDFather == id) || (other.IDMother != nil && *other.IDMother == id) {
			return storage.ErrRestricted
		}
	}
	for _, t := range r.s.treatments {
		if t.AnimalID == id {
			return storage.ErrRestricted
		}
	}
	for _, v := range r.s.vaccinations {
		if v.AnimalID == id {
			return storage.ErrRestricted
		}
	}
	for _, c := range r.s.controls {
		if c.AnimalID == id {
			return storage.ErrRestricted
		}
	}
	for _, g := range r.s.genetic {
		if g.AnimalID == id {
			return storage.ErrRestricted
		}
	}
	for _, ad := range r.s.animalDiseases {
		if ad.AnimalID == id {
			return storage.ErrRestricted
		}
	}
	for _, af := range r.s.animalFields {
		if af.AnimalID == id {
			return storage.ErrRestricted
		}
	}
	delete(r.s.animals, id)
	r.s.touch("animals")
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.animals[id]
	if !ok {
		return animals.Animal{}, storage.ErrNotFound
	}
	return a, nil
}

func (r *AnimalsRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.animals[id]
	return ok, nil
}

func (r *AnimalsRepo) List(ctx context.Context, p query.Params) ([]animals.Animal, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	breedID, hasBreed, err := p.IntFilter("breeds_id")
	if err != nil {
		return nil, 0, err
	}
	minWeight, hasMin, err := p.IntFilter("min_weight")
	if err != nil {
		return nil, 0, err
	}
	maxWeight, hasMax, err := p.IntFilter("max_weight")
	if err != nil {
		return nil, 0, err
	}

	items := make([]animals.Animal, 0, len(r.s.animals))
	for _, id := range sortedIDs(r.s.animals) {
		a := r.s.animals[id]
		if v := p.Filter("record"); v != "" && a.Record != v {
			continue
		}
		if v := p.Filter("sex"); v != "" && string(a.Sex) != v {
			continue
		}
		if v := p.Filter("status"); v != "" && string(a.Status) != v {
			continue
		}
		if hasBreed && a.BreedID != breedID {
			continue
		}
		if hasMin && a.Weight < minWeight {
			continue
		}
		if hasMax && a.Weight > maxWeight {
			continue
		}
		if p.Search != "" && !containsFold(a.Record, p.Search) {
			continue
		}
		items = append(items, a)
	}

	page, total := listPage(items, p, func(a, b animals.Animal) bool {
		switch p.SortBy {
		case "birth_date":
			return a.BirthDate.Before(b.BirthDate)
		case "weight":
			return a.Weight < b.Weight
		case "record":
			return a.Record < b.Record
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}

func (r *AnimalsRepo) Statistics(ctx context.Context) (animals.Statistics, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st := animals.Statistics{
		BySex:    make(map[string]int),
		ByStatus: make(map[string]int),
	}
	sum := 0
	for _, a := range r.s.animals {
		st.Total++
		st.BySex[string(a.Sex)]++
		st.ByStatus[string(a.Status)]++
		sum += a.Weight
	}
	if st.Total > 0 {
		st.AvgWeight = float64(sum) / float64(st.Total)
	}
	return st, nil
}

type GeneticRepo struct {
	s *Store
}

func NewGeneticRepo(s *Store) *GeneticRepo {
	return &GeneticRepo{s: s}
}

func (r *GeneticRepo) Create(ctx context.Context, g animals.GeneticImprovement) (animals.GeneticImprovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[g.AnimalID]; !ok {
		return animals.GeneticImprovement{}, storage.ErrForeignKey
	}
	g.ID = r.s.nextID("genetic_improvements")
	r.s.genetic[g.ID] = g
	r.s.touch("genetic_improvements")
	return g, nil
}

func (r *GeneticRepo) Update(ctx context.Context, g animals.GeneticImprovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.genetic[g.ID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := r.s.animals[g.AnimalID]; !ok {
		return storage.ErrForeignKey
	}
	r.s.genetic[g.ID] = g
	r.s.touch("genetic_improvements")
	return nil
}

func (r *GeneticRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.genetic[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.genetic, id)
	r.s.touch("genetic_improvements")
	return nil
}

func (r *GeneticRepo) GetByID(ctx context.Context, id int) (animals.GeneticImprovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.genetic[id]
	if !ok {
		return animals.GeneticImprovement{}, storage.ErrNotFound
	}
	return g, nil
}

func (r *GeneticRepo) List(ctx context.Context, p query.Params) ([]animals.GeneticImprovement, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	animalID, hasAnimal, err := p.IntFilter("animal_id")
	if err != nil {
		return nil, 0, err
	}
	date, hasDate, err := dateFilter(p, "date")
	if err != nil {
		return nil, 0, err
	}

	items := make([]animals.GeneticImprovement, 0, len(r.s.genetic))
	for _, id := range sortedIDs(r.s.genetic) {
		g := r.s.genetic[id]
		if hasAnimal && g.AnimalID != animalID {
			continue
		}
		if hasDate && !sameDay(g.Date, date) {
			continue
		}
		if p.Search != "" &&
			!containsFold(g.Details, p.Search) &&
			!containsFold(g.Results, p.Search) &&
			!containsFold(g.Technique, p.Search) {
			continue
		}
		items = append(items, g)
	}

	page, total := listPage(items, p, func(a, b animals.GeneticImprovement) bool {
		switch p.SortBy {
		case "date":
			return a.Date.Before(b.Date)
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}
