package memory

import (
	"context"

	"livestock-api/internal/domain/medical"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type TreatmentsRepo struct {
	s *Store
}

func NewTreatmentsRepo(s *Store) *TreatmentsRepo {
	return &TreatmentsRepo{s: s}
}

func (r *TreatmentsRepo) Create(ctx context.Context, t medical.Treatment) (medical.Treatment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[t.AnimalID]; !ok {
		return medical.Treatment{}, storage.ErrForeignKey
	}
	t.ID = r.s.nextID("treatments")
	r.s.treatments[t.ID] = t
	r.s.touch("treatments")
	return t, nil
}

func (r *TreatmentsRepo) Update(ctx context.Context, t medical.Treatment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.treatments[t.ID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := r.s.animals[t.AnimalID]; !ok {
		return storage.ErrForeignKey
	}
	r.s.treatments[t.ID] = t
	r.s.touch("treatments")
	return nil
}

func (r *TreatmentsRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.treatments[id]; !ok {
		return storage.ErrNotFound
	}
	for _, tm := range r.s.treatmentMedications {
		if tm.TreatmentID == id {
			return storage.ErrRestricted
		}
	}
	for _, tv := range r.s.treatmentVaccines {
		if tv.TreatmentID == id {
			return storage.ErrRestricted
		}
	}
	delete(r.s.treatments, id)
	r.s.touch("treatments")
	return nil
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id int) (medical.Treatment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.treatments[id]
	if !ok {
		return medical.Treatment{}, storage.ErrNotFound
	}
	return t, nil
}

func (r *TreatmentsRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.treatments[id]
	return ok, nil
}

func (r *TreatmentsRepo) List(ctx context.Context, p query.Params) ([]medical.Treatment, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	animalID, hasAnimal, err := p.IntFilter("animal_id")
	if err != nil {
		return nil, 0, err
	}
	from, hasFrom, err := dateFilter(p, "start_date")
	if err != nil {
		return nil, 0, err
	}
	to, hasTo, err := dateFilter(p, "end_date")
	if err != nil {
		return nil, 0, err
	}

	items := make([]medical.Treatment, 0, len(r.s.treatments))
	for _, id := range sortedIDs(r.s.treatments) {
		t := r.s.treatments[id]
		if hasAnimal && t.AnimalID != animalID {
			continue
		}
		if hasFrom && t.StartDate.Before(from) {
			continue
		}
		if hasTo && t.EndDate.After(to) {
			continue
		}
		if p.Search != "" &&
			!containsFold(t.Description, p.Search) &&
			!containsFold(t.Observations, p.Search) {
			continue
		}
		items = append(items, t)
	}

	page, total := listPage(items, p, func(a, b medical.Treatment) bool {
		switch p.SortBy {
		case "start_date":
			return a.StartDate.Before(b.StartDate)
		case "end_date":
			return a.EndDate.Before(b.EndDate)
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}

type VaccinationsRepo struct {
	s *Store
}

func NewVaccinationsRepo(s *Store) *VaccinationsRepo {
	return &VaccinationsRepo{s: s}
}

// checkVaccinationRefs valida animal, vacuna y responsables. Requiere el lock tomado.
func (r *VaccinationsRepo) checkVaccinationRefs(v medical.Vaccination) error {
	if _, ok := r.s.animals[v.AnimalID]; !ok {
		return storage.ErrForeignKey
	}
	if _, ok := r.s.vaccines[v.VaccineID]; !ok {
		return storage.ErrForeignKey
	}
	if _, ok := r.s.users[v.InstructorID]; !ok {
		return storage.ErrForeignKey
	}
	if v.ApprenticeID != nil {
		if _, ok := r.s.users[*v.ApprenticeID]; !ok {
			return storage.ErrForeignKey
		}
	}
	return nil
}

func (r *VaccinationsRepo) duplicate(v medical.Vaccination) bool {
	for _, other := range r.s.vaccinations {
		if other.ID == v.ID {
			continue
		}
		if other.AnimalID == v.AnimalID && other.VaccineID == v.VaccineID && sameDay(other.ApplicationDate, v.ApplicationDate) {
			return true
		}
	}
	return false
}

func (r *VaccinationsRepo) Create(ctx context.Context, v medical.Vaccination) (medical.Vaccination, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkVaccinationRefs(v); err != nil {
		return medical.Vaccination{}, err
	}
	if r.duplicate(v) {
		return medical.Vaccination{}, storage.ErrDuplicate
	}
	v.ID = r.s.nextID("vaccinations")
	r.s.vaccinations[v.ID] = v
	r.s.touch("vaccinations")
	return v, nil
}

func (r *VaccinationsRepo) Update(ctx context.Context, v medical.Vaccination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vaccinations[v.ID]; !ok {
		return storage.ErrNotFound
	}
	if err := r.checkVaccinationRefs(v); err != nil {
		return err
	}
	if r.duplicate(v) {
		return storage.ErrDuplicate
	}
	r.s.vaccinations[v.ID] = v
	r.s.touch("vaccinations")
	return nil
}

func (r *VaccinationsRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vaccinations[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.vaccinations, id)
	r.s.touch("vaccinations")
	return nil
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id int) (medical.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vaccinations[id]
	if !ok {
		return medical.Vaccination{}, storage.ErrNotFound
	}
	return v, nil
}

func (r *VaccinationsRepo) List(ctx context.Context, p query.Params) ([]medical.Vaccination, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	intFilters := map[string]func(medical.Vaccination) int{
		"animal_id":     func(v medical.Vaccination) int { return v.AnimalID },
		"vaccine_id":    func(v medical.Vaccination) int { return v.VaccineID },
		"instructor_id": func(v medical.Vaccination) int { return v.InstructorID },
		"apprentice_id": func(v medical.Vaccination) int {
			if v.ApprenticeID == nil {
				return 0
			}
			return *v.ApprenticeID
		},
	}

	items := make([]medical.Vaccination, 0, len(r.s.vaccinations))
next:
	for _, id := range sortedIDs(r.s.vaccinations) {
		v := r.s.vaccinations[id]
		for name, get := range intFilters {
			want, has, err := p.IntFilter(name)
			if err != nil {
				return nil, 0, err
			}
			if has && get(v) != want {
				continue next
			}
		}
		items = append(items, v)
	}

	page, total := listPage(items, p, func(a, b medical.Vaccination) bool {
		switch p.SortBy {
		case "application_date":
			return a.ApplicationDate.Before(b.ApplicationDate)
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}

type ControlsRepo struct {
	s *Store
}

func NewControlsRepo(s *Store) *ControlsRepo {
	return &ControlsRepo{s: s}
}

func (r *ControlsRepo) Create(ctx context.Context, c medical.Control) (medical.Control, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[c.AnimalID]; !ok {
		return medical.Control{}, storage.ErrForeignKey
	}
	c.ID = r.s.nextID("controls")
	r.s.controls[c.ID] = c
	r.s.touch("controls")
	return c, nil
}

func (r *ControlsRepo) Update(ctx context.Context, c medical.Control) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.controls[c.ID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := r.s.animals[c.AnimalID]; !ok {
		return storage.ErrForeignKey
	}
	r.s.controls[c.ID] = c
	r.s.touch("controls")
	return nil
}

func (r *ControlsRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.controls[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.controls, id)
	r.s.touch("controls")
	return nil
}

func (r *ControlsRepo) GetByID(ctx context.Context, id int) (medical.Control, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.controls[id]
	if !ok {
		return medical.Control{}, storage.ErrNotFound
	}
	return c, nil
}

func (r *ControlsRepo) List(ctx context.Context, p query.Params) ([]medical.Control, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	animalID, hasAnimal, err := p.IntFilter("animal_id")
	if err != nil {
		return nil, 0, err
	}

	items := make([]medical.Control, 0, len(r.s.controls))
	for _, id := range sortedIDs(r.s.controls) {
		c := r.s.controls[id]
		if hasAnimal && c.AnimalID != animalID {
			continue
		}
		if v := p.Filter("healt_status"); v != "" && string(c.HealthStatus) != v {
			continue
		}
		if p.Search != "" && !containsFold(c.Description, p.Search) {
			continue
		}
		items = append(items, c)
	}

	page, total := listPage(items, p, func(a, b medical.Control) bool {
		switch p.SortBy {
		case "checkup_date":
			return a.CheckupDate.Before(b.CheckupDate)
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}
