package memory

import (
	"context"
	"strconv"

	"livestock-api/internal/domain/medical"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type VaccinesRepo struct {
	s *Store
}

func NewVaccinesRepo(s *Store) *VaccinesRepo {
	return &VaccinesRepo{s: s}
}

func (r *VaccinesRepo) Create(ctx context.Context, v medical.Vaccine) (medical.Vaccine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.diseases[v.TargetDiseaseID]; !ok {
		return medical.Vaccine{}, storage.ErrForeignKey
	}
	for _, other := range r.s.vaccines {
		if other.Name == v.Name {
			return medical.Vaccine{}, storage.ErrDuplicate
		}
	}
	v.ID = r.s.nextID("vaccines")
	r.s.vaccines[v.ID] = v
	r.s.touch("vaccines")
	return v, nil
}

func (r *VaccinesRepo) Update(ctx context.Context, v medical.Vaccine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vaccines[v.ID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := r.s.diseases[v.TargetDiseaseID]; !ok {
		return storage.ErrForeignKey
	}
	for _, other := range r.s.vaccines {
		if other.ID != v.ID && other.Name == v.Name {
			return storage.ErrDuplicate
		}
	}
	r.s.vaccines[v.ID] = v
	r.s.touch("vaccines")
	return nil
}

func (r *VaccinesRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vaccines[id]; !ok {
		return storage.ErrNotFound
	}
	for _, vn := range r.s.vaccinations {
		if vn.VaccineID == id {
			return storage.ErrRestricted
		}
	}
	for _, tv := range r.s.treatmentVaccines {
		if tv.VaccineID == id {
			return storage.ErrRestricted
		}
	}
	delete(r.s.vaccines, id)
	r.s.touch("vaccines")
	return nil
}

func (r *VaccinesRepo) GetByID(ctx context.Context, id int) (medical.Vaccine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vaccines[id]
	if !ok {
		return medical.Vaccine{}, storage.ErrNotFound
	}
	return v, nil
}

func (r *VaccinesRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.vaccines[id]
	return ok, nil
}

func (r *VaccinesRepo) List(ctx context.Context, p query.Params) ([]medical.Vaccine, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	diseaseID, hasDisease, err := p.IntFilter("target_disease_id")
	if err != nil {
		return nil, 0, err
	}

	items := make([]medical.Vaccine, 0, len(r.s.vaccines))
	for _, id := range sortedIDs(r.s.vaccines) {
		v := r.s.vaccines[id]
		if f := p.Filter("vaccine_type"); f != "" && string(v.Type) != f {
			continue
		}
		if f := p.Filter("route"); f != "" && string(v.Route) != f {
			continue
		}
		if hasDisease && v.TargetDiseaseID != diseaseID {
			continue
		}
		if p.Search != "" &&
			!containsFold(v.Name, p.Search) &&
			!containsFold(v.NationalPlan, p.Search) {
			continue
		}
		items = append(items, v)
	}

	page, total := listPage(items, p, func(a, b medical.Vaccine) bool {
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

type MedicationsRepo struct {
	s *Store
}

func NewMedicationsRepo(s *Store) *MedicationsRepo {
	return &MedicationsRepo{s: s}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medical.Medication) (medical.Medication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.medications {
		if other.Name == m.Name {
			return medical.Medication{}, storage.ErrDuplicate
		}
	}
	m.ID = r.s.nextID("medications")
	r.s.medications[m.ID] = m
	r.s.touch("medications")
	return m, nil
}

func (r *MedicationsRepo) Update(ctx context.Context, m medical.Medication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.medications[m.ID]; !ok {
		return storage.ErrNotFound
	}
	for _, other := range r.s.medications {
		if other.ID != m.ID && other.Name == m.Name {
			return storage.ErrDuplicate
		}
	}
	r.s.medications[m.ID] = m
	r.s.touch("medications")
	return nil
}

func (r *MedicationsRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.medications[id]; !ok {
		return storage.ErrNotFound
	}
	for _, tm := range r.s.treatmentMedications {
		if tm.MedicationID == id {
			return storage.ErrRestricted
		}
	}
	delete(r.s.medications, id)
	r.s.touch("medications")
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id int) (medical.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.medications[id]
	if !ok {
		return medical.Medication{}, storage.ErrNotFound
	}
	return m, nil
}

func (r *MedicationsRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.medications[id]
	return ok, nil
}

func (r *MedicationsRepo) List(ctx context.Context, p query.Params) ([]medical.Medication, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]medical.Medication, 0, len(r.s.medications))
	for _, id := range sortedIDs(r.s.medications) {
		m := r.s.medications[id]
		if f := p.Filter("route"); f != "" && string(m.Route) != f {
			continue
		}
		if f := p.Filter("availability"); f != "" {
			want, err := strconv.ParseBool(f)
			if err != nil || m.Availability != want {
				continue
			}
		}
		if p.Search != "" &&
			!containsFold(m.Name, p.Search) &&
			!containsFold(m.Description, p.Search) &&
			!containsFold(m.Indications, p.Search) {
			continue
		}
		items = append(items, m)
	}

	page, total := listPage(items, p, func(a, b medical.Medication) bool {
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

type DiseasesRepo struct {
	s *Store
}

func NewDiseasesRepo(s *Store) *DiseasesRepo {
	return &DiseasesRepo{s: s}
}

func (r *DiseasesRepo) Create(ctx context.Context, d medical.Disease) (medical.Disease, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.diseases {
		if other.Name == d.Name {
			return medical.Disease{}, storage.ErrDuplicate
		}
	}
	d.ID = r.s.nextID("diseases")
	r.s.diseases[d.ID] = d
	r.s.touch("diseases")
	return d, nil
}

func (r *DiseasesRepo) Update(ctx context.Context, d medical.Disease) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.diseases[d.ID]; !ok {
		return storage.ErrNotFound
	}
	for _, other := range r.s.diseases {
		if other.ID != d.ID && other.Name == d.Name {
			return storage.ErrDuplicate
		}
	}
	r.s.diseases[d.ID] = d
	r.s.touch("diseases")
	return nil
}

func (r *DiseasesRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.diseases[id]; !ok {
		return storage.ErrNotFound
	}
	for _, v := range r.s.vaccines {
		if v.TargetDiseaseID == id {
			return storage.ErrRestricted
		}
	}
	for _, ad := range r.s.animalDiseases {
		if ad.DiseaseID == id {
			return storage.ErrRestricted
		}
	}
	delete(r.s.diseases, id)
	r.s.touch("diseases")
	return nil
}

func (r *DiseasesRepo) GetByID(ctx context.Context, id int) (medical.Disease, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.diseases[id]
	if !ok {
		return medical.Disease{}, storage.ErrNotFound
	}
	return d, nil
}

func (r *DiseasesRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.diseases[id]
	return ok, nil
}

func (r *DiseasesRepo) List(ctx context.Context, p query.Params) ([]medical.Disease, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]medical.Disease, 0, len(r.s.diseases))
	for _, id := range sortedIDs(r.s.diseases) {
		d := r.s.diseases[id]
		if p.Search != "" &&
			!containsFold(d.Name, p.Search) &&
			!containsFold(d.Symptoms, p.Search) {
			continue
		}
		items = append(items, d)
	}

	page, total := listPage(items, p, func(a, b medical.Disease) bool {
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
