package memory

import (
	"context"

	"livestock-api/internal/domain/relations"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type AnimalDiseasesRepo struct {
	s *Store
}

func NewAnimalDiseasesRepo(s *Store) *AnimalDiseasesRepo {
	return &AnimalDiseasesRepo{s: s}
}

func (r *AnimalDiseasesRepo) checkRefs(ad relations.AnimalDisease) error {
	if _, ok := r.s.animals[ad.AnimalID]; !ok {
		return storage.ErrForeignKey
	}
	if _, ok := r.s.diseases[ad.DiseaseID]; !ok {
		return storage.ErrForeignKey
	}
	if _, ok := r.s.users[ad.InstructorID]; !ok {
		return storage.ErrForeignKey
	}
	return nil
}

func (r *AnimalDiseasesRepo) duplicate(ad relations.AnimalDisease) bool {
	for _, other := range r.s.animalDiseases {
		if other.ID == ad.ID {
			continue
		}
		if other.AnimalID == ad.AnimalID && other.DiseaseID == ad.DiseaseID && sameDay(other.DiagnosisDate, ad.DiagnosisDate) {
			return true
		}
	}
	return false
}

func (r *AnimalDiseasesRepo) Create(ctx context.Context, ad relations.AnimalDisease) (relations.AnimalDisease, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkRefs(ad); err != nil {
		return relations.AnimalDisease{}, err
	}
	if r.duplicate(ad) {
		return relations.AnimalDisease{}, storage.ErrDuplicate
	}
	ad.ID = r.s.nextID("animal_diseases")
	r.s.animalDiseases[ad.ID] = ad
	r.s.touch("animal_diseases")
	return ad, nil
}

func (r *AnimalDiseasesRepo) Update(ctx context.Context, ad relations.AnimalDisease) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animalDiseases[ad.ID]; !ok {
		return storage.ErrNotFound
	}
	if err := r.checkRefs(ad); err != nil {
		return err
	}
	if r.duplicate(ad) {
		return storage.ErrDuplicate
	}
	r.s.animalDiseases[ad.ID] = ad
	r.s.touch("animal_diseases")
	return nil
}

func (r *AnimalDiseasesRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animalDiseases[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.animalDiseases, id)
	r.s.touch("animal_diseases")
	return nil
}

func (r *AnimalDiseasesRepo) GetByID(ctx context.Context, id int) (relations.AnimalDisease, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ad, ok := r.s.animalDiseases[id]
	if !ok {
		return relations.AnimalDisease{}, storage.ErrNotFound
	}
	return ad, nil
}

func (r *AnimalDiseasesRepo) List(ctx context.Context, p query.Params) ([]relations.AnimalDisease, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	animalID, hasAnimal, err := p.IntFilter("animal_id")
	if err != nil {
		return nil, 0, err
	}
	diseaseID, hasDisease, err := p.IntFilter("disease_id")
	if err != nil {
		return nil, 0, err
	}
	instructorID, hasInstructor, err := p.IntFilter("instructor_id")
	if err != nil {
		return nil, 0, err
	}

	items := make([]relations.AnimalDisease, 0, len(r.s.animalDiseases))
	for _, id := range sortedIDs(r.s.animalDiseases) {
		ad := r.s.animalDiseases[id]
		if hasAnimal && ad.AnimalID != animalID {
			continue
		}
		if hasDisease && ad.DiseaseID != diseaseID {
			continue
		}
		if hasInstructor && ad.InstructorID != instructorID {
			continue
		}
		if v := p.Filter("status"); v != "" && ad.Status != v {
			continue
		}
		if p.Search != "" && !containsFold(ad.Notes, p.Search) {
			continue
		}
		items = append(items, ad)
	}

	page, total := listPage(items, p, func(a, b relations.AnimalDisease) bool {
		switch p.SortBy {
		case "diagnosis_date":
			return a.DiagnosisDate.Before(b.DiagnosisDate)
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}

type AnimalFieldsRepo struct {
	s *Store
}

func NewAnimalFieldsRepo(s *Store) *AnimalFieldsRepo {
	return &AnimalFieldsRepo{s: s}
}

func (r *AnimalFieldsRepo) duplicate(af relations.AnimalField) bool {
	for _, other := range r.s.animalFields {
		if other.ID == af.ID {
			continue
		}
		if other.AnimalID == af.AnimalID && other.FieldID == af.FieldID && sameDay(other.AssignmentDate, af.AssignmentDate) {
			return true
		}
	}
	return false
}

func (r *AnimalFieldsRepo) Create(ctx context.Context, af relations.AnimalField) (relations.AnimalField, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[af.AnimalID]; !ok {
		return relations.AnimalField{}, storage.ErrForeignKey
	}
	if _, ok := r.s.fields[af.FieldID]; !ok {
		return relations.AnimalField{}, storage.ErrForeignKey
	}
	if r.duplicate(af) {
		return relations.AnimalField{}, storage.ErrDuplicate
	}
	af.ID = r.s.nextID("animal_fields")
	r.s.animalFields[af.ID] = af
	r.s.touch("animal_fields")
	return af, nil
}

func (r *AnimalFieldsRepo) Update(ctx context.Context, af relations.AnimalField) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.animalFields[af.ID]
	if !ok {
		return storage.ErrNotFound
	}
	// Solo cambian la fecha de retiro y las notas; la terna identificadora queda fija.
	current.RemovalDate = af.RemovalDate
	current.Notes = af.Notes
	current.UpdatedAt = af.UpdatedAt
	r.s.animalFields[af.ID] = current
	r.s.touch("animal_fields")
	return nil
}

func (r *AnimalFieldsRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animalFields[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.animalFields, id)
	r.s.touch("animal_fields")
	return nil
}

func (r *AnimalFieldsRepo) GetByID(ctx context.Context, id int) (relations.AnimalField, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	af, ok := r.s.animalFields[id]
	if !ok {
		return relations.AnimalField{}, storage.ErrNotFound
	}
	return af, nil
}

func (r *AnimalFieldsRepo) List(ctx context.Context, p query.Params) ([]relations.AnimalField, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	animalID, hasAnimal, err := p.IntFilter("animal_id")
	if err != nil {
		return nil, 0, err
	}
	fieldID, hasField, err := p.IntFilter("field_id")
	if err != nil {
		return nil, 0, err
	}

	items := make([]relations.AnimalField, 0, len(r.s.animalFields))
	for _, id := range sortedIDs(r.s.animalFields) {
		af := r.s.animalFields[id]
		if hasAnimal && af.AnimalID != animalID {
			continue
		}
		if hasField && af.FieldID != fieldID {
			continue
		}
		if p.Search != "" && !containsFold(af.Notes, p.Search) {
			continue
		}
		items = append(items, af)
	}

	page, total := listPage(items, p, func(a, b relations.AnimalField) bool {
		switch p.SortBy {
		case "assignment_date":
			return a.AssignmentDate.Before(b.AssignmentDate)
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}

type TreatmentMedicationsRepo struct {
	s *Store
}

func NewTreatmentMedicationsRepo(s *Store) *TreatmentMedicationsRepo {
	return &TreatmentMedicationsRepo{s: s}
}

func (r *TreatmentMedicationsRepo) Create(ctx context.Context, tm relations.TreatmentMedication) (relations.TreatmentMedication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.treatments[tm.TreatmentID]; !ok {
		return relations.TreatmentMedication{}, storage.ErrForeignKey
	}
	if _, ok := r.s.medications[tm.MedicationID]; !ok {
		return relations.TreatmentMedication{}, storage.ErrForeignKey
	}
	for _, other := range r.s.treatmentMedications {
		if other.TreatmentID == tm.TreatmentID && other.MedicationID == tm.MedicationID {
			return relations.TreatmentMedication{}, storage.ErrDuplicate
		}
	}
	tm.ID = r.s.nextID("treatment_medications")
	r.s.treatmentMedications[tm.ID] = tm
	r.s.touch("treatment_medications")
	return tm, nil
}

func (r *TreatmentMedicationsRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.treatmentMedications[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.treatmentMedications, id)
	r.s.touch("treatment_medications")
	return nil
}

func (r *TreatmentMedicationsRepo) GetByID(ctx context.Context, id int) (relations.TreatmentMedication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tm, ok := r.s.treatmentMedications[id]
	if !ok {
		return relations.TreatmentMedication{}, storage.ErrNotFound
	}
	return tm, nil
}

func (r *TreatmentMedicationsRepo) List(ctx context.Context, p query.Params) ([]relations.TreatmentMedication, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	treatmentID, hasTreatment, err := p.IntFilter("treatment_id")
	if err != nil {
		return nil, 0, err
	}
	medicationID, hasMedication, err := p.IntFilter("medication_id")
	if err != nil {
		return nil, 0, err
	}

	items := make([]relations.TreatmentMedication, 0, len(r.s.treatmentMedications))
	for _, id := range sortedIDs(r.s.treatmentMedications) {
		tm := r.s.treatmentMedications[id]
		if hasTreatment && tm.TreatmentID != treatmentID {
			continue
		}
		if hasMedication && tm.MedicationID != medicationID {
			continue
		}
		items = append(items, tm)
	}

	page, total := listPage(items, p, func(a, b relations.TreatmentMedication) bool {
		if p.SortBy == "created_at" {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}

type TreatmentVaccinesRepo struct {
	s *Store
}

func NewTreatmentVaccinesRepo(s *Store) *TreatmentVaccinesRepo {
	return &TreatmentVaccinesRepo{s: s}
}

func (r *TreatmentVaccinesRepo) Create(ctx context.Context, tv relations.TreatmentVaccine) (relations.TreatmentVaccine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.treatments[tv.TreatmentID]; !ok {
		return relations.TreatmentVaccine{}, storage.ErrForeignKey
	}
	if _, ok := r.s.vaccines[tv.VaccineID]; !ok {
		return relations.TreatmentVaccine{}, storage.ErrForeignKey
	}
	for _, other := range r.s.treatmentVaccines {
		if other.TreatmentID == tv.TreatmentID && other.VaccineID == tv.VaccineID {
			return relations.TreatmentVaccine{}, storage.ErrDuplicate
		}
	}
	tv.ID = r.s.nextID("treatment_vaccines")
	r.s.treatmentVaccines[tv.ID] = tv
	r.s.touch("treatment_vaccines")
	return tv, nil
}

func (r *TreatmentVaccinesRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.treatmentVaccines[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.treatmentVaccines, id)
	r.s.touch("treatment_vaccines")
	return nil
}

func (r *TreatmentVaccinesRepo) GetByID(ctx context.Context, id int) (relations.TreatmentVaccine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tv, ok := r.s.treatmentVaccines[id]
	if !ok {
		return relations.TreatmentVaccine{}, storage.ErrNotFound
	}
	return tv, nil
}

func (r *TreatmentVaccinesRepo) List(ctx context.Context, p query.Params) ([]relations.TreatmentVaccine, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	treatmentID, hasTreatment, err := p.IntFilter("treatment_id")
	if err != nil {
		return nil, 0, err
	}
	vaccineID, hasVaccine, err := p.IntFilter("vaccine_id")
	if err != nil {
		return nil, 0, err
	}

	items := make([]relations.TreatmentVaccine, 0, len(r.s.treatmentVaccines))
	for _, id := range sortedIDs(r.s.treatmentVaccines) {
		tv := r.s.treatmentVaccines[id]
		if hasTreatment && tv.TreatmentID != treatmentID {
			continue
		}
		if hasVaccine && tv.VaccineID != vaccineID {
			continue
		}
		items = append(items, tv)
	}

	page, total := listPage(items, p, func(a, b relations.TreatmentVaccine) bool {
		if p.SortBy == "created_at" {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}
