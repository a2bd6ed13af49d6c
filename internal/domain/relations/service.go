package relations

import (
	"context"
	"strings"
	"time"

	"livestock-api/internal/query"
	"livestock-api/internal/validation"
)

// Checker valida la existencia de una entidad referenciada en otro módulo.
type Checker func(ctx context.Context, id int) (bool, error)

// Checkers agrupa las referencias cruzadas que validan las relaciones.
type Checkers struct {
	Animal     Checker
	Disease    Checker
	Field      Checker
	Treatment  Checker
	Medication Checker
	Vaccine    Checker
	User       Checker
}

type Repos struct {
	AnimalDiseases       AnimalDiseaseRepository
	AnimalFields         AnimalFieldRepository
	TreatmentMedications TreatmentMedicationRepository
	TreatmentVaccines    TreatmentVaccineRepository
}

type Service struct {
	repos Repos
	check Checkers
	now   func() time.Time
}

func NewService(repos Repos, check Checkers) *Service {
	return &Service{repos: repos, check: check, now: time.Now}
}

func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}

func (s *Service) checkRef(ctx context.Context, v *validation.Error, check Checker, field string, id int) {
	if id <= 0 {
		v.Add(field, "la referencia es requerida")
		return
	}
	if ok, err := check(ctx, id); err == nil && !ok {
		v.Add(field, "la entidad referenciada no existe")
	}
}

// ---- Diagnósticos (animal ↔ enfermedad) ----

type AnimalDiseaseInput struct {
	AnimalID      int
	DiseaseID     int
	InstructorID  int
	DiagnosisDate time.Time
	Status        string
	Notes         string
}

func (s *Service) CreateAnimalDisease(ctx context.Context, in AnimalDiseaseInput) (AnimalDisease, error) {
	v := validation.New()
	s.checkRef(ctx, v, s.check.Animal, "animal_id", in.AnimalID)
	s.checkRef(ctx, v, s.check.Disease, "disease_id", in.DiseaseID)
	s.checkRef(ctx, v, s.check.User, "instructor_id", in.InstructorID)
	if in.DiagnosisDate.IsZero() {
		v.Add("diagnosis_date", "la fecha de diagnóstico es requerida")
	} else if in.DiagnosisDate.After(s.today()) {
		v.Add("diagnosis_date", "la fecha de diagnóstico no puede ser futura")
	}
	if err := v.Err(); err != nil {
		return AnimalDisease{}, err
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = DiagnosisActive
	}

	now := s.now()
	return s.repos.AnimalDiseases.Create(ctx, AnimalDisease{
		AnimalID:      in.AnimalID,
		DiseaseID:     in.DiseaseID,
		InstructorID:  in.InstructorID,
		DiagnosisDate: in.DiagnosisDate,
		Status:        status,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

type AnimalDiseaseUpdate struct {
	DiagnosisDate *time.Time
	Status        *string
	Notes         *string
}

func (s *Service) UpdateAnimalDisease(ctx context.Context, id int, in AnimalDiseaseUpdate) (AnimalDisease, error) {
	ad, err := s.repos.AnimalDiseases.GetByID(ctx, id)
	if err != nil {
		return AnimalDisease{}, err
	}

	v := validation.New()
	if in.DiagnosisDate != nil {
		if in.DiagnosisDate.After(s.today()) {
			v.Add("diagnosis_date", "la fecha de diagnóstico no puede ser futura")
		} else {
			ad.DiagnosisDate = *in.DiagnosisDate
		}
	}
	if in.Status != nil && strings.TrimSpace(*in.Status) != "" {
		ad.Status = strings.TrimSpace(*in.Status)
	}
	if in.Notes != nil {
		ad.Notes = strings.TrimSpace(*in.Notes)
	}
	if err := v.Err(); err != nil {
		return AnimalDisease{}, err
	}

	ad.UpdatedAt = s.now()
	if err := s.repos.AnimalDiseases.Update(ctx, ad); err != nil {
		return AnimalDisease{}, err
	}
	return ad, nil
}

func (s *Service) DeleteAnimalDisease(ctx context.Context, id int) error {
	return s.repos.AnimalDiseases.Delete(ctx, id)
}

func (s *Service) GetAnimalDisease(ctx context.Context, id int) (AnimalDisease, error) {
	return s.repos.AnimalDiseases.GetByID(ctx, id)
}

func (s *Service) ListAnimalDiseases(ctx context.Context, p query.Params) ([]AnimalDisease, int, error) {
	return s.repos.AnimalDiseases.List(ctx, p)
}

// ---- Asignaciones a praderas ----

type AnimalFieldInput struct {
	AnimalID       int
	FieldID        int
	AssignmentDate time.Time
	RemovalDate    *time.Time
	Notes          string
}

func (s *Service) CreateAnimalField(ctx context.Context, in AnimalFieldInput) (AnimalField, error) {
	v := validation.New()
	s.checkRef(ctx, v, s.check.Animal, "animal_id", in.AnimalID)
	s.checkRef(ctx, v, s.check.Field, "field_id", in.FieldID)
	if in.AssignmentDate.IsZero() {
		v.Add("assignment_date", "la fecha de asignación es requerida")
	}
	if in.RemovalDate != nil && !in.AssignmentDate.IsZero() && in.RemovalDate.Before(in.AssignmentDate) {
		v.Add("removal_date", "la fecha de retiro no puede ser anterior a la de asignación")
	}
	if err := v.Err(); err != nil {
		return AnimalField{}, err
	}

	now := s.now()
	return s.repos.AnimalFields.Create(ctx, AnimalField{
		AnimalID:       in.AnimalID,
		FieldID:        in.FieldID,
		AssignmentDate: in.AssignmentDate,
		RemovalDate:    in.RemovalDate,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

type AnimalFieldUpdate struct {
	RemovalDate *time.Time
	Notes       *string

	ClearRemoval bool
}

func (s *Service) UpdateAnimalField(ctx context.Context, id int, in AnimalFieldUpdate) (AnimalField, error) {
	af, err := s.repos.AnimalFields.GetByID(ctx, id)
	if err != nil {
		return AnimalField{}, err
	}

	v := validation.New()
	if in.ClearRemoval {
		af.RemovalDate = nil
	} else if in.RemovalDate != nil {
		if in.RemovalDate.Before(af.AssignmentDate) {
			v.Add("removal_date", "la fecha de retiro no puede ser anterior a la de asignación")
		} else {
			af.RemovalDate = in.RemovalDate
		}
	}
	if in.Notes != nil {
		af.Notes = strings.TrimSpace(*in.Notes)
	}
	if err := v.Err(); err != nil {
		return AnimalField{}, err
	}

	af.UpdatedAt = s.now()
	if err := s.repos.AnimalFields.Update(ctx, af); err != nil {
		return AnimalField{}, err
	}
	return af, nil
}

func (s *Service) DeleteAnimalField(ctx context.Context, id int) error {
	return s.repos.AnimalFields.Delete(ctx, id)
}

func (s *Service) GetAnimalField(ctx context.Context, id int) (AnimalField, error) {
	return s.repos.AnimalFields.GetByID(ctx, id)
}

func (s *Service) ListAnimalFields(ctx context.Context, p query.Params) ([]AnimalField, int, error) {
	return s.repos.AnimalFields.List(ctx, p)
}

// ---- Tratamiento ↔ medicamento / vacuna ----

func (s *Service) CreateTreatmentMedication(ctx context.Context, treatmentID, medicationID int) (TreatmentMedication, error) {
	v := validation.New()
	s.checkRef(ctx, v, s.check.Treatment, "treatment_id", treatmentID)
	s.checkRef(ctx, v, s.check.Medication, "medication_id", medicationID)
	if err := v.Err(); err != nil {
		return TreatmentMedication{}, err
	}

	now := s.now()
	return s.repos.TreatmentMedications.Create(ctx, TreatmentMedication{
		TreatmentID:  treatmentID,
		MedicationID: medicationID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *Service) DeleteTreatmentMedication(ctx context.Context, id int) error {
	return s.repos.TreatmentMedications.Delete(ctx, id)
}

func (s *Service) GetTreatmentMedication(ctx context.Context, id int) (TreatmentMedication, error) {
	return s.repos.TreatmentMedications.GetByID(ctx, id)
}

func (s *Service) ListTreatmentMedications(ctx context.Context, p query.Params) ([]TreatmentMedication, int, error) {
	return s.repos.TreatmentMedications.List(ctx, p)
}

func (s *Service) CreateTreatmentVaccine(ctx context.Context, treatmentID, vaccineID int) (TreatmentVaccine, error) {
	v := validation.New()
	s.checkRef(ctx, v, s.check.Treatment, "treatment_id", treatmentID)
	s.checkRef(ctx, v, s.check.Vaccine, "vaccine_id", vaccineID)
	if err := v.Err(); err != nil {
		return TreatmentVaccine{}, err
	}

	now := s.now()
	return s.repos.TreatmentVaccines.Create(ctx, TreatmentVaccine{
		TreatmentID: treatmentID,
		VaccineID:   vaccineID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) DeleteTreatmentVaccine(ctx context.Context, id int) error {
	return s.repos.TreatmentVaccines.Delete(ctx, id)
}

func (s *Service) GetTreatmentVaccine(ctx context.Context, id int) (TreatmentVaccine, error) {
	return s.repos.TreatmentVaccines.GetByID(ctx, id)
}

func (s *Service) ListTreatmentVaccines(ctx context.Context, p query.Params) ([]TreatmentVaccine, int, error) {
	return s.repos.TreatmentVaccines.List(ctx, p)
}
