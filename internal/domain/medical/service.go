package medical

import (
	"context"
	"time"

	"livestock-api/internal/validation"
)

// AnimalChecker y UserChecker validan referencias a otros módulos sin
// acoplar este paquete a sus implementaciones.
type AnimalChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type UserChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type Repos struct {
	Treatments   TreatmentRepository
	Vaccinations VaccinationRepository
	Vaccines     VaccineRepository
	Medications  MedicationRepository
	Diseases     DiseaseRepository
	Controls     ControlRepository
}

type Service struct {
	repos   Repos
	animals AnimalChecker
	users   UserChecker
	now     func() time.Time
}

func NewService(repos Repos, animals AnimalChecker, users UserChecker) *Service {
	return &Service{
		repos:   repos,
		animals: animals,
		users:   users,
		now:     time.Now,
	}
}

// today normaliza "ahora" al final del día para comparar contra fechas sin hora.
func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}

// checkAnimal agrega un error de validación si el animal referenciado no existe.
func (s *Service) checkAnimal(ctx context.Context, v *validation.Error, field string, id int) {
	if id <= 0 {
		v.Add(field, "el animal es requerido")
		return
	}
	if ok, err := s.animals.Exists(ctx, id); err == nil && !ok {
		v.Add(field, "el animal indicado no existe")
	}
}

func (s *Service) checkUser(ctx context.Context, v *validation.Error, field string, id int) {
	if id <= 0 {
		v.Add(field, "el usuario es requerido")
		return
	}
	if ok, err := s.users.Exists(ctx, id); err == nil && !ok {
		v.Add(field, "el usuario indicado no existe")
	}
}

// TreatmentExists y MedicationExists los usa el módulo de relaciones.
func (s *Service) TreatmentExists(ctx context.Context, id int) (bool, error) {
	return s.repos.Treatments.Exists(ctx, id)
}

func (s *Service) MedicationExists(ctx context.Context, id int) (bool, error) {
	return s.repos.Medications.Exists(ctx, id)
}

func (s *Service) VaccineExists(ctx context.Context, id int) (bool, error) {
	return s.repos.Vaccines.Exists(ctx, id)
}

func (s *Service) DiseaseExists(ctx context.Context, id int) (bool, error) {
	return s.repos.Diseases.Exists(ctx, id)
}
