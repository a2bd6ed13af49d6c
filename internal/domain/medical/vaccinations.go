package medical

import (
	"context"
	"time"

	"livestock-api/internal/query"
	"livestock-api/internal/validation"
)

type VaccinationInput struct {
	AnimalID        int
	VaccineID       int
	ApplicationDate time.Time
	InstructorID    int
	ApprenticeID    *int // opcional
}

// CreateVaccination registra una aplicación. La combinación
// (animal, vacuna, fecha) es única; el repo devuelve storage.ErrDuplicate
// si ya existe.
func (s *Service) CreateVaccination(ctx context.Context, in VaccinationInput) (Vaccination, error) {
	v := validation.New()

	if in.ApplicationDate.IsZero() {
		v.Add("application_date", "la fecha de aplicación es requerida")
	} else if in.ApplicationDate.After(s.today()) {
		v.Add("application_date", "la fecha de aplicación no puede ser futura")
	}
	s.checkAnimal(ctx, v, "animal_id", in.AnimalID)
	if in.VaccineID <= 0 {
		v.Add("vaccine_id", "la vacuna es requerida")
	} else if ok, err := s.repos.Vaccines.Exists(ctx, in.VaccineID); err == nil && !ok {
		v.Add("vaccine_id", "la vacuna indicada no existe")
	}
	s.checkUser(ctx, v, "instructor_id", in.InstructorID)
	if in.ApprenticeID != nil {
		s.checkUser(ctx, v, "apprentice_id", *in.ApprenticeID)
	}

	if err := v.Err(); err != nil {
		return Vaccination{}, err
	}

	now := s.now()
	return s.repos.Vaccinations.Create(ctx, Vaccination{
		AnimalID:        in.AnimalID,
		VaccineID:       in.VaccineID,
		ApplicationDate: in.ApplicationDate,
		InstructorID:    in.InstructorID,
		ApprenticeID:    in.ApprenticeID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

type VaccinationUpdate struct {
	AnimalID        *int
	VaccineID       *int
	ApplicationDate *time.Time
	InstructorID    *int
	ApprenticeID    *int

	// ClearApprentice distingue "no tocar" de "poner en null".
	ClearApprentice bool
}

func (s *Service) UpdateVaccination(ctx context.Context, id int, in VaccinationUpdate) (Vaccination, error) {
	vac, err := s.repos.Vaccinations.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, err
	}

	v := validation.New()

	if in.ApplicationDate != nil {
		if in.ApplicationDate.After(s.today()) {
			v.Add("application_date", "la fecha de aplicación no puede ser futura")
		} else {
			vac.ApplicationDate = *in.ApplicationDate
		}
	}
	if in.AnimalID != nil {
		s.checkAnimal(ctx, v, "animal_id", *in.AnimalID)
		if *in.AnimalID > 0 {
			vac.AnimalID = *in.AnimalID
		}
	}
	if in.VaccineID != nil {
		if ok, err := s.repos.Vaccines.Exists(ctx, *in.VaccineID); err == nil && !ok {
			v.Add("vaccine_id", "la vacuna indicada no existe")
		} else {
			vac.VaccineID = *in.VaccineID
		}
	}
	if in.InstructorID != nil {
		s.checkUser(ctx, v, "instructor_id", *in.InstructorID)
		if *in.InstructorID > 0 {
			vac.InstructorID = *in.InstructorID
		}
	}
	if in.ClearApprentice {
		vac.ApprenticeID = nil
	} else if in.ApprenticeID != nil {
		s.checkUser(ctx, v, "apprentice_id", *in.ApprenticeID)
		if *in.ApprenticeID > 0 {
			vac.ApprenticeID = in.ApprenticeID
		}
	}

	if err := v.Err(); err != nil {
		return Vaccination{}, err
	}

	vac.UpdatedAt = s.now()
	if err := s.repos.Vaccinations.Update(ctx, vac); err != nil {
		return Vaccination{}, err
	}
	return vac, nil
}

func (s *Service) DeleteVaccination(ctx context.Context, id int) error {
	return s.repos.Vaccinations.Delete(ctx, id)
}

func (s *Service) GetVaccination(ctx context.Context, id int) (Vaccination, error) {
	return s.repos.Vaccinations.GetByID(ctx, id)
}

func (s *Service) ListVaccinations(ctx context.Context, p query.Params) ([]Vaccination, int, error) {
	return s.repos.Vaccinations.List(ctx, p)
}
