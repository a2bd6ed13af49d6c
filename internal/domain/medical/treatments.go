package medical

import (
	"context"
	"strings"
	"time"

	"livestock-api/internal/query"
	"livestock-api/internal/validation"
)

type TreatmentInput struct {
	StartDate    time.Time
	EndDate      time.Time
	Description  string
	Frequency    string
	Observations string
	Dosis        string
	AnimalID     int
}

func (s *Service) CreateTreatment(ctx context.Context, in TreatmentInput) (Treatment, error) {
	v := validation.New()

	if in.StartDate.IsZero() {
		v.Add("start_date", "la fecha de inicio es requerida")
	} else if in.StartDate.After(s.today()) {
		v.Add("start_date", "la fecha de inicio no puede ser futura")
	}
	if in.EndDate.IsZero() {
		v.Add("end_date", "la fecha de fin es requerida")
	} else if !in.StartDate.IsZero() && in.EndDate.Before(in.StartDate) {
		v.Add("end_date", "la fecha de fin no puede ser anterior a la de inicio")
	} else if in.EndDate.After(s.today()) {
		v.Add("end_date", "la fecha de fin no puede ser futura")
	}
	if strings.TrimSpace(in.Description) == "" {
		v.Add("description", "la descripción es requerida")
	}
	if strings.TrimSpace(in.Frequency) == "" {
		v.Add("frequency", "la frecuencia es requerida")
	}
	if strings.TrimSpace(in.Dosis) == "" {
		v.Add("dosis", "la dosis es requerida")
	}
	s.checkAnimal(ctx, v, "animal_id", in.AnimalID)

	if err := v.Err(); err != nil {
		return Treatment{}, err
	}

	now := s.now()
	return s.repos.Treatments.Create(ctx, Treatment{
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Description:  strings.TrimSpace(in.Description),
		Frequency:    strings.TrimSpace(in.Frequency),
		Observations: strings.TrimSpace(in.Observations),
		Dosis:        strings.TrimSpace(in.Dosis),
		AnimalID:     in.AnimalID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

type TreatmentUpdate struct {
	StartDate    *time.Time
	EndDate      *time.Time
	Description  *string
	Frequency    *string
	Observations *string
	Dosis        *string
	AnimalID     *int
}

func (s *Service) UpdateTreatment(ctx context.Context, id int, in TreatmentUpdate) (Treatment, error) {
	t, err := s.repos.Treatments.GetByID(ctx, id)
	if err != nil {
		return Treatment{}, err
	}

	v := validation.New()

	if in.StartDate != nil {
		if in.StartDate.After(s.today()) {
			v.Add("start_date", "la fecha de inicio no puede ser futura")
		} else {
			t.StartDate = *in.StartDate
		}
	}
	if in.EndDate != nil {
		if in.EndDate.After(s.today()) {
			v.Add("end_date", "la fecha de fin no puede ser futura")
		} else {
			t.EndDate = *in.EndDate
		}
	}
	if t.EndDate.Before(t.StartDate) {
		v.Add("end_date", "la fecha de fin no puede ser anterior a la de inicio")
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			v.Add("description", "la descripción no puede quedar vacía")
		} else {
			t.Description = strings.TrimSpace(*in.Description)
		}
	}
	if in.Frequency != nil {
		t.Frequency = strings.TrimSpace(*in.Frequency)
	}
	if in.Observations != nil {
		t.Observations = strings.TrimSpace(*in.Observations)
	}
	if in.Dosis != nil {
		t.Dosis = strings.TrimSpace(*in.Dosis)
	}
	if in.AnimalID != nil {
		s.checkAnimal(ctx, v, "animal_id", *in.AnimalID)
		if *in.AnimalID > 0 {
			t.AnimalID = *in.AnimalID
		}
	}

	if err := v.Err(); err != nil {
		return Treatment{}, err
	}

	t.UpdatedAt = s.now()
	if err := s.repos.Treatments.Update(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

func (s *Service) DeleteTreatment(ctx context.Context, id int) error {
	return s.repos.Treatments.Delete(ctx, id)
}

func (s *Service) GetTreatment(ctx context.Context, id int) (Treatment, error) {
	return s.repos.Treatments.GetByID(ctx, id)
}

func (s *Service) ListTreatments(ctx context.Context, p query.Params) ([]Treatment, int, error) {
	return s.repos.Treatments.List(ctx, p)
}
