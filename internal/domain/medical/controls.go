package medical

import (
	"context"
	"strings"
	"time"

	"livestock-api/internal/query"
	"livestock-api/internal/validation"
)

type ControlInput struct {
	CheckupDate  time.Time
	HealthStatus HealthStatus
	Description  string
	AnimalID     int
}

func (s *Service) CreateControl(ctx context.Context, in ControlInput) (Control, error) {
	v := validation.New()
	if in.CheckupDate.IsZero() {
		v.Add("checkup_date", "la fecha del control es requerida")
	} else if in.CheckupDate.After(s.today()) {
		v.Add("checkup_date", "la fecha del control no puede ser futura")
	}
	if in.HealthStatus == "" {
		v.Add("healt_status", "el estado de salud es requerido")
	}
	if strings.TrimSpace(in.Description) == "" {
		v.Add("description", "la descripción es requerida")
	}
	s.checkAnimal(ctx, v, "animal_id", in.AnimalID)
	if err := v.Err(); err != nil {
		return Control{}, err
	}

	now := s.now()
	return s.repos.Controls.Create(ctx, Control{
		CheckupDate:  in.CheckupDate,
		HealthStatus: in.HealthStatus,
		Description:  strings.TrimSpace(in.Description),
		AnimalID:     in.AnimalID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

type ControlUpdate struct {
	CheckupDate  *time.Time
	HealthStatus *HealthStatus
	Description  *string
	AnimalID     *int
}

func (s *Service) UpdateControl(ctx context.Context, id int, in ControlUpdate) (Control, error) {
	c, err := s.repos.Controls.GetByID(ctx, id)
	if err != nil {
		return Control{}, err
	}

	v := validation.New()
	if in.CheckupDate != nil {
		if in.CheckupDate.After(s.today()) {
			v.Add("checkup_date", "la fecha del control no puede ser futura")
		} else {
			c.CheckupDate = *in.CheckupDate
		}
	}
	if in.HealthStatus != nil {
		c.HealthStatus = *in.HealthStatus
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			v.Add("description", "la descripción no puede quedar vacía")
		} else {
			c.Description = strings.TrimSpace(*in.Description)
		}
	}
	if in.AnimalID != nil {
		s.checkAnimal(ctx, v, "animal_id", *in.AnimalID)
		if *in.AnimalID > 0 {
			c.AnimalID = *in.AnimalID
		}
	}
	if err := v.Err(); err != nil {
		return Control{}, err
	}

	c.UpdatedAt = s.now()
	if err := s.repos.Controls.Update(ctx, c); err != nil {
		return Control{}, err
	}
	return c, nil
}

func (s *Service) DeleteControl(ctx context.Context, id int) error {
	return s.repos.Controls.Delete(ctx, id)
}

func (s *Service) GetControl(ctx context.Context, id int) (Control, error) {
	return s.repos.Controls.GetByID(ctx, id)
}

func (s *Service) ListControls(ctx context.Context, p query.Params) ([]Control, int, error) {
	return s.repos.Controls.List(ctx, p)
}
