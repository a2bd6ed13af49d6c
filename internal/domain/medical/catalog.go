package medical

import (
	"context"
	"strings"

	"livestock-api/internal/query"
	"livestock-api/internal/validation"
)

// Catálogos sanitarios: vacunas, medicamentos y enfermedades.

type VaccineInput struct {
	Name                string
	Dosis               string
	Route               AdministrationRoute
	VaccinationInterval string
	Type                VaccineType
	NationalPlan        string
	TargetDiseaseID     int
}

func (s *Service) CreateVaccine(ctx context.Context, in VaccineInput) (Vaccine, error) {
	v := validation.New()
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "el nombre es requerido")
	}
	if strings.TrimSpace(in.Dosis) == "" {
		v.Add("dosis", "la dosis es requerida")
	}
	if in.Route == "" {
		v.Add("route_administration", "la vía de administración es requerida")
	}
	if in.Type == "" {
		v.Add("vaccine_type", "el tipo de vacuna es requerido")
	}
	if in.TargetDiseaseID <= 0 {
		v.Add("target_disease_id", "la enfermedad objetivo es requerida")
	} else if ok, err := s.repos.Diseases.Exists(ctx, in.TargetDiseaseID); err == nil && !ok {
		v.Add("target_disease_id", "la enfermedad indicada no existe")
	}
	if err := v.Err(); err != nil {
		return Vaccine{}, err
	}

	now := s.now()
	return s.repos.Vaccines.Create(ctx, Vaccine{
		Name:                strings.TrimSpace(in.Name),
		Dosis:               strings.TrimSpace(in.Dosis),
		Route:               in.Route,
		VaccinationInterval: strings.TrimSpace(in.VaccinationInterval),
		Type:                in.Type,
		NationalPlan:        strings.TrimSpace(in.NationalPlan),
		TargetDiseaseID:     in.TargetDiseaseID,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
}

func (s *Service) UpdateVaccine(ctx context.Context, id int, in VaccineInput) (Vaccine, error) {
	vac, err := s.repos.Vaccines.GetByID(ctx, id)
	if err != nil {
		return Vaccine{}, err
	}

	v := validation.New()
	if strings.TrimSpace(in.Name) != "" {
		vac.Name = strings.TrimSpace(in.Name)
	}
	if strings.TrimSpace(in.Dosis) != "" {
		vac.Dosis = strings.TrimSpace(in.Dosis)
	}
	if in.Route != "" {
		vac.Route = in.Route
	}
	if in.Type != "" {
		vac.Type = in.Type
	}
	if strings.TrimSpace(in.VaccinationInterval) != "" {
		vac.VaccinationInterval = strings.TrimSpace(in.VaccinationInterval)
	}
	if strings.TrimSpace(in.NationalPlan) != "" {
		vac.NationalPlan = strings.TrimSpace(in.NationalPlan)
	}
	if in.TargetDiseaseID > 0 {
		if ok, err := s.repos.Diseases.Exists(ctx, in.TargetDiseaseID); err == nil && !ok {
			v.Add("target_disease_id", "la enfermedad indicada no existe")
		} else {
			vac.TargetDiseaseID = in.TargetDiseaseID
		}
	}
	if err := v.Err(); err != nil {
		return Vaccine{}, err
	}

	vac.UpdatedAt = s.now()
	if err := s.repos.Vaccines.Update(ctx, vac); err != nil {
		return Vaccine{}, err
	}
	return vac, nil
}

func (s *Service) DeleteVaccine(ctx context.Context, id int) error {
	return s.repos.Vaccines.Delete(ctx, id)
}

func (s *Service) GetVaccine(ctx context.Context, id int) (Vaccine, error) {
	return s.repos.Vaccines.GetByID(ctx, id)
}

func (s *Service) ListVaccines(ctx context.Context, p query.Params) ([]Vaccine, int, error) {
	return s.repos.Vaccines.List(ctx, p)
}

type MedicationInput struct {
	Name              string
	Description       string
	Indications       string
	Contraindications string
	Route             AdministrationRoute
	Availability      *bool
}

func (s *Service) CreateMedication(ctx context.Context, in MedicationInput) (Medication, error) {
	v := validation.New()
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "el nombre es requerido")
	}
	if strings.TrimSpace(in.Description) == "" {
		v.Add("description", "la descripción es requerida")
	}
	if in.Route == "" {
		v.Add("route_administration", "la vía de administración es requerida")
	}
	if err := v.Err(); err != nil {
		return Medication{}, err
	}

	availability := true
	if in.Availability != nil {
		availability = *in.Availability
	}

	now := s.now()
	return s.repos.Medications.Create(ctx, Medication{
		Name:              strings.TrimSpace(in.Name),
		Description:       strings.TrimSpace(in.Description),
		Indications:       strings.TrimSpace(in.Indications),
		Contraindications: strings.TrimSpace(in.Contraindications),
		Route:             in.Route,
		Availability:      availability,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

func (s *Service) UpdateMedication(ctx context.Context, id int, in MedicationInput) (Medication, error) {
	m, err := s.repos.Medications.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	if strings.TrimSpace(in.Name) != "" {
		m.Name = strings.TrimSpace(in.Name)
	}
	if strings.TrimSpace(in.Description) != "" {
		m.Description = strings.TrimSpace(in.Description)
	}
	if strings.TrimSpace(in.Indications) != "" {
		m.Indications = strings.TrimSpace(in.Indications)
	}
	if strings.TrimSpace(in.Contraindications) != "" {
		m.Contraindications = strings.TrimSpace(in.Contraindications)
	}
	if in.Route != "" {
		m.Route = in.Route
	}
	if in.Availability != nil {
		m.Availability = *in.Availability
	}

	m.UpdatedAt = s.now()
	if err := s.repos.Medications.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) DeleteMedication(ctx context.Context, id int) error {
	return s.repos.Medications.Delete(ctx, id)
}

func (s *Service) GetMedication(ctx context.Context, id int) (Medication, error) {
	return s.repos.Medications.GetByID(ctx, id)
}

func (s *Service) ListMedications(ctx context.Context, p query.Params) ([]Medication, int, error) {
	return s.repos.Medications.List(ctx, p)
}

type DiseaseInput struct {
	Name     string
	Symptoms string
	Details  string
}

func (s *Service) CreateDisease(ctx context.Context, in DiseaseInput) (Disease, error) {
	v := validation.New()
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "el nombre es requerido")
	}
	if strings.TrimSpace(in.Symptoms) == "" {
		v.Add("symptoms", "los síntomas son requeridos")
	}
	if err := v.Err(); err != nil {
		return Disease{}, err
	}

	now := s.now()
	return s.repos.Diseases.Create(ctx, Disease{
		Name:      strings.TrimSpace(in.Name),
		Symptoms:  strings.TrimSpace(in.Symptoms),
		Details:   strings.TrimSpace(in.Details),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) UpdateDisease(ctx context.Context, id int, in DiseaseInput) (Disease, error) {
	d, err := s.repos.Diseases.GetByID(ctx, id)
	if err != nil {
		return Disease{}, err
	}

	if strings.TrimSpace(in.Name) != "" {
		d.Name = strings.TrimSpace(in.Name)
	}
	if strings.TrimSpace(in.Symptoms) != "" {
		d.Symptoms = strings.TrimSpace(in.Symptoms)
	}
	if strings.TrimSpace(in.Details) != "" {
		d.Details = strings.TrimSpace(in.Details)
	}

	d.UpdatedAt = s.now()
	if err := s.repos.Diseases.Update(ctx, d); err != nil {
		return Disease{}, err
	}
	return d, nil
}

func (s *Service) DeleteDisease(ctx context.Context, id int) error {
	return s.repos.Diseases.Delete(ctx, id)
}

func (s *Service) GetDisease(ctx context.Context, id int) (Disease, error) {
	return s.repos.Diseases.GetByID(ctx, id)
}

func (s *Service) ListDiseases(ctx context.Context, p query.Params) ([]Disease, int, error) {
	return s.repos.Diseases.List(ctx, p)
}
