package medical

import (
	"context"

	"livestock-api/internal/query"
)

type TreatmentRepository interface {
	Create(ctx context.Context, t Treatment) (Treatment, error)
	Update(ctx context.Context, t Treatment) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (Treatment, error)
	List(ctx context.Context, p query.Params) ([]Treatment, int, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type VaccinationRepository interface {
	Create(ctx context.Context, v Vaccination) (Vaccination, error)
	Update(ctx context.Context, v Vaccination) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (Vaccination, error)
	List(ctx context.Context, p query.Params) ([]Vaccination, int, error)
}

type VaccineRepository interface {
	Create(ctx context.Context, v Vaccine) (Vaccine, error)
	Update(ctx context.Context, v Vaccine) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (Vaccine, error)
	List(ctx context.Context, p query.Params) ([]Vaccine, int, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type MedicationRepository interface {
	Create(ctx context.Context, m Medication) (Medication, error)
	Update(ctx context.Context, m Medication) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (Medication, error)
	List(ctx context.Context, p query.Params) ([]Medication, int, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type DiseaseRepository interface {
	Create(ctx context.Context, d Disease) (Disease, error)
	Update(ctx context.Context, d Disease) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (Disease, error)
	List(ctx context.Context, p query.Params) ([]Disease, int, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type ControlRepository interface {
	Create(ctx context.Context, c Control) (Control, error)
	Update(ctx context.Context, c Control) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (Control, error)
	List(ctx context.Context, p query.Params) ([]Control, int, error)
}
