package relations

import (
	"context"

	"livestock-api/internal/query"
)

type AnimalDiseaseRepository interface {
	Create(ctx context.Context, ad AnimalDisease) (AnimalDisease, error)
	Update(ctx context.Context, ad AnimalDisease) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (AnimalDisease, error)
	List(ctx context.Context, p query.Params) ([]AnimalDisease, int, error)
}

type AnimalFieldRepository interface {
	Create(ctx context.Context, af AnimalField) (AnimalField, error)
	Update(ctx context.Context, af AnimalField) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (AnimalField, error)
	List(ctx context.Context, p query.Params) ([]AnimalField, int, error)
}

type TreatmentMedicationRepository interface {
	Create(ctx context.Context, tm TreatmentMedication) (TreatmentMedication, error)
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (TreatmentMedication, error)
	List(ctx context.Context, p query.Params) ([]TreatmentMedication, int, error)
}

type TreatmentVaccineRepository interface {
	Create(ctx context.Context, tv TreatmentVaccine) (TreatmentVaccine, error)
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (TreatmentVaccine, error)
	List(ctx context.Context, p query.Params) ([]TreatmentVaccine, int, error)
}
