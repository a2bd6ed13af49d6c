package medical

import (
	"time"

	"livestock-api/internal/query"
)

// Treatment es un tratamiento médico aplicado a un animal durante un rango de fechas.
type Treatment struct {
	ID           int
	StartDate    time.Time
	EndDate      time.Time
	Description  string
	Frequency    string
	Observations string
	Dosis        string
	AnimalID     int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Vaccination registra la aplicación de una vacuna a un animal.
// (animal_id, vaccine_id, application_date) es único.
// El aprendiz es opcional; el instructor siempre queda registrado.
type Vaccination struct {
	ID              int
	AnimalID        int
	VaccineID       int
	ApplicationDate time.Time
	InstructorID    int
	ApprenticeID    *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Vaccine es una entrada del catálogo de vacunas.
type Vaccine struct {
	ID                  int
	Name                string
	Dosis               string
	Route               AdministrationRoute
	VaccinationInterval string
	Type                VaccineType
	NationalPlan        string
	TargetDiseaseID     int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Medication es una entrada del catálogo de medicamentos.
type Medication struct {
	ID                int
	Name              string
	Description       string
	Indications       string
	Contraindications string
	Route             AdministrationRoute
	Availability      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Disease es una enfermedad del catálogo sanitario.
type Disease struct {
	ID       int
	Name     string
	Symptoms string
	Details  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Control es un chequeo veterinario puntual de un animal.
type Control struct {
	ID           int
	CheckupDate  time.Time
	HealthStatus HealthStatus
	Description  string
	AnimalID     int

	CreatedAt time.Time
	UpdatedAt time.Time
}

var TreatmentListAllowed = query.Allowed{
	Filterable: []string{"animal_id", "start_date", "end_date"},
	Searchable: []string{"description", "observations"},
	Sortable:   []string{"id", "start_date", "end_date", "created_at"},
}

var VaccinationListAllowed = query.Allowed{
	Filterable: []string{"animal_id", "vaccine_id", "instructor_id", "apprentice_id"},
	Sortable:   []string{"id", "application_date", "created_at"},
}

var VaccineListAllowed = query.Allowed{
	Filterable: []string{"vaccine_type", "route", "target_disease_id"},
	Searchable: []string{"name", "national_plan"},
	Sortable:   []string{"id", "name", "created_at"},
}

var MedicationListAllowed = query.Allowed{
	Filterable: []string{"route", "availability"},
	Searchable: []string{"name", "description", "indications"},
	Sortable:   []string{"id", "name", "created_at"},
}

var DiseaseListAllowed = query.Allowed{
	Searchable: []string{"name", "symptoms"},
	Sortable:   []string{"id", "name", "created_at"},
}

var ControlListAllowed = query.Allowed{
	Filterable: []string{"animal_id", "healt_status"},
	Searchable: []string{"description"},
	Sortable:   []string{"id", "checkup_date", "created_at"},
}
