package relations

import (
	"time"

	"livestock-api/internal/query"
)

// AnimalDisease es un diagnóstico: asocia un animal con una enfermedad.
// (animal_id, disease_id, diagnosis_date) es único.
type AnimalDisease struct {
	ID            int
	AnimalID      int
	DiseaseID     int
	InstructorID  int
	DiagnosisDate time.Time
	Status        string
	Notes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnimalField registra la asignación de un animal a una pradera.
// (animal_id, field_id, assignment_date) es único.
type AnimalField struct {
	ID             int
	AnimalID       int
	FieldID        int
	AssignmentDate time.Time
	RemovalDate    *time.Time
	Notes          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TreatmentMedication asocia un medicamento a un tratamiento. El par es único.
type TreatmentMedication struct {
	ID           int
	TreatmentID  int
	MedicationID int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TreatmentVaccine asocia una vacuna a un tratamiento. El par es único.
type TreatmentVaccine struct {
	ID          int
	TreatmentID int
	VaccineID   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DiagnosisActive es el estado por defecto de un diagnóstico nuevo.
const DiagnosisActive = "Activo"

var AnimalDiseaseListAllowed = query.Allowed{
	Filterable: []string{"animal_id", "disease_id", "instructor_id", "status"},
	Searchable: []string{"notes"},
	Sortable:   []string{"id", "diagnosis_date", "created_at"},
}

var AnimalFieldListAllowed = query.Allowed{
	Filterable: []string{"animal_id", "field_id"},
	Searchable: []string{"notes"},
	Sortable:   []string{"id", "assignment_date", "created_at"},
}

var TreatmentMedicationListAllowed = query.Allowed{
	Filterable: []string{"treatment_id", "medication_id"},
	Sortable:   []string{"id", "created_at"},
}

var TreatmentVaccineListAllowed = query.Allowed{
	Filterable: []string{"treatment_id", "vaccine_id"},
	Sortable:   []string{"id", "created_at"},
}
