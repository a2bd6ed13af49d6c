package animals

import (
	"fmt"
	"strings"
	"time"

	"livestock-api/internal/query"
)

// Sex define el sexo del animal. Valores en español: contrato con clientes.
type Sex string

const (
	SexHembra Sex = "Hembra"
	SexMacho  Sex = "Macho"
)

func ParseSex(s string) (Sex, error) {
	switch strings.TrimSpace(s) {
	case string(SexHembra):
		return SexHembra, nil
	case string(SexMacho):
		return SexMacho, nil
	}
	return "", fmt.Errorf("sexo inválido: %q (válidos: Hembra, Macho)", s)
}

// Status define el estado del animal dentro del hato.
type Status string

const (
	StatusVivo    Status = "Vivo"
	StatusVendido Status = "Vendido"
	StatusMuerto  Status = "Muerto"
)

func ParseStatus(s string) (Status, error) {
	switch strings.TrimSpace(s) {
	case string(StatusVivo):
		return StatusVivo, nil
	case string(StatusVendido):
		return StatusVendido, nil
	case string(StatusMuerto):
		return StatusMuerto, nil
	}
	return "", fmt.Errorf("estado inválido: %q (válidos: Vivo, Vendido, Muerto)", s)
}

// Animal es el registro central del sistema.
// IDFather/IDMother son autorreferencias opcionales a otros animales.
type Animal struct {
	ID        int
	Sex       Sex
	BirthDate time.Time
	Weight    int
	Record    string // código de registro único del animal
	Status    Status
	BreedID   int
	IDFather  *int
	IDMother  *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GeneticImprovement documenta un evento de mejoramiento genético sobre un animal.
type GeneticImprovement struct {
	ID        int
	Date      time.Time
	Details   string
	Results   string
	Technique string
	AnimalID  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

var ListAllowed = query.Allowed{
	Filterable: []string{"record", "breeds_id", "sex", "status", "min_weight", "max_weight"},
	Searchable: []string{"record"},
	Sortable:   []string{"id", "birth_date", "weight", "record", "created_at"},
}

var GeneticListAllowed = query.Allowed{
	Filterable: []string{"animal_id", "date"},
	Searchable: []string{"details", "results", "genetic_event_technique"},
	Sortable:   []string{"id", "date", "created_at"},
}
