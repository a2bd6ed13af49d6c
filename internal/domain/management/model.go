package management

import (
	"fmt"
	"strings"
	"time"

	"livestock-api/internal/query"
)

// LandStatus es el estado operativo de una pradera.
type LandStatus string

const (
	LandDisponible    LandStatus = "Disponible"
	LandOcupado       LandStatus = "Ocupado"
	LandMantenimiento LandStatus = "Mantenimiento"
	LandRestringido   LandStatus = "Restringido"
	LandDanado        LandStatus = "Dañado"
)

func LandStatuses() []LandStatus {
	return []LandStatus{LandDisponible, LandOcupado, LandMantenimiento, LandRestringido, LandDanado}
}

func ParseLandStatus(s string) (LandStatus, error) {
	for _, st := range LandStatuses() {
		if string(st) == strings.TrimSpace(s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("estado de pradera inválido: %q (válidos: Disponible, Ocupado, Mantenimiento, Restringido, Dañado)", s)
}

// Field es una pradera o potrero; el nombre es único.
type Field struct {
	ID         int
	Name       string
	Ubication  string
	Capacity   string
	State      LandStatus
	Handlings  string
	Gauges     string
	Area       float64
	FoodTypeID *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FoodType es un tipo de alimento cultivado; food_type es único.
type FoodType struct {
	ID          int
	FoodType    string
	SowingDate  time.Time
	HarvestDate *time.Time
	Area        int
	Handlings   string
	Gauges      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

var FieldListAllowed = query.Allowed{
	Filterable: []string{"state", "food_type_id"},
	Searchable: []string{"name", "ubication"},
	Sortable:   []string{"id", "name", "area", "created_at"},
}

var FoodTypeListAllowed = query.Allowed{
	Filterable: []string{"area"},
	Searchable: []string{"food_type", "handlings"},
	Sortable:   []string{"id", "food_type", "sowing_date", "created_at"},
}
