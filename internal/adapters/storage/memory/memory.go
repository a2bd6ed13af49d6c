// Package memory implementa los repositorios sobre mapas en memoria. Se usa
// en pruebas y en arranques sin base de datos; un único Store comparte el
// estado para poder verificar integridad referencial entre entidades.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"livestock-api/internal/domain/animals"
	"livestock-api/internal/domain/breeds"
	"livestock-api/internal/domain/management"
	"livestock-api/internal/domain/medical"
	"livestock-api/internal/domain/relations"
	"livestock-api/internal/domain/users"
	"livestock-api/internal/query"
)

type Store struct {
	mu sync.RWMutex

	users   map[int]users.User
	species map[int]breeds.Species
	breeds  map[int]breeds.Breed
	animals map[int]animals.Animal
	genetic map[int]animals.GeneticImprovement

	treatments   map[int]medical.Treatment
	vaccinations map[int]medical.Vaccination
	vaccines     map[int]medical.Vaccine
	medications  map[int]medical.Medication
	diseases     map[int]medical.Disease
	controls     map[int]medical.Control

	fields    map[int]management.Field
	foodTypes map[int]management.FoodType

	animalDiseases       map[int]relations.AnimalDisease
	animalFields         map[int]relations.AnimalField
	treatmentMedications map[int]relations.TreatmentMedication
	treatmentVaccines    map[int]relations.TreatmentVaccine

	seq     map[string]int
	lastMod map[string]time.Time
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   make(map[int]users.User),
		species: make(map[int]breeds.Species),
		breeds:  make(map[int]breeds.Breed),
		animals: make(map[int]animals.Animal),
		genetic: make(map[int]animals.GeneticImprovement),

		treatments:   make(map[int]medical.Treatment),
		vaccinations: make(map[int]medical.Vaccination),
		vaccines:     make(map[int]medical.Vaccine),
		medications:  make(map[int]medical.Medication),
		diseases:     make(map[int]medical.Disease),
		controls:     make(map[int]medical.Control),

		fields:    make(map[int]management.Field),
		foodTypes: make(map[int]management.FoodType),

		animalDiseases:       make(map[int]relations.AnimalDisease),
		animalFields:         make(map[int]relations.AnimalField),
		treatmentMedications: make(map[int]relations.TreatmentMedication),
		treatmentVaccines:    make(map[int]relations.TreatmentVaccine),

		seq:     make(map[string]int),
		lastMod: make(map[string]time.Time),
		now:     time.Now,
	}
}

// nextID asigna ids crecientes por tabla. Requiere el lock tomado.
func (s *Store) nextID(table string) int {
	s.seq[table]++
	return s.seq[table]
}

// touch registra el cambio para el cálculo de ETags. Requiere el lock tomado.
func (s *Store) touch(table string) {
	s.lastMod[table] = s.now()
}

// LastModified implementa httpcache.LastModifiedFunc.
func (s *Store) LastModified(_ context.Context, table string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMod[table], nil
}

// ---- helpers de listado ----

// listPage ordena por id, aplica el orden pedido con less, y pagina.
func listPage[T any](items []T, p query.Params, less func(a, b T) bool) ([]T, int) {
	if less != nil {
		sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
		if p.SortOrder == "desc" {
			for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
				items[i], items[j] = items[j], items[i]
			}
		}
	}
	total := len(items)
	start := p.Offset()
	if start >= total {
		return []T{}, total
	}
	end := start + p.PerPage
	if end > total {
		end = total
	}
	return items[start:end], total
}

// dateFilter interpreta un filtro de fecha en formato YYYY-MM-DD.
func dateFilter(p query.Params, name string) (time.Time, bool, error) {
	v := p.Filter(name)
	if v == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%s debe tener formato YYYY-MM-DD", name)
	}
	return t, true, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
