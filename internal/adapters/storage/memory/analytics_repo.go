package memory

import (
	"context"
	"time"

	"livestock-api/internal/domain/analytics"
	"livestock-api/internal/domain/animals"
	"livestock-api/internal/domain/relations"
)

// AnalyticsRepo calcula los agregados recorriendo el Store.
type AnalyticsRepo struct {
	s *Store
}

func NewAnalyticsRepo(s *Store) *AnalyticsRepo {
	return &AnalyticsRepo{s: s}
}

func (r *AnalyticsRepo) AnimalBreakdown(ctx context.Context) (analytics.AnimalBreakdown, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b := analytics.AnimalBreakdown{
		ByStatus: make(map[string]int),
		BySex:    make(map[string]int),
		ByBreed:  make(map[string]int),
	}
	sum := 0
	for _, a := range r.s.animals {
		b.Total++
		b.ByStatus[string(a.Status)]++
		b.BySex[string(a.Sex)]++
		if br, ok := r.s.breeds[a.BreedID]; ok {
			b.ByBreed[br.Name]++
		}
		sum += a.Weight
	}
	if b.Total > 0 {
		b.AvgWeight = float64(sum) / float64(b.Total)
	}
	return b, nil
}

func (r *AnalyticsRepo) HealthDistribution(ctx context.Context) (map[string]int, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// Último control por animal: fecha más reciente, a igualdad gana el id mayor.
	latest := make(map[int]int) // animal -> control id
	for _, id := range sortedIDs(r.s.controls) {
		c := r.s.controls[id]
		prev, ok := latest[c.AnimalID]
		if !ok || r.s.controls[prev].CheckupDate.Before(c.CheckupDate) ||
			(r.s.controls[prev].CheckupDate.Equal(c.CheckupDate) && prev < id) {
			latest[c.AnimalID] = id
		}
	}

	dist := make(map[string]int)
	for _, id := range latest {
		dist[string(r.s.controls[id].HealthStatus)]++
	}
	return dist, len(latest), nil
}

func (r *AnalyticsRepo) AnimalsWithoutControlSince(ctx context.Context, since time.Time) ([]analytics.UncontrolledAnimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]analytics.UncontrolledAnimal, 0)
	for _, id := range sortedIDs(r.s.animals) {
		a := r.s.animals[id]
		if a.Status != animals.StatusVivo {
			continue
		}
		var last *time.Time
		for _, c := range r.s.controls {
			if c.AnimalID != id {
				continue
			}
			if last == nil || last.Before(c.CheckupDate) {
				t := c.CheckupDate
				last = &t
			}
		}
		if last == nil || last.Before(since) {
			out = append(out, analytics.UncontrolledAnimal{AnimalID: id, Record: a.Record, LastControl: last})
		}
	}
	return out, nil
}

func (r *AnalyticsRepo) ActiveTreatments(ctx context.Context, on time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, t := range r.s.treatments {
		if !t.StartDate.After(on) && !t.EndDate.Before(on) {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepo) ActiveDiagnoses(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, ad := range r.s.animalDiseases {
		if ad.Status == relations.DiagnosisActive {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepo) VaccinationsBetween(ctx context.Context, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, v := range r.s.vaccinations {
		if !v.ApplicationDate.Before(from) && !v.ApplicationDate.After(to) {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepo) FieldsByState(ctx context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]int)
	for _, f := range r.s.fields {
		out[string(f.State)]++
	}
	return out, nil
}
