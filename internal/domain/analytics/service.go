package analytics

import (
	"context"
	"time"
)

// DefaultControlWindowDays es la ventana por defecto para considerar que un
// animal está atrasado en controles.
const DefaultControlWindowDays = 90

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Dashboard es la vista combinada de la portada.
type Dashboard struct {
	Animals             AnimalBreakdown `json:"animals"`
	FieldsByState       map[string]int  `json:"fields_by_state"`
	ActiveTreatments    int             `json:"active_treatments"`
	VaccinationsLast30d int             `json:"vaccinations_last_30_days"`
	GeneratedAt         time.Time       `json:"generated_at"`
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	animals, err := s.repo.AnimalBreakdown(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	fields, err := s.repo.FieldsByState(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	now := s.now()
	treatments, err := s.repo.ActiveTreatments(ctx, now)
	if err != nil {
		return Dashboard{}, err
	}
	vaccinations, err := s.repo.VaccinationsBetween(ctx, now.AddDate(0, 0, -30), now)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		Animals:             animals,
		FieldsByState:       fields,
		ActiveTreatments:    treatments,
		VaccinationsLast30d: vaccinations,
		GeneratedAt:         now,
	}, nil
}

// Alerts lista los animales sin control veterinario dentro de la ventana dada.
type Alerts struct {
	WindowDays     int                  `json:"window_days"`
	WithoutControl []UncontrolledAnimal `json:"animals_without_control"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

func (s *Service) Alerts(ctx context.Context, windowDays int) (Alerts, error) {
	if windowDays <= 0 {
		windowDays = DefaultControlWindowDays
	}
	now := s.now()
	since := now.AddDate(0, 0, -windowDays)
	animals, err := s.repo.AnimalsWithoutControlSince(ctx, since)
	if err != nil {
		return Alerts{}, err
	}
	return Alerts{
		WindowDays:     windowDays,
		WithoutControl: animals,
		GeneratedAt:    now,
	}, nil
}

func (s *Service) AnimalStatistics(ctx context.Context) (AnimalBreakdown, error) {
	return s.repo.AnimalBreakdown(ctx)
}

func (s *Service) HealthStatistics(ctx context.Context) (HealthBreakdown, error) {
	byStatus, controlled, err := s.repo.HealthDistribution(ctx)
	if err != nil {
		return HealthBreakdown{}, err
	}
	diagnoses, err := s.repo.ActiveDiagnoses(ctx)
	if err != nil {
		return HealthBreakdown{}, err
	}
	treatments, err := s.repo.ActiveTreatments(ctx, s.now())
	if err != nil {
		return HealthBreakdown{}, err
	}
	return HealthBreakdown{
		ByStatus:         byStatus,
		ControlledTotal:  controlled,
		ActiveDiagnoses:  diagnoses,
		ActiveTreatments: treatments,
	}, nil
}
