package animals

import (
	"context"
	"strings"
	"time"

	"livestock-api/internal/query"
	"livestock-api/internal/validation"
)

// BreedChecker valida referencias a razas sin acoplar este módulo al de razas.
type BreedChecker interface {
	BreedExists(ctx context.Context, id int) (bool, error)
}

type Service struct {
	repo    Repository
	genetic GeneticRepository
	breeds  BreedChecker
	now     func() time.Time
}

func NewService(repo Repository, genetic GeneticRepository, breeds BreedChecker) *Service {
	return &Service{
		repo:    repo,
		genetic: genetic,
		breeds:  breeds,
		now:     time.Now,
	}
}

type CreateInput struct {
	Sex       Sex
	BirthDate time.Time
	Weight    int
	Record    string
	Status    Status // vacío => Vivo
	BreedID   int
	IDFather  *int
	IDMother  *int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	v := validation.New()

	if in.BirthDate.IsZero() {
		v.Add("birth_date", "la fecha de nacimiento es requerida")
	} else if in.BirthDate.After(s.today()) {
		v.Add("birth_date", "la fecha de nacimiento no puede ser futura")
	}
	if in.Weight <= 0 {
		v.Add("weight", "el peso debe ser mayor que cero")
	}
	if strings.TrimSpace(in.Record) == "" {
		v.Add("record", "el código de registro es requerido")
	}
	if in.BreedID <= 0 {
		v.Add("breeds_id", "la raza es requerida")
	}

	s.validateParents(ctx, v, 0, in.IDFather, in.IDMother)

	if in.BreedID > 0 {
		ok, err := s.breeds.BreedExists(ctx, in.BreedID)
		if err != nil {
			return Animal{}, err
		}
		if !ok {
			v.Add("breeds_id", "la raza indicada no existe")
		}
	}

	if err := v.Err(); err != nil {
		return Animal{}, err
	}

	status := in.Status
	if status == "" {
		status = StatusVivo
	}

	now := s.now()
	a := Animal{
		Sex:       in.Sex,
		BirthDate: in.BirthDate,
		Weight:    in.Weight,
		Record:    strings.TrimSpace(in.Record),
		Status:    status,
		BreedID:   in.BreedID,
		IDFather:  in.IDFather,
		IDMother:  in.IDMother,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Create(ctx, a)
}

type UpdateInput struct {
	Sex       *Sex
	BirthDate *time.Time
	Weight    *int
	Record    *string
	Status    *Status
	BreedID   *int
	IDFather  *int
	IDMother  *int

	// ClearFather/ClearMother distinguen "no tocar" de "poner en null".
	ClearFather bool
	ClearMother bool
}

func (s *Service) Update(ctx context.Context, id int, in UpdateInput) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	v := validation.New()

	if in.Sex != nil {
		a.Sex = *in.Sex
	}
	if in.BirthDate != nil {
		if in.BirthDate.After(s.today()) {
			v.Add("birth_date", "la fecha de nacimiento no puede ser futura")
		} else {
			a.BirthDate = *in.BirthDate
		}
	}
	if in.Weight != nil {
		if *in.Weight <= 0 {
			v.Add("weight", "el peso debe ser mayor que cero")
		} else {
			a.Weight = *in.Weight
		}
	}
	if in.Record != nil {
		if strings.TrimSpace(*in.Record) == "" {
			v.Add("record", "el código de registro no puede quedar vacío")
		} else {
			a.Record = strings.TrimSpace(*in.Record)
		}
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.BreedID != nil {
		ok, err := s.breeds.BreedExists(ctx, *in.BreedID)
		if err != nil {
			return Animal{}, err
		}
		if !ok {
			v.Add("breeds_id", "la raza indicada no existe")
		} else {
			a.BreedID = *in.BreedID
		}
	}

	if in.ClearFather {
		a.IDFather = nil
	} else if in.IDFather != nil {
		a.IDFather = in.IDFather
	}
	if in.ClearMother {
		a.IDMother = nil
	} else if in.IDMother != nil {
		a.IDMother = in.IDMother
	}

	s.validateParents(ctx, v, a.ID, a.IDFather, a.IDMother)

	if err := v.Err(); err != nil {
		return Animal{}, err
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// validateParents aplica las reglas de parentesco: un animal no puede ser su
// propio padre o madre, padre y madre deben ser distintos, y ambos deben existir.
func (s *Service) validateParents(ctx context.Context, v *validation.Error, selfID int, father, mother *int) {
	if father != nil && selfID != 0 && *father == selfID {
		v.Add("idFather", "un animal no puede ser su propio padre")
	}
	if mother != nil && selfID != 0 && *mother == selfID {
		v.Add("idMother", "un animal no puede ser su propia madre")
	}
	if father != nil && mother != nil && *father == *mother {
		v.Add("idMother", "el padre y la madre deben ser animales distintos")
	}

	for field, ref := range map[string]*int{"idFather": father, "idMother": mother} {
		if ref == nil {
			continue
		}
		ok, err := s.repo.Exists(ctx, *ref)
		if err != nil {
			continue
		}
		if !ok {
			v.Add(field, "el animal referenciado no existe")
		}
	}
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, p query.Params) ([]Animal, int, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	return s.repo.Statistics(ctx)
}

// Exists lo usan otros módulos (médico, relaciones) para validar referencias.
func (s *Service) Exists(ctx context.Context, id int) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// ---- Mejoramientos genéticos ----

type GeneticInput struct {
	Date      time.Time
	Details   string
	Results   string
	Technique string
	AnimalID  int
}

func (s *Service) CreateImprovement(ctx context.Context, in GeneticInput) (GeneticImprovement, error) {
	v := validation.New()
	if in.Date.IsZero() {
		v.Add("date", "la fecha es requerida")
	} else if in.Date.After(s.today()) {
		v.Add("date", "la fecha no puede ser futura")
	}
	if strings.TrimSpace(in.Details) == "" {
		v.Add("details", "los detalles son requeridos")
	}
	if strings.TrimSpace(in.Results) == "" {
		v.Add("results", "los resultados son requeridos")
	}
	if strings.TrimSpace(in.Technique) == "" {
		v.Add("genetic_event_technique", "la técnica es requerida")
	}
	if in.AnimalID <= 0 {
		v.Add("animal_id", "el animal es requerido")
	} else if ok, err := s.repo.Exists(ctx, in.AnimalID); err == nil && !ok {
		v.Add("animal_id", "el animal indicado no existe")
	}
	if err := v.Err(); err != nil {
		return GeneticImprovement{}, err
	}

	now := s.now()
	g := GeneticImprovement{
		Date:      in.Date,
		Details:   strings.TrimSpace(in.Details),
		Results:   strings.TrimSpace(in.Results),
		Technique: strings.TrimSpace(in.Technique),
		AnimalID:  in.AnimalID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.genetic.Create(ctx, g)
}

func (s *Service) GetImprovement(ctx context.Context, id int) (GeneticImprovement, error) {
	return s.genetic.GetByID(ctx, id)
}

func (s *Service) ListImprovements(ctx context.Context, p query.Params) ([]GeneticImprovement, int, error) {
	return s.genetic.List(ctx, p)
}

func (s *Service) UpdateImprovement(ctx context.Context, id int, in GeneticInput) (GeneticImprovement, error) {
	g, err := s.genetic.GetByID(ctx, id)
	if err != nil {
		return GeneticImprovement{}, err
	}

	v := validation.New()
	if !in.Date.IsZero() {
		if in.Date.After(s.today()) {
			v.Add("date", "la fecha no puede ser futura")
		} else {
			g.Date = in.Date
		}
	}
	if strings.TrimSpace(in.Details) != "" {
		g.Details = strings.TrimSpace(in.Details)
	}
	if strings.TrimSpace(in.Results) != "" {
		g.Results = strings.TrimSpace(in.Results)
	}
	if strings.TrimSpace(in.Technique) != "" {
		g.Technique = strings.TrimSpace(in.Technique)
	}
	if err := v.Err(); err != nil {
		return GeneticImprovement{}, err
	}

	g.UpdatedAt = s.now()
	if err := s.genetic.Update(ctx, g); err != nil {
		return GeneticImprovement{}, err
	}
	return g, nil
}

func (s *Service) DeleteImprovement(ctx context.Context, id int) error {
	return s.genetic.Delete(ctx, id)
}

// today normaliza "ahora" a medianoche para comparar contra fechas sin hora.
func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
