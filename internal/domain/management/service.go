package management

import (
	"context"
	"strings"
	"time"

	"livestock-api/internal/query"
	"livestock-api/internal/validation"
)

type Service struct {
	fields    FieldRepository
	foodTypes FoodTypeRepository
	now       func() time.Time
}

func NewService(fields FieldRepository, foodTypes FoodTypeRepository) *Service {
	return &Service{fields: fields, foodTypes: foodTypes, now: time.Now}
}

// ---- Praderas ----

type FieldInput struct {
	Name       string
	Ubication  string
	Capacity   string
	State      LandStatus
	Handlings  string
	Gauges     string
	Area       float64
	FoodTypeID *int
}

func (s *Service) CreateField(ctx context.Context, in FieldInput) (Field, error) {
	v := validation.New()
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "el nombre es requerido")
	}
	if strings.TrimSpace(in.Ubication) == "" {
		v.Add("ubication", "la ubicación es requerida")
	}
	if in.State == "" {
		v.Add("state", "el estado es requerido")
	}
	if in.Area <= 0 {
		v.Add("area", "el área debe ser mayor que cero")
	}
	s.checkFoodType(ctx, v, in.FoodTypeID)
	if err := v.Err(); err != nil {
		return Field{}, err
	}

	now := s.now()
	return s.fields.Create(ctx, Field{
		Name:       strings.TrimSpace(in.Name),
		Ubication:  strings.TrimSpace(in.Ubication),
		Capacity:   strings.TrimSpace(in.Capacity),
		State:      in.State,
		Handlings:  strings.TrimSpace(in.Handlings),
		Gauges:     strings.TrimSpace(in.Gauges),
		Area:       in.Area,
		FoodTypeID: in.FoodTypeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

type FieldUpdate struct {
	Name       *string
	Ubication  *string
	Capacity   *string
	State      *LandStatus
	Handlings  *string
	Gauges     *string
	Area       *float64
	FoodTypeID *int

	// ClearFoodType distingue "no tocar" de "poner en null".
	ClearFoodType bool
}

func (s *Service) UpdateField(ctx context.Context, id int, in FieldUpdate) (Field, error) {
	f, err := s.fields.GetByID(ctx, id)
	if err != nil {
		return Field{}, err
	}

	v := validation.New()
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			v.Add("name", "el nombre no puede quedar vacío")
		} else {
			f.Name = strings.TrimSpace(*in.Name)
		}
	}
	if in.Ubication != nil {
		f.Ubication = strings.TrimSpace(*in.Ubication)
	}
	if in.Capacity != nil {
		f.Capacity = strings.TrimSpace(*in.Capacity)
	}
	if in.State != nil {
		f.State = *in.State
	}
	if in.Handlings != nil {
		f.Handlings = strings.TrimSpace(*in.Handlings)
	}
	if in.Gauges != nil {
		f.Gauges = strings.TrimSpace(*in.Gauges)
	}
	if in.Area != nil {
		if *in.Area <= 0 {
			v.Add("area", "el área debe ser mayor que cero")
		} else {
			f.Area = *in.Area
		}
	}
	if in.ClearFoodType {
		f.FoodTypeID = nil
	} else if in.FoodTypeID != nil {
		s.checkFoodType(ctx, v, in.FoodTypeID)
		f.FoodTypeID = in.FoodTypeID
	}
	if err := v.Err(); err != nil {
		return Field{}, err
	}

	f.UpdatedAt = s.now()
	if err := s.fields.Update(ctx, f); err != nil {
		return Field{}, err
	}
	return f, nil
}

func (s *Service) checkFoodType(ctx context.Context, v *validation.Error, id *int) {
	if id == nil {
		return
	}
	if ok, err := s.foodTypes.Exists(ctx, *id); err == nil && !ok {
		v.Add("food_type_id", "el tipo de alimento indicado no existe")
	}
}

func (s *Service) DeleteField(ctx context.Context, id int) error {
	return s.fields.Delete(ctx, id)
}

func (s *Service) GetField(ctx context.Context, id int) (Field, error) {
	return s.fields.GetByID(ctx, id)
}

func (s *Service) ListFields(ctx context.Context, p query.Params) ([]Field, int, error) {
	return s.fields.List(ctx, p)
}

// FieldExists lo usa el módulo de relaciones.
func (s *Service) FieldExists(ctx context.Context, id int) (bool, error) {
	return s.fields.Exists(ctx, id)
}

// ---- Tipos de alimento ----

type FoodTypeInput struct {
	FoodType    string
	SowingDate  time.Time
	HarvestDate *time.Time
	Area        int
	Handlings   string
	Gauges      string
}

func (s *Service) CreateFoodType(ctx context.Context, in FoodTypeInput) (FoodType, error) {
	v := validation.New()
	if strings.TrimSpace(in.FoodType) == "" {
		v.Add("food_type", "el tipo de alimento es requerido")
	}
	if in.SowingDate.IsZero() {
		v.Add("sowing_date", "la fecha de siembra es requerida")
	}
	if in.HarvestDate != nil && !in.SowingDate.IsZero() && in.HarvestDate.Before(in.SowingDate) {
		v.Add("harvest_date", "la fecha de cosecha no puede ser anterior a la de siembra")
	}
	if in.Area <= 0 {
		v.Add("area", "el área debe ser mayor que cero")
	}
	if err := v.Err(); err != nil {
		return FoodType{}, err
	}

	now := s.now()
	return s.foodTypes.Create(ctx, FoodType{
		FoodType:    strings.TrimSpace(in.FoodType),
		SowingDate:  in.SowingDate,
		HarvestDate: in.HarvestDate,
		Area:        in.Area,
		Handlings:   strings.TrimSpace(in.Handlings),
		Gauges:      strings.TrimSpace(in.Gauges),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

type FoodTypeUpdate struct {
	FoodType    *string
	SowingDate  *time.Time
	HarvestDate *time.Time
	Area        *int
	Handlings   *string
	Gauges      *string

	ClearHarvest bool
}

func (s *Service) UpdateFoodType(ctx context.Context, id int, in FoodTypeUpdate) (FoodType, error) {
	ft, err := s.foodTypes.GetByID(ctx, id)
	if err != nil {
		return FoodType{}, err
	}

	v := validation.New()
	if in.FoodType != nil {
		if strings.TrimSpace(*in.FoodType) == "" {
			v.Add("food_type", "el tipo de alimento no puede quedar vacío")
		} else {
			ft.FoodType = strings.TrimSpace(*in.FoodType)
		}
	}
	if in.SowingDate != nil {
		ft.SowingDate = *in.SowingDate
	}
	if in.ClearHarvest {
		ft.HarvestDate = nil
	} else if in.HarvestDate != nil {
		ft.HarvestDate = in.HarvestDate
	}
	if ft.HarvestDate != nil && ft.HarvestDate.Before(ft.SowingDate) {
		v.Add("harvest_date", "la fecha de cosecha no puede ser anterior a la de siembra")
	}
	if in.Area != nil {
		if *in.Area <= 0 {
			v.Add("area", "el área debe ser mayor que cero")
		} else {
			ft.Area = *in.Area
		}
	}
	if in.Handlings != nil {
		ft.Handlings = strings.TrimSpace(*in.Handlings)
	}
	if in.Gauges != nil {
		ft.Gauges = strings.TrimSpace(*in.Gauges)
	}
	if err := v.Err(); err != nil {
		return FoodType{}, err
	}

	ft.UpdatedAt = s.now()
	if err := s.foodTypes.Update(ctx, ft); err != nil {
		return FoodType{}, err
	}
	return ft, nil
}

func (s *Service) DeleteFoodType(ctx context.Context, id int) error {
	return s.foodTypes.Delete(ctx, id)
}

func (s *Service) GetFoodType(ctx context.Context, id int) (FoodType, error) {
	return s.foodTypes.GetByID(ctx, id)
}

func (s *Service) ListFoodTypes(ctx context.Context, p query.Params) ([]FoodType, int, error) {
	return s.foodTypes.List(ctx, p)
}
