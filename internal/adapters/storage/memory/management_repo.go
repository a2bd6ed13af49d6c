package memory

import (
	"context"

	"livestock-api/internal/domain/management"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type FieldsRepo struct {
	s *Store
}

func NewFieldsRepo(s *Store) *FieldsRepo {
	return &FieldsRepo{s: s}
}

func (r *FieldsRepo) Create(ctx context.Context, f management.Field) (management.Field, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if f.FoodTypeID != nil {
		if _, ok := r.s.foodTypes[*f.FoodTypeID]; !ok {
			return management.Field{}, storage.ErrForeignKey
		}
	}
	for _, other := range r.s.fields {
		if other.Name == f.Name {
			return management.Field{}, storage.ErrDuplicate
		}
	}
	f.ID = r.s.nextID("fields")
	r.s.fields[f.ID] = f
	r.s.touch("fields")
	return f, nil
}

func (r *FieldsRepo) Update(ctx context.Context, f management.Field) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.fields[f.ID]; !ok {
		return storage.ErrNotFound
	}
	if f.FoodTypeID != nil {
		if _, ok := r.s.foodTypes[*f.FoodTypeID]; !ok {
			return storage.ErrForeignKey
		}
	}
	for _, other := range r.s.fields {
		if other.ID != f.ID && other.Name == f.Name {
			return storage.ErrDuplicate
		}
	}
	r.s.fields[f.ID] = f
	r.s.touch("fields")
	return nil
}

func (r *FieldsRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.fields[id]; !ok {
		return storage.ErrNotFound
	}
	for _, af := range r.s.animalFields {
		if af.FieldID == id {
			return storage.ErrRestricted
		}
	}
	delete(r.s.fields, id)
	r.s.touch("fields")
	return nil
}

func (r *FieldsRepo) GetByID(ctx context.Context, id int) (management.Field, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.fields[id]
	if !ok {
		return management.Field{}, storage.ErrNotFound
	}
	return f, nil
}

func (r *FieldsRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.fields[id]
	return ok, nil
}

func (r *FieldsRepo) List(ctx context.Context, p query.Params) ([]management.Field, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	foodTypeID, hasFoodType, err := p.IntFilter("food_type_id")
	if err != nil {
		return nil, 0, err
	}

	items := make([]management.Field, 0, len(r.s.fields))
	for _, id := range sortedIDs(r.s.fields) {
		f := r.s.fields[id]
		if v := p.Filter("state"); v != "" && string(f.State) != v {
			continue
		}
		if hasFoodType && (f.FoodTypeID == nil || *f.FoodTypeID != foodTypeID) {
			continue
		}
		if p.Search != "" &&
			!containsFold(f.Name, p.Search) &&
			!containsFold(f.Ubication, p.Search) {
			continue
		}
		items = append(items, f)
	}

	page, total := listPage(items, p, func(a, b management.Field) bool {
		switch p.SortBy {
		case "name":
			return a.Name < b.Name
		case "area":
			return a.Area < b.Area
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}

type FoodTypesRepo struct {
	s *Store
}

func NewFoodTypesRepo(s *Store) *FoodTypesRepo {
	return &FoodTypesRepo{s: s}
}

func (r *FoodTypesRepo) Create(ctx context.Context, ft management.FoodType) (management.FoodType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.foodTypes {
		if other.FoodType == ft.FoodType {
			return management.FoodType{}, storage.ErrDuplicate
		}
	}
	ft.ID = r.s.nextID("food_types")
	r.s.foodTypes[ft.ID] = ft
	r.s.touch("food_types")
	return ft, nil
}

func (r *FoodTypesRepo) Update(ctx context.Context, ft management.FoodType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.foodTypes[ft.ID]; !ok {
		return storage.ErrNotFound
	}
	for _, other := range r.s.foodTypes {
		if other.ID != ft.ID && other.FoodType == ft.FoodType {
			return storage.ErrDuplicate
		}
	}
	r.s.foodTypes[ft.ID] = ft
	r.s.touch("food_types")
	return nil
}

func (r *FoodTypesRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.foodTypes[id]; !ok {
		return storage.ErrNotFound
	}
	for _, f := range r.s.fields {
		if f.FoodTypeID != nil && *f.FoodTypeID == id {
			return storage.ErrRestricted
		}
	}
	delete(r.s.foodTypes, id)
	r.s.touch("food_types")
	return nil
}

func (r *FoodTypesRepo) GetByID(ctx context.Context, id int) (management.FoodType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ft, ok := r.s.foodTypes[id]
	if !ok {
		return management.FoodType{}, storage.ErrNotFound
	}
	return ft, nil
}

func (r *FoodTypesRepo) Exists(ctx context.Context, id int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.foodTypes[id]
	return ok, nil
}

func (r *FoodTypesRepo) List(ctx context.Context, p query.Params) ([]management.FoodType, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	area, hasArea, err := p.IntFilter("area")
	if err != nil {
		return nil, 0, err
	}

	items := make([]management.FoodType, 0, len(r.s.foodTypes))
	for _, id := range sortedIDs(r.s.foodTypes) {
		ft := r.s.foodTypes[id]
		if hasArea && ft.Area != area {
			continue
		}
		if p.Search != "" &&
			!containsFold(ft.FoodType, p.Search) &&
			!containsFold(ft.Handlings, p.Search) {
			continue
		}
		items = append(items, ft)
	}

	page, total := listPage(items, p, func(a, b management.FoodType) bool {
		switch p.SortBy {
		case "food_type":
			return a.FoodType < b.FoodType
		case "sowing_date":
			return a.SowingDate.Before(b.SowingDate)
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}
