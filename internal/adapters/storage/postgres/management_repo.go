package postgres

import (
	"context"
	"database/sql"

	"livestock-api/internal/domain/management"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type FieldsRepo struct {
	db *sql.DB
}

func NewFieldsRepo(db *sql.DB) *FieldsRepo {
	return &FieldsRepo{db: db}
}

const fieldCols = `id, name, ubication, COALESCE(capacity, ''), state, COALESCE(handlings, ''), COALESCE(gauges, ''), area, food_type_id, created_at, updated_at`

func (r *FieldsRepo) Create(ctx context.Context, f management.Field) (management.Field, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO fields (name, ubication, capacity, state, handlings, gauges, area, food_type_id, created_at, updated_at)
		VALUES ($1,$2,NULLIF($3,''),$4,NULLIF($5,''),NULLIF($6,''),$7,$8,$9,$10)
		RETURNING id
	`,
		f.Name, f.Ubication, f.Capacity, string(f.State), f.Handlings,
		f.Gauges, f.Area, f.FoodTypeID, f.CreatedAt, f.UpdatedAt,
	).Scan(&f.ID)
	if err != nil {
		return management.Field{}, translateWrite(err)
	}
	return f, nil
}

func (r *FieldsRepo) Update(ctx context.Context, f management.Field) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE fields
		SET name = $2, ubication = $3, capacity = NULLIF($4, ''), state = $5,
		    handlings = NULLIF($6, ''), gauges = NULLIF($7, ''), area = $8,
		    food_type_id = $9, updated_at = $10
		WHERE id = $1
	`,
		f.ID, f.Name, f.Ubication, f.Capacity, string(f.State),
		f.Handlings, f.Gauges, f.Area, f.FoodTypeID, f.UpdatedAt,
	)
	if err != nil {
		return translateWrite(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *FieldsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fields WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *FieldsRepo) GetByID(ctx context.Context, id int) (management.Field, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+fieldCols+` FROM fields WHERE id = $1`, id)
	return scanField(row)
}

func (r *FieldsRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM fields WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *FieldsRepo) List(ctx context.Context, p query.Params) ([]management.Field, int, error) {
	c := &cond{}
	c.strFilter(p, "state", "state")
	if err := c.intFilter(p, "food_type_id", "food_type_id"); err != nil {
		return nil, 0, err
	}
	c.search(p.Search, "name", "ubication")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fields`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+fieldCols+` FROM fields`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]management.Field, 0)
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	return out, total, rows.Err()
}

func scanField(row rowScanner) (management.Field, error) {
	var f management.Field
	var state string
	var foodType sql.NullInt64
	if err := row.Scan(
		&f.ID, &f.Name, &f.Ubication, &f.Capacity, &state,
		&f.Handlings, &f.Gauges, &f.Area, &foodType, &f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return management.Field{}, translateScan(err)
	}
	f.State = management.LandStatus(state)
	if foodType.Valid {
		v := int(foodType.Int64)
		f.FoodTypeID = &v
	}
	return f, nil
}

type FoodTypesRepo struct {
	db *sql.DB
}

func NewFoodTypesRepo(db *sql.DB) *FoodTypesRepo {
	return &FoodTypesRepo{db: db}
}

const foodTypeCols = `id, food_type, sowing_date, harvest_date, area, COALESCE(handlings, ''), COALESCE(gauges, ''), created_at, updated_at`

func (r *FoodTypesRepo) Create(ctx context.Context, ft management.FoodType) (management.FoodType, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO food_types (food_type, sowing_date, harvest_date, area, handlings, gauges, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NULLIF($5,''),NULLIF($6,''),$7,$8)
		RETURNING id
	`,
		ft.FoodType, ft.SowingDate, ft.HarvestDate, ft.Area,
		ft.Handlings, ft.Gauges, ft.CreatedAt, ft.UpdatedAt,
	).Scan(&ft.ID)
	if err != nil {
		return management.FoodType{}, translateWrite(err)
	}
	return ft, nil
}

func (r *FoodTypesRepo) Update(ctx context.Context, ft management.FoodType) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE food_types
		SET food_type = $2, sowing_date = $3, harvest_date = $4, area = $5,
		    handlings = NULLIF($6, ''), gauges = NULLIF($7, ''), updated_at = $8
		WHERE id = $1
	`,
		ft.ID, ft.FoodType, ft.SowingDate, ft.HarvestDate, ft.Area,
		ft.Handlings, ft.Gauges, ft.UpdatedAt,
	)
	if err != nil {
		return translateWrite(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *FoodTypesRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM food_types WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *FoodTypesRepo) GetByID(ctx context.Context, id int) (management.FoodType, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+foodTypeCols+` FROM food_types WHERE id = $1`, id)
	return scanFoodType(row)
}

func (r *FoodTypesRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM food_types WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *FoodTypesRepo) List(ctx context.Context, p query.Params) ([]management.FoodType, int, error) {
	c := &cond{}
	if err := c.intFilter(p, "area", "area"); err != nil {
		return nil, 0, err
	}
	c.search(p.Search, "food_type", "handlings")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM food_types`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+foodTypeCols+` FROM food_types`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]management.FoodType, 0)
	for rows.Next() {
		ft, err := scanFoodType(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ft)
	}
	return out, total, rows.Err()
}

func scanFoodType(row rowScanner) (management.FoodType, error) {
	var ft management.FoodType
	var harvest sql.NullTime
	if err := row.Scan(
		&ft.ID, &ft.FoodType, &ft.SowingDate, &harvest, &ft.Area,
		&ft.Handlings, &ft.Gauges, &ft.CreatedAt, &ft.UpdatedAt,
	); err != nil {
		return management.FoodType{}, translateScan(err)
	}
	if harvest.Valid {
		t := harvest.Time
		ft.HarvestDate = &t
	}
	return ft, nil
}
