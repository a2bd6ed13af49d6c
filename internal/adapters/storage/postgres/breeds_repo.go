package postgres

import (
	"context"
	"database/sql"

	"livestock-api/internal/domain/breeds"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type BreedsRepo struct {
	db *sql.DB
}

func NewBreedsRepo(db *sql.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

func (r *BreedsRepo) Create(ctx context.Context, b breeds.Breed) (breeds.Breed, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO breeds (name, species_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, b.Name, b.SpeciesID, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
	if err != nil {
		return breeds.Breed{}, translateWrite(err)
	}
	return b, nil
}

func (r *BreedsRepo) Update(ctx context.Context, b breeds.Breed) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE breeds SET name = $2, species_id = $3, updated_at = $4 WHERE id = $1
	`, b.ID, b.Name, b.SpeciesID, b.UpdatedAt)
	if err != nil {
		return translateWrite(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *BreedsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM breeds WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *BreedsRepo) GetByID(ctx context.Context, id int) (breeds.Breed, error) {
	var b breeds.Breed
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, species_id, created_at, updated_at FROM breeds WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.SpeciesID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return breeds.Breed{}, translateScan(err)
	}
	return b, nil
}

func (r *BreedsRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM breeds WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *BreedsRepo) List(ctx context.Context, p query.Params) ([]breeds.Breed, int, error) {
	c := &cond{}
	if err := c.intFilter(p, "species_id", "species_id"); err != nil {
		return nil, 0, err
	}
	c.strFilter(p, "name", "name")
	c.search(p.Search, "name")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM breeds`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, species_id, created_at, updated_at FROM breeds`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]breeds.Breed, 0)
	for rows.Next() {
		var b breeds.Breed
		if err := rows.Scan(&b.ID, &b.Name, &b.SpeciesID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

type SpeciesRepo struct {
	db *sql.DB
}

func NewSpeciesRepo(db *sql.DB) *SpeciesRepo {
	return &SpeciesRepo{db: db}
}

func (r *SpeciesRepo) Create(ctx context.Context, s breeds.Species) (breeds.Species, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO species (name, created_at, updated_at) VALUES ($1,$2,$3) RETURNING id
	`, s.Name, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	if err != nil {
		return breeds.Species{}, translateWrite(err)
	}
	return s, nil
}

func (r *SpeciesRepo) Update(ctx context.Context, s breeds.Species) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE species SET name = $2, updated_at = $3 WHERE id = $1
	`, s.ID, s.Name, s.UpdatedAt)
	if err != nil {
		return translateWrite(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *SpeciesRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM species WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *SpeciesRepo) GetByID(ctx context.Context, id int) (breeds.Species, error) {
	var s breeds.Species
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM species WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return breeds.Species{}, translateScan(err)
	}
	return s, nil
}

func (r *SpeciesRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM species WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *SpeciesRepo) List(ctx context.Context, p query.Params) ([]breeds.Species, int, error) {
	c := &cond{}
	c.search(p.Search, "name")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM species`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM species`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]breeds.Species, 0)
	for rows.Next() {
		var s breeds.Species
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}
