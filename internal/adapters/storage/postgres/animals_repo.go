package postgres

import (
	"context"
	"database/sql"

	"livestock-api/internal/domain/animals"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalCols = `id, sex, birth_date, weight, record, status, breeds_id, id_father, id_mother, created_at, updated_at`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO animals (sex, birth_date, weight, record, status, breeds_id, id_father, id_mother, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`,
		string(a.Sex), a.BirthDate, a.Weight, a.Record, string(a.Status),
		a.BreedID, a.IDFather, a.IDMother, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return animals.Animal{}, translateWrite(err)
	}
	return a, nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET sex = $2, birth_date = $3, weight = $4, record = $5, status = $6,
		    breeds_id = $7, id_father = $8, id_mother = $9, updated_at = $10
		WHERE id = $1
	`,
		a.ID, string(a.Sex), a.BirthDate, a.Weight, a.Record, string(a.Status),
		a.BreedID, a.IDFather, a.IDMother, a.UpdatedAt,
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

func (r *AnimalsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalCols+` FROM animals WHERE id = $1`, id)
	return scanAnimal(row)
}

func (r *AnimalsRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM animals WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *AnimalsRepo) List(ctx context.Context, p query.Params) ([]animals.Animal, int, error) {
	c := &cond{}
	c.strFilter(p, "sex", "sex")
	c.strFilter(p, "status", "status")
	c.strFilter(p, "record", "record")
	if err := c.intFilter(p, "breeds_id", "breeds_id"); err != nil {
		return nil, 0, err
	}
	if v, ok, err := p.IntFilter("min_weight"); err != nil {
		return nil, 0, err
	} else if ok {
		c.gte("weight", v)
	}
	if v, ok, err := p.IntFilter("max_weight"); err != nil {
		return nil, 0, err
	} else if ok {
		c.lte("weight", v)
	}
	c.search(p.Search, "record")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animals`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+animalCols+` FROM animals`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *AnimalsRepo) Statistics(ctx context.Context) (animals.Statistics, error) {
	stats := animals.Statistics{
		BySex:    make(map[string]int),
		ByStatus: make(map[string]int),
	}

	rows, err := r.db.QueryContext(ctx, `SELECT sex, COUNT(*) FROM animals GROUP BY sex`)
	if err != nil {
		return animals.Statistics{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var sex string
		var n int
		if err := rows.Scan(&sex, &n); err != nil {
			return animals.Statistics{}, err
		}
		stats.BySex[sex] = n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return animals.Statistics{}, err
	}

	srows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM animals GROUP BY status`)
	if err != nil {
		return animals.Statistics{}, err
	}
	defer srows.Close()
	for srows.Next() {
		var status string
		var n int
		if err := srows.Scan(&status, &n); err != nil {
			return animals.Statistics{}, err
		}
		stats.ByStatus[status] = n
	}
	if err := srows.Err(); err != nil {
		return animals.Statistics{}, err
	}

	err = r.db.QueryRowContext(ctx, `SELECT COALESCE(AVG(weight), 0) FROM animals`).Scan(&stats.AvgWeight)
	if err != nil {
		return animals.Statistics{}, err
	}
	return stats, nil
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var sex, status string
	var father, mother sql.NullInt64
	if err := row.Scan(
		&a.ID, &sex, &a.BirthDate, &a.Weight, &a.Record, &status,
		&a.BreedID, &father, &mother, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, translateScan(err)
	}
	a.Sex = animals.Sex(sex)
	a.Status = animals.Status(status)
	if father.Valid {
		v := int(father.Int64)
		a.IDFather = &v
	}
	if mother.Valid {
		v := int(mother.Int64)
		a.IDMother = &v
	}
	return a, nil
}

// GeneticRepo persiste los mejoramientos genéticos.
type GeneticRepo struct {
	db *sql.DB
}

func NewGeneticRepo(db *sql.DB) *GeneticRepo {
	return &GeneticRepo{db: db}
}

const geneticCols = `id, date, details, results, genetic_event_technique, animal_id, created_at, updated_at`

func (r *GeneticRepo) Create(ctx context.Context, g animals.GeneticImprovement) (animals.GeneticImprovement, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO genetic_improvements (date, details, results, genetic_event_technique, animal_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		g.Date, g.Details, g.Results, g.Technique, g.AnimalID, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
	if err != nil {
		return animals.GeneticImprovement{}, translateWrite(err)
	}
	return g, nil
}

func (r *GeneticRepo) Update(ctx context.Context, g animals.GeneticImprovement) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE genetic_improvements
		SET date = $2, details = $3, results = $4, genetic_event_technique = $5, updated_at = $6
		WHERE id = $1
	`, g.ID, g.Date, g.Details, g.Results, g.Technique, g.UpdatedAt)
	if err != nil {
		return translateWrite(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *GeneticRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM genetic_improvements WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *GeneticRepo) GetByID(ctx context.Context, id int) (animals.GeneticImprovement, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+geneticCols+` FROM genetic_improvements WHERE id = $1`, id)
	return scanGenetic(row)
}

func (r *GeneticRepo) List(ctx context.Context, p query.Params) ([]animals.GeneticImprovement, int, error) {
	c := &cond{}
	if err := c.intFilter(p, "animal_id", "animal_id"); err != nil {
		return nil, 0, err
	}
	c.search(p.Search, "details", "results", "genetic_event_technique")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM genetic_improvements`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+geneticCols+` FROM genetic_improvements`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]animals.GeneticImprovement, 0)
	for rows.Next() {
		g, err := scanGenetic(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, total, rows.Err()
}

func scanGenetic(row rowScanner) (animals.GeneticImprovement, error) {
	var g animals.GeneticImprovement
	if err := row.Scan(
		&g.ID, &g.Date, &g.Details, &g.Results, &g.Technique,
		&g.AnimalID, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return animals.GeneticImprovement{}, translateScan(err)
	}
	return g, nil
}
