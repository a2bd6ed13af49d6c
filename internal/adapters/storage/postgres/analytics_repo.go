package postgres

import (
	"context"
	"database/sql"
	"time"

	"livestock-api/internal/domain/analytics"
)

type AnalyticsRepo struct {
	db *sql.DB
}

func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

func (r *AnalyticsRepo) AnimalBreakdown(ctx context.Context) (analytics.AnimalBreakdown, error) {
	b := analytics.AnimalBreakdown{
		ByStatus: make(map[string]int),
		BySex:    make(map[string]int),
		ByBreed:  make(map[string]int),
	}

	if err := r.groupCount(ctx, `SELECT status, COUNT(*) FROM animals GROUP BY status`, b.ByStatus); err != nil {
		return analytics.AnimalBreakdown{}, err
	}
	if err := r.groupCount(ctx, `SELECT sex, COUNT(*) FROM animals GROUP BY sex`, b.BySex); err != nil {
		return analytics.AnimalBreakdown{}, err
	}
	if err := r.groupCount(ctx, `
		SELECT b.name, COUNT(*)
		FROM animals a JOIN breeds b ON b.id = a.breeds_id
		GROUP BY b.name
	`, b.ByBreed); err != nil {
		return analytics.AnimalBreakdown{}, err
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(weight), 0) FROM animals
	`).Scan(&b.Total, &b.AvgWeight)
	if err != nil {
		return analytics.AnimalBreakdown{}, err
	}
	return b, nil
}

// HealthDistribution cuenta el último control de cada animal por estado.
func (r *AnalyticsRepo) HealthDistribution(ctx context.Context) (map[string]int, int, error) {
	dist := make(map[string]int)
	rows, err := r.db.QueryContext(ctx, `
		SELECT healt_status, COUNT(*)
		FROM (
			SELECT DISTINCT ON (animal_id) animal_id, healt_status
			FROM controls
			ORDER BY animal_id, checkup_date DESC, id DESC
		) latest
		GROUP BY healt_status
	`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, 0, err
		}
		dist[status] = n
		total += n
	}
	return dist, total, rows.Err()
}

func (r *AnalyticsRepo) AnimalsWithoutControlSince(ctx context.Context, since time.Time) ([]analytics.UncontrolledAnimal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.record, MAX(c.checkup_date)
		FROM animals a
		LEFT JOIN controls c ON c.animal_id = a.id
		WHERE a.status = 'Vivo'
		GROUP BY a.id, a.record
		HAVING MAX(c.checkup_date) IS NULL OR MAX(c.checkup_date) < $1
		ORDER BY a.id
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]analytics.UncontrolledAnimal, 0)
	for rows.Next() {
		var u analytics.UncontrolledAnimal
		var last sql.NullTime
		if err := rows.Scan(&u.AnimalID, &u.Record, &last); err != nil {
			return nil, err
		}
		if last.Valid {
			t := last.Time
			u.LastControl = &t
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) ActiveTreatments(ctx context.Context, on time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM treatments WHERE start_date <= $1 AND end_date >= $1
	`, on).Scan(&n)
	return n, err
}

func (r *AnalyticsRepo) ActiveDiagnoses(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM animal_diseases WHERE status = 'Activo'
	`).Scan(&n)
	return n, err
}

func (r *AnalyticsRepo) VaccinationsBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vaccinations WHERE application_date BETWEEN $1 AND $2
	`, from, to).Scan(&n)
	return n, err
}

func (r *AnalyticsRepo) FieldsByState(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int)
	if err := r.groupCount(ctx, `SELECT state, COUNT(*) FROM fields GROUP BY state`, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalyticsRepo) groupCount(ctx context.Context, q string, into map[string]int) error {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key] = n
	}
	return rows.Err()
}
