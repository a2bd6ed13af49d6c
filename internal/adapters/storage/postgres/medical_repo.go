package postgres

import (
	"context"
	"database/sql"

	"livestock-api/internal/domain/medical"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

// Repos de las entidades clínicas transaccionales: tratamientos,
// vacunaciones y controles. Los catálogos viven en catalogs_repo.go.

type TreatmentsRepo struct {
	db *sql.DB
}

func NewTreatmentsRepo(db *sql.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

const treatmentCols = `id, start_date, end_date, description, frequency, COALESCE(observations, ''), dosis, animal_id, created_at, updated_at`

func (r *TreatmentsRepo) Create(ctx context.Context, t medical.Treatment) (medical.Treatment, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO treatments (start_date, end_date, description, frequency, observations, dosis, animal_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NULLIF($5,''),$6,$7,$8,$9)
		RETURNING id
	`,
		t.StartDate, t.EndDate, t.Description, t.Frequency, t.Observations,
		t.Dosis, t.AnimalID, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		return medical.Treatment{}, translateWrite(err)
	}
	return t, nil
}

func (r *TreatmentsRepo) Update(ctx context.Context, t medical.Treatment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE treatments
		SET start_date = $2, end_date = $3, description = $4, frequency = $5,
		    observations = NULLIF($6, ''), dosis = $7, animal_id = $8, updated_at = $9
		WHERE id = $1
	`,
		t.ID, t.StartDate, t.EndDate, t.Description, t.Frequency,
		t.Observations, t.Dosis, t.AnimalID, t.UpdatedAt,
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

func (r *TreatmentsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *TreatmentsRepo) GetByID(ctx context.Context, id int) (medical.Treatment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+treatmentCols+` FROM treatments WHERE id = $1`, id)
	return scanTreatment(row)
}

func (r *TreatmentsRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM treatments WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *TreatmentsRepo) List(ctx context.Context, p query.Params) ([]medical.Treatment, int, error) {
	c := &cond{}
	if err := c.intFilter(p, "animal_id", "animal_id"); err != nil {
		return nil, 0, err
	}
	if v := p.Filter("start_date"); v != "" {
		c.gte("start_date", v)
	}
	if v := p.Filter("end_date"); v != "" {
		c.lte("end_date", v)
	}
	c.search(p.Search, "description", "observations")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM treatments`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+treatmentCols+` FROM treatments`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]medical.Treatment, 0)
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func scanTreatment(row rowScanner) (medical.Treatment, error) {
	var t medical.Treatment
	if err := row.Scan(
		&t.ID, &t.StartDate, &t.EndDate, &t.Description, &t.Frequency,
		&t.Observations, &t.Dosis, &t.AnimalID, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return medical.Treatment{}, translateScan(err)
	}
	return t, nil
}

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

const vaccinationCols = `id, animal_id, vaccine_id, application_date, instructor_id, apprentice_id, created_at, updated_at`

func (r *VaccinationsRepo) Create(ctx context.Context, v medical.Vaccination) (medical.Vaccination, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO vaccinations (animal_id, vaccine_id, application_date, instructor_id, apprentice_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		v.AnimalID, v.VaccineID, v.ApplicationDate, v.InstructorID,
		v.ApprenticeID, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
	if err != nil {
		return medical.Vaccination{}, translateWrite(err)
	}
	return v, nil
}

func (r *VaccinationsRepo) Update(ctx context.Context, v medical.Vaccination) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccinations
		SET animal_id = $2, vaccine_id = $3, application_date = $4,
		    instructor_id = $5, apprentice_id = $6, updated_at = $7
		WHERE id = $1
	`,
		v.ID, v.AnimalID, v.VaccineID, v.ApplicationDate,
		v.InstructorID, v.ApprenticeID, v.UpdatedAt,
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

func (r *VaccinationsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaccinations WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id int) (medical.Vaccination, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vaccinationCols+` FROM vaccinations WHERE id = $1`, id)
	v, err := scanVaccination(row)
	if err != nil {
		return medical.Vaccination{}, translateScan(err)
	}
	return v, nil
}

func scanVaccination(row rowScanner) (medical.Vaccination, error) {
	var v medical.Vaccination
	var apprentice sql.NullInt64
	if err := row.Scan(
		&v.ID, &v.AnimalID, &v.VaccineID, &v.ApplicationDate,
		&v.InstructorID, &apprentice, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return medical.Vaccination{}, err
	}
	if apprentice.Valid {
		n := int(apprentice.Int64)
		v.ApprenticeID = &n
	}
	return v, nil
}

func (r *VaccinationsRepo) List(ctx context.Context, p query.Params) ([]medical.Vaccination, int, error) {
	c := &cond{}
	for _, f := range []string{"animal_id", "vaccine_id", "instructor_id", "apprentice_id"} {
		if err := c.intFilter(p, f, f); err != nil {
			return nil, 0, err
		}
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vaccinations`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+vaccinationCols+` FROM vaccinations`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]medical.Vaccination, 0)
	for rows.Next() {
		v, err := scanVaccination(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

type ControlsRepo struct {
	db *sql.DB
}

func NewControlsRepo(db *sql.DB) *ControlsRepo {
	return &ControlsRepo{db: db}
}

const controlCols = `id, checkup_date, healt_status, description, animal_id, created_at, updated_at`

func (r *ControlsRepo) Create(ctx context.Context, ctl medical.Control) (medical.Control, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO controls (checkup_date, healt_status, description, animal_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`,
		ctl.CheckupDate, string(ctl.HealthStatus), ctl.Description,
		ctl.AnimalID, ctl.CreatedAt, ctl.UpdatedAt,
	).Scan(&ctl.ID)
	if err != nil {
		return medical.Control{}, translateWrite(err)
	}
	return ctl, nil
}

func (r *ControlsRepo) Update(ctx context.Context, ctl medical.Control) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE controls
		SET checkup_date = $2, healt_status = $3, description = $4, animal_id = $5, updated_at = $6
		WHERE id = $1
	`,
		ctl.ID, ctl.CheckupDate, string(ctl.HealthStatus), ctl.Description,
		ctl.AnimalID, ctl.UpdatedAt,
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

func (r *ControlsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM controls WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *ControlsRepo) GetByID(ctx context.Context, id int) (medical.Control, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+controlCols+` FROM controls WHERE id = $1`, id)
	return scanControl(row)
}

func (r *ControlsRepo) List(ctx context.Context, p query.Params) ([]medical.Control, int, error) {
	c := &cond{}
	if err := c.intFilter(p, "animal_id", "animal_id"); err != nil {
		return nil, 0, err
	}
	c.strFilter(p, "healt_status", "healt_status")
	c.search(p.Search, "description")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM controls`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+controlCols+` FROM controls`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]medical.Control, 0)
	for rows.Next() {
		ctl, err := scanControl(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ctl)
	}
	return out, total, rows.Err()
}

func scanControl(row rowScanner) (medical.Control, error) {
	var ctl medical.Control
	var hs string
	if err := row.Scan(
		&ctl.ID, &ctl.CheckupDate, &hs, &ctl.Description,
		&ctl.AnimalID, &ctl.CreatedAt, &ctl.UpdatedAt,
	); err != nil {
		return medical.Control{}, translateScan(err)
	}
	ctl.HealthStatus = medical.HealthStatus(hs)
	return ctl, nil
}
