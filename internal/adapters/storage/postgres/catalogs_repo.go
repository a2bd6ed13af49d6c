package postgres

import (
	"context"
	"database/sql"

	"livestock-api/internal/domain/medical"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

// Repos de los catálogos sanitarios: vacunas, medicamentos y enfermedades.

type VaccinesRepo struct {
	db *sql.DB
}

func NewVaccinesRepo(db *sql.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db}
}

const vaccineCols = `id, name, dosis, route_administration, COALESCE(vaccination_interval, ''), vaccine_type, COALESCE(national_plan, ''), target_disease_id, created_at, updated_at`

func (r *VaccinesRepo) Create(ctx context.Context, v medical.Vaccine) (medical.Vaccine, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO vaccines (name, dosis, route_administration, vaccination_interval, vaccine_type, national_plan, target_disease_id, created_at, updated_at)
		VALUES ($1,$2,$3,NULLIF($4,''),$5,NULLIF($6,''),$7,$8,$9)
		RETURNING id
	`,
		v.Name, v.Dosis, string(v.Route), v.VaccinationInterval,
		string(v.Type), v.NationalPlan, v.TargetDiseaseID, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
	if err != nil {
		return medical.Vaccine{}, translateWrite(err)
	}
	return v, nil
}

func (r *VaccinesRepo) Update(ctx context.Context, v medical.Vaccine) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccines
		SET name = $2, dosis = $3, route_administration = $4, vaccination_interval = NULLIF($5, ''),
		    vaccine_type = $6, national_plan = NULLIF($7, ''), target_disease_id = $8, updated_at = $9
		WHERE id = $1
	`,
		v.ID, v.Name, v.Dosis, string(v.Route), v.VaccinationInterval,
		string(v.Type), v.NationalPlan, v.TargetDiseaseID, v.UpdatedAt,
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

func (r *VaccinesRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaccines WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *VaccinesRepo) GetByID(ctx context.Context, id int) (medical.Vaccine, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vaccineCols+` FROM vaccines WHERE id = $1`, id)
	return scanVaccine(row)
}

func (r *VaccinesRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM vaccines WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *VaccinesRepo) List(ctx context.Context, p query.Params) ([]medical.Vaccine, int, error) {
	c := &cond{}
	c.strFilter(p, "vaccine_type", "vaccine_type")
	c.strFilter(p, "route", "route_administration")
	if err := c.intFilter(p, "target_disease_id", "target_disease_id"); err != nil {
		return nil, 0, err
	}
	c.search(p.Search, "name", "national_plan")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vaccines`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+vaccineCols+` FROM vaccines`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]medical.Vaccine, 0)
	for rows.Next() {
		v, err := scanVaccine(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

func scanVaccine(row rowScanner) (medical.Vaccine, error) {
	var v medical.Vaccine
	var route, vtype string
	if err := row.Scan(
		&v.ID, &v.Name, &v.Dosis, &route, &v.VaccinationInterval,
		&vtype, &v.NationalPlan, &v.TargetDiseaseID, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return medical.Vaccine{}, translateScan(err)
	}
	v.Route = medical.AdministrationRoute(route)
	v.Type = medical.VaccineType(vtype)
	return v, nil
}

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

const medicationCols = `id, name, description, COALESCE(indications, ''), COALESCE(contraindications, ''), route_administration, availability, created_at, updated_at`

func (r *MedicationsRepo) Create(ctx context.Context, m medical.Medication) (medical.Medication, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO medications (name, description, indications, contraindications, route_administration, availability, created_at, updated_at)
		VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),$5,$6,$7,$8)
		RETURNING id
	`,
		m.Name, m.Description, m.Indications, m.Contraindications,
		string(m.Route), m.Availability, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return medical.Medication{}, translateWrite(err)
	}
	return m, nil
}

func (r *MedicationsRepo) Update(ctx context.Context, m medical.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET name = $2, description = $3, indications = NULLIF($4, ''),
		    contraindications = NULLIF($5, ''), route_administration = $6,
		    availability = $7, updated_at = $8
		WHERE id = $1
	`,
		m.ID, m.Name, m.Description, m.Indications, m.Contraindications,
		string(m.Route), m.Availability, m.UpdatedAt,
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

func (r *MedicationsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id int) (medical.Medication, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+medicationCols+` FROM medications WHERE id = $1`, id)
	return scanMedication(row)
}

func (r *MedicationsRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM medications WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *MedicationsRepo) List(ctx context.Context, p query.Params) ([]medical.Medication, int, error) {
	c := &cond{}
	c.strFilter(p, "route", "route_administration")
	if v := p.Filter("availability"); v != "" {
		c.eq("availability", v == "true" || v == "1")
	}
	c.search(p.Search, "name", "description", "indications")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medications`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+medicationCols+` FROM medications`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]medical.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func scanMedication(row rowScanner) (medical.Medication, error) {
	var m medical.Medication
	var route string
	if err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Indications, &m.Contraindications,
		&route, &m.Availability, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return medical.Medication{}, translateScan(err)
	}
	m.Route = medical.AdministrationRoute(route)
	return m, nil
}

type DiseasesRepo struct {
	db *sql.DB
}

func NewDiseasesRepo(db *sql.DB) *DiseasesRepo {
	return &DiseasesRepo{db: db}
}

const diseaseCols = `id, name, symptoms, COALESCE(details, ''), created_at, updated_at`

func (r *DiseasesRepo) Create(ctx context.Context, d medical.Disease) (medical.Disease, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO diseases (name, symptoms, details, created_at, updated_at)
		VALUES ($1,$2,NULLIF($3,''),$4,$5)
		RETURNING id
	`, d.Name, d.Symptoms, d.Details, d.CreatedAt, d.UpdatedAt).Scan(&d.ID)
	if err != nil {
		return medical.Disease{}, translateWrite(err)
	}
	return d, nil
}

func (r *DiseasesRepo) Update(ctx context.Context, d medical.Disease) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE diseases
		SET name = $2, symptoms = $3, details = NULLIF($4, ''), updated_at = $5
		WHERE id = $1
	`, d.ID, d.Name, d.Symptoms, d.Details, d.UpdatedAt)
	if err != nil {
		return translateWrite(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *DiseasesRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diseases WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *DiseasesRepo) GetByID(ctx context.Context, id int) (medical.Disease, error) {
	var d medical.Disease
	err := r.db.QueryRowContext(ctx, `SELECT `+diseaseCols+` FROM diseases WHERE id = $1`, id).Scan(
		&d.ID, &d.Name, &d.Symptoms, &d.Details, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return medical.Disease{}, translateScan(err)
	}
	return d, nil
}

func (r *DiseasesRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM diseases WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *DiseasesRepo) List(ctx context.Context, p query.Params) ([]medical.Disease, int, error) {
	c := &cond{}
	c.search(p.Search, "name", "symptoms")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM diseases`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+diseaseCols+` FROM diseases`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]medical.Disease, 0)
	for rows.Next() {
		var d medical.Disease
		if err := rows.Scan(&d.ID, &d.Name, &d.Symptoms, &d.Details, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}
