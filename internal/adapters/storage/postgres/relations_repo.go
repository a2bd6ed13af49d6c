package postgres

import (
	"context"
	"database/sql"

	"livestock-api/internal/domain/relations"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type AnimalDiseasesRepo struct {
	db *sql.DB
}

func NewAnimalDiseasesRepo(db *sql.DB) *AnimalDiseasesRepo {
	return &AnimalDiseasesRepo{db: db}
}

const animalDiseaseCols = `id, animal_id, disease_id, instructor_id, diagnosis_date, status, COALESCE(notes, ''), created_at, updated_at`

func (r *AnimalDiseasesRepo) Create(ctx context.Context, ad relations.AnimalDisease) (relations.AnimalDisease, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO animal_diseases (animal_id, disease_id, instructor_id, diagnosis_date, status, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7,$8)
		RETURNING id
	`,
		ad.AnimalID, ad.DiseaseID, ad.InstructorID, ad.DiagnosisDate,
		ad.Status, ad.Notes, ad.CreatedAt, ad.UpdatedAt,
	).Scan(&ad.ID)
	if err != nil {
		return relations.AnimalDisease{}, translateWrite(err)
	}
	return ad, nil
}

func (r *AnimalDiseasesRepo) Update(ctx context.Context, ad relations.AnimalDisease) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animal_diseases
		SET diagnosis_date = $2, status = $3, notes = NULLIF($4, ''), updated_at = $5
		WHERE id = $1
	`, ad.ID, ad.DiagnosisDate, ad.Status, ad.Notes, ad.UpdatedAt)
	if err != nil {
		return translateWrite(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *AnimalDiseasesRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animal_diseases WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *AnimalDiseasesRepo) GetByID(ctx context.Context, id int) (relations.AnimalDisease, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalDiseaseCols+` FROM animal_diseases WHERE id = $1`, id)
	return scanAnimalDisease(row)
}

func (r *AnimalDiseasesRepo) List(ctx context.Context, p query.Params) ([]relations.AnimalDisease, int, error) {
	c := &cond{}
	for _, f := range []string{"animal_id", "disease_id", "instructor_id"} {
		if err := c.intFilter(p, f, f); err != nil {
			return nil, 0, err
		}
	}
	c.strFilter(p, "status", "status")
	c.search(p.Search, "notes")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animal_diseases`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+animalDiseaseCols+` FROM animal_diseases`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]relations.AnimalDisease, 0)
	for rows.Next() {
		ad, err := scanAnimalDisease(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ad)
	}
	return out, total, rows.Err()
}

func scanAnimalDisease(row rowScanner) (relations.AnimalDisease, error) {
	var ad relations.AnimalDisease
	if err := row.Scan(
		&ad.ID, &ad.AnimalID, &ad.DiseaseID, &ad.InstructorID, &ad.DiagnosisDate,
		&ad.Status, &ad.Notes, &ad.CreatedAt, &ad.UpdatedAt,
	); err != nil {
		return relations.AnimalDisease{}, translateScan(err)
	}
	return ad, nil
}

type AnimalFieldsRepo struct {
	db *sql.DB
}

func NewAnimalFieldsRepo(db *sql.DB) *AnimalFieldsRepo {
	return &AnimalFieldsRepo{db: db}
}

const animalFieldCols = `id, animal_id, field_id, assignment_date, removal_date, COALESCE(notes, ''), created_at, updated_at`

func (r *AnimalFieldsRepo) Create(ctx context.Context, af relations.AnimalField) (relations.AnimalField, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO animal_fields (animal_id, field_id, assignment_date, removal_date, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NULLIF($5,''),$6,$7)
		RETURNING id
	`,
		af.AnimalID, af.FieldID, af.AssignmentDate, af.RemovalDate,
		af.Notes, af.CreatedAt, af.UpdatedAt,
	).Scan(&af.ID)
	if err != nil {
		return relations.AnimalField{}, translateWrite(err)
	}
	return af, nil
}

func (r *AnimalFieldsRepo) Update(ctx context.Context, af relations.AnimalField) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animal_fields
		SET removal_date = $2, notes = NULLIF($3, ''), updated_at = $4
		WHERE id = $1
	`, af.ID, af.RemovalDate, af.Notes, af.UpdatedAt)
	if err != nil {
		return translateWrite(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *AnimalFieldsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animal_fields WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *AnimalFieldsRepo) GetByID(ctx context.Context, id int) (relations.AnimalField, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+animalFieldCols+` FROM animal_fields WHERE id = $1`, id)
	return scanAnimalField(row)
}

func (r *AnimalFieldsRepo) List(ctx context.Context, p query.Params) ([]relations.AnimalField, int, error) {
	c := &cond{}
	for _, f := range []string{"animal_id", "field_id"} {
		if err := c.intFilter(p, f, f); err != nil {
			return nil, 0, err
		}
	}
	c.search(p.Search, "notes")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animal_fields`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+animalFieldCols+` FROM animal_fields`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]relations.AnimalField, 0)
	for rows.Next() {
		af, err := scanAnimalField(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, af)
	}
	return out, total, rows.Err()
}

func scanAnimalField(row rowScanner) (relations.AnimalField, error) {
	var af relations.AnimalField
	var removal sql.NullTime
	if err := row.Scan(
		&af.ID, &af.AnimalID, &af.FieldID, &af.AssignmentDate, &removal,
		&af.Notes, &af.CreatedAt, &af.UpdatedAt,
	); err != nil {
		return relations.AnimalField{}, translateScan(err)
	}
	if removal.Valid {
		t := removal.Time
		af.RemovalDate = &t
	}
	return af, nil
}

type TreatmentMedicationsRepo struct {
	db *sql.DB
}

func NewTreatmentMedicationsRepo(db *sql.DB) *TreatmentMedicationsRepo {
	return &TreatmentMedicationsRepo{db: db}
}

func (r *TreatmentMedicationsRepo) Create(ctx context.Context, tm relations.TreatmentMedication) (relations.TreatmentMedication, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO treatment_medications (treatment_id, medication_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, tm.TreatmentID, tm.MedicationID, tm.CreatedAt, tm.UpdatedAt).Scan(&tm.ID)
	if err != nil {
		return relations.TreatmentMedication{}, translateWrite(err)
	}
	return tm, nil
}

func (r *TreatmentMedicationsRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatment_medications WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *TreatmentMedicationsRepo) GetByID(ctx context.Context, id int) (relations.TreatmentMedication, error) {
	var tm relations.TreatmentMedication
	err := r.db.QueryRowContext(ctx, `
		SELECT id, treatment_id, medication_id, created_at, updated_at
		FROM treatment_medications WHERE id = $1
	`, id).Scan(&tm.ID, &tm.TreatmentID, &tm.MedicationID, &tm.CreatedAt, &tm.UpdatedAt)
	if err != nil {
		return relations.TreatmentMedication{}, translateScan(err)
	}
	return tm, nil
}

func (r *TreatmentMedicationsRepo) List(ctx context.Context, p query.Params) ([]relations.TreatmentMedication, int, error) {
	c := &cond{}
	for _, f := range []string{"treatment_id", "medication_id"} {
		if err := c.intFilter(p, f, f); err != nil {
			return nil, 0, err
		}
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM treatment_medications`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, treatment_id, medication_id, created_at, updated_at
		FROM treatment_medications`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]relations.TreatmentMedication, 0)
	for rows.Next() {
		var tm relations.TreatmentMedication
		if err := rows.Scan(&tm.ID, &tm.TreatmentID, &tm.MedicationID, &tm.CreatedAt, &tm.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, tm)
	}
	return out, total, rows.Err()
}

type TreatmentVaccinesRepo struct {
	db *sql.DB
}

func NewTreatmentVaccinesRepo(db *sql.DB) *TreatmentVaccinesRepo {
	return &TreatmentVaccinesRepo{db: db}
}

func (r *TreatmentVaccinesRepo) Create(ctx context.Context, tv relations.TreatmentVaccine) (relations.TreatmentVaccine, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO treatment_vaccines (treatment_id, vaccine_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, tv.TreatmentID, tv.VaccineID, tv.CreatedAt, tv.UpdatedAt).Scan(&tv.ID)
	if err != nil {
		return relations.TreatmentVaccine{}, translateWrite(err)
	}
	return tv, nil
}

func (r *TreatmentVaccinesRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatment_vaccines WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *TreatmentVaccinesRepo) GetByID(ctx context.Context, id int) (relations.TreatmentVaccine, error) {
	var tv relations.TreatmentVaccine
	err := r.db.QueryRowContext(ctx, `
		SELECT id, treatment_id, vaccine_id, created_at, updated_at
		FROM treatment_vaccines WHERE id = $1
	`, id).Scan(&tv.ID, &tv.TreatmentID, &tv.VaccineID, &tv.CreatedAt, &tv.UpdatedAt)
	if err != nil {
		return relations.TreatmentVaccine{}, translateScan(err)
	}
	return tv, nil
}

func (r *TreatmentVaccinesRepo) List(ctx context.Context, p query.Params) ([]relations.TreatmentVaccine, int, error) {
	c := &cond{}
	for _, f := range []string{"treatment_id", "vaccine_id"} {
		if err := c.intFilter(p, f, f); err != nil {
			return nil, 0, err
		}
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM treatment_vaccines`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, treatment_id, vaccine_id, created_at, updated_at
		FROM treatment_vaccines`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]relations.TreatmentVaccine, 0)
	for rows.Next() {
		var tv relations.TreatmentVaccine
		if err := rows.Scan(&tv.ID, &tv.TreatmentID, &tv.VaccineID, &tv.CreatedAt, &tv.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, tv)
	}
	return out, total, rows.Err()
}
