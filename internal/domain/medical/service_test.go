package medical

import (
	"context"
	"errors"
	"testing"
	"time"

	"livestock-api/internal/query"
	"livestock-api/internal/storage"
	"livestock-api/internal/validation"
)

var fixedNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

type existsChecker map[int]bool

func (c existsChecker) Exists(_ context.Context, id int) (bool, error) {
	return c[id], nil
}

type fakeTreatments struct {
	items  map[int]Treatment
	nextID int
}

func (r *fakeTreatments) Create(_ context.Context, t Treatment) (Treatment, error) {
	r.nextID++
	t.ID = r.nextID
	r.items[t.ID] = t
	return t, nil
}

func (r *fakeTreatments) Update(_ context.Context, t Treatment) error {
	if _, ok := r.items[t.ID]; !ok {
		return storage.ErrNotFound
	}
	r.items[t.ID] = t
	return nil
}

func (r *fakeTreatments) Delete(_ context.Context, id int) error {
	delete(r.items, id)
	return nil
}

func (r *fakeTreatments) GetByID(_ context.Context, id int) (Treatment, error) {
	t, ok := r.items[id]
	if !ok {
		return Treatment{}, storage.ErrNotFound
	}
	return t, nil
}

func (r *fakeTreatments) List(_ context.Context, _ query.Params) ([]Treatment, int, error) {
	return nil, 0, nil
}

func (r *fakeTreatments) Exists(_ context.Context, id int) (bool, error) {
	_, ok := r.items[id]
	return ok, nil
}

type fakeVaccinations struct {
	items  map[int]Vaccination
	nextID int
}

func (r *fakeVaccinations) Create(_ context.Context, v Vaccination) (Vaccination, error) {
	for _, other := range r.items {
		if other.AnimalID == v.AnimalID && other.VaccineID == v.VaccineID &&
			other.ApplicationDate.Equal(v.ApplicationDate) {
			return Vaccination{}, storage.ErrDuplicate
		}
	}
	r.nextID++
	v.ID = r.nextID
	r.items[v.ID] = v
	return v, nil
}

func (r *fakeVaccinations) Update(_ context.Context, v Vaccination) error {
	if _, ok := r.items[v.ID]; !ok {
		return storage.ErrNotFound
	}
	r.items[v.ID] = v
	return nil
}

func (r *fakeVaccinations) Delete(_ context.Context, id int) error {
	delete(r.items, id)
	return nil
}

func (r *fakeVaccinations) GetByID(_ context.Context, id int) (Vaccination, error) {
	v, ok := r.items[id]
	if !ok {
		return Vaccination{}, storage.ErrNotFound
	}
	return v, nil
}

func (r *fakeVaccinations) List(_ context.Context, _ query.Params) ([]Vaccination, int, error) {
	return nil, 0, nil
}

type fakeControls struct {
	items  map[int]Control
	nextID int
}

func (r *fakeControls) Create(_ context.Context, c Control) (Control, error) {
	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = c
	return c, nil
}

func (r *fakeControls) Update(_ context.Context, c Control) error {
	if _, ok := r.items[c.ID]; !ok {
		return storage.ErrNotFound
	}
	r.items[c.ID] = c
	return nil
}

func (r *fakeControls) Delete(_ context.Context, id int) error {
	delete(r.items, id)
	return nil
}

func (r *fakeControls) GetByID(_ context.Context, id int) (Control, error) {
	c, ok := r.items[id]
	if !ok {
		return Control{}, storage.ErrNotFound
	}
	return c, nil
}

func (r *fakeControls) List(_ context.Context, _ query.Params) ([]Control, int, error) {
	return nil, 0, nil
}

// fakeCatalog cubre los repos de catálogo (vacunas, medicamentos,
// enfermedades) donde los tests solo necesitan Exists.
type fakeCatalog[T any] struct {
	known map[int]bool
}

func (r fakeCatalog[T]) Create(_ context.Context, v T) (T, error) { return v, nil }
func (r fakeCatalog[T]) Update(_ context.Context, _ T) error      { return nil }
func (r fakeCatalog[T]) Delete(_ context.Context, _ int) error    { return nil }

func (r fakeCatalog[T]) GetByID(_ context.Context, _ int) (T, error) {
	var z T
	return z, storage.ErrNotFound
}

func (r fakeCatalog[T]) List(_ context.Context, _ query.Params) ([]T, int, error) {
	return nil, 0, nil
}

func (r fakeCatalog[T]) Exists(_ context.Context, id int) (bool, error) { return r.known[id], nil }

func newTestService() *Service {
	repos := Repos{
		Treatments:   &fakeTreatments{items: make(map[int]Treatment)},
		Vaccinations: &fakeVaccinations{items: make(map[int]Vaccination)},
		Controls:     &fakeControls{items: make(map[int]Control)},
		Vaccines:     fakeCatalog[Vaccine]{known: map[int]bool{1: true}},
		Medications:  fakeCatalog[Medication]{known: map[int]bool{1: true}},
		Diseases:     fakeCatalog[Disease]{known: map[int]bool{1: true}},
	}
	svc := NewService(repos, existsChecker{1: true}, existsChecker{1: true, 2: true})
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func fieldError(t *testing.T, err error, field string) string {
	t.Helper()
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("se esperaba *validation.Error, llegó %v", err)
	}
	msg, ok := verr.Fields[field]
	if !ok {
		t.Fatalf("no hay error para el campo %q: %v", field, verr.Fields)
	}
	return msg
}

func validTreatment() TreatmentInput {
	return TreatmentInput{
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		Description: "Antibiótico por mastitis",
		Frequency:   "Cada 12 horas",
		Dosis:       "10ml",
		AnimalID:    1,
	}
}

func TestCreateTreatment_EndBeforeStart(t *testing.T) {
	svc := newTestService()

	in := validTreatment()
	in.EndDate = in.StartDate.AddDate(0, 0, -1)

	_, err := svc.CreateTreatment(context.Background(), in)
	msg := fieldError(t, err, "end_date")
	if msg != "la fecha de fin no puede ser anterior a la de inicio" {
		t.Errorf("mensaje inesperado: %q", msg)
	}
}

func TestCreateTreatment_FutureStart(t *testing.T) {
	svc := newTestService()

	in := validTreatment()
	in.StartDate = fixedNow.AddDate(0, 0, 5)
	in.EndDate = fixedNow.AddDate(0, 0, 10)

	_, err := svc.CreateTreatment(context.Background(), in)
	fieldError(t, err, "start_date")
}

func TestCreateTreatment_FutureEnd(t *testing.T) {
	svc := newTestService()

	in := validTreatment()
	in.EndDate = fixedNow.AddDate(0, 0, 30)

	_, err := svc.CreateTreatment(context.Background(), in)
	msg := fieldError(t, err, "end_date")
	if msg != "la fecha de fin no puede ser futura" {
		t.Errorf("mensaje inesperado: %q", msg)
	}
}

func TestCreateTreatment_RequiredFields(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateTreatment(context.Background(), TreatmentInput{})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("se esperaba *validation.Error, llegó %v", err)
	}
	for _, field := range []string{"start_date", "end_date", "description", "frequency", "dosis", "animal_id"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("falta el error del campo %q", field)
		}
	}
}

func TestCreateTreatment_UnknownAnimal(t *testing.T) {
	svc := newTestService()

	in := validTreatment()
	in.AnimalID = 99

	_, err := svc.CreateTreatment(context.Background(), in)
	fieldError(t, err, "animal_id")
}

func TestCreateTreatment_OK(t *testing.T) {
	svc := newTestService()

	in := validTreatment()
	in.Description = "  Antibiótico  "

	tr, err := svc.CreateTreatment(context.Background(), in)
	if err != nil {
		t.Fatalf("create treatment: %v", err)
	}
	if tr.Description != "Antibiótico" {
		t.Errorf("la descripción debe venir sin espacios, llegó %q", tr.Description)
	}
	if !tr.CreatedAt.Equal(fixedNow) {
		t.Errorf("created_at inesperado: %v", tr.CreatedAt)
	}
}

func intPtr(n int) *int { return &n }

func TestCreateVaccination_FutureDate(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateVaccination(context.Background(), VaccinationInput{
		AnimalID:        1,
		VaccineID:       1,
		ApplicationDate: fixedNow.AddDate(0, 0, 3),
		InstructorID:    1,
		ApprenticeID:    intPtr(2),
	})
	fieldError(t, err, "application_date")
}

func TestCreateVaccination_UnknownRefs(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateVaccination(context.Background(), VaccinationInput{
		AnimalID:        9,
		VaccineID:       9,
		ApplicationDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		InstructorID:    9,
		ApprenticeID:    intPtr(9),
	})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("se esperaba *validation.Error, llegó %v", err)
	}
	for _, field := range []string{"animal_id", "vaccine_id", "instructor_id", "apprentice_id"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("falta el error del campo %q", field)
		}
	}
}

func TestCreateVaccination_WithoutApprentice(t *testing.T) {
	svc := newTestService()

	v, err := svc.CreateVaccination(context.Background(), VaccinationInput{
		AnimalID:        1,
		VaccineID:       1,
		ApplicationDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		InstructorID:    1,
	})
	if err != nil {
		t.Fatalf("el aprendiz es opcional: %v", err)
	}
	if v.ApprenticeID != nil {
		t.Errorf("apprentice_id debía quedar en null, llegó %v", *v.ApprenticeID)
	}
}

func TestUpdateVaccination_ClearApprentice(t *testing.T) {
	svc := newTestService()

	v, err := svc.CreateVaccination(context.Background(), VaccinationInput{
		AnimalID:        1,
		VaccineID:       1,
		ApplicationDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		InstructorID:    1,
		ApprenticeID:    intPtr(2),
	})
	if err != nil {
		t.Fatalf("create vaccination: %v", err)
	}

	got, err := svc.UpdateVaccination(context.Background(), v.ID, VaccinationUpdate{ClearApprentice: true})
	if err != nil {
		t.Fatalf("update vaccination: %v", err)
	}
	if got.ApprenticeID != nil {
		t.Errorf("el aprendiz debía quedar en null, llegó %v", *got.ApprenticeID)
	}
}

func TestCreateVaccination_Duplicate(t *testing.T) {
	svc := newTestService()

	in := VaccinationInput{
		AnimalID:        1,
		VaccineID:       1,
		ApplicationDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		InstructorID:    1,
		ApprenticeID:    intPtr(2),
	}
	if _, err := svc.CreateVaccination(context.Background(), in); err != nil {
		t.Fatalf("primera aplicación: %v", err)
	}
	_, err := svc.CreateVaccination(context.Background(), in)
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("se esperaba ErrDuplicate, llegó %v", err)
	}
}

func TestCreateControl_RequiredFields(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateControl(context.Background(), ControlInput{})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("se esperaba *validation.Error, llegó %v", err)
	}
	for _, field := range []string{"checkup_date", "healt_status", "description", "animal_id"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("falta el error del campo %q", field)
		}
	}
}

func TestCreateControl_OK(t *testing.T) {
	svc := newTestService()

	c, err := svc.CreateControl(context.Background(), ControlInput{
		CheckupDate:  time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		HealthStatus: HealthExcelente,
		Description:  "Control de rutina",
		AnimalID:     1,
	})
	if err != nil {
		t.Fatalf("create control: %v", err)
	}
	if c.HealthStatus != HealthExcelente {
		t.Errorf("estado de salud inesperado: %q", c.HealthStatus)
	}
}

func TestUpdateTreatment_EndBeforeStart(t *testing.T) {
	svc := newTestService()

	tr, err := svc.CreateTreatment(context.Background(), validTreatment())
	if err != nil {
		t.Fatalf("create treatment: %v", err)
	}

	bad := tr.StartDate.AddDate(0, 0, -2)
	_, err = svc.UpdateTreatment(context.Background(), tr.ID, TreatmentUpdate{EndDate: &bad})
	fieldError(t, err, "end_date")
}

func TestUpdateTreatment_FutureEnd(t *testing.T) {
	svc := newTestService()

	tr, err := svc.CreateTreatment(context.Background(), validTreatment())
	if err != nil {
		t.Fatalf("create treatment: %v", err)
	}

	future := fixedNow.AddDate(0, 1, 0)
	_, err = svc.UpdateTreatment(context.Background(), tr.ID, TreatmentUpdate{EndDate: &future})
	msg := fieldError(t, err, "end_date")
	if msg != "la fecha de fin no puede ser futura" {
		t.Errorf("mensaje inesperado: %q", msg)
	}
}

func TestUpdateTreatment_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.UpdateTreatment(context.Background(), 99, TreatmentUpdate{})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("se esperaba ErrNotFound, llegó %v", err)
	}
}
