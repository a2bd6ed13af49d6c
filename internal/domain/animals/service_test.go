package animals

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

type fakeRepo struct {
	animals map[int]Animal
	nextID  int
}

func newFakeRepo(seed ...Animal) *fakeRepo {
	r := &fakeRepo{animals: make(map[int]Animal)}
	for _, a := range seed {
		r.animals[a.ID] = a
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, a Animal) (Animal, error) {
	r.nextID++
	a.ID = r.nextID
	r.animals[a.ID] = a
	return a, nil
}

func (r *fakeRepo) Update(_ context.Context, a Animal) error {
	if _, ok := r.animals[a.ID]; !ok {
		return storage.ErrNotFound
	}
	r.animals[a.ID] = a
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.animals[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.animals, id)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int) (Animal, error) {
	a, ok := r.animals[id]
	if !ok {
		return Animal{}, storage.ErrNotFound
	}
	return a, nil
}

func (r *fakeRepo) List(_ context.Context, _ query.Params) ([]Animal, int, error) {
	out := make([]Animal, 0, len(r.animals))
	for _, a := range r.animals {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := r.animals[id]
	return ok, nil
}

func (r *fakeRepo) Statistics(_ context.Context) (Statistics, error) {
	return Statistics{Total: len(r.animals)}, nil
}

type fakeGenetic struct {
	items  map[int]GeneticImprovement
	nextID int
}

func newFakeGenetic() *fakeGenetic {
	return &fakeGenetic{items: make(map[int]GeneticImprovement)}
}

func (r *fakeGenetic) Create(_ context.Context, g GeneticImprovement) (GeneticImprovement, error) {
	r.nextID++
	g.ID = r.nextID
	r.items[g.ID] = g
	return g, nil
}

func (r *fakeGenetic) Update(_ context.Context, g GeneticImprovement) error {
	if _, ok := r.items[g.ID]; !ok {
		return storage.ErrNotFound
	}
	r.items[g.ID] = g
	return nil
}

func (r *fakeGenetic) Delete(_ context.Context, id int) error {
	delete(r.items, id)
	return nil
}

func (r *fakeGenetic) GetByID(_ context.Context, id int) (GeneticImprovement, error) {
	g, ok := r.items[id]
	if !ok {
		return GeneticImprovement{}, storage.ErrNotFound
	}
	return g, nil
}

func (r *fakeGenetic) List(_ context.Context, _ query.Params) ([]GeneticImprovement, int, error) {
	out := make([]GeneticImprovement, 0, len(r.items))
	for _, g := range r.items {
		out = append(out, g)
	}
	return out, len(out), nil
}

type fakeBreeds struct {
	known map[int]bool
}

func (b fakeBreeds) BreedExists(_ context.Context, id int) (bool, error) {
	return b.known[id], nil
}

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo, newFakeGenetic(), fakeBreeds{known: map[int]bool{1: true}})
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func validCreateInput() CreateInput {
	return CreateInput{
		Sex:       SexHembra,
		BirthDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Weight:    320,
		Record:    "BOV-001",
		BreedID:   1,
	}
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

func TestCreate_RequiredFields(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateInput{})
	if err == nil {
		t.Fatal("se esperaba error de validación")
	}

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("se esperaba *validation.Error, llegó %v", err)
	}
	for _, field := range []string{"birth_date", "weight", "record", "breeds_id"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("falta el error del campo %q", field)
		}
	}
}

func TestCreate_FutureBirthDate(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validCreateInput()
	in.BirthDate = fixedNow.AddDate(0, 0, 2)

	_, err := svc.Create(context.Background(), in)
	fieldError(t, err, "birth_date")
}

func TestCreate_BirthDateTodayAllowed(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validCreateInput()
	in.BirthDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("la fecha de hoy debe ser válida: %v", err)
	}
}

func TestCreate_UnknownBreed(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validCreateInput()
	in.BreedID = 99

	_, err := svc.Create(context.Background(), in)
	fieldError(t, err, "breeds_id")
}

func TestCreate_Defaults(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	in := validCreateInput()
	in.Record = "  BOV-002  "

	a, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Status != StatusVivo {
		t.Errorf("el estado por defecto debe ser Vivo, llegó %q", a.Status)
	}
	if a.Record != "BOV-002" {
		t.Errorf("el registro debe venir sin espacios, llegó %q", a.Record)
	}
	if !a.CreatedAt.Equal(fixedNow) || !a.UpdatedAt.Equal(fixedNow) {
		t.Errorf("timestamps inesperados: %v / %v", a.CreatedAt, a.UpdatedAt)
	}
}

func TestCreate_SameParent(t *testing.T) {
	father := Animal{ID: 7, Record: "BOV-007", Status: StatusVivo, BreedID: 1}
	svc := newTestService(newFakeRepo(father))

	in := validCreateInput()
	id := 7
	in.IDFather = &id
	in.IDMother = &id

	_, err := svc.Create(context.Background(), in)
	msg := fieldError(t, err, "idMother")
	if msg != "el padre y la madre deben ser animales distintos" {
		t.Errorf("mensaje inesperado: %q", msg)
	}
}

func TestCreate_MissingParent(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validCreateInput()
	id := 42
	in.IDFather = &id

	_, err := svc.Create(context.Background(), in)
	fieldError(t, err, "idFather")
}

func TestUpdate_SelfParent(t *testing.T) {
	a := Animal{ID: 3, Record: "BOV-003", Status: StatusVivo, BreedID: 1,
		BirthDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Weight: 400}
	svc := newTestService(newFakeRepo(a))

	id := 3
	_, err := svc.Update(context.Background(), 3, UpdateInput{IDFather: &id})
	msg := fieldError(t, err, "idFather")
	if msg != "un animal no puede ser su propio padre" {
		t.Errorf("mensaje inesperado: %q", msg)
	}
}

func TestUpdate_ClearFather(t *testing.T) {
	fatherID := 7
	father := Animal{ID: 7, Record: "BOV-007", Status: StatusVivo, BreedID: 1}
	a := Animal{ID: 3, Record: "BOV-003", Status: StatusVivo, BreedID: 1,
		BirthDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Weight: 400, IDFather: &fatherID}
	repo := newFakeRepo(father, a)
	svc := newTestService(repo)

	got, err := svc.Update(context.Background(), 3, UpdateInput{ClearFather: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.IDFather != nil {
		t.Errorf("el padre debía quedar en null, llegó %v", *got.IDFather)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Update(context.Background(), 99, UpdateInput{})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("se esperaba ErrNotFound, llegó %v", err)
	}
}

func TestCreateImprovement_Validation(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.CreateImprovement(context.Background(), GeneticInput{})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("se esperaba *validation.Error, llegó %v", err)
	}
	for _, field := range []string{"date", "details", "results", "genetic_event_technique", "animal_id"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("falta el error del campo %q", field)
		}
	}
}

func TestCreateImprovement_OK(t *testing.T) {
	a := Animal{ID: 1, Record: "BOV-001", Status: StatusVivo, BreedID: 1}
	svc := newTestService(newFakeRepo(a))

	g, err := svc.CreateImprovement(context.Background(), GeneticInput{
		Date:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Details:   "Inseminación artificial",
		Results:   "Preñez confirmada",
		Technique: "IATF",
		AnimalID:  1,
	})
	if err != nil {
		t.Fatalf("create improvement: %v", err)
	}
	if g.ID == 0 {
		t.Error("el mejoramiento debía recibir un id")
	}
	if !g.CreatedAt.Equal(fixedNow) {
		t.Errorf("created_at inesperado: %v", g.CreatedAt)
	}
}
