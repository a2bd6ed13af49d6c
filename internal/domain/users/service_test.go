package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"livestock-api/internal/query"
	"livestock-api/internal/storage"
	"livestock-api/internal/validation"
)

var fixedNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

type fakeRepo struct {
	users  map[int]User
	nextID int
}

func newFakeRepo(seed ...User) *fakeRepo {
	r := &fakeRepo{users: make(map[int]User)}
	for _, u := range seed {
		r.users[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, u User) (User, error) {
	for _, other := range r.users {
		if other.Identification == u.Identification {
			return User{}, storage.ErrDuplicate
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeRepo) Update(_ context.Context, u User) error {
	if _, ok := r.users[u.ID]; !ok {
		return storage.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, storage.ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByIdentification(_ context.Context, identification int64) (User, error) {
	for _, u := range r.users {
		if u.Identification == identification {
			return u, nil
		}
	}
	return User{}, storage.ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, _ query.Params) ([]User, int, error) {
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Statistics(_ context.Context) (Statistics, error) {
	return Statistics{Total: len(r.users)}, nil
}

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func validCreateInput() CreateInput {
	return CreateInput{
		Identification: 1001,
		Fullname:       "María Gómez",
		Password:       "clave12345",
		Email:          "maria@sena.edu.co",
		Phone:          "3001234567",
		Role:           RoleInstructor,
	}
}

func TestCreate_RequiredFields(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateInput{})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("se esperaba *validation.Error, llegó %v", err)
	}
	for _, field := range []string{"identification", "fullname", "password", "email", "phone"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("falta el error del campo %q", field)
		}
	}
}

func TestCreate_ShortPassword(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validCreateInput()
	in.Password = "corta"

	_, err := svc.Create(context.Background(), in)
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("se esperaba *validation.Error, llegó %v", err)
	}
	if _, ok := verr.Fields["password"]; !ok {
		t.Fatalf("falta el error del campo password: %v", verr.Fields)
	}
}

func TestCreate_InvalidEmail(t *testing.T) {
	svc := newTestService(newFakeRepo())

	for _, email := range []string{"sin-arroba", "dos@@x.com", "a@b", "con espacios@x.com"} {
		in := validCreateInput()
		in.Email = email

		_, err := svc.Create(context.Background(), in)
		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("email %q: se esperaba *validation.Error, llegó %v", email, err)
		}
		if _, ok := verr.Fields["email"]; !ok {
			t.Errorf("email %q debía ser rechazado", email)
		}
	}
}

func TestCreate_HashesPasswordAndDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	u, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Password == "clave12345" {
		t.Fatal("la contraseña quedó en texto plano")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("clave12345")); err != nil {
		t.Fatalf("el hash no corresponde a la contraseña: %v", err)
	}
	if !u.Status {
		t.Error("el estado por defecto debe ser activo")
	}
	if !u.CreatedAt.Equal(fixedNow) {
		t.Errorf("created_at inesperado: %v", u.CreatedAt)
	}
}

func TestCreate_ExplicitInactive(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validCreateInput()
	inactive := false
	in.Status = &inactive

	u, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Status {
		t.Error("el estado explícito debía respetarse")
	}
}

func TestUpdate_EmptyFullname(t *testing.T) {
	u := seededUser(t, 1, 1001, "clave12345", true)
	svc := newTestService(newFakeRepo(u))

	empty := "   "
	_, err := svc.Update(context.Background(), 1, UpdateInput{Fullname: &empty})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("se esperaba *validation.Error, llegó %v", err)
	}
	if _, ok := verr.Fields["fullname"]; !ok {
		t.Fatalf("falta el error del campo fullname: %v", verr.Fields)
	}
}

func TestAuthenticate_OK(t *testing.T) {
	u := seededUser(t, 1, 1001, "clave12345", true)
	svc := newTestService(newFakeRepo(u))

	got, err := svc.Authenticate(context.Background(), 1001, "clave12345")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("usuario inesperado: %d", got.ID)
	}
}

func TestAuthenticate_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Authenticate(context.Background(), 9999, "clave12345")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("se esperaba ErrNotFound, llegó %v", err)
	}
}

func TestAuthenticate_Inactive(t *testing.T) {
	u := seededUser(t, 1, 1001, "clave12345", false)
	svc := newTestService(newFakeRepo(u))

	_, err := svc.Authenticate(context.Background(), 1001, "clave12345")
	if !errors.Is(err, ErrInactive) {
		t.Fatalf("se esperaba ErrInactive, llegó %v", err)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	u := seededUser(t, 1, 1001, "clave12345", true)
	svc := newTestService(newFakeRepo(u))

	_, err := svc.Authenticate(context.Background(), 1001, "otra-clave")
	if !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("se esperaba ErrBadCredentials, llegó %v", err)
	}
}

func TestExists(t *testing.T) {
	u := seededUser(t, 1, 1001, "clave12345", true)
	svc := newTestService(newFakeRepo(u))

	ok, err := svc.Exists(context.Background(), 1)
	if err != nil || !ok {
		t.Fatalf("el usuario 1 debía existir: ok=%v err=%v", ok, err)
	}
	ok, err = svc.Exists(context.Background(), 99)
	if err != nil {
		t.Fatalf("un id inexistente no debe producir error: %v", err)
	}
	if ok {
		t.Error("el usuario 99 no debía existir")
	}
}

func seededUser(t *testing.T, id int, identification int64, password string, active bool) User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generando hash: %v", err)
	}
	return User{
		ID:             id,
		Identification: identification,
		Fullname:       "Usuario de Prueba",
		Password:       string(hash),
		Email:          "prueba@sena.edu.co",
		Phone:          "3000000000",
		Role:           RoleAdministrador,
		Status:         active,
	}
}
