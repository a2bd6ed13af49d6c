package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"livestock-api/internal/domain/users"
	"livestock-api/internal/storage"
)

func newMockRepo(t *testing.T) (*UsersRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUsersRepo(db), mock
}

func testUser() users.User {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return users.User{
		Identification: 1001,
		Fullname:       "María Gómez",
		Password:       "$2a$04$hash",
		Email:          "maria@sena.edu.co",
		Phone:          "3001234567",
		Role:           users.RoleInstructor,
		Status:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestUsersRepo_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	u, err := repo.Create(context.Background(), testUser())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 5 {
		t.Errorf("id inesperado: %d", u.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUsersRepo_Create_Duplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.Create(context.Background(), testUser())
	if !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("se esperaba ErrDuplicate, llegó %v", err)
	}
}

func TestUsersRepo_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("se esperaba ErrNotFound, llegó %v", err)
	}
}

func TestUsersRepo_Update_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	u := testUser()
	u.ID = 99
	if err := repo.Update(context.Background(), u); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("se esperaba ErrNotFound, llegó %v", err)
	}
}

func TestUsersRepo_Delete_Restricted(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM users").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	if err := repo.Delete(context.Background(), 1); !errors.Is(err, storage.ErrRestricted) {
		t.Fatalf("se esperaba ErrRestricted, llegó %v", err)
	}
}

func TestUsersRepo_GetByIdentification(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "identification", "fullname", "password", "email",
		"phone", "address", "role", "status", "created_at", "updated_at",
	}).AddRow(3, int64(1001), "María Gómez", "$2a$04$hash", "maria@sena.edu.co",
		"3001234567", "", "Instructor", true, now, now)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE identification").
		WithArgs(int64(1001)).
		WillReturnRows(rows)

	u, err := repo.GetByIdentification(context.Background(), 1001)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.ID != 3 || u.Role != users.RoleInstructor {
		t.Errorf("usuario inesperado: %+v", u)
	}
}
