package users

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"livestock-api/internal/query"
	"livestock-api/internal/storage"
	"livestock-api/internal/validation"
)

var (
	ErrBadCredentials = errors.New("credenciales incorrectas")
	ErrInactive       = errors.New("usuario inactivo")
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Identification int64
	Fullname       string
	Password       string
	Email          string
	Phone          string
	Address        string
	Role           Role
	Status         *bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	v := validation.New()
	if in.Identification <= 0 {
		v.Add("identification", "la identificación es requerida")
	}
	if strings.TrimSpace(in.Fullname) == "" {
		v.Add("fullname", "el nombre completo es requerido")
	}
	if len(in.Password) < 8 {
		v.Add("password", "la contraseña debe tener al menos 8 caracteres")
	}
	if !emailRe.MatchString(strings.TrimSpace(in.Email)) {
		v.Add("email", "el correo no es válido")
	}
	if strings.TrimSpace(in.Phone) == "" {
		v.Add("phone", "el teléfono es requerido")
	}
	if err := v.Err(); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		Identification: in.Identification,
		Fullname:       strings.TrimSpace(in.Fullname),
		Password:       string(hash),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Address:        strings.TrimSpace(in.Address),
		Role:           in.Role,
		Status:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Status != nil {
		u.Status = *in.Status
	}

	return s.repo.Create(ctx, u)
}

type UpdateInput struct {
	Fullname *string
	Password *string
	Email    *string
	Phone    *string
	Address  *string
	Role     *Role
	Status   *bool
}

func (s *Service) Update(ctx context.Context, id int, in UpdateInput) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	v := validation.New()
	if in.Fullname != nil {
		if strings.TrimSpace(*in.Fullname) == "" {
			v.Add("fullname", "el nombre completo no puede quedar vacío")
		} else {
			u.Fullname = strings.TrimSpace(*in.Fullname)
		}
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			v.Add("password", "la contraseña debe tener al menos 8 caracteres")
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return User{}, err
			}
			u.Password = string(hash)
		}
	}
	if in.Email != nil {
		if !emailRe.MatchString(strings.TrimSpace(*in.Email)) {
			v.Add("email", "el correo no es válido")
		} else {
			u.Email = strings.TrimSpace(*in.Email)
		}
	}
	if in.Phone != nil {
		if strings.TrimSpace(*in.Phone) == "" {
			v.Add("phone", "el teléfono no puede quedar vacío")
		} else {
			u.Phone = strings.TrimSpace(*in.Phone)
		}
	}
	if in.Address != nil {
		u.Address = strings.TrimSpace(*in.Address)
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Status != nil {
		u.Status = *in.Status
	}
	if err := v.Err(); err != nil {
		return User{}, err
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, p query.Params) ([]User, int, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	return s.repo.Statistics(ctx)
}

// Authenticate valida identificación + contraseña.
// Devuelve storage.ErrNotFound si el usuario no existe, ErrInactive si está
// deshabilitado y ErrBadCredentials si la contraseña no coincide.
func (s *Service) Authenticate(ctx context.Context, identification int64, password string) (User, error) {
	u, err := s.repo.GetByIdentification(ctx, identification)
	if err != nil {
		return User{}, err
	}
	if !u.Status {
		return User{}, ErrInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrBadCredentials
	}
	return u, nil
}

// Exists se usa desde otros módulos para validar referencias a usuarios.
func (s *Service) Exists(ctx context.Context, id int) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
