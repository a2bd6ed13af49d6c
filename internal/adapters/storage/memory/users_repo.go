package memory

import (
	"context"
	"strconv"

	"livestock-api/internal/domain/users"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type UsersRepo struct {
	s *Store
}

func NewUsersRepo(s *Store) *UsersRepo {
	return &UsersRepo{s: s}
}

// duplicateUser replica las restricciones UNIQUE de identification, email y phone.
func (r *UsersRepo) duplicateUser(u users.User) bool {
	for _, other := range r.s.users {
		if other.ID == u.ID {
			continue
		}
		if other.Identification == u.Identification || other.Email == u.Email || other.Phone == u.Phone {
			return true
		}
	}
	return false
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.duplicateUser(u) {
		return users.User{}, storage.ErrDuplicate
	}
	u.ID = r.s.nextID("users")
	r.s.users[u.ID] = u
	r.s.touch("users")
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return storage.ErrNotFound
	}
	if r.duplicateUser(u) {
		return storage.ErrDuplicate
	}
	r.s.users[u.ID] = u
	r.s.touch("users")
	return nil
}

func (r *UsersRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return storage.ErrNotFound
	}
	for _, v := range r.s.vaccinations {
		if v.InstructorID == id || (v.ApprenticeID != nil && *v.ApprenticeID == id) {
			return storage.ErrRestricted
		}
	}
	for _, ad := range r.s.animalDiseases {
		if ad.InstructorID == id {
			return storage.ErrRestricted
		}
	}
	delete(r.s.users, id)
	r.s.touch("users")
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (r *UsersRepo) GetByIdentification(ctx context.Context, identification int64) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range sortedIDs(r.s.users) {
		if r.s.users[id].Identification == identification {
			return r.s.users[id], nil
		}
	}
	return users.User{}, storage.ErrNotFound
}

func (r *UsersRepo) List(ctx context.Context, p query.Params) ([]users.User, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]users.User, 0, len(r.s.users))
	for _, id := range sortedIDs(r.s.users) {
		u := r.s.users[id]
		if v := p.Filter("role"); v != "" && string(u.Role) != v {
			continue
		}
		if v := p.Filter("status"); v != "" {
			want, err := strconv.ParseBool(v)
			if err != nil || u.Status != want {
				continue
			}
		}
		if v := p.Filter("identification"); v != "" && strconv.FormatInt(u.Identification, 10) != v {
			continue
		}
		if p.Search != "" &&
			!containsFold(u.Fullname, p.Search) &&
			!containsFold(u.Email, p.Search) &&
			!containsFold(strconv.FormatInt(u.Identification, 10), p.Search) {
			continue
		}
		items = append(items, u)
	}

	page, total := listPage(items, p, func(a, b users.User) bool {
		switch p.SortBy {
		case "fullname":
			return a.Fullname < b.Fullname
		case "email":
			return a.Email < b.Email
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return page, total, nil
}

func (r *UsersRepo) Statistics(ctx context.Context) (users.Statistics, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st := users.Statistics{ByRole: make(map[string]int)}
	for _, u := range r.s.users {
		st.Total++
		st.ByRole[string(u.Role)]++
		if u.Status {
			st.Active++
		} else {
			st.Inactive++
		}
	}
	return st, nil
}
