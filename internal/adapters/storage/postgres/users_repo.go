package postgres

import (
	"context"
	"database/sql"

	"livestock-api/internal/domain/users"
	"livestock-api/internal/query"
	"livestock-api/internal/storage"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userCols = `id, identification, fullname, password, email, phone, COALESCE(address, ''), role, status, created_at, updated_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (identification, fullname, password, email, phone, address, role, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7,$8,$9,$10)
		RETURNING id
	`,
		u.Identification, u.Fullname, u.Password, u.Email, u.Phone,
		u.Address, string(u.Role), u.Status, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return users.User{}, translateWrite(err)
	}
	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET identification = $2, fullname = $3, password = $4, email = $5,
		    phone = $6, address = NULLIF($7, ''), role = $8, status = $9, updated_at = $10
		WHERE id = $1
	`,
		u.ID, u.Identification, u.Fullname, u.Password, u.Email,
		u.Phone, u.Address, string(u.Role), u.Status, u.UpdatedAt,
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

func (r *UsersRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UsersRepo) GetByIdentification(ctx context.Context, identification int64) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE identification = $1`, identification)
	return scanUser(row)
}

func (r *UsersRepo) List(ctx context.Context, p query.Params) ([]users.User, int, error) {
	c := &cond{}
	c.strFilter(p, "role", "role")
	if v := p.Filter("status"); v != "" {
		c.eq("status", v == "true" || v == "1")
	}
	if err := c.intFilter(p, "identification", "identification"); err != nil {
		return nil, 0, err
	}
	c.search(p.Search, "fullname", "email", "identification")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	tail := c.paginate(p)
	rows, err := r.db.QueryContext(ctx, `SELECT `+userCols+` FROM users`+c.where()+tail, c.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *UsersRepo) Statistics(ctx context.Context) (users.Statistics, error) {
	stats := users.Statistics{ByRole: make(map[string]int)}

	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return users.Statistics{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return users.Statistics{}, err
		}
		stats.ByRole[role] = n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return users.Statistics{}, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE status), COUNT(*) FILTER (WHERE NOT status) FROM users
	`).Scan(&stats.Active, &stats.Inactive)
	if err != nil {
		return users.Statistics{}, err
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var role string
	if err := row.Scan(
		&u.ID, &u.Identification, &u.Fullname, &u.Password, &u.Email,
		&u.Phone, &u.Address, &role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return users.User{}, translateScan(err)
	}
	u.Role = users.Role(role)
	return u, nil
}
