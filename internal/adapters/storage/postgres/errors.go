package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"livestock-api/internal/storage"
)

// translateWrite mapea errores de integridad en inserts/updates a los
// centinelas del paquete storage.
func translateWrite(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return storage.ErrDuplicate
		case pgerrcode.ForeignKeyViolation:
			return storage.ErrForeignKey
		}
	}
	return err
}

// translateDelete mapea la violación de FK en deletes: la fila existe pero
// tiene dependientes, así que es un borrado restringido (409), no un 404.
func translateDelete(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return storage.ErrRestricted
	}
	return err
}

func translateScan(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}
