package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Tablas habilitadas para el cálculo de última modificación. La lista blanca
// evita interpolar nombres arbitrarios en la consulta.
var lastModTables = map[string]bool{
	"users":                 true,
	"species":               true,
	"breeds":                true,
	"animals":               true,
	"genetic_improvements":  true,
	"diseases":              true,
	"vaccines":              true,
	"medications":           true,
	"treatments":            true,
	"vaccinations":          true,
	"controls":              true,
	"food_types":            true,
	"fields":                true,
	"animal_diseases":       true,
	"animal_fields":         true,
	"treatment_medications": true,
	"treatment_vaccines":    true,
}

// LastModified devuelve el timestamp de cambio más reciente de la tabla,
// considerando altas y ediciones. Alimenta el cálculo de ETags.
func LastModified(db *sql.DB) func(ctx context.Context, table string) (time.Time, error) {
	return func(ctx context.Context, table string) (time.Time, error) {
		if !lastModTables[table] {
			return time.Time{}, fmt.Errorf("tabla desconocida: %s", table)
		}
		var ts sql.NullTime
		q := fmt.Sprintf(`SELECT GREATEST(MAX(created_at), MAX(updated_at)) FROM %s`, table)
		if err := db.QueryRowContext(ctx, q).Scan(&ts); err != nil {
			return time.Time{}, err
		}
		if !ts.Valid {
			return time.Time{}, nil
		}
		return ts.Time, nil
	}
}
