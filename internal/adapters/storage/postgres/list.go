package postgres

import (
	"fmt"
	"strings"

	"livestock-api/internal/query"
)

// cond acumula condiciones WHERE con placeholders numerados. sort_by y
// sort_order llegan ya validados contra la lista blanca de la entidad, por lo
// que interpolarlos es seguro.
type cond struct {
	frags []string
	args  []any
}

func (c *cond) eq(col string, val any) {
	c.args = append(c.args, val)
	c.frags = append(c.frags, fmt.Sprintf("%s = $%d", col, len(c.args)))
}

func (c *cond) gte(col string, val any) {
	c.args = append(c.args, val)
	c.frags = append(c.frags, fmt.Sprintf("%s >= $%d", col, len(c.args)))
}

func (c *cond) lte(col string, val any) {
	c.args = append(c.args, val)
	c.frags = append(c.frags, fmt.Sprintf("%s <= $%d", col, len(c.args)))
}

// search agrega un OR de ILIKE sobre las columnas buscables.
func (c *cond) search(term string, cols ...string) {
	if term == "" || len(cols) == 0 {
		return
	}
	c.args = append(c.args, "%"+term+"%")
	n := len(c.args)
	ors := make([]string, 0, len(cols))
	for _, col := range cols {
		ors = append(ors, fmt.Sprintf("%s::text ILIKE $%d", col, n))
	}
	c.frags = append(c.frags, "("+strings.Join(ors, " OR ")+")")
}

func (c *cond) where() string {
	if len(c.frags) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.frags, " AND ")
}

// paginate agrega ORDER BY + LIMIT/OFFSET y devuelve el sufijo de la consulta.
// Debe llamarse después de ejecutar el COUNT, porque agrega argumentos.
func (c *cond) paginate(p query.Params) string {
	c.args = append(c.args, p.PerPage, p.Offset())
	return fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		p.SortBy, strings.ToUpper(p.SortOrder), len(c.args)-1, len(c.args))
}

// intFilter traduce un filtro entero a una condición de igualdad.
func (c *cond) intFilter(p query.Params, name, col string) error {
	v, ok, err := p.IntFilter(name)
	if err != nil {
		return err
	}
	if ok {
		c.eq(col, v)
	}
	return nil
}

func (c *cond) strFilter(p query.Params, name, col string) {
	if v := p.Filter(name); v != "" {
		c.eq(col, v)
	}
}
