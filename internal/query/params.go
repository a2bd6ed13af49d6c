package query

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPerPage = 50
	MaxPerPage     = 100
)

// Allowed define, por entidad, qué campos se pueden filtrar, buscar y ordenar.
// Es el equivalente de las listas blancas que cada modelo declara.
type Allowed struct {
	Filterable []string
	Searchable []string
	Sortable   []string
}

// Params representa los parámetros de listado ya validados.
type Params struct {
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder string // asc | desc
	Filters   map[string]string
}

// Parse valida los query params del request contra las listas permitidas.
// sort_by fuera de la lista o sort_order inválido devuelven error con los valores válidos.
func Parse(r *http.Request, allowed Allowed) (Params, error) {
	q := r.URL.Query()

	p := Params{
		Page:      1,
		PerPage:   DefaultPerPage,
		SortBy:    "id",
		SortOrder: "asc",
		Filters:   make(map[string]string),
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Params{}, fmt.Errorf("page debe ser un entero positivo")
		}
		p.Page = n
	}

	if v := q.Get("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Params{}, fmt.Errorf("per_page debe ser un entero positivo")
		}
		if n > MaxPerPage {
			n = MaxPerPage
		}
		p.PerPage = n
	}

	p.Search = strings.TrimSpace(q.Get("search"))

	if v := strings.TrimSpace(q.Get("sort_by")); v != "" {
		if !contains(allowed.Sortable, v) {
			return Params{}, fmt.Errorf("sort_by inválido: %q (válidos: %s)", v, strings.Join(allowed.Sortable, ", "))
		}
		p.SortBy = v
	}

	if v := strings.ToLower(strings.TrimSpace(q.Get("sort_order"))); v != "" {
		if v != "asc" && v != "desc" {
			return Params{}, fmt.Errorf("sort_order inválido: %q (válidos: asc, desc)", v)
		}
		p.SortOrder = v
	}

	for _, f := range allowed.Filterable {
		if v := strings.TrimSpace(q.Get(f)); v != "" {
			p.Filters[f] = v
		}
	}

	return p, nil
}

// Offset devuelve el desplazamiento para la consulta paginada.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Filter devuelve el valor de un filtro, o "" si no vino.
func (p Params) Filter(name string) string {
	return p.Filters[name]
}

// IntFilter interpreta un filtro como entero; ok=false si no vino.
func (p Params) IntFilter(name string) (int, bool, error) {
	v, ok := p.Filters[name]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s debe ser un entero", name)
	}
	return n, true, nil
}

// Pagination es el bloque meta.pagination de las respuestas de listado.
type Pagination struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	PerPage int  `json:"per_page"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

func NewPagination(total, page, perPage int) Pagination {
	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(perPage)))
	}
	return Pagination{
		Total:   total,
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		HasNext: page < pages,
		HasPrev: page > 1 && total > 0,
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
