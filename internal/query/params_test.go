package query

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var testAllowed = Allowed{
	Filterable: []string{"status", "breeds_id"},
	Searchable: []string{"record"},
	Sortable:   []string{"id", "record", "created_at"},
}

func parseURL(t *testing.T, url string) (Params, error) {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, url, nil)
	return Parse(r, testAllowed)
}

func TestParse_Defaults(t *testing.T) {
	p, err := parseURL(t, "/animals")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Page != 1 || p.PerPage != DefaultPerPage {
		t.Errorf("paginación por defecto inesperada: page=%d per_page=%d", p.Page, p.PerPage)
	}
	if p.SortBy != "id" || p.SortOrder != "asc" {
		t.Errorf("orden por defecto inesperado: %s %s", p.SortBy, p.SortOrder)
	}
	if len(p.Filters) != 0 {
		t.Errorf("no debía haber filtros: %v", p.Filters)
	}
}

func TestParse_PerPageClamp(t *testing.T) {
	p, err := parseURL(t, "/animals?per_page=500")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.PerPage != MaxPerPage {
		t.Errorf("per_page debía limitarse a %d, llegó %d", MaxPerPage, p.PerPage)
	}
}

func TestParse_InvalidPage(t *testing.T) {
	for _, url := range []string{"/animals?page=0", "/animals?page=-3", "/animals?page=abc"} {
		if _, err := parseURL(t, url); err == nil {
			t.Errorf("%s debía fallar", url)
		}
	}
}

func TestParse_InvalidSort(t *testing.T) {
	if _, err := parseURL(t, "/animals?sort_by=password"); err == nil {
		t.Error("sort_by fuera de la lista debía fallar")
	}
	if _, err := parseURL(t, "/animals?sort_order=sideways"); err == nil {
		t.Error("sort_order inválido debía fallar")
	}
}

func TestParse_SortOrderCaseInsensitive(t *testing.T) {
	p, err := parseURL(t, "/animals?sort_by=record&sort_order=DESC")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.SortBy != "record" || p.SortOrder != "desc" {
		t.Errorf("orden inesperado: %s %s", p.SortBy, p.SortOrder)
	}
}

func TestParse_OnlyAllowedFilters(t *testing.T) {
	p, err := parseURL(t, "/animals?status=Vivo&color=negro&breeds_id=2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Filter("status") != "Vivo" || p.Filter("breeds_id") != "2" {
		t.Errorf("filtros inesperados: %v", p.Filters)
	}
	if _, ok := p.Filters["color"]; ok {
		t.Error("color no está en la lista permitida y no debía pasar")
	}
}

func TestIntFilter(t *testing.T) {
	p, err := parseURL(t, "/animals?breeds_id=7")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	n, ok, err := p.IntFilter("breeds_id")
	if err != nil || !ok || n != 7 {
		t.Fatalf("breeds_id: n=%d ok=%v err=%v", n, ok, err)
	}

	_, ok, err = p.IntFilter("status")
	if err != nil {
		t.Fatalf("filtro ausente no debe producir error: %v", err)
	}
	if ok {
		t.Error("status no vino y ok debía ser false")
	}

	p.Filters["breeds_id"] = "abc"
	if _, _, err := p.IntFilter("breeds_id"); err == nil {
		t.Error("un filtro no numérico debía producir error")
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("offset inesperado: %d", got)
	}
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name           string
		total, page, per int
		pages          int
		hasNext, hasPrev bool
	}{
		{"vacío", 0, 1, 50, 0, false, false},
		{"una página", 10, 1, 50, 1, false, false},
		{"primera de varias", 120, 1, 50, 3, true, false},
		{"intermedia", 120, 2, 50, 3, true, true},
		{"última", 120, 3, 50, 3, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewPagination(tc.total, tc.page, tc.per)
			if got.Pages != tc.pages {
				t.Errorf("pages: %d, se esperaba %d", got.Pages, tc.pages)
			}
			if got.HasNext != tc.hasNext || got.HasPrev != tc.hasPrev {
				t.Errorf("has_next=%v has_prev=%v, se esperaba %v/%v",
					got.HasNext, got.HasPrev, tc.hasNext, tc.hasPrev)
			}
		})
	}
}
