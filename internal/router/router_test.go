package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	platformauth "livestock-api/internal/auth"
	"livestock-api/internal/config"
	"livestock-api/internal/domain/users"
	"livestock-api/internal/platform/cache"
	"livestock-api/internal/router"
)

func newTestServer(t *testing.T) (*httptest.Server, router.Repos) {
	t.Helper()

	repos := router.NewMemoryRepos()
	seedUser(t, repos, 1001, "Admin de Prueba", "admin@test.local", "3000000001", users.RoleAdministrador)
	seedUser(t, repos, 2002, "Aprendiz de Prueba", "aprendiz@test.local", "3000000002", users.RoleAprendiz)

	mgr := platformauth.NewManager(platformauth.Options{
		Secret:     "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})

	handler := router.New(router.Options{
		Config: config.Config{
			CacheTTL:    time.Minute,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Repos: repos,
		Cache: cache.NewMemory(),
		Auth:  mgr,
	})

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts, repos
}

func seedUser(t *testing.T, repos router.Repos, identification int64, fullname, email, phone string, role users.Role) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("clave123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	now := time.Now().UTC()
	_, err = repos.Users.Create(context.Background(), users.User{
		Identification: identification,
		Fullname:       fullname,
		Password:       string(hash),
		Email:          email,
		Phone:          phone,
		Role:           role,
		Status:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func login(t *testing.T, baseURL string, identification int64) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/v1/auth/login", "", map[string]any{
		"identification": identification,
		"password":       "clave123",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Data.AccessToken == "" {
		t.Fatalf("login: missing access_token body=%s", string(body))
	}
	return resp.Data.AccessToken
}

func TestHTTP_AuthFlow(t *testing.T) {
	ts, _ := newTestServer(t)

	// Sin token => 401 en rutas protegidas.
	st, _ := doReq(t, ts.URL, "GET", "/api/v1/animals/", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", st)
	}

	// Health es público.
	st, _ = doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}

	// Credenciales incorrectas => 401.
	st, _ = doReq(t, ts.URL, "POST", "/api/v1/auth/login", "", map[string]any{
		"identification": 1001,
		"password":       "incorrecta",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 bad password, got %d", st)
	}

	// Usuario inexistente => 404.
	st, _ = doReq(t, ts.URL, "POST", "/api/v1/auth/login", "", map[string]any{
		"identification": 9999,
		"password":       "clave123",
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown user, got %d", st)
	}

	token := login(t, ts.URL, 1001)

	st, body := doReq(t, ts.URL, "GET", "/api/v1/auth/me", token, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 me, got %d body=%s", st, string(body))
	}
}

func TestHTTP_AdminOnlyWrites(t *testing.T) {
	ts, _ := newTestServer(t)

	admin := login(t, ts.URL, 1001)
	apprentice := login(t, ts.URL, 2002)

	speciesID := createEntity(t, ts.URL, admin, "/api/v1/species/", map[string]any{"name": "Bovino"})

	// PUT con rol Aprendiz => 403.
	st, _ := doReq(t, ts.URL, "PUT", "/api/v1/species/"+itoa(speciesID), apprentice, map[string]any{"name": "Bovino 2"})
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 put as apprentice, got %d", st)
	}

	// DELETE con rol Aprendiz => 403.
	st, _ = doReq(t, ts.URL, "DELETE", "/api/v1/species/"+itoa(speciesID), apprentice, nil)
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 delete as apprentice, got %d", st)
	}

	// El administrador sí puede.
	st, body := doReq(t, ts.URL, "PUT", "/api/v1/species/"+itoa(speciesID), admin, map[string]any{"name": "Bovino Criollo"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 put as admin, got %d body=%s", st, string(body))
	}
}

func TestHTTP_AnimalCRUDAndFilters(t *testing.T) {
	ts, _ := newTestServer(t)
	admin := login(t, ts.URL, 1001)

	speciesID := createEntity(t, ts.URL, admin, "/api/v1/species/", map[string]any{"name": "Bovino"})
	breedID := createEntity(t, ts.URL, admin, "/api/v1/breeds/", map[string]any{
		"name": "Brahman", "species_id": speciesID,
	})

	mk := func(record, sex string, weight int) int {
		return createEntity(t, ts.URL, admin, "/api/v1/animals/", map[string]any{
			"sex": sex, "birth_date": "2023-05-10", "weight": weight,
			"record": record, "status": "Vivo", "breeds_id": breedID,
		})
	}
	a1 := mk("BOV-001", "Hembra", 320)
	mk("BOV-002", "Macho", 410)
	mk("BOV-003", "Hembra", 280)

	// Registro duplicado => 409.
	st, _ := doReq(t, ts.URL, "POST", "/api/v1/animals/", admin, map[string]any{
		"sex": "Macho", "birth_date": "2023-05-10", "weight": 100,
		"record": "BOV-001", "status": "Vivo", "breeds_id": breedID,
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate record, got %d", st)
	}

	// Filtro por sexo + paginación.
	st, body := doReq(t, ts.URL, "GET", "/api/v1/animals/?sex=Hembra&per_page=1&page=1", admin, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
	}
	var list struct {
		Data []map[string]any `json:"data"`
		Meta struct {
			Pagination struct {
				Total   int  `json:"total"`
				Pages   int  `json:"pages"`
				HasNext bool `json:"has_next"`
			} `json:"pagination"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if list.Meta.Pagination.Total != 2 || list.Meta.Pagination.Pages != 2 || !list.Meta.Pagination.HasNext {
		t.Fatalf("unexpected pagination: %+v", list.Meta.Pagination)
	}
	if len(list.Data) != 1 {
		t.Fatalf("expected 1 item per page, got %d", len(list.Data))
	}

	// Sexo inválido en filtro => 422.
	st, _ = doReq(t, ts.URL, "GET", "/api/v1/animals/?sex=Otro", admin, nil)
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 invalid sex filter, got %d", st)
	}

	// Update parcial.
	st, body = doReq(t, ts.URL, "PUT", "/api/v1/animals/"+itoa(a1), admin, map[string]any{"weight": 350})
	if st != http.StatusOK {
		t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
	}

	// La raza con animales no se puede borrar.
	st, _ = doReq(t, ts.URL, "DELETE", "/api/v1/breeds/"+itoa(breedID), admin, nil)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 deleting breed in use, got %d", st)
	}

	// Animal inexistente => 404.
	st, _ = doReq(t, ts.URL, "GET", "/api/v1/animals/99999", admin, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown animal, got %d", st)
	}
}

func TestHTTP_ListETag(t *testing.T) {
	ts, _ := newTestServer(t)
	admin := login(t, ts.URL, 1001)

	createEntity(t, ts.URL, admin, "/api/v1/species/", map[string]any{"name": "Bovino"})

	req, _ := http.NewRequest("GET", ts.URL+"/api/v1/species/", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	res.Body.Close()
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header on list response")
	}

	req, _ = http.NewRequest("GET", ts.URL+"/api/v1/species/", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	req.Header.Set("If-None-Match", etag)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get list conditional: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304 with matching ETag, got %d", res.StatusCode)
	}

	// Una escritura invalida el ETag.
	createEntity(t, ts.URL, admin, "/api/v1/species/", map[string]any{"name": "Ovino"})

	req, _ = http.NewRequest("GET", ts.URL+"/api/v1/species/", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	req.Header.Set("If-None-Match", etag)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get list after write: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after invalidation, got %d", res.StatusCode)
	}
}

func TestHTTP_MedicalFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	admin := login(t, ts.URL, 1001)

	speciesID := createEntity(t, ts.URL, admin, "/api/v1/species/", map[string]any{"name": "Bovino"})
	breedID := createEntity(t, ts.URL, admin, "/api/v1/breeds/", map[string]any{
		"name": "Gyr", "species_id": speciesID,
	})
	animalID := createEntity(t, ts.URL, admin, "/api/v1/animals/", map[string]any{
		"sex": "Hembra", "birth_date": "2022-01-15", "weight": 380,
		"record": "BOV-010", "status": "Vivo", "breeds_id": breedID,
	})

	// Tratamiento con end_date anterior a start_date => 422.
	st, body := doReq(t, ts.URL, "POST", "/api/v1/medical/treatments/", admin, map[string]any{
		"start_date": "2025-03-10", "end_date": "2025-03-01",
		"description": "Desparasitación", "frequency": "Diaria",
		"dosis": "10ml", "animal_id": animalID,
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 invalid range, got %d body=%s", st, string(body))
	}

	treatmentID := createEntity(t, ts.URL, admin, "/api/v1/medical/treatments/", map[string]any{
		"start_date": "2025-03-01", "end_date": "2025-03-10",
		"description": "Desparasitación", "frequency": "Diaria",
		"dosis": "10ml", "animal_id": animalID,
	})

	diseaseID := createEntity(t, ts.URL, admin, "/api/v1/medical/diseases/", map[string]any{
		"name": "Fiebre aftosa", "symptoms": "Fiebre, ampollas",
	})
	vaccineID := createEntity(t, ts.URL, admin, "/api/v1/medical/vaccines/", map[string]any{
		"name": "Aftosa Bivalente", "dosis": "2ml",
		"route_administration": "Subcutánea", "vaccination_interval": "6 meses",
		"vaccine_type": "Inactivada", "national_plan": "Plan aftosa",
		"target_disease_id": diseaseID,
	})

	payload := map[string]any{
		"animal_id": animalID, "vaccine_id": vaccineID,
		"application_date": "2025-02-01",
		"instructor_id":    1, "apprentice_id": 2,
	}
	st, body = doReq(t, ts.URL, "POST", "/api/v1/medical/vaccinations/", admin, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 vaccination, got %d body=%s", st, string(body))
	}

	// La terna (animal, vacuna, fecha) es única.
	st, _ = doReq(t, ts.URL, "POST", "/api/v1/medical/vaccinations/", admin, payload)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate vaccination, got %d", st)
	}

	// Vínculo tratamiento-vacuna y su duplicado.
	link := map[string]any{"treatment_id": treatmentID, "vaccine_id": vaccineID}
	st, body = doReq(t, ts.URL, "POST", "/api/v1/relations/treatment-vaccines/", admin, link)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 treatment-vaccine, got %d body=%s", st, string(body))
	}
	st, _ = doReq(t, ts.URL, "POST", "/api/v1/relations/treatment-vaccines/", admin, link)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate link, got %d", st)
	}

	// El dashboard refleja lo creado.
	st, body = doReq(t, ts.URL, "GET", "/api/v1/analytics/dashboard", admin, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
	}
	var dash struct {
		Data struct {
			Animals struct {
				Total int `json:"total"`
			} `json:"animals"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &dash); err != nil {
		t.Fatalf("unmarshal dashboard: %v", err)
	}
	if dash.Data.Animals.Total != 1 {
		t.Fatalf("expected 1 animal in dashboard, got %d", dash.Data.Animals.Total)
	}
}

func createEntity(t *testing.T, baseURL, token, path string, payload map[string]any) int {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, token, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		Data struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Data.ID == 0 {
		t.Fatalf("create %s: missing id body=%s", path, string(body))
	}
	return resp.Data.ID
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
