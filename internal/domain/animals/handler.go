package animals

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"livestock-api/internal/httpapi"
	"livestock-api/internal/httpapi/httpcache"
	"livestock-api/internal/httpapi/respond"
	"livestock-api/internal/query"
)

const (
	table        = "animals"
	geneticTable = "genetic_improvements"
)

func RegisterRoutes(r chi.Router, svc *Service, hc *httpcache.Manager) {
	r.Route("/animals", func(ar chi.Router) {
		ar.With(hc.List(table)).Get("/", listHandler(svc))
		ar.With(hc.Invalidate(table)).Post("/", createHandler(svc))
		ar.Get("/statistics", statisticsHandler(svc))

		ar.Route("/genetic-improvements", func(gr chi.Router) {
			gr.With(hc.List(geneticTable)).Get("/", listGeneticHandler(svc))
			gr.With(hc.Invalidate(geneticTable)).Post("/", createGeneticHandler(svc))
			gr.Get("/{improvementID}", getGeneticHandler(svc))
			gr.With(hc.Invalidate(geneticTable)).Put("/{improvementID}", updateGeneticHandler(svc))
			gr.With(hc.Invalidate(geneticTable)).Delete("/{improvementID}", deleteGeneticHandler(svc))
		})

		ar.Get("/{animalID}", getHandler(svc))
		ar.With(hc.Invalidate(table)).Put("/{animalID}", updateHandler(svc))
		ar.With(hc.Invalidate(table)).Delete("/{animalID}", deleteHandler(svc))
	})
}

type animalResponse struct {
	ID        int    `json:"id"`
	Sex       string `json:"sex"`
	BirthDate string `json:"birth_date"`
	Weight    int    `json:"weight"`
	Record    string `json:"record"`
	Status    string `json:"status"`
	BreedID   int    `json:"breeds_id"`
	IDFather  *int   `json:"idFather"`
	IDMother  *int   `json:"idMother"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toResponse(a Animal) animalResponse {
	return animalResponse{
		ID:        a.ID,
		Sex:       string(a.Sex),
		BirthDate: httpapi.FormatDate(a.BirthDate),
		Weight:    a.Weight,
		Record:    a.Record,
		Status:    string(a.Status),
		BreedID:   a.BreedID,
		IDFather:  a.IDFather,
		IDMother:  a.IDMother,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

type createRequest struct {
	Sex       string `json:"sex"`
	BirthDate string `json:"birth_date"`
	Weight    int    `json:"weight"`
	Record    string `json:"record"`
	Status    string `json:"status"`
	BreedID   int    `json:"breeds_id"`
	IDFather  *int   `json:"idFather"`
	IDMother  *int   `json:"idMother"`
}

// @Summary Listar animales
// @Description Listado paginado del hato con filtros por sexo, estado, raza,
// @Description registro y rango de peso.
// @Tags animals
// @Param page query int false "Página"
// @Param per_page query int false "Registros por página (max 100)"
// @Param sex query string false "Hembra | Macho"
// @Param status query string false "Vivo | Vendido | Muerto"
// @Param breeds_id query int false "Filtrar por raza"
// @Param min_weight query int false "Peso mínimo"
// @Param max_weight query int false "Peso máximo"
// @Success 200 {object} map[string]any
// @Router /animals/ [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, ListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}

		// Los filtros de enum se validan en el borde para fallar con la lista de valores.
		if v := p.Filter("sex"); v != "" {
			if _, err := ParseSex(v); err != nil {
				respond.Validation(w, map[string]string{"sex": err.Error()})
				return
			}
		}
		if v := p.Filter("status"); v != "" {
			if _, err := ParseStatus(v); err != nil {
				respond.Validation(w, map[string]string{"status": err.Error()})
				return
			}
		}

		items, total, err := svc.List(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Animal")
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toResponse(a))
		}
		respond.List(w, "Animales obtenidos", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

// @Summary Crear animal
// @Tags animals
// @Param payload body createRequest true "Datos del animal; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /animals/ [post]
func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		sex, err := ParseSex(req.Sex)
		if err != nil {
			respond.Validation(w, map[string]string{"sex": err.Error()})
			return
		}

		var status Status
		if req.Status != "" {
			if status, err = ParseStatus(req.Status); err != nil {
				respond.Validation(w, map[string]string{"status": err.Error()})
				return
			}
		}

		birthDate, err := httpapi.ParseDate(req.BirthDate)
		if err != nil {
			respond.Validation(w, map[string]string{"birth_date": err.Error()})
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Sex:       sex,
			BirthDate: birthDate,
			Weight:    req.Weight,
			Record:    req.Record,
			Status:    status,
			BreedID:   req.BreedID,
			IDFather:  req.IDFather,
			IDMother:  req.IDMother,
		})
		if err != nil {
			httpapi.WriteError(w, r, err, "Animal")
			return
		}
		respond.Success(w, http.StatusCreated, "Animal creado", toResponse(a))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "animalID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Animal")
			return
		}
		respond.Success(w, http.StatusOK, "Animal obtenido", toResponse(a))
	}
}

type updateRequest struct {
	Sex       *string `json:"sex"`
	BirthDate *string `json:"birth_date"`
	Weight    *int    `json:"weight"`
	Record    *string `json:"record"`
	Status    *string `json:"status"`
	BreedID   *int    `json:"breeds_id"`
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "animalID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}

		// idFather/idMother admiten null explícito (limpiar la referencia),
		// así que primero se detecta la presencia de esas claves.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		var req updateRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				respond.BadRequest(w, "JSON inválido")
				return
			}
		}

		in := UpdateInput{
			Weight:  req.Weight,
			Record:  req.Record,
			BreedID: req.BreedID,
		}

		if req.Sex != nil {
			sex, err := ParseSex(*req.Sex)
			if err != nil {
				respond.Validation(w, map[string]string{"sex": err.Error()})
				return
			}
			in.Sex = &sex
		}
		if req.Status != nil {
			status, err := ParseStatus(*req.Status)
			if err != nil {
				respond.Validation(w, map[string]string{"status": err.Error()})
				return
			}
			in.Status = &status
		}
		if req.BirthDate != nil {
			bd, err := httpapi.ParseDate(*req.BirthDate)
			if err != nil {
				respond.Validation(w, map[string]string{"birth_date": err.Error()})
				return
			}
			in.BirthDate = &bd
		}

		if ok := parseParentField(w, raw, "idFather", &in.ClearFather, &in.IDFather); !ok {
			return
		}
		if ok := parseParentField(w, raw, "idMother", &in.ClearMother, &in.IDMother); !ok {
			return
		}

		a, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Animal")
			return
		}
		respond.Success(w, http.StatusOK, "Animal actualizado", toResponse(a))
	}
}

// parseParentField detecta si idFather/idMother vino en el body y si fue null
// explícito (limpiar) o un id. Escribe la respuesta 422 y devuelve false si es inválido.
func parseParentField(w http.ResponseWriter, raw map[string]json.RawMessage, field string, clear *bool, target **int) bool {
	v, exists := raw[field]
	if !exists {
		return true
	}
	if string(v) == "null" {
		*clear = true
		return true
	}
	var n int
	if err := json.Unmarshal(v, &n); err != nil {
		respond.Validation(w, map[string]string{field: "debe ser un entero o null"})
		return false
	}
	*target = &n
	return true
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "animalID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Animal")
			return
		}
		respond.Success(w, http.StatusOK, "Animal eliminado", nil)
	}
}

func statisticsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Statistics(r.Context())
		if err != nil {
			httpapi.WriteError(w, r, err, "Animal")
			return
		}
		respond.Success(w, http.StatusOK, "Estadísticas de animales", stats)
	}
}

// ---- Mejoramientos genéticos ----

type geneticResponse struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	Details   string `json:"details"`
	Results   string `json:"results"`
	Technique string `json:"genetic_event_technique"`
	AnimalID  int    `json:"animal_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toGeneticResponse(g GeneticImprovement) geneticResponse {
	return geneticResponse{
		ID:        g.ID,
		Date:      httpapi.FormatDate(g.Date),
		Details:   g.Details,
		Results:   g.Results,
		Technique: g.Technique,
		AnimalID:  g.AnimalID,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
		UpdatedAt: g.UpdatedAt.Format(time.RFC3339),
	}
}

type geneticRequest struct {
	Date      string `json:"date"`
	Details   string `json:"details"`
	Results   string `json:"results"`
	Technique string `json:"genetic_event_technique"`
	AnimalID  int    `json:"animal_id"`
}

func (req geneticRequest) toInput() (GeneticInput, map[string]string) {
	in := GeneticInput{
		Details:   req.Details,
		Results:   req.Results,
		Technique: req.Technique,
		AnimalID:  req.AnimalID,
	}
	if req.Date != "" {
		d, err := httpapi.ParseDate(req.Date)
		if err != nil {
			return GeneticInput{}, map[string]string{"date": err.Error()}
		}
		in.Date = d
	}
	return in, nil
}

func listGeneticHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, GeneticListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListImprovements(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Mejoramiento genético")
			return
		}
		out := make([]geneticResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGeneticResponse(g))
		}
		respond.List(w, "Mejoramientos genéticos obtenidos", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createGeneticHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req geneticRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		in, fieldErrs := req.toInput()
		if fieldErrs != nil {
			respond.Validation(w, fieldErrs)
			return
		}
		g, err := svc.CreateImprovement(r.Context(), in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Mejoramiento genético")
			return
		}
		respond.Success(w, http.StatusCreated, "Mejoramiento genético creado", toGeneticResponse(g))
	}
}

func getGeneticHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "improvementID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		g, err := svc.GetImprovement(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Mejoramiento genético")
			return
		}
		respond.Success(w, http.StatusOK, "Mejoramiento genético obtenido", toGeneticResponse(g))
	}
}

func updateGeneticHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "improvementID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		var req geneticRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		in, fieldErrs := req.toInput()
		if fieldErrs != nil {
			respond.Validation(w, fieldErrs)
			return
		}
		g, err := svc.UpdateImprovement(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Mejoramiento genético")
			return
		}
		respond.Success(w, http.StatusOK, "Mejoramiento genético actualizado", toGeneticResponse(g))
	}
}

func deleteGeneticHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "improvementID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteImprovement(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Mejoramiento genético")
			return
		}
		respond.Success(w, http.StatusOK, "Mejoramiento genético eliminado", nil)
	}
}
