package management

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
	fieldsTable    = "fields"
	foodTypesTable = "food_types"
)

func RegisterRoutes(r chi.Router, svc *Service, hc *httpcache.Manager) {
	r.Route("/management", func(mr chi.Router) {
		mr.Route("/fields", func(fr chi.Router) {
			fr.With(hc.List(fieldsTable)).Get("/", listFieldsHandler(svc))
			fr.With(hc.Invalidate(fieldsTable)).Post("/", createFieldHandler(svc))
			fr.Get("/{fieldID}", getFieldHandler(svc))
			fr.With(hc.Invalidate(fieldsTable)).Put("/{fieldID}", updateFieldHandler(svc))
			fr.With(hc.Invalidate(fieldsTable)).Delete("/{fieldID}", deleteFieldHandler(svc))
		})

		mr.Route("/food-types", func(ftr chi.Router) {
			ftr.With(hc.List(foodTypesTable)).Get("/", listFoodTypesHandler(svc))
			ftr.With(hc.Invalidate(foodTypesTable)).Post("/", createFoodTypeHandler(svc))
			ftr.Get("/{foodTypeID}", getFoodTypeHandler(svc))
			ftr.With(hc.Invalidate(foodTypesTable)).Put("/{foodTypeID}", updateFoodTypeHandler(svc))
			ftr.With(hc.Invalidate(foodTypesTable)).Delete("/{foodTypeID}", deleteFoodTypeHandler(svc))
		})
	})
}

// ---- Praderas ----

type fieldResponse struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Ubication  string  `json:"ubication"`
	Capacity   string  `json:"capacity"`
	State      string  `json:"state"`
	Handlings  string  `json:"handlings"`
	Gauges     string  `json:"gauges"`
	Area       float64 `json:"area"`
	FoodTypeID *int    `json:"food_type_id"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func toFieldResponse(f Field) fieldResponse {
	return fieldResponse{
		ID:         f.ID,
		Name:       f.Name,
		Ubication:  f.Ubication,
		Capacity:   f.Capacity,
		State:      string(f.State),
		Handlings:  f.Handlings,
		Gauges:     f.Gauges,
		Area:       f.Area,
		FoodTypeID: f.FoodTypeID,
		CreatedAt:  f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  f.UpdatedAt.Format(time.RFC3339),
	}
}

type fieldRequest struct {
	Name      *string  `json:"name"`
	Ubication *string  `json:"ubication"`
	Capacity  *string  `json:"capacity"`
	State     *string  `json:"state"`
	Handlings *string  `json:"handlings"`
	Gauges    *string  `json:"gauges"`
	Area      *float64 `json:"area"`
}

func listFieldsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, FieldListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if v := p.Filter("state"); v != "" {
			if _, err := ParseLandStatus(v); err != nil {
				respond.Validation(w, map[string]string{"state": err.Error()})
				return
			}
		}
		items, total, err := svc.ListFields(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Pradera")
			return
		}
		out := make([]fieldResponse, 0, len(items))
		for _, f := range items {
			out = append(out, toFieldResponse(f))
		}
		respond.List(w, "Praderas obtenidas", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createFieldHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		var req fieldRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				respond.BadRequest(w, "JSON inválido")
				return
			}
		}

		in := FieldInput{}
		if req.Name != nil {
			in.Name = *req.Name
		}
		if req.Ubication != nil {
			in.Ubication = *req.Ubication
		}
		if req.Capacity != nil {
			in.Capacity = *req.Capacity
		}
		if req.Handlings != nil {
			in.Handlings = *req.Handlings
		}
		if req.Gauges != nil {
			in.Gauges = *req.Gauges
		}
		if req.Area != nil {
			in.Area = *req.Area
		}
		if req.State != nil {
			st, err := ParseLandStatus(*req.State)
			if err != nil {
				respond.Validation(w, map[string]string{"state": err.Error()})
				return
			}
			in.State = st
		}
		var clear bool
		if ok := parseNullableIntField(w, raw, "food_type_id", &clear, &in.FoodTypeID); !ok {
			return
		}

		f, err := svc.CreateField(r.Context(), in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Pradera")
			return
		}
		respond.Success(w, http.StatusCreated, "Pradera creada", toFieldResponse(f))
	}
}

func getFieldHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "fieldID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		f, err := svc.GetField(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Pradera")
			return
		}
		respond.Success(w, http.StatusOK, "Pradera obtenida", toFieldResponse(f))
	}
}

func updateFieldHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "fieldID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}

		// food_type_id admite null explícito (desasociar el cultivo).
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		var req fieldRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				respond.BadRequest(w, "JSON inválido")
				return
			}
		}

		in := FieldUpdate{
			Name:      req.Name,
			Ubication: req.Ubication,
			Capacity:  req.Capacity,
			Handlings: req.Handlings,
			Gauges:    req.Gauges,
			Area:      req.Area,
		}
		if req.State != nil {
			st, err := ParseLandStatus(*req.State)
			if err != nil {
				respond.Validation(w, map[string]string{"state": err.Error()})
				return
			}
			in.State = &st
		}
		if ok := parseNullableIntField(w, raw, "food_type_id", &in.ClearFoodType, &in.FoodTypeID); !ok {
			return
		}

		f, err := svc.UpdateField(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Pradera")
			return
		}
		respond.Success(w, http.StatusOK, "Pradera actualizada", toFieldResponse(f))
	}
}

func deleteFieldHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "fieldID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteField(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Pradera")
			return
		}
		respond.Success(w, http.StatusOK, "Pradera eliminada", nil)
	}
}

// parseNullableIntField detecta presencia, null explícito o un id entero.
func parseNullableIntField(w http.ResponseWriter, raw map[string]json.RawMessage, field string, clear *bool, target **int) bool {
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

// ---- Tipos de alimento ----

type foodTypeResponse struct {
	ID          int     `json:"id"`
	FoodType    string  `json:"food_type"`
	SowingDate  string  `json:"sowing_date"`
	HarvestDate *string `json:"harvest_date"`
	Area        int     `json:"area"`
	Handlings   string  `json:"handlings"`
	Gauges      string  `json:"gauges"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toFoodTypeResponse(ft FoodType) foodTypeResponse {
	return foodTypeResponse{
		ID:          ft.ID,
		FoodType:    ft.FoodType,
		SowingDate:  httpapi.FormatDate(ft.SowingDate),
		HarvestDate: httpapi.FormatDatePtr(ft.HarvestDate),
		Area:        ft.Area,
		Handlings:   ft.Handlings,
		Gauges:      ft.Gauges,
		CreatedAt:   ft.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   ft.UpdatedAt.Format(time.RFC3339),
	}
}

type foodTypeRequest struct {
	FoodType    *string `json:"food_type"`
	SowingDate  *string `json:"sowing_date"`
	HarvestDate *string `json:"harvest_date"`
	Area        *int    `json:"area"`
	Handlings   *string `json:"handlings"`
	Gauges      *string `json:"gauges"`
}

func listFoodTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, FoodTypeListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListFoodTypes(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Tipo de alimento")
			return
		}
		out := make([]foodTypeResponse, 0, len(items))
		for _, ft := range items {
			out = append(out, toFoodTypeResponse(ft))
		}
		respond.List(w, "Tipos de alimento obtenidos", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createFoodTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req foodTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		in := FoodTypeInput{}
		if req.FoodType != nil {
			in.FoodType = *req.FoodType
		}
		if req.Area != nil {
			in.Area = *req.Area
		}
		if req.Handlings != nil {
			in.Handlings = *req.Handlings
		}
		if req.Gauges != nil {
			in.Gauges = *req.Gauges
		}
		if req.SowingDate != nil {
			d, err := httpapi.ParseDate(*req.SowingDate)
			if err != nil {
				respond.Validation(w, map[string]string{"sowing_date": err.Error()})
				return
			}
			in.SowingDate = d
		}
		if req.HarvestDate != nil {
			d, err := httpapi.ParseDate(*req.HarvestDate)
			if err != nil {
				respond.Validation(w, map[string]string{"harvest_date": err.Error()})
				return
			}
			in.HarvestDate = &d
		}

		ft, err := svc.CreateFoodType(r.Context(), in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Tipo de alimento")
			return
		}
		respond.Success(w, http.StatusCreated, "Tipo de alimento creado", toFoodTypeResponse(ft))
	}
}

func getFoodTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "foodTypeID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		ft, err := svc.GetFoodType(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Tipo de alimento")
			return
		}
		respond.Success(w, http.StatusOK, "Tipo de alimento obtenido", toFoodTypeResponse(ft))
	}
}

func updateFoodTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "foodTypeID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}

		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		var req foodTypeRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				respond.BadRequest(w, "JSON inválido")
				return
			}
		}

		in := FoodTypeUpdate{
			FoodType:  req.FoodType,
			Area:      req.Area,
			Handlings: req.Handlings,
			Gauges:    req.Gauges,
		}
		if req.SowingDate != nil {
			d, err := httpapi.ParseDate(*req.SowingDate)
			if err != nil {
				respond.Validation(w, map[string]string{"sowing_date": err.Error()})
				return
			}
			in.SowingDate = &d
		}
		if v, exists := raw["harvest_date"]; exists {
			if string(v) == "null" {
				in.ClearHarvest = true
			} else if req.HarvestDate != nil {
				d, err := httpapi.ParseDate(*req.HarvestDate)
				if err != nil {
					respond.Validation(w, map[string]string{"harvest_date": err.Error()})
					return
				}
				in.HarvestDate = &d
			}
		}

		ft, err := svc.UpdateFoodType(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Tipo de alimento")
			return
		}
		respond.Success(w, http.StatusOK, "Tipo de alimento actualizado", toFoodTypeResponse(ft))
	}
}

func deleteFoodTypeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "foodTypeID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteFoodType(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Tipo de alimento")
			return
		}
		respond.Success(w, http.StatusOK, "Tipo de alimento eliminado", nil)
	}
}
