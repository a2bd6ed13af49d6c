package medical

import (
	"encoding/json"
	"net/http"
	"time"

	"livestock-api/internal/httpapi"
	"livestock-api/internal/httpapi/respond"
	"livestock-api/internal/query"
)

type controlResponse struct {
	ID           int    `json:"id"`
	CheckupDate  string `json:"checkup_date"`
	HealthStatus string `json:"healt_status"`
	Description  string `json:"description"`
	AnimalID     int    `json:"animal_id"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toControlResponse(c Control) controlResponse {
	return controlResponse{
		ID:           c.ID,
		CheckupDate:  httpapi.FormatDate(c.CheckupDate),
		HealthStatus: string(c.HealthStatus),
		Description:  c.Description,
		AnimalID:     c.AnimalID,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}

// healt_status conserva la ortografía histórica del esquema.
type controlRequest struct {
	CheckupDate  *string `json:"checkup_date"`
	HealthStatus *string `json:"healt_status"`
	Description  *string `json:"description"`
	AnimalID     *int    `json:"animal_id"`
}

func listControlsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, ControlListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if v := p.Filter("healt_status"); v != "" {
			if _, err := ParseHealthStatus(v); err != nil {
				respond.Validation(w, map[string]string{"healt_status": err.Error()})
				return
			}
		}
		items, total, err := svc.ListControls(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Control")
			return
		}
		out := make([]controlResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toControlResponse(c))
		}
		respond.List(w, "Controles obtenidos", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createControlHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req controlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		in := ControlInput{
			Description: strVal(req.Description),
			AnimalID:    intVal(req.AnimalID),
		}
		if req.HealthStatus != nil {
			hs, err := ParseHealthStatus(*req.HealthStatus)
			if err != nil {
				respond.Validation(w, map[string]string{"healt_status": err.Error()})
				return
			}
			in.HealthStatus = hs
		}
		if !parseDateField(w, req.CheckupDate, "checkup_date", &in.CheckupDate) {
			return
		}

		c, err := svc.CreateControl(r.Context(), in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Control")
			return
		}
		respond.Success(w, http.StatusCreated, "Control creado", toControlResponse(c))
	}
}

func getControlHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "controlID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		c, err := svc.GetControl(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Control")
			return
		}
		respond.Success(w, http.StatusOK, "Control obtenido", toControlResponse(c))
	}
}

func updateControlHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "controlID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		var req controlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		in := ControlUpdate{
			Description: req.Description,
			AnimalID:    req.AnimalID,
		}
		if req.HealthStatus != nil {
			hs, err := ParseHealthStatus(*req.HealthStatus)
			if err != nil {
				respond.Validation(w, map[string]string{"healt_status": err.Error()})
				return
			}
			in.HealthStatus = &hs
		}
		if !parseDatePtrField(w, req.CheckupDate, "checkup_date", &in.CheckupDate) {
			return
		}

		c, err := svc.UpdateControl(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Control")
			return
		}
		respond.Success(w, http.StatusOK, "Control actualizado", toControlResponse(c))
	}
}

func deleteControlHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "controlID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteControl(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Control")
			return
		}
		respond.Success(w, http.StatusOK, "Control eliminado", nil)
	}
}
