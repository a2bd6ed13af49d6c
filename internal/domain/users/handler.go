package users

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

const table = "user"

func RegisterRoutes(r chi.Router, svc *Service, hc *httpcache.Manager) {
	r.Route("/users", func(ur chi.Router) {
		ur.With(hc.List(table)).Get("/", listHandler(svc))
		ur.With(hc.Invalidate(table)).Post("/", createHandler(svc))
		ur.Get("/statistics", statisticsHandler(svc))
		ur.Get("/{userID}", getHandler(svc))
		ur.With(hc.Invalidate(table)).Put("/{userID}", updateHandler(svc))
		ur.With(hc.Invalidate(table)).Delete("/{userID}", deleteHandler(svc))
	})
}

type userResponse struct {
	ID             int    `json:"id"`
	Identification int64  `json:"identification"`
	Fullname       string `json:"fullname"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address,omitempty"`
	Role           string `json:"role"`
	Status         bool   `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// toResponse serializa un usuario; por defecto enmascara correo y teléfono.
func toResponse(u User, includeSensitive bool) userResponse {
	email, phone := MaskEmail(u.Email), MaskPhone(u.Phone)
	if includeSensitive {
		email, phone = u.Email, u.Phone
	}
	return userResponse{
		ID:             u.ID,
		Identification: u.Identification,
		Fullname:       u.Fullname,
		Email:          email,
		Phone:          phone,
		Address:        u.Address,
		Role:           string(u.Role),
		Status:         u.Status,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      u.UpdatedAt.Format(time.RFC3339),
	}
}

// ToAuthResponse expone los datos completos del usuario autenticado (login y /me).
func ToAuthResponse(u User) any {
	return toResponse(u, true)
}

type createRequest struct {
	Identification int64  `json:"identification"`
	Fullname       string `json:"fullname"`
	Password       string `json:"password"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Role           string `json:"role"`
	Status         *bool  `json:"status"`
}

// @Summary Listar usuarios
// @Tags users
// @Param page query int false "Página (default 1)"
// @Param per_page query int false "Registros por página (max 100)"
// @Param role query string false "Filtrar por rol"
// @Param status query bool false "Filtrar por estado"
// @Param search query string false "Buscar en nombre, correo e identificación"
// @Success 200 {object} map[string]any
// @Router /users/ [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, ListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}

		items, total, err := svc.List(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Usuario")
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toResponse(u, false))
		}
		respond.List(w, "Usuarios obtenidos", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

// @Summary Crear usuario
// @Tags users
// @Param payload body createRequest true "Datos del usuario"
// @Success 201 {object} map[string]any
// @Router /users/ [post]
func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		role, err := ParseRole(req.Role)
		if err != nil {
			respond.Validation(w, map[string]string{"role": err.Error()})
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			Identification: req.Identification,
			Fullname:       req.Fullname,
			Password:       req.Password,
			Email:          req.Email,
			Phone:          req.Phone,
			Address:        req.Address,
			Role:           role,
			Status:         req.Status,
		})
		if err != nil {
			httpapi.WriteError(w, r, err, "Usuario")
			return
		}
		respond.Success(w, http.StatusCreated, "Usuario creado", toResponse(u, false))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "userID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		u, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Usuario")
			return
		}
		respond.Success(w, http.StatusOK, "Usuario obtenido", toResponse(u, false))
	}
}

type updateRequest struct {
	Fullname *string `json:"fullname"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Role     *string `json:"role"`
	Status   *bool   `json:"status"`
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "userID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}

		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		in := UpdateInput{
			Fullname: req.Fullname,
			Password: req.Password,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
			Status:   req.Status,
		}
		if req.Role != nil {
			role, err := ParseRole(*req.Role)
			if err != nil {
				respond.Validation(w, map[string]string{"role": err.Error()})
				return
			}
			in.Role = &role
		}

		u, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Usuario")
			return
		}
		respond.Success(w, http.StatusOK, "Usuario actualizado", toResponse(u, false))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "userID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Usuario")
			return
		}
		respond.Success(w, http.StatusOK, "Usuario eliminado", nil)
	}
}

func statisticsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Statistics(r.Context())
		if err != nil {
			httpapi.WriteError(w, r, err, "Usuario")
			return
		}
		respond.Success(w, http.StatusOK, "Estadísticas de usuarios", stats)
	}
}
