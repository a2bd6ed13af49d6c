// Package auth expone los endpoints de sesión: login, refresh, logout y me.
// No hay revocación de tokens del lado servidor: cerrar sesión es borrar
// cookies y esperar la expiración natural.
package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	platformauth "livestock-api/internal/auth"
	"livestock-api/internal/domain/users"
	"livestock-api/internal/httpapi"
	"livestock-api/internal/httpapi/respond"
	"livestock-api/internal/middleware"
	"livestock-api/internal/storage"
)

func RegisterRoutes(r chi.Router, usersSvc *users.Service, mgr *platformauth.Manager) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(usersSvc, mgr))
		ar.Post("/refresh", refreshHandler(mgr))
		ar.Post("/logout", logoutHandler(mgr))
		ar.Get("/me", meHandler(usersSvc))
	})
}

type loginRequest struct {
	Identification int64  `json:"identification"`
	Password       string `json:"password"`
}

// @Summary Iniciar sesión
// @Description Autentica por identificación + contraseña, instala las cookies
// @Description HTTPOnly y devuelve los tokens para clientes que usan headers.
// @Tags auth
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /auth/login [post]
func loginHandler(usersSvc *users.Service, mgr *platformauth.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		if req.Identification == 0 || req.Password == "" {
			respond.BadRequest(w, "Identificación y contraseña son requeridos")
			return
		}

		u, err := usersSvc.Authenticate(r.Context(), req.Identification, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				respond.NotFound(w, "Usuario")
			case errors.Is(err, users.ErrInactive):
				respond.Unauthorized(w, "Usuario inactivo")
			case errors.Is(err, users.ErrBadCredentials):
				respond.Unauthorized(w, "Credenciales incorrectas")
			default:
				httpapi.WriteError(w, r, err, "Usuario")
			}
			return
		}

		claims := platformauth.Claims{
			UserID:         u.ID,
			Identification: u.Identification,
			Fullname:       u.Fullname,
			Role:           string(u.Role),
		}

		access, err := mgr.IssueAccess(claims)
		if err != nil {
			httpapi.WriteError(w, r, err, "Usuario")
			return
		}
		refresh, err := mgr.IssueRefresh(claims)
		if err != nil {
			httpapi.WriteError(w, r, err, "Usuario")
			return
		}

		mgr.SetAuthCookies(w, access, refresh)
		respond.Success(w, http.StatusOK, "Autenticación exitosa", map[string]any{
			"user":          users.ToAuthResponse(u),
			"access_token":  access,
			"refresh_token": refresh,
		})
	}
}

// @Summary Renovar token de acceso
// @Tags auth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /auth/refresh [post]
func refreshHandler(mgr *platformauth.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := platformauth.TokenFromRequest(r, platformauth.RefreshCookieName)
		if token == "" {
			respond.Unauthorized(w, "Refresh token requerido")
			return
		}

		claims, err := mgr.Verify(token, platformauth.TokenTypeRefresh)
		if err != nil {
			respond.Unauthorized(w, "Refresh token inválido o expirado")
			return
		}

		access, err := mgr.IssueAccess(claims)
		if err != nil {
			httpapi.WriteError(w, r, err, "Usuario")
			return
		}

		mgr.SetAccessCookie(w, access)
		respond.Success(w, http.StatusOK, "Token renovado", map[string]any{
			"access_token": access,
		})
	}
}

// @Summary Cerrar sesión
// @Tags auth
// @Success 200 {object} map[string]any
// @Router /auth/logout [post]
func logoutHandler(mgr *platformauth.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		mgr.ClearAuthCookies(w)
		respond.Success(w, http.StatusOK, "Sesión cerrada", nil)
	}
}

// @Summary Usuario autenticado
// @Tags auth
// @Success 200 {object} map[string]any
// @Router /auth/me [get]
func meHandler(usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			respond.Unauthorized(w, "")
			return
		}

		u, err := usersSvc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			httpapi.WriteError(w, r, err, "Usuario")
			return
		}
		respond.Success(w, http.StatusOK, "Usuario autenticado", users.ToAuthResponse(u))
	}
}
