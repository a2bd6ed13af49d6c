package middleware

import (
	"context"
	"net/http"
	"strings"

	"livestock-api/internal/auth"
	"livestock-api/internal/httpapi/respond"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const adminRole = "Administrador"

// AuthOptions configura el guard global de autenticación.
type AuthOptions struct {
	Manager *auth.Manager

	// PublicPaths son prefijos que no requieren token (login, docs, health...).
	PublicPaths []string
}

// AuthContext exige token en todo el API salvo la lista pública.
// PUT y DELETE requieren además el rol Administrador.
func AuthContext(opts AuthOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path, opts.PublicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			token := auth.TokenFromRequest(r, auth.AccessCookieName)
			if token == "" {
				respond.Unauthorized(w, "Token de acceso requerido")
				return
			}

			claims, err := opts.Manager.Verify(token, auth.TokenTypeAccess)
			if err != nil {
				switch err {
				case auth.ErrTokenExpired:
					respond.Unauthorized(w, "Token expirado")
				default:
					respond.Unauthorized(w, "Token inválido")
				}
				return
			}

			if (r.Method == http.MethodPut || r.Method == http.MethodDelete) && claims.Role != adminRole {
				respond.Forbidden(w, "Se requiere rol Administrador")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims recupera los claims del contexto del request.
func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func isPublic(path string, publicPaths []string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, strings.TrimRight(p, "/")+"/") {
			return true
		}
	}
	return false
}
