package httpapi

import (
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"livestock-api/internal/httpapi/respond"
	"livestock-api/internal/storage"
	"livestock-api/internal/validation"
)

// WriteError mapea los errores de services/repos al sobre HTTP.
// Todos los handlers usan este mapeo para mantener la taxonomía uniforme:
// validación=422, no encontrado=404, integridad=409, resto=500.
func WriteError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		respond.Validation(w, vErr.Fields)
	case errors.Is(err, storage.ErrNotFound):
		respond.NotFound(w, entity)
	case errors.Is(err, storage.ErrForeignKey):
		respond.Error(w, http.StatusNotFound, "La entidad referenciada no existe", "FK_NOT_FOUND", nil)
	case errors.Is(err, storage.ErrDuplicate):
		respond.Conflict(w, "Ya existe un registro con esos datos")
	case errors.Is(err, storage.ErrRestricted):
		respond.Conflict(w, "No se puede eliminar: existen registros asociados")
	default:
		respond.Internal(w, chimw.GetReqID(r.Context()))
	}
}
