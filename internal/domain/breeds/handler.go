package breeds

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"livestock-api/internal/httpapi"
	"livestock-api/internal/httpapi/httpcache"
	"livestock-api/internal/httpapi/respond"
	"livestock-api/internal/query"
)

const (
	breedsTable  = "breeds"
	speciesTable = "species"
)

func RegisterRoutes(r chi.Router, svc *Service, hc *httpcache.Manager) {
	r.Route("/breeds", func(br chi.Router) {
		br.With(hc.List(breedsTable)).Get("/", listBreedsHandler(svc))
		br.With(hc.Invalidate(breedsTable)).Post("/", createBreedHandler(svc))
		br.Get("/{breedID}", getBreedHandler(svc))
		br.With(hc.Invalidate(breedsTable)).Put("/{breedID}", updateBreedHandler(svc))
		br.With(hc.Invalidate(breedsTable)).Delete("/{breedID}", deleteBreedHandler(svc))
	})

	r.Route("/species", func(sr chi.Router) {
		sr.With(hc.List(speciesTable)).Get("/", listSpeciesHandler(svc))
		sr.With(hc.Invalidate(speciesTable)).Post("/", createSpeciesHandler(svc))
		sr.Get("/{speciesID}", getSpeciesHandler(svc))
		sr.With(hc.Invalidate(speciesTable)).Put("/{speciesID}", updateSpeciesHandler(svc))
		sr.With(hc.Invalidate(speciesTable)).Delete("/{speciesID}", deleteSpeciesHandler(svc))
	})
}

type breedResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	SpeciesID int    `json:"species_id"`
}

func toBreedResponse(b Breed) breedResponse {
	return breedResponse{ID: b.ID, Name: b.Name, SpeciesID: b.SpeciesID}
}

type speciesResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type breedRequest struct {
	Name      *string `json:"name"`
	SpeciesID *int    `json:"species_id"`
}

func listBreedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, BreedListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListBreeds(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Raza")
			return
		}
		out := make([]breedResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBreedResponse(b))
		}
		respond.List(w, "Razas obtenidas", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req breedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		name := ""
		if req.Name != nil {
			name = *req.Name
		}
		speciesID := 0
		if req.SpeciesID != nil {
			speciesID = *req.SpeciesID
		}
		b, err := svc.CreateBreed(r.Context(), name, speciesID)
		if err != nil {
			httpapi.WriteError(w, r, err, "Raza")
			return
		}
		respond.Success(w, http.StatusCreated, "Raza creada", toBreedResponse(b))
	}
}

func getBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "breedID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		b, err := svc.GetBreed(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Raza")
			return
		}
		respond.Success(w, http.StatusOK, "Raza obtenida", toBreedResponse(b))
	}
}

func updateBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "breedID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		var req breedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		b, err := svc.UpdateBreed(r.Context(), id, req.Name, req.SpeciesID)
		if err != nil {
			httpapi.WriteError(w, r, err, "Raza")
			return
		}
		respond.Success(w, http.StatusOK, "Raza actualizada", toBreedResponse(b))
	}
}

// deleteBreedHandler responde 409 si la raza tiene animales asociados
// (el repo traduce la violación de FK a storage.ErrRestricted).
func deleteBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "breedID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteBreed(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Raza")
			return
		}
		respond.Success(w, http.StatusOK, "Raza eliminada", nil)
	}
}

func listSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, SpeciesListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListSpecies(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Especie")
			return
		}
		out := make([]speciesResponse, 0, len(items))
		for _, sp := range items {
			out = append(out, speciesResponse{ID: sp.ID, Name: sp.Name})
		}
		respond.List(w, "Especies obtenidas", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

type speciesRequest struct {
	Name string `json:"name"`
}

func createSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req speciesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		sp, err := svc.CreateSpecies(r.Context(), req.Name)
		if err != nil {
			httpapi.WriteError(w, r, err, "Especie")
			return
		}
		respond.Success(w, http.StatusCreated, "Especie creada", speciesResponse{ID: sp.ID, Name: sp.Name})
	}
}

func getSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "speciesID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		sp, err := svc.GetSpecies(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Especie")
			return
		}
		respond.Success(w, http.StatusOK, "Especie obtenida", speciesResponse{ID: sp.ID, Name: sp.Name})
	}
}

func updateSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "speciesID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		var req speciesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		sp, err := svc.UpdateSpecies(r.Context(), id, req.Name)
		if err != nil {
			httpapi.WriteError(w, r, err, "Especie")
			return
		}
		respond.Success(w, http.StatusOK, "Especie actualizada", speciesResponse{ID: sp.ID, Name: sp.Name})
	}
}

func deleteSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "speciesID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteSpecies(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Especie")
			return
		}
		respond.Success(w, http.StatusOK, "Especie eliminada", nil)
	}
}
