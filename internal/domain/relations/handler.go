package relations

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
	animalDiseasesTable       = "animal_diseases"
	animalFieldsTable         = "animal_fields"
	treatmentMedicationsTable = "treatment_medications"
	treatmentVaccinesTable    = "treatment_vaccines"
)

func RegisterRoutes(r chi.Router, svc *Service, hc *httpcache.Manager) {
	r.Route("/relations", func(rr chi.Router) {
		rr.Route("/animal-diseases", func(ar chi.Router) {
			ar.With(hc.List(animalDiseasesTable)).Get("/", listAnimalDiseasesHandler(svc))
			ar.With(hc.Invalidate(animalDiseasesTable)).Post("/", createAnimalDiseaseHandler(svc))
			ar.Get("/{relationID}", getAnimalDiseaseHandler(svc))
			ar.With(hc.Invalidate(animalDiseasesTable)).Put("/{relationID}", updateAnimalDiseaseHandler(svc))
			ar.With(hc.Invalidate(animalDiseasesTable)).Delete("/{relationID}", deleteAnimalDiseaseHandler(svc))
		})

		rr.Route("/animal-fields", func(ar chi.Router) {
			ar.With(hc.List(animalFieldsTable)).Get("/", listAnimalFieldsHandler(svc))
			ar.With(hc.Invalidate(animalFieldsTable)).Post("/", createAnimalFieldHandler(svc))
			ar.Get("/{relationID}", getAnimalFieldHandler(svc))
			ar.With(hc.Invalidate(animalFieldsTable)).Put("/{relationID}", updateAnimalFieldHandler(svc))
			ar.With(hc.Invalidate(animalFieldsTable)).Delete("/{relationID}", deleteAnimalFieldHandler(svc))
		})

		rr.Route("/treatment-medications", func(tr chi.Router) {
			tr.With(hc.List(treatmentMedicationsTable)).Get("/", listTreatmentMedicationsHandler(svc))
			tr.With(hc.Invalidate(treatmentMedicationsTable)).Post("/", createTreatmentMedicationHandler(svc))
			tr.Get("/{relationID}", getTreatmentMedicationHandler(svc))
			tr.With(hc.Invalidate(treatmentMedicationsTable)).Delete("/{relationID}", deleteTreatmentMedicationHandler(svc))
		})

		rr.Route("/treatment-vaccines", func(tr chi.Router) {
			tr.With(hc.List(treatmentVaccinesTable)).Get("/", listTreatmentVaccinesHandler(svc))
			tr.With(hc.Invalidate(treatmentVaccinesTable)).Post("/", createTreatmentVaccineHandler(svc))
			tr.Get("/{relationID}", getTreatmentVaccineHandler(svc))
			tr.With(hc.Invalidate(treatmentVaccinesTable)).Delete("/{relationID}", deleteTreatmentVaccineHandler(svc))
		})
	})
}

// ---- Diagnósticos ----

type animalDiseaseResponse struct {
	ID            int    `json:"id"`
	AnimalID      int    `json:"animal_id"`
	DiseaseID     int    `json:"disease_id"`
	InstructorID  int    `json:"instructor_id"`
	DiagnosisDate string `json:"diagnosis_date"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toAnimalDiseaseResponse(ad AnimalDisease) animalDiseaseResponse {
	return animalDiseaseResponse{
		ID:            ad.ID,
		AnimalID:      ad.AnimalID,
		DiseaseID:     ad.DiseaseID,
		InstructorID:  ad.InstructorID,
		DiagnosisDate: httpapi.FormatDate(ad.DiagnosisDate),
		Status:        ad.Status,
		Notes:         ad.Notes,
		CreatedAt:     ad.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     ad.UpdatedAt.Format(time.RFC3339),
	}
}

type animalDiseaseRequest struct {
	AnimalID      int     `json:"animal_id"`
	DiseaseID     int     `json:"disease_id"`
	InstructorID  int     `json:"instructor_id"`
	DiagnosisDate *string `json:"diagnosis_date"`
	Status        *string `json:"status"`
	Notes         *string `json:"notes"`
}

func listAnimalDiseasesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, AnimalDiseaseListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListAnimalDiseases(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Diagnóstico")
			return
		}
		out := make([]animalDiseaseResponse, 0, len(items))
		for _, ad := range items {
			out = append(out, toAnimalDiseaseResponse(ad))
		}
		respond.List(w, "Diagnósticos obtenidos", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

// @Summary Registrar diagnóstico
// @Description La combinación (animal, enfermedad, fecha) es única; repetirla responde 409.
// @Tags relations
// @Param payload body animalDiseaseRequest true "Datos del diagnóstico"
// @Success 201 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /relations/animal-diseases/ [post]
func createAnimalDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req animalDiseaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		in := AnimalDiseaseInput{
			AnimalID:     req.AnimalID,
			DiseaseID:    req.DiseaseID,
			InstructorID: req.InstructorID,
		}
		if req.Status != nil {
			in.Status = *req.Status
		}
		if req.Notes != nil {
			in.Notes = *req.Notes
		}
		if req.DiagnosisDate != nil {
			d, err := httpapi.ParseDate(*req.DiagnosisDate)
			if err != nil {
				respond.Validation(w, map[string]string{"diagnosis_date": err.Error()})
				return
			}
			in.DiagnosisDate = d
		}

		ad, err := svc.CreateAnimalDisease(r.Context(), in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Diagnóstico")
			return
		}
		respond.Success(w, http.StatusCreated, "Diagnóstico registrado", toAnimalDiseaseResponse(ad))
	}
}

func getAnimalDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "relationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		ad, err := svc.GetAnimalDisease(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Diagnóstico")
			return
		}
		respond.Success(w, http.StatusOK, "Diagnóstico obtenido", toAnimalDiseaseResponse(ad))
	}
}

func updateAnimalDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "relationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		var req animalDiseaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		in := AnimalDiseaseUpdate{
			Status: req.Status,
			Notes:  req.Notes,
		}
		if req.DiagnosisDate != nil {
			d, err := httpapi.ParseDate(*req.DiagnosisDate)
			if err != nil {
				respond.Validation(w, map[string]string{"diagnosis_date": err.Error()})
				return
			}
			in.DiagnosisDate = &d
		}

		ad, err := svc.UpdateAnimalDisease(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Diagnóstico")
			return
		}
		respond.Success(w, http.StatusOK, "Diagnóstico actualizado", toAnimalDiseaseResponse(ad))
	}
}

func deleteAnimalDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "relationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteAnimalDisease(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Diagnóstico")
			return
		}
		respond.Success(w, http.StatusOK, "Diagnóstico eliminado", nil)
	}
}

// ---- Asignaciones a praderas ----

type animalFieldResponse struct {
	ID             int     `json:"id"`
	AnimalID       int     `json:"animal_id"`
	FieldID        int     `json:"field_id"`
	AssignmentDate string  `json:"assignment_date"`
	RemovalDate    *string `json:"removal_date"`
	Notes          string  `json:"notes"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func toAnimalFieldResponse(af AnimalField) animalFieldResponse {
	return animalFieldResponse{
		ID:             af.ID,
		AnimalID:       af.AnimalID,
		FieldID:        af.FieldID,
		AssignmentDate: httpapi.FormatDate(af.AssignmentDate),
		RemovalDate:    httpapi.FormatDatePtr(af.RemovalDate),
		Notes:          af.Notes,
		CreatedAt:      af.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      af.UpdatedAt.Format(time.RFC3339),
	}
}

type animalFieldRequest struct {
	AnimalID       int     `json:"animal_id"`
	FieldID        int     `json:"field_id"`
	AssignmentDate *string `json:"assignment_date"`
	RemovalDate    *string `json:"removal_date"`
	Notes          *string `json:"notes"`
}

func listAnimalFieldsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, AnimalFieldListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListAnimalFields(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Asignación")
			return
		}
		out := make([]animalFieldResponse, 0, len(items))
		for _, af := range items {
			out = append(out, toAnimalFieldResponse(af))
		}
		respond.List(w, "Asignaciones obtenidas", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createAnimalFieldHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req animalFieldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		in := AnimalFieldInput{
			AnimalID: req.AnimalID,
			FieldID:  req.FieldID,
		}
		if req.Notes != nil {
			in.Notes = *req.Notes
		}
		if req.AssignmentDate != nil {
			d, err := httpapi.ParseDate(*req.AssignmentDate)
			if err != nil {
				respond.Validation(w, map[string]string{"assignment_date": err.Error()})
				return
			}
			in.AssignmentDate = d
		}
		if req.RemovalDate != nil {
			d, err := httpapi.ParseDate(*req.RemovalDate)
			if err != nil {
				respond.Validation(w, map[string]string{"removal_date": err.Error()})
				return
			}
			in.RemovalDate = &d
		}

		af, err := svc.CreateAnimalField(r.Context(), in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Asignación")
			return
		}
		respond.Success(w, http.StatusCreated, "Asignación registrada", toAnimalFieldResponse(af))
	}
}

func getAnimalFieldHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "relationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		af, err := svc.GetAnimalField(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Asignación")
			return
		}
		respond.Success(w, http.StatusOK, "Asignación obtenida", toAnimalFieldResponse(af))
	}
}

func updateAnimalFieldHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "relationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}

		// removal_date admite null explícito (reabrir la asignación).
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		var req animalFieldRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				respond.BadRequest(w, "JSON inválido")
				return
			}
		}

		in := AnimalFieldUpdate{Notes: req.Notes}
		if v, exists := raw["removal_date"]; exists {
			if string(v) == "null" {
				in.ClearRemoval = true
			} else if req.RemovalDate != nil {
				d, err := httpapi.ParseDate(*req.RemovalDate)
				if err != nil {
					respond.Validation(w, map[string]string{"removal_date": err.Error()})
					return
				}
				in.RemovalDate = &d
			}
		}

		af, err := svc.UpdateAnimalField(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Asignación")
			return
		}
		respond.Success(w, http.StatusOK, "Asignación actualizada", toAnimalFieldResponse(af))
	}
}

func deleteAnimalFieldHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "relationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteAnimalField(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Asignación")
			return
		}
		respond.Success(w, http.StatusOK, "Asignación eliminada", nil)
	}
}

// ---- Tratamiento ↔ medicamento ----

type treatmentMedicationResponse struct {
	ID           int    `json:"id"`
	TreatmentID  int    `json:"treatment_id"`
	MedicationID int    `json:"medication_id"`
	CreatedAt    string `json:"created_at"`
}

type treatmentMedicationRequest struct {
	TreatmentID  int `json:"treatment_id"`
	MedicationID int `json:"medication_id"`
}

func listTreatmentMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, TreatmentMedicationListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListTreatmentMedications(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Relación tratamiento-medicamento")
			return
		}
		out := make([]treatmentMedicationResponse, 0, len(items))
		for _, tm := range items {
			out = append(out, treatmentMedicationResponse{
				ID:           tm.ID,
				TreatmentID:  tm.TreatmentID,
				MedicationID: tm.MedicationID,
				CreatedAt:    tm.CreatedAt.Format(time.RFC3339),
			})
		}
		respond.List(w, "Relaciones obtenidas", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createTreatmentMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req treatmentMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		tm, err := svc.CreateTreatmentMedication(r.Context(), req.TreatmentID, req.MedicationID)
		if err != nil {
			httpapi.WriteError(w, r, err, "Relación tratamiento-medicamento")
			return
		}
		respond.Success(w, http.StatusCreated, "Relación creada", treatmentMedicationResponse{
			ID:           tm.ID,
			TreatmentID:  tm.TreatmentID,
			MedicationID: tm.MedicationID,
			CreatedAt:    tm.CreatedAt.Format(time.RFC3339),
		})
	}
}

func getTreatmentMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "relationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		tm, err := svc.GetTreatmentMedication(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Relación tratamiento-medicamento")
			return
		}
		respond.Success(w, http.StatusOK, "Relación obtenida", treatmentMedicationResponse{
			ID:           tm.ID,
			TreatmentID:  tm.TreatmentID,
			MedicationID: tm.MedicationID,
			CreatedAt:    tm.CreatedAt.Format(time.RFC3339),
		})
	}
}

func deleteTreatmentMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "relationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteTreatmentMedication(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Relación tratamiento-medicamento")
			return
		}
		respond.Success(w, http.StatusOK, "Relación eliminada", nil)
	}
}

// ---- Tratamiento ↔ vacuna ----

type treatmentVaccineResponse struct {
	ID          int    `json:"id"`
	TreatmentID int    `json:"treatment_id"`
	VaccineID   int    `json:"vaccine_id"`
	CreatedAt   string `json:"created_at"`
}

type treatmentVaccineRequest struct {
	TreatmentID int `json:"treatment_id"`
	VaccineID   int `json:"vaccine_id"`
}

func listTreatmentVaccinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, TreatmentVaccineListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListTreatmentVaccines(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Relación tratamiento-vacuna")
			return
		}
		out := make([]treatmentVaccineResponse, 0, len(items))
		for _, tv := range items {
			out = append(out, treatmentVaccineResponse{
				ID:          tv.ID,
				TreatmentID: tv.TreatmentID,
				VaccineID:   tv.VaccineID,
				CreatedAt:   tv.CreatedAt.Format(time.RFC3339),
			})
		}
		respond.List(w, "Relaciones obtenidas", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createTreatmentVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req treatmentVaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		tv, err := svc.CreateTreatmentVaccine(r.Context(), req.TreatmentID, req.VaccineID)
		if err != nil {
			httpapi.WriteError(w, r, err, "Relación tratamiento-vacuna")
			return
		}
		respond.Success(w, http.StatusCreated, "Relación creada", treatmentVaccineResponse{
			ID:          tv.ID,
			TreatmentID: tv.TreatmentID,
			VaccineID:   tv.VaccineID,
			CreatedAt:   tv.CreatedAt.Format(time.RFC3339),
		})
	}
}

func getTreatmentVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "relationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		tv, err := svc.GetTreatmentVaccine(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Relación tratamiento-vacuna")
			return
		}
		respond.Success(w, http.StatusOK, "Relación obtenida", treatmentVaccineResponse{
			ID:          tv.ID,
			TreatmentID: tv.TreatmentID,
			VaccineID:   tv.VaccineID,
			CreatedAt:   tv.CreatedAt.Format(time.RFC3339),
		})
	}
}

func deleteTreatmentVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "relationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteTreatmentVaccine(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Relación tratamiento-vacuna")
			return
		}
		respond.Success(w, http.StatusOK, "Relación eliminada", nil)
	}
}
