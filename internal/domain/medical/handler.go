package medical

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
	treatmentsTable   = "treatments"
	vaccinationsTable = "vaccinations"
	vaccinesTable     = "vaccines"
	medicationsTable  = "medications"
	diseasesTable     = "diseases"
	controlsTable     = "controls"
)

func RegisterRoutes(r chi.Router, svc *Service, hc *httpcache.Manager) {
	r.Route("/medical", func(mr chi.Router) {
		mr.Route("/treatments", func(tr chi.Router) {
			tr.With(hc.List(treatmentsTable)).Get("/", listTreatmentsHandler(svc))
			tr.With(hc.Invalidate(treatmentsTable)).Post("/", createTreatmentHandler(svc))
			tr.Get("/{treatmentID}", getTreatmentHandler(svc))
			tr.With(hc.Invalidate(treatmentsTable)).Put("/{treatmentID}", updateTreatmentHandler(svc))
			tr.With(hc.Invalidate(treatmentsTable)).Delete("/{treatmentID}", deleteTreatmentHandler(svc))
		})

		mr.Route("/vaccinations", func(vr chi.Router) {
			vr.With(hc.List(vaccinationsTable)).Get("/", listVaccinationsHandler(svc))
			vr.With(hc.Invalidate(vaccinationsTable)).Post("/", createVaccinationHandler(svc))
			vr.Get("/{vaccinationID}", getVaccinationHandler(svc))
			vr.With(hc.Invalidate(vaccinationsTable)).Put("/{vaccinationID}", updateVaccinationHandler(svc))
			vr.With(hc.Invalidate(vaccinationsTable)).Delete("/{vaccinationID}", deleteVaccinationHandler(svc))
		})

		mr.Route("/vaccines", func(vr chi.Router) {
			vr.With(hc.List(vaccinesTable)).Get("/", listVaccinesHandler(svc))
			vr.With(hc.Invalidate(vaccinesTable)).Post("/", createVaccineHandler(svc))
			vr.Get("/{vaccineID}", getVaccineHandler(svc))
			vr.With(hc.Invalidate(vaccinesTable)).Put("/{vaccineID}", updateVaccineHandler(svc))
			vr.With(hc.Invalidate(vaccinesTable)).Delete("/{vaccineID}", deleteVaccineHandler(svc))
		})

		mr.Route("/medications", func(mdr chi.Router) {
			mdr.With(hc.List(medicationsTable)).Get("/", listMedicationsHandler(svc))
			mdr.With(hc.Invalidate(medicationsTable)).Post("/", createMedicationHandler(svc))
			mdr.Get("/{medicationID}", getMedicationHandler(svc))
			mdr.With(hc.Invalidate(medicationsTable)).Put("/{medicationID}", updateMedicationHandler(svc))
			mdr.With(hc.Invalidate(medicationsTable)).Delete("/{medicationID}", deleteMedicationHandler(svc))
		})

		mr.Route("/diseases", func(dr chi.Router) {
			dr.With(hc.List(diseasesTable)).Get("/", listDiseasesHandler(svc))
			dr.With(hc.Invalidate(diseasesTable)).Post("/", createDiseaseHandler(svc))
			dr.Get("/{diseaseID}", getDiseaseHandler(svc))
			dr.With(hc.Invalidate(diseasesTable)).Put("/{diseaseID}", updateDiseaseHandler(svc))
			dr.With(hc.Invalidate(diseasesTable)).Delete("/{diseaseID}", deleteDiseaseHandler(svc))
		})

		mr.Route("/controls", func(cr chi.Router) {
			cr.With(hc.List(controlsTable)).Get("/", listControlsHandler(svc))
			cr.With(hc.Invalidate(controlsTable)).Post("/", createControlHandler(svc))
			cr.Get("/{controlID}", getControlHandler(svc))
			cr.With(hc.Invalidate(controlsTable)).Put("/{controlID}", updateControlHandler(svc))
			cr.With(hc.Invalidate(controlsTable)).Delete("/{controlID}", deleteControlHandler(svc))
		})
	})
}

// ---- Tratamientos ----

type treatmentResponse struct {
	ID           int    `json:"id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description"`
	Frequency    string `json:"frequency"`
	Observations string `json:"observations"`
	Dosis        string `json:"dosis"`
	AnimalID     int    `json:"animal_id"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toTreatmentResponse(t Treatment) treatmentResponse {
	return treatmentResponse{
		ID:           t.ID,
		StartDate:    httpapi.FormatDate(t.StartDate),
		EndDate:      httpapi.FormatDate(t.EndDate),
		Description:  t.Description,
		Frequency:    t.Frequency,
		Observations: t.Observations,
		Dosis:        t.Dosis,
		AnimalID:     t.AnimalID,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}

type treatmentRequest struct {
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Description  *string `json:"description"`
	Frequency    *string `json:"frequency"`
	Observations *string `json:"observations"`
	Dosis        *string `json:"dosis"`
	AnimalID     *int    `json:"animal_id"`
}

func listTreatmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, TreatmentListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListTreatments(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Tratamiento")
			return
		}
		out := make([]treatmentResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTreatmentResponse(t))
		}
		respond.List(w, "Tratamientos obtenidos", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

// @Summary Crear tratamiento
// @Tags medical
// @Param payload body treatmentRequest true "Fechas en formato YYYY-MM-DD; end_date no puede ser anterior a start_date"
// @Success 201 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /medical/treatments/ [post]
func createTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req treatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		in := TreatmentInput{
			Description:  strVal(req.Description),
			Frequency:    strVal(req.Frequency),
			Observations: strVal(req.Observations),
			Dosis:        strVal(req.Dosis),
			AnimalID:     intVal(req.AnimalID),
		}
		if !parseDateField(w, req.StartDate, "start_date", &in.StartDate) {
			return
		}
		if !parseDateField(w, req.EndDate, "end_date", &in.EndDate) {
			return
		}

		t, err := svc.CreateTreatment(r.Context(), in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Tratamiento")
			return
		}
		respond.Success(w, http.StatusCreated, "Tratamiento creado", toTreatmentResponse(t))
	}
}

func getTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "treatmentID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		t, err := svc.GetTreatment(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Tratamiento")
			return
		}
		respond.Success(w, http.StatusOK, "Tratamiento obtenido", toTreatmentResponse(t))
	}
}

func updateTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "treatmentID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		var req treatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		in := TreatmentUpdate{
			Description:  req.Description,
			Frequency:    req.Frequency,
			Observations: req.Observations,
			Dosis:        req.Dosis,
			AnimalID:     req.AnimalID,
		}
		if !parseDatePtrField(w, req.StartDate, "start_date", &in.StartDate) {
			return
		}
		if !parseDatePtrField(w, req.EndDate, "end_date", &in.EndDate) {
			return
		}

		t, err := svc.UpdateTreatment(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Tratamiento")
			return
		}
		respond.Success(w, http.StatusOK, "Tratamiento actualizado", toTreatmentResponse(t))
	}
}

func deleteTreatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "treatmentID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteTreatment(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Tratamiento")
			return
		}
		respond.Success(w, http.StatusOK, "Tratamiento eliminado", nil)
	}
}

// ---- Vacunaciones ----

type vaccinationResponse struct {
	ID              int    `json:"id"`
	AnimalID        int    `json:"animal_id"`
	VaccineID       int    `json:"vaccine_id"`
	ApplicationDate string `json:"application_date"`
	InstructorID    int    `json:"instructor_id"`
	ApprenticeID    *int   `json:"apprentice_id"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	return vaccinationResponse{
		ID:              v.ID,
		AnimalID:        v.AnimalID,
		VaccineID:       v.VaccineID,
		ApplicationDate: httpapi.FormatDate(v.ApplicationDate),
		InstructorID:    v.InstructorID,
		ApprenticeID:    v.ApprenticeID,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       v.UpdatedAt.Format(time.RFC3339),
	}
}

type vaccinationRequest struct {
	AnimalID        *int    `json:"animal_id"`
	VaccineID       *int    `json:"vaccine_id"`
	ApplicationDate *string `json:"application_date"`
	InstructorID    *int    `json:"instructor_id"`
	ApprenticeID    *int    `json:"apprentice_id"`
}

func listVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, VaccinationListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListVaccinations(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Vacunación")
			return
		}
		out := make([]vaccinationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccinationResponse(v))
		}
		respond.List(w, "Vacunaciones obtenidas", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

// @Summary Registrar vacunación
// @Description La combinación (animal, vacuna, fecha) es única; repetirla responde 409.
// @Tags medical
// @Param payload body vaccinationRequest true "Datos de la aplicación"
// @Success 201 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /medical/vaccinations/ [post]
func createVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}

		in := VaccinationInput{
			AnimalID:     intVal(req.AnimalID),
			VaccineID:    intVal(req.VaccineID),
			InstructorID: intVal(req.InstructorID),
			ApprenticeID: req.ApprenticeID,
		}
		if !parseDateField(w, req.ApplicationDate, "application_date", &in.ApplicationDate) {
			return
		}

		v, err := svc.CreateVaccination(r.Context(), in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Vacunación")
			return
		}
		respond.Success(w, http.StatusCreated, "Vacunación registrada", toVaccinationResponse(v))
	}
}

func getVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "vaccinationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		v, err := svc.GetVaccination(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Vacunación")
			return
		}
		respond.Success(w, http.StatusOK, "Vacunación obtenida", toVaccinationResponse(v))
	}
}

func updateVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "vaccinationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		// apprentice_id admite null explícito (quitar al aprendiz), así que
		// primero se detecta la presencia de la clave.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		var req vaccinationRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				respond.BadRequest(w, "JSON inválido")
				return
			}
		}

		in := VaccinationUpdate{
			AnimalID:     req.AnimalID,
			VaccineID:    req.VaccineID,
			InstructorID: req.InstructorID,
		}
		if v, exists := raw["apprentice_id"]; exists {
			if string(v) == "null" {
				in.ClearApprentice = true
			} else {
				in.ApprenticeID = req.ApprenticeID
			}
		}
		if !parseDatePtrField(w, req.ApplicationDate, "application_date", &in.ApplicationDate) {
			return
		}

		v, err := svc.UpdateVaccination(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Vacunación")
			return
		}
		respond.Success(w, http.StatusOK, "Vacunación actualizada", toVaccinationResponse(v))
	}
}

func deleteVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "vaccinationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteVaccination(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Vacunación")
			return
		}
		respond.Success(w, http.StatusOK, "Vacunación eliminada", nil)
	}
}

// ---- helpers compartidos de los handlers ----

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intVal(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// parseDateField parsea una fecha requerida del body; con nil deja el zero value
// para que el servicio la reporte como faltante.
func parseDateField(w http.ResponseWriter, raw *string, field string, target *time.Time) bool {
	if raw == nil {
		return true
	}
	d, err := httpapi.ParseDate(*raw)
	if err != nil {
		respond.Validation(w, map[string]string{field: err.Error()})
		return false
	}
	*target = d
	return true
}

func parseDatePtrField(w http.ResponseWriter, raw *string, field string, target **time.Time) bool {
	if raw == nil {
		return true
	}
	d, err := httpapi.ParseDate(*raw)
	if err != nil {
		respond.Validation(w, map[string]string{field: err.Error()})
		return false
	}
	*target = &d
	return true
}
