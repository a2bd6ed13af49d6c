package medical

import (
	"encoding/json"
	"net/http"

	"livestock-api/internal/httpapi"
	"livestock-api/internal/httpapi/respond"
	"livestock-api/internal/query"
)

// Handlers de los catálogos: vacunas, medicamentos y enfermedades.

type vaccineResponse struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Dosis               string `json:"dosis"`
	Route               string `json:"route_administration"`
	VaccinationInterval string `json:"vaccination_interval"`
	Type                string `json:"vaccine_type"`
	NationalPlan        string `json:"national_plan"`
	TargetDiseaseID     int    `json:"target_disease_id"`
}

func toVaccineResponse(v Vaccine) vaccineResponse {
	return vaccineResponse{
		ID:                  v.ID,
		Name:                v.Name,
		Dosis:               v.Dosis,
		Route:               string(v.Route),
		VaccinationInterval: v.VaccinationInterval,
		Type:                string(v.Type),
		NationalPlan:        v.NationalPlan,
		TargetDiseaseID:     v.TargetDiseaseID,
	}
}

type vaccineRequest struct {
	Name                string `json:"name"`
	Dosis               string `json:"dosis"`
	Route               string `json:"route_administration"`
	VaccinationInterval string `json:"vaccination_interval"`
	Type                string `json:"vaccine_type"`
	NationalPlan        string `json:"national_plan"`
	TargetDiseaseID     int    `json:"target_disease_id"`
}

// toInput valida los enums en el borde y deja el resto al servicio.
func (req vaccineRequest) toInput() (VaccineInput, map[string]string) {
	in := VaccineInput{
		Name:                req.Name,
		Dosis:               req.Dosis,
		VaccinationInterval: req.VaccinationInterval,
		NationalPlan:        req.NationalPlan,
		TargetDiseaseID:     req.TargetDiseaseID,
	}
	if req.Route != "" {
		route, err := ParseAdministrationRoute(req.Route)
		if err != nil {
			return VaccineInput{}, map[string]string{"route_administration": err.Error()}
		}
		in.Route = route
	}
	if req.Type != "" {
		t, err := ParseVaccineType(req.Type)
		if err != nil {
			return VaccineInput{}, map[string]string{"vaccine_type": err.Error()}
		}
		in.Type = t
	}
	return in, nil
}

func listVaccinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, VaccineListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListVaccines(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Vacuna")
			return
		}
		out := make([]vaccineResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccineResponse(v))
		}
		respond.List(w, "Vacunas obtenidas", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		in, fieldErrs := req.toInput()
		if fieldErrs != nil {
			respond.Validation(w, fieldErrs)
			return
		}
		v, err := svc.CreateVaccine(r.Context(), in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Vacuna")
			return
		}
		respond.Success(w, http.StatusCreated, "Vacuna creada", toVaccineResponse(v))
	}
}

func getVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "vaccineID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		v, err := svc.GetVaccine(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Vacuna")
			return
		}
		respond.Success(w, http.StatusOK, "Vacuna obtenida", toVaccineResponse(v))
	}
}

func updateVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "vaccineID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		var req vaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		in, fieldErrs := req.toInput()
		if fieldErrs != nil {
			respond.Validation(w, fieldErrs)
			return
		}
		v, err := svc.UpdateVaccine(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Vacuna")
			return
		}
		respond.Success(w, http.StatusOK, "Vacuna actualizada", toVaccineResponse(v))
	}
}

func deleteVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "vaccineID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteVaccine(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Vacuna")
			return
		}
		respond.Success(w, http.StatusOK, "Vacuna eliminada", nil)
	}
}

type medicationResponse struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Indications       string `json:"indications"`
	Contraindications string `json:"contraindications"`
	Route             string `json:"route_administration"`
	Availability      bool   `json:"availability"`
}

func toMedicationResponse(m Medication) medicationResponse {
	return medicationResponse{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Indications:       m.Indications,
		Contraindications: m.Contraindications,
		Route:             string(m.Route),
		Availability:      m.Availability,
	}
}

type medicationRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Indications       string `json:"indications"`
	Contraindications string `json:"contraindications"`
	Route             string `json:"route_administration"`
	Availability      *bool  `json:"availability"`
}

func (req medicationRequest) toInput() (MedicationInput, map[string]string) {
	in := MedicationInput{
		Name:              req.Name,
		Description:       req.Description,
		Indications:       req.Indications,
		Contraindications: req.Contraindications,
		Availability:      req.Availability,
	}
	if req.Route != "" {
		route, err := ParseAdministrationRoute(req.Route)
		if err != nil {
			return MedicationInput{}, map[string]string{"route_administration": err.Error()}
		}
		in.Route = route
	}
	return in, nil
}

func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, MedicationListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListMedications(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Medicamento")
			return
		}
		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		respond.List(w, "Medicamentos obtenidos", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		in, fieldErrs := req.toInput()
		if fieldErrs != nil {
			respond.Validation(w, fieldErrs)
			return
		}
		m, err := svc.CreateMedication(r.Context(), in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Medicamento")
			return
		}
		respond.Success(w, http.StatusCreated, "Medicamento creado", toMedicationResponse(m))
	}
}

func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "medicationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		m, err := svc.GetMedication(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Medicamento")
			return
		}
		respond.Success(w, http.StatusOK, "Medicamento obtenido", toMedicationResponse(m))
	}
}

func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "medicationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		in, fieldErrs := req.toInput()
		if fieldErrs != nil {
			respond.Validation(w, fieldErrs)
			return
		}
		m, err := svc.UpdateMedication(r.Context(), id, in)
		if err != nil {
			httpapi.WriteError(w, r, err, "Medicamento")
			return
		}
		respond.Success(w, http.StatusOK, "Medicamento actualizado", toMedicationResponse(m))
	}
}

func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "medicationID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteMedication(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Medicamento")
			return
		}
		respond.Success(w, http.StatusOK, "Medicamento eliminado", nil)
	}
}

type diseaseResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Symptoms string `json:"symptoms"`
	Details  string `json:"details"`
}

type diseaseRequest struct {
	Name     string `json:"name"`
	Symptoms string `json:"symptoms"`
	Details  string `json:"details"`
}

func toDiseaseResponse(d Disease) diseaseResponse {
	return diseaseResponse{ID: d.ID, Name: d.Name, Symptoms: d.Symptoms, Details: d.Details}
}

func listDiseasesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := query.Parse(r, DiseaseListAllowed)
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		items, total, err := svc.ListDiseases(r.Context(), p)
		if err != nil {
			httpapi.WriteError(w, r, err, "Enfermedad")
			return
		}
		out := make([]diseaseResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDiseaseResponse(d))
		}
		respond.List(w, "Enfermedades obtenidas", out, query.NewPagination(total, p.Page, p.PerPage))
	}
}

func createDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req diseaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		d, err := svc.CreateDisease(r.Context(), DiseaseInput(req))
		if err != nil {
			httpapi.WriteError(w, r, err, "Enfermedad")
			return
		}
		respond.Success(w, http.StatusCreated, "Enfermedad creada", toDiseaseResponse(d))
	}
}

func getDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "diseaseID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		d, err := svc.GetDisease(r.Context(), id)
		if err != nil {
			httpapi.WriteError(w, r, err, "Enfermedad")
			return
		}
		respond.Success(w, http.StatusOK, "Enfermedad obtenida", toDiseaseResponse(d))
	}
}

func updateDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "diseaseID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		var req diseaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.BadRequest(w, "JSON inválido")
			return
		}
		d, err := svc.UpdateDisease(r.Context(), id, DiseaseInput(req))
		if err != nil {
			httpapi.WriteError(w, r, err, "Enfermedad")
			return
		}
		respond.Success(w, http.StatusOK, "Enfermedad actualizada", toDiseaseResponse(d))
	}
}

func deleteDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpapi.IDParam(r, "diseaseID")
		if err != nil {
			respond.BadRequest(w, err.Error())
			return
		}
		if err := svc.DeleteDisease(r.Context(), id); err != nil {
			httpapi.WriteError(w, r, err, "Enfermedad")
			return
		}
		respond.Success(w, http.StatusOK, "Enfermedad eliminada", nil)
	}
}
