package medical

import (
	"fmt"
	"strings"
)

// AdministrationRoute define las vías de administración de vacunas y medicamentos.
type AdministrationRoute string

const (
	RouteOral          AdministrationRoute = "Oral"
	RouteIntranasal    AdministrationRoute = "Intranasal"
	RouteTopica        AdministrationRoute = "Tópica"
	RouteIntramuscular AdministrationRoute = "Intramuscular"
	RouteIntravenosa   AdministrationRoute = "Intravenosa"
	RouteSubcutanea    AdministrationRoute = "Subcutánea"
)

func AdministrationRoutes() []AdministrationRoute {
	return []AdministrationRoute{
		RouteOral, RouteIntranasal, RouteTopica,
		RouteIntramuscular, RouteIntravenosa, RouteSubcutanea,
	}
}

func ParseAdministrationRoute(s string) (AdministrationRoute, error) {
	for _, r := range AdministrationRoutes() {
		if string(r) == strings.TrimSpace(s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("vía de administración inválida: %q (válidas: %s)", s, joinRoutes())
}

func joinRoutes() string {
	parts := make([]string, 0, 6)
	for _, r := range AdministrationRoutes() {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ", ")
}

// VaccineType define los tipos de vacuna del catálogo.
type VaccineType string

const (
	VaccineAtenuada     VaccineType = "Atenuada"
	VaccineInactivada   VaccineType = "Inactivada"
	VaccineToxoide      VaccineType = "Toxoide"
	VaccineSubunidad    VaccineType = "Subunidad"
	VaccineConjugada    VaccineType = "Conjugada"
	VaccineRecombinante VaccineType = "Recombinante"
	VaccineAdn          VaccineType = "Adn"
	VaccineArn          VaccineType = "Arn"
)

func VaccineTypes() []VaccineType {
	return []VaccineType{
		VaccineAtenuada, VaccineInactivada, VaccineToxoide, VaccineSubunidad,
		VaccineConjugada, VaccineRecombinante, VaccineAdn, VaccineArn,
	}
}

func ParseVaccineType(s string) (VaccineType, error) {
	for _, t := range VaccineTypes() {
		if string(t) == strings.TrimSpace(s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("tipo de vacuna inválido: %q", s)
}

// HealthStatus define el resultado de un control veterinario.
type HealthStatus string

const (
	HealthExcelente HealthStatus = "Excelente"
	HealthBueno     HealthStatus = "Bueno"
	HealthRegular   HealthStatus = "Regular"
	HealthMalo      HealthStatus = "Malo"
)

func ParseHealthStatus(s string) (HealthStatus, error) {
	switch strings.TrimSpace(s) {
	case string(HealthExcelente):
		return HealthExcelente, nil
	case string(HealthBueno):
		return HealthBueno, nil
	case string(HealthRegular):
		return HealthRegular, nil
	case string(HealthMalo):
		return HealthMalo, nil
	}
	return "", fmt.Errorf("estado de salud inválido: %q (válidos: Excelente, Bueno, Regular, Malo)", s)
}
