package users

import (
	"fmt"
	"strings"
	"time"

	"livestock-api/internal/query"
)

// Role define los roles del sistema.
// Los valores en español son parte del contrato con los clientes.
type Role string

const (
	RoleAprendiz      Role = "Aprendiz"
	RoleInstructor    Role = "Instructor"
	RoleAdministrador Role = "Administrador"
)

func Roles() []Role {
	return []Role{RoleAprendiz, RoleInstructor, RoleAdministrador}
}

// ParseRole valida un rol recibido del cliente.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles() {
		if string(r) == strings.TrimSpace(s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("rol inválido: %q (válidos: Aprendiz, Instructor, Administrador)", s)
}

// User representa un usuario del sistema. Password siempre guarda el hash bcrypt.
type User struct {
	ID             int
	Identification int64
	Fullname       string
	Password       string
	Email          string
	Phone          string
	Address        string
	Role           Role
	Status         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListAllowed son los campos habilitados para filtrar/buscar/ordenar usuarios.
var ListAllowed = query.Allowed{
	Filterable: []string{"role", "status", "identification"},
	Searchable: []string{"fullname", "email", "identification"},
	Sortable:   []string{"id", "fullname", "email", "created_at"},
}

// MaskEmail oculta el cuerpo del correo: jdoe@x.com -> j***@x.com
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return email
	}
	return email[:1] + "***" + email[at:]
}

// MaskPhone deja visibles solo los últimos 4 dígitos.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
