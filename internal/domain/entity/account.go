package entity

import (
	"strings"
	"time"
)

// Role rol de una cuenta; se fija al crearla y nunca cambia.
type Role string

// Roles válidos para Account.
const (
	RolePersonal     Role = "PERSONAL"
	RoleEmployee     Role = "EMPLOYEE"
	RoleCompanyAdmin Role = "COMPANY_ADMIN"
	RoleSuperAdmin   Role = "SUPER_ADMIN"
)

// Valid informa si r es uno de los roles conocidos.
func (r Role) Valid() bool {
	switch r {
	case RolePersonal, RoleEmployee, RoleCompanyAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Account identidad de login. Una por email; nunca se borra físicamente.
type Account struct {
	ID           string
	Email        string // siempre normalizado con NormalizeEmail
	PasswordHash string // bcrypt
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail recorta espacios y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
