package usecase

import "strings"

// Links construye las URLs públicas a partir de PUBLIC_BASE_URL.
type Links struct {
	BaseURL string
}

// NewLinks normaliza la base (sin barra final).
func NewLinks(baseURL string) Links {
	return Links{BaseURL: strings.TrimRight(baseURL, "/")}
}

// Company página pública de la empresa.
func (l Links) Company(slug string) string { return l.BaseURL + "/c/" + slug }

// Profile página pública de un perfil personal o de empleado.
func (l Links) Profile(slug string) string { return l.BaseURL + "/p/" + slug }

// Invite enlace de registro de empleados de la empresa.
func (l Links) Invite(companySlug string) string { return l.BaseURL + "/join/" + companySlug }

// RegisterEmployeePath ruta del API que consume el enlace de invitación.
func RegisterEmployeePath(companySlug string) string {
	return "/api/auth/register/employee/" + companySlug
}
