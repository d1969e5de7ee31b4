package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/application/usecase"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Authenticator *auth.Authenticator
	Scope         *auth.ScopeChecker
	CompanyUC     *usecase.CompanyUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	PersonalUC    *usecase.PersonalUseCase
	AccountUC     *usecase.AccountUseCase
	PublicUC      *usecase.PublicUseCase
	Throttle      LoginThrottle     // nil = sin límite de intentos de login
	HealthChecks  map[string]Pinger // nombre -> dependencia
	Log           *logger.Logger
}

// Router registra las rutas de la API.
// Los middlewares van por ruta: Group con middleware en Fiber los aplica a todo path con ese prefijo.
func Router(app *fiber.App, deps RouterDeps) {
	authn := AuthMiddleware(deps.Authenticator)
	with := func(h fiber.Handler, mw ...fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{authn}, mw...), h)
	}

	app.Get("/health", NewHealthHandler(deps.HealthChecks, deps.Log).Health)

	api := app.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Throttle, deps.Log)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register/personal", authHandler.RegisterPersonal)
	authGroup.Post("/register/company", authHandler.RegisterCompany)
	authGroup.Post("/register/employee/:companySlug", authHandler.RegisterEmployee)
	authGroup.Get("/profile", with(authHandler.Profile)...)
	authGroup.Post("/change-password", with(authHandler.ChangePassword)...)

	// Empresa (COMPANY_ADMIN de esa empresa o SUPER_ADMIN)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.EmployeeUC)
	companyScope := []fiber.Handler{
		RequireRole(entity.RoleCompanyAdmin, entity.RoleSuperAdmin),
		RequireCompanyScope("companyId", deps.Scope),
	}
	companies := api.Group("/companies")
	companies.Get("/:companyId", with(companyHandler.Get, companyScope...)...)
	companies.Patch("/:companyId", with(companyHandler.Update, companyScope...)...)
	companies.Get("/:companyId/invite", with(companyHandler.InviteLink, companyScope...)...)
	companies.Get("/:companyId/employees", with(companyHandler.ListEmployees, companyScope...)...)

	// Administración. El alcance de la aprobación se comprueba sobre la empresa del empleado.
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	adminHandler := NewAdminHandler(deps.AccountUC, deps.CompanyUC)
	reviewers := RequireRole(entity.RoleCompanyAdmin, entity.RoleSuperAdmin)
	superAdmin := RequireRole(entity.RoleSuperAdmin)
	admin := api.Group("/admin")
	admin.Patch("/employees/:id/approve", with(employeeHandler.Approve, reviewers)...)
	admin.Patch("/employees/:id/reject", with(employeeHandler.Reject, reviewers)...)
	admin.Patch("/accounts/:id/status", with(adminHandler.SetAccountStatus, superAdmin)...)
	admin.Get("/companies", with(adminHandler.ListCompanies, superAdmin)...)
	admin.Patch("/companies/:companyId/status", with(adminHandler.SetCompanyStatus, superAdmin)...)

	// Autoservicio
	personalHandler := NewPersonalHandler(deps.PersonalUC)
	personalOnly := RequireRole(entity.RolePersonal)
	api.Get("/personal/me", with(personalHandler.GetMe, personalOnly)...)
	api.Patch("/personal/me", with(personalHandler.UpdateMe, personalOnly)...)

	approvedEmployee := []fiber.Handler{RequireRole(entity.RoleEmployee), RequireApprovedEmployee()}
	api.Get("/employee/me", with(employeeHandler.GetMe, approvedEmployee...)...)
	api.Patch("/employee/me", with(employeeHandler.UpdateMe, approvedEmployee...)...)

	// Directorio público
	publicHandler := NewPublicHandler(deps.PublicUC)
	public := api.Group("/public")
	public.Get("/companies/:slug", publicHandler.Company)
	public.Get("/companies/:slug/card.pdf", publicHandler.CompanyCard)
	public.Get("/profiles/:slug", publicHandler.Profile)
	public.Get("/profiles/:slug/card.pdf", publicHandler.ProfileCard)
}
