package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/usecase"
)

// CompanyHandler administración de la empresa por su COMPANY_ADMIN (o SUPER_ADMIN).
type CompanyHandler struct {
	companies *usecase.CompanyUseCase
	employees *usecase.EmployeeUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(companies *usecase.CompanyUseCase, employees *usecase.EmployeeUseCase) *CompanyHandler {
	return &CompanyHandler{companies: companies, employees: employees}
}

// Get godoc
// @Summary      Obtener empresa
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId} [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.companies.Get(c.Context(), GetPrincipal(c), c.Params("companyId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar perfil y tema de la empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                    true  "ID de la empresa"
// @Param        body       body  dto.UpdateCompanyRequest  true  "campos a modificar"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId} [patch]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.companies.Update(c.Context(), GetPrincipal(c), c.Params("companyId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// InviteLink godoc
// @Summary      Enlace de invitación para empleados
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.InviteLinkResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/invite [get]
func (h *CompanyHandler) InviteLink(c *fiber.Ctx) error {
	out, err := h.companies.InviteLink(c.Context(), GetPrincipal(c), c.Params("companyId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

type employeeListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=PENDING APPROVED pending approved"`
	Limit  int    `query:"limit" validate:"min=0,max=100"`
	Offset int    `query:"offset" validate:"min=0"`
}

// ListEmployees godoc
// @Summary      Empleados de la empresa
// @Description  Sin status devuelve PENDING y APPROVED. Los REJECTED nunca aparecen.
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path   string  true   "ID de la empresa"
// @Param        status     query  string  false  "PENDING | APPROVED"
// @Param        limit      query  int     false  "máx. 100 (default 20)"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {object}  dto.EmployeeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/employees [get]
func (h *CompanyHandler) ListEmployees(c *fiber.Ctx) error {
	var q employeeListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	out, err := h.employees.ListByCompany(c.Context(), GetPrincipal(c), c.Params("companyId"), q.Status, dto.PageRequest{Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		return err
	}
	return c.JSON(out)
}
