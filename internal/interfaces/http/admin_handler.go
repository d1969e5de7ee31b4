package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/usecase"
)

// AdminHandler operaciones de plataforma reservadas a SUPER_ADMIN.
type AdminHandler struct {
	accounts  *usecase.AccountUseCase
	companies *usecase.CompanyUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(accounts *usecase.AccountUseCase, companies *usecase.CompanyUseCase) *AdminHandler {
	return &AdminHandler{accounts: accounts, companies: companies}
}

// SetAccountStatus godoc
// @Summary      Activar o desactivar una cuenta
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la cuenta"
// @Param        body  body  dto.AccountStatusRequest  true  "active"
// @Success      200  {object}  dto.AccountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/accounts/{id}/status [patch]
func (h *AdminHandler) SetAccountStatus(c *fiber.Ctx) error {
	var in dto.AccountStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.accounts.SetActive(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SetCompanyStatus godoc
// @Summary      Cambiar el estado de una empresa
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                    true  "ID de la empresa"
// @Param        body       body  dto.CompanyStatusRequest  true  "ACTIVE | INACTIVE | SUSPENDED | PENDING"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/companies/{companyId}/status [patch]
func (h *AdminHandler) SetCompanyStatus(c *fiber.Ctx) error {
	var in dto.CompanyStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.companies.SetStatus(c.Context(), GetPrincipal(c), c.Params("companyId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListCompanies godoc
// @Summary      Listar empresas
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máx. 100 (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.CompanyListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/companies [get]
func (h *AdminHandler) ListCompanies(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return err
	}
	out, err := h.companies.List(c.Context(), GetPrincipal(c), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
