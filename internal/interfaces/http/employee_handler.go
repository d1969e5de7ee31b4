package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/usecase"
)

// EmployeeHandler aprobación de empleados y autoservicio del empleado.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Approve godoc
// @Summary      Aprobar empleado
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del perfil de empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/employees/{id}/approve [patch]
func (h *EmployeeHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar empleado
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del perfil de empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/employees/{id}/reject [patch]
func (h *EmployeeHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetMe godoc
// @Summary      Perfil propio del empleado aprobado
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/employee/me [get]
func (h *EmployeeHandler) GetMe(c *fiber.Ctx) error {
	out, err := h.uc.GetMe(c.Context(), GetPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateMe godoc
// @Summary      Editar perfil propio del empleado aprobado
// @Tags         employee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateEmployeeProfileRequest  true  "campos a modificar"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/employee/me [patch]
func (h *EmployeeHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeProfileRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateMe(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
