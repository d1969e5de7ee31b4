package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/usecase"
)

// PersonalHandler autoservicio del perfil personal.
type PersonalHandler struct {
	uc *usecase.PersonalUseCase
}

func NewPersonalHandler(uc *usecase.PersonalUseCase) *PersonalHandler {
	return &PersonalHandler{uc: uc}
}

// GetMe godoc
// @Summary      Perfil personal propio
// @Tags         personal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PersonalProfileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/personal/me [get]
func (h *PersonalHandler) GetMe(c *fiber.Ctx) error {
	out, err := h.uc.GetMe(c.Context(), GetPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateMe godoc
// @Summary      Editar perfil personal propio
// @Tags         personal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdatePersonalProfileRequest  true  "campos a modificar"
// @Success      200  {object}  dto.PersonalProfileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/personal/me [patch]
func (h *PersonalHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdatePersonalProfileRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateMe(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
