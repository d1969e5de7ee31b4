package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ophuaconnect-api/internal/application/usecase"
)

// PublicHandler directorio público sin autenticación.
type PublicHandler struct {
	uc *usecase.PublicUseCase
}

// NewPublicHandler construye el handler.
func NewPublicHandler(uc *usecase.PublicUseCase) *PublicHandler {
	return &PublicHandler{uc: uc}
}

// Company godoc
// @Summary      Página pública de una empresa
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "slug de la empresa"
// @Success      200  {object}  dto.PublicCompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/companies/{slug} [get]
func (h *PublicHandler) Company(c *fiber.Ctx) error {
	out, err := h.uc.Company(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CompanyCard godoc
// @Summary      Tarjeta de contacto PDF de una empresa
// @Tags         public
// @Produce      application/pdf
// @Param        slug  path  string  true  "slug de la empresa"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/companies/{slug}/card.pdf [get]
func (h *PublicHandler) CompanyCard(c *fiber.Ctx) error {
	pdf, err := h.uc.CompanyCard(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return sendPDF(c, c.Params("slug"), pdf)
}

// Profile godoc
// @Summary      Perfil público (personal o empleado aprobado)
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "slug del perfil"
// @Success      200  {object}  dto.PublicProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/profiles/{slug} [get]
func (h *PublicHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ProfileCard godoc
// @Summary      Tarjeta de contacto PDF de un perfil
// @Tags         public
// @Produce      application/pdf
// @Param        slug  path  string  true  "slug del perfil"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/profiles/{slug}/card.pdf [get]
func (h *PublicHandler) ProfileCard(c *fiber.Ctx) error {
	pdf, err := h.uc.ProfileCard(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return sendPDF(c, c.Params("slug"), pdf)
}

func sendPDF(c *fiber.Ctx, name string, pdf []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`.pdf"`)
	return c.Send(pdf)
}
