package usecase

import (
	"context"

	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
)

// CardGenerator renderiza la tarjeta de contacto pública en PDF.
// Implementado en infrastructure/pdf.
type CardGenerator interface {
	GenerateCard(ctx context.Context, card dto.ContactCard) ([]byte, error)
}
