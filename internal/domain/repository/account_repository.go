package repository

import (
	"context"

	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
// Los Get* devuelven (nil, nil) si no existe.
type AccountRepository interface {
	// Create devuelve domain.ErrEmailTaken si el email ya existe (constraint único).
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetActive(ctx context.Context, id string, active bool) error
}
