package auth

import (
	"context"

	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando un Store atado a esa tx.
// Si fn devuelve error se hace rollback de todas las escrituras.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(s repository.Store) error) error
}
