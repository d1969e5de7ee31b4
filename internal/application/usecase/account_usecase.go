package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/mapper"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
)

// AccountUseCase administración de cuentas (SUPER_ADMIN). Las cuentas nunca se borran.
type AccountUseCase struct {
	repo repository.AccountRepository
	log  *logger.Logger
}

// NewAccountUseCase construye el caso de uso con el puerto de persistencia.
func NewAccountUseCase(repo repository.AccountRepository, log *logger.Logger) *AccountUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AccountUseCase{repo: repo, log: log.Component("account")}
}

// SetActive desactiva o reactiva una cuenta. Un SUPER_ADMIN no puede desactivarse a sí mismo.
func (uc *AccountUseCase) SetActive(ctx context.Context, p *auth.Principal, accountID string, in dto.AccountStatusRequest) (*dto.AccountResponse, error) {
	if !p.HasRole(entity.RoleSuperAdmin) {
		return nil, domain.ErrForbidden
	}
	if in.Active == nil {
		return nil, fmt.Errorf("%w: active es obligatorio", domain.ErrValidation)
	}
	if accountID == p.Account.ID && !*in.Active {
		return nil, fmt.Errorf("%w: no puede desactivar su propia cuenta", domain.ErrValidation)
	}
	acc, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("buscar cuenta: %w", err)
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetActive(ctx, accountID, *in.Active); err != nil {
		return nil, fmt.Errorf("cambiar estado de cuenta: %w", err)
	}
	acc.Active = *in.Active
	uc.log.Info().Str("account_id", accountID).Bool("active", acc.Active).Str("by", p.Account.ID).Msg("estado de cuenta actualizado")
	return mapper.Account(acc), nil
}
