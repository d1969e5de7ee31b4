package repository

import (
	"context"

	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
)

// PersonalProfileRepository persistencia de perfiles personales.
type PersonalProfileRepository interface {
	Create(ctx context.Context, profile *entity.PersonalProfile) error
	GetByID(ctx context.Context, id string) (*entity.PersonalProfile, error)
	GetByAccountID(ctx context.Context, accountID string) (*entity.PersonalProfile, error)
	Update(ctx context.Context, profile *entity.PersonalProfile) error
}

// EmployeeProfileRepository persistencia de perfiles de empleado.
// GetByID y GetByAccountID incluyen REJECTED; los listados nunca los devuelven.
type EmployeeProfileRepository interface {
	Create(ctx context.Context, profile *entity.EmployeeProfile) error
	GetByID(ctx context.Context, id string) (*entity.EmployeeProfile, error)
	GetByAccountID(ctx context.Context, accountID string) (*entity.EmployeeProfile, error)
	// TransitionStatus aplica el cambio solo si el estado actual es from.
	// Devuelve domain.ErrInvalidStateTransition si ninguna fila cambió.
	TransitionStatus(ctx context.Context, profile *entity.EmployeeProfile, from entity.EmployeeStatus) error
	Update(ctx context.Context, profile *entity.EmployeeProfile) error
	ListByCompany(ctx context.Context, companyID string, status entity.EmployeeStatus, limit, offset int) ([]*entity.EmployeeProfile, error)
}

// ProfileSlugRepository espacio único de slugs compartido por perfiles personales y de empleado.
type ProfileSlugRepository interface {
	// Reserve devuelve domain.ErrSlugTaken si el slug ya existe.
	Reserve(ctx context.Context, s *entity.ProfileSlug) error
	Exists(ctx context.Context, slug string) (bool, error)
	Get(ctx context.Context, slug string) (*entity.ProfileSlug, error)
}
