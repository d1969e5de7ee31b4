package repository

import (
	"context"

	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	// Create devuelve domain.ErrSlugTaken si el slug colisiona.
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, company *entity.Company) error
	SetStatus(ctx context.Context, id string, status entity.CompanyStatus) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Company, error)
}

// CompanyAdminRepository vínculos cuenta-empresa; fuente de verdad del alcance COMPANY_ADMIN.
type CompanyAdminRepository interface {
	Create(ctx context.Context, link *entity.CompanyAdminLink) error
	Exists(ctx context.Context, accountID, companyID string) (bool, error)
	ListCompanyIDs(ctx context.Context, accountID string) ([]string, error)
}
