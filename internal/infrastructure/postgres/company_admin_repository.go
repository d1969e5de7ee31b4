package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
)

var _ repository.CompanyAdminRepository = (*CompanyAdminRepo)(nil)

// CompanyAdminRepo vínculos cuenta-empresa sobre PostgreSQL.
type CompanyAdminRepo struct {
	q Querier
}

// NewCompanyAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyAdminRepository(q Querier) *CompanyAdminRepo {
	return &CompanyAdminRepo{q: q}
}

// Create registra que la cuenta administra la empresa.
func (r *CompanyAdminRepo) Create(ctx context.Context, l *entity.CompanyAdminLink) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO company_admins (account_id, company_id, created_at) VALUES ($1, $2, $3)`,
		l.AccountID, l.CompanyID, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company admin: %w", err)
	}
	return nil
}

// Exists consulta que respalda cada verificación de alcance.
func (r *CompanyAdminRepo) Exists(ctx context.Context, accountID, companyID string) (bool, error) {
	if !validUUID(accountID) || !validUUID(companyID) {
		return false, nil
	}
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM company_admins WHERE account_id = $1 AND company_id = $2)`,
		accountID, companyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("company admin exists: %w", err)
	}
	return exists, nil
}

// ListCompanyIDs empresas administradas por la cuenta.
func (r *CompanyAdminRepo) ListCompanyIDs(ctx context.Context, accountID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT company_id FROM company_admins WHERE account_id = $1 ORDER BY company_id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list admin companies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan company id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
