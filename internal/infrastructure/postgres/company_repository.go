package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, slug, description, email, phone, website, status,
	primary_color, secondary_color, logo_url, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa. companies_slug_key colisionado -> ErrSlugTaken.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Slug, c.Description, c.Email, c.Phone, c.Website, string(c.Status),
		c.Theme.PrimaryColor, c.Theme.SecondaryColor, c.Theme.LogoURL,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	if !validUUID(id) {
		return nil, nil
	}
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetBySlug obtiene una empresa por slug.
func (r *CompanyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by slug: %w", err)
	}
	return c, nil
}

// SlugExists consulta de disponibilidad para la asignación de sufijos.
func (r *CompanyRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("company slug exists: %w", err)
	}
	return exists, nil
}

// Update actualiza los campos editables. El slug y el estado no se tocan aquí.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, description = $3, email = $4, phone = $5, website = $6,
			primary_color = $7, secondary_color = $8, logo_url = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Description, c.Email, c.Phone, c.Website,
		c.Theme.PrimaryColor, c.Theme.SecondaryColor, c.Theme.LogoURL, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus cambia el estado de la empresa.
func (r *CompanyRepo) SetStatus(ctx context.Context, id string, status entity.CompanyStatus) error {
	if !validUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE companies SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set company status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve empresas con paginación.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return collectCompanies(rows)
}

// ListByIDs empresas con los IDs dados, ordenadas por nombre.
func (r *CompanyRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id::text = ANY($1) ORDER BY name`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list companies by ids: %w", err)
	}
	return collectCompanies(rows)
}

func collectCompanies(rows pgx.Rows) ([]*entity.Company, error) {
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	var status string
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Email, &c.Phone, &c.Website, &status,
		&c.Theme.PrimaryColor, &c.Theme.SecondaryColor, &c.Theme.LogoURL,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = entity.CompanyStatus(status)
	return &c, nil
}
