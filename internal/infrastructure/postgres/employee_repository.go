package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
)

var _ repository.EmployeeProfileRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, account_id, company_id, full_name, position, phone, bio, slug, status,
	reviewed_by, reviewed_at, created_at, updated_at`

// EmployeeRepo perfiles de empleado sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste el perfil (normalmente en PENDING).
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.EmployeeProfile) error {
	query := `
		INSERT INTO employee_profiles (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.AccountID, e.CompanyID, e.FullName, e.Position, e.Phone, e.Bio, e.Slug, string(e.Status),
		e.ReviewedBy, e.ReviewedAt, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == "employee_profiles_slug_key" {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("insert employee profile: %w", err)
	}
	return nil
}

// GetByID incluye REJECTED: lo necesita la guarda de transición.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.EmployeeProfile, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employee_profiles WHERE id = $1`, id)
}

// GetByAccountID perfil de la cuenta EMPLOYEE.
func (r *EmployeeRepo) GetByAccountID(ctx context.Context, accountID string) (*entity.EmployeeProfile, error) {
	if !validUUID(accountID) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employee_profiles WHERE account_id = $1`, accountID)
}

// TransitionStatus update condicionado al estado leído. Dos aprobaciones concurrentes
// no pueden tener éxito ambas: la segunda no encuentra la fila en from.
func (r *EmployeeRepo) TransitionStatus(ctx context.Context, e *entity.EmployeeProfile, from entity.EmployeeStatus) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE employee_profiles SET status = $2, reviewed_by = $3, reviewed_at = $4, updated_at = $5
		WHERE id = $1 AND status = $6`,
		e.ID, string(e.Status), e.ReviewedBy, e.ReviewedAt, e.UpdatedAt, string(from),
	)
	if err != nil {
		return fmt.Errorf("transition employee status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: el empleado ya no está en %s", domain.ErrInvalidStateTransition, from)
	}
	return nil
}

// Update campos de autoservicio. Un REJECTED no se puede editar.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.EmployeeProfile) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE employee_profiles SET full_name = $2, position = $3, phone = $4, bio = $5, updated_at = $6
		WHERE id = $1 AND status <> 'REJECTED'`,
		e.ID, e.FullName, e.Position, e.Phone, e.Bio, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee profile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany nunca devuelve REJECTED. status vacío = todos los visibles.
func (r *EmployeeRepo) ListByCompany(ctx context.Context, companyID string, status entity.EmployeeStatus, limit, offset int) ([]*entity.EmployeeProfile, error) {
	if !validUUID(companyID) {
		return nil, nil
	}
	query := `
		SELECT ` + employeeColumns + `
		FROM employee_profiles
		WHERE company_id = $1 AND status <> 'REJECTED' AND ($2::text = '' OR status = $2::text)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.EmployeeProfile
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *EmployeeRepo) getOne(ctx context.Context, query string, arg any) (*entity.EmployeeProfile, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee profile: %w", err)
	}
	return e, nil
}

func scanEmployee(row pgx.Row) (*entity.EmployeeProfile, error) {
	var e entity.EmployeeProfile
	var status string
	err := row.Scan(
		&e.ID, &e.AccountID, &e.CompanyID, &e.FullName, &e.Position, &e.Phone, &e.Bio, &e.Slug, &status,
		&e.ReviewedBy, &e.ReviewedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = entity.EmployeeStatus(status)
	return &e, nil
}
