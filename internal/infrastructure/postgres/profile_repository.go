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

var (
	_ repository.PersonalProfileRepository = (*PersonalProfileRepo)(nil)
	_ repository.ProfileSlugRepository     = (*ProfileSlugRepo)(nil)
)

const personalColumns = `id, account_id, full_name, phone, headline, bio, website, slug, created_at, updated_at`

// PersonalProfileRepo perfiles personales sobre PostgreSQL.
type PersonalProfileRepo struct {
	q Querier
}

// NewPersonalProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPersonalProfileRepository(q Querier) *PersonalProfileRepo {
	return &PersonalProfileRepo{q: q}
}

// Create persiste el perfil.
func (r *PersonalProfileRepo) Create(ctx context.Context, p *entity.PersonalProfile) error {
	query := `
		INSERT INTO personal_profiles (` + personalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.AccountID, p.FullName, p.Phone, p.Headline, p.Bio, p.Website, p.Slug,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == "personal_profiles_slug_key" {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("insert personal profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID.
func (r *PersonalProfileRepo) GetByID(ctx context.Context, id string) (*entity.PersonalProfile, error) {
	if !validUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+personalColumns+` FROM personal_profiles WHERE id = $1`, id)
}

// GetByAccountID obtiene el perfil de una cuenta.
func (r *PersonalProfileRepo) GetByAccountID(ctx context.Context, accountID string) (*entity.PersonalProfile, error) {
	if !validUUID(accountID) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+personalColumns+` FROM personal_profiles WHERE account_id = $1`, accountID)
}

// Update actualiza los campos editables. El slug no cambia.
func (r *PersonalProfileRepo) Update(ctx context.Context, p *entity.PersonalProfile) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE personal_profiles SET full_name = $2, phone = $3, headline = $4, bio = $5, website = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.FullName, p.Phone, p.Headline, p.Bio, p.Website, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update personal profile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PersonalProfileRepo) getOne(ctx context.Context, query string, arg any) (*entity.PersonalProfile, error) {
	var p entity.PersonalProfile
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.AccountID, &p.FullName, &p.Phone, &p.Headline, &p.Bio, &p.Website, &p.Slug,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get personal profile: %w", err)
	}
	return &p, nil
}

// ProfileSlugRepo registro de slugs compartido por perfiles personales y de empleado.
type ProfileSlugRepo struct {
	q Querier
}

// NewProfileSlugRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileSlugRepository(q Querier) *ProfileSlugRepo {
	return &ProfileSlugRepo{q: q}
}

// Reserve inserta el slug; la PK profile_slugs_pkey es el árbitro ante carreras.
func (r *ProfileSlugRepo) Reserve(ctx context.Context, s *entity.ProfileSlug) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO profile_slugs (slug, kind, profile_id, created_at) VALUES ($1, $2, $3, $4)`,
		s.Slug, string(s.Kind), s.ProfileID, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("reserve profile slug: %w", err)
	}
	return nil
}

// Exists consulta de disponibilidad.
func (r *ProfileSlugRepo) Exists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM profile_slugs WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("profile slug exists: %w", err)
	}
	return exists, nil
}

// Get resuelve un slug a su perfil dueño.
func (r *ProfileSlugRepo) Get(ctx context.Context, slug string) (*entity.ProfileSlug, error) {
	var s entity.ProfileSlug
	var kind string
	err := r.q.QueryRow(ctx,
		`SELECT slug, kind, profile_id, created_at FROM profile_slugs WHERE slug = $1`, slug,
	).Scan(&s.Slug, &kind, &s.ProfileID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile slug: %w", err)
	}
	s.Kind = entity.ProfileKind(kind)
	return &s, nil
}
