package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store agrupa los repositorios sobre un mismo Querier (pool o tx).
type Store struct {
	q Querier
}

// NewStore construye el Store sobre el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{q: pool}
}

func (s *Store) Accounts() repository.AccountRepository  { return NewAccountRepository(s.q) }
func (s *Store) Companies() repository.CompanyRepository { return NewCompanyRepository(s.q) }
func (s *Store) CompanyAdmins() repository.CompanyAdminRepository {
	return NewCompanyAdminRepository(s.q)
}
func (s *Store) PersonalProfiles() repository.PersonalProfileRepository {
	return NewPersonalProfileRepository(s.q)
}
func (s *Store) Employees() repository.EmployeeProfileRepository { return NewEmployeeRepository(s.q) }
func (s *Store) ProfileSlugs() repository.ProfileSlugRepository  { return NewProfileSlugRepository(s.q) }
