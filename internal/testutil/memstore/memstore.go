// Package memstore implementa repository.Store y auth.TxRunner en memoria para tests.
//
// Las transacciones trabajan sobre una copia de los datos y la publican solo si
// fn termina sin error, de modo que un fallo a mitad de un registro no deja filas.
// FailOn permite inyectar errores en operaciones concretas.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
)

// Operaciones para FailOn.
const (
	OpAccountCreate   = "accounts.create"
	OpCompanyCreate   = "companies.create"
	OpAdminLinkCreate = "admins.create"
	OpPersonalCreate  = "personal.create"
	OpEmployeeCreate  = "employees.create"
	OpSlugReserve     = "slugs.reserve"
	OpCommit          = "tx.commit"
)

type linkKey struct{ accountID, companyID string }

type data struct {
	accounts  map[string]entity.Account
	companies map[string]entity.Company
	links     map[linkKey]entity.CompanyAdminLink
	personal  map[string]entity.PersonalProfile
	employees map[string]entity.EmployeeProfile
	slugs     map[string]entity.ProfileSlug
}

func newData() *data {
	return &data{
		accounts:  map[string]entity.Account{},
		companies: map[string]entity.Company{},
		links:     map[linkKey]entity.CompanyAdminLink{},
		personal:  map[string]entity.PersonalProfile{},
		employees: map[string]entity.EmployeeProfile{},
		slugs:     map[string]entity.ProfileSlug{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	for k, v := range d.companies {
		c.companies[k] = v
	}
	for k, v := range d.links {
		c.links[k] = v
	}
	for k, v := range d.personal {
		c.personal[k] = v
	}
	for k, v := range d.employees {
		c.employees[k] = v
	}
	for k, v := range d.slugs {
		c.slugs[k] = v
	}
	return c
}

type shared struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	root     *data
	failures map[string]error
}

// Store almacén en memoria. El valor devuelto por New opera sobre los datos confirmados;
// los Store pasados a RunInTx operan sobre la copia de la transacción.
type Store struct {
	sh *shared
	tx *data
}

var (
	_ repository.Store = (*Store)(nil)
)

// New crea un almacén vacío.
func New() *Store {
	return &Store{sh: &shared{root: newData(), failures: map[string]error{}}}
}

// FailOn hace que la operación op devuelva err hasta que se llame a ClearFailures.
func (s *Store) FailOn(op string, err error) {
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	s.sh.failures[op] = err
}

// ClearFailures elimina los errores inyectados.
func (s *Store) ClearFailures() {
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	s.sh.failures = map[string]error{}
}

// Counts devuelve el número de filas por tabla confirmadas (aserciones de atomicidad).
func (s *Store) Counts() map[string]int {
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	d := s.sh.root
	return map[string]int{
		"accounts":  len(d.accounts),
		"companies": len(d.companies),
		"links":     len(d.links),
		"personal":  len(d.personal),
		"employees": len(d.employees),
		"slugs":     len(d.slugs),
	}
}

// RunInTx implementa auth.TxRunner.
func (s *Store) RunInTx(ctx context.Context, fn func(repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.sh.txMu.Lock()
	defer s.sh.txMu.Unlock()

	s.sh.mu.Lock()
	cp := s.sh.root.clone()
	s.sh.mu.Unlock()

	if err := fn(&Store{sh: s.sh, tx: cp}); err != nil {
		return err
	}
	if err := s.fail(OpCommit); err != nil {
		return err
	}
	s.sh.mu.Lock()
	s.sh.root = cp
	s.sh.mu.Unlock()
	return nil
}

func (s *Store) fail(op string) error {
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	return s.sh.failures[op]
}

func (s *Store) with(fn func(d *data) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.sh.mu.Lock()
	defer s.sh.mu.Unlock()
	return fn(s.sh.root)
}

func (s *Store) Accounts() repository.AccountRepository           { return accounts{s} }
func (s *Store) Companies() repository.CompanyRepository          { return companies{s} }
func (s *Store) CompanyAdmins() repository.CompanyAdminRepository { return admins{s} }
func (s *Store) PersonalProfiles() repository.PersonalProfileRepository {
	return personal{s}
}
func (s *Store) Employees() repository.EmployeeProfileRepository { return employees{s} }
func (s *Store) ProfileSlugs() repository.ProfileSlugRepository  { return slugs{s} }

// ── accounts ──────────────────────────────────────────────────────────────────

type accounts struct{ s *Store }

func (r accounts) Create(_ context.Context, a *entity.Account) error {
	if err := r.s.fail(OpAccountCreate); err != nil {
		return err
	}
	return r.s.with(func(d *data) error {
		for _, existing := range d.accounts {
			if existing.Email == a.Email {
				return domain.ErrEmailTaken
			}
		}
		d.accounts[a.ID] = *a
		return nil
	})
}

func (r accounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	var out *entity.Account
	_ = r.s.with(func(d *data) error {
		if a, ok := d.accounts[id]; ok {
			out = &a
		}
		return nil
	})
	return out, nil
}

func (r accounts) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	var out *entity.Account
	_ = r.s.with(func(d *data) error {
		for _, a := range d.accounts {
			if a.Email == email {
				a := a
				out = &a
			}
		}
		return nil
	})
	return out, nil
}

func (r accounts) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	a, err := r.GetByEmail(ctx, email)
	return a != nil, err
}

func (r accounts) UpdatePassword(_ context.Context, id, hash string) error {
	return r.s.with(func(d *data) error {
		a, ok := d.accounts[id]
		if !ok {
			return domain.ErrNotFound
		}
		a.PasswordHash = hash
		d.accounts[id] = a
		return nil
	})
}

func (r accounts) SetActive(_ context.Context, id string, active bool) error {
	return r.s.with(func(d *data) error {
		a, ok := d.accounts[id]
		if !ok {
			return domain.ErrNotFound
		}
		a.Active = active
		d.accounts[id] = a
		return nil
	})
}

// ── companies ─────────────────────────────────────────────────────────────────

type companies struct{ s *Store }

func (r companies) Create(_ context.Context, c *entity.Company) error {
	if err := r.s.fail(OpCompanyCreate); err != nil {
		return err
	}
	return r.s.with(func(d *data) error {
		for _, existing := range d.companies {
			if existing.Slug == c.Slug {
				return domain.ErrSlugTaken
			}
		}
		d.companies[c.ID] = *c
		return nil
	})
}

func (r companies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	_ = r.s.with(func(d *data) error {
		if c, ok := d.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, nil
}

func (r companies) GetBySlug(_ context.Context, slug string) (*entity.Company, error) {
	var out *entity.Company
	_ = r.s.with(func(d *data) error {
		for _, c := range d.companies {
			if c.Slug == slug {
				c := c
				out = &c
			}
		}
		return nil
	})
	return out, nil
}

func (r companies) SlugExists(ctx context.Context, slug string) (bool, error) {
	c, err := r.GetBySlug(ctx, slug)
	return c != nil, err
}

func (r companies) Update(_ context.Context, c *entity.Company) error {
	return r.s.with(func(d *data) error {
		existing, ok := d.companies[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		updated := *c
		updated.Slug = existing.Slug
		updated.CreatedAt = existing.CreatedAt
		d.companies[c.ID] = updated
		return nil
	})
}

func (r companies) SetStatus(_ context.Context, id string, status entity.CompanyStatus) error {
	return r.s.with(func(d *data) error {
		c, ok := d.companies[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.Status = status
		d.companies[id] = c
		return nil
	})
}

func (r companies) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	var all []*entity.Company
	_ = r.s.with(func(d *data) error {
		for _, c := range d.companies {
			c := c
			all = append(all, &c)
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

func (r companies) ListByIDs(_ context.Context, ids []string) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(ids))
	_ = r.s.with(func(d *data) error {
		for _, id := range ids {
			if c, ok := d.companies[id]; ok {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── company admins ────────────────────────────────────────────────────────────

type admins struct{ s *Store }

func (r admins) Create(_ context.Context, l *entity.CompanyAdminLink) error {
	if err := r.s.fail(OpAdminLinkCreate); err != nil {
		return err
	}
	return r.s.with(func(d *data) error {
		k := linkKey{l.AccountID, l.CompanyID}
		if _, ok := d.links[k]; ok {
			return fmt.Errorf("memstore: vínculo duplicado %s/%s", l.AccountID, l.CompanyID)
		}
		d.links[k] = *l
		return nil
	})
}

func (r admins) Exists(_ context.Context, accountID, companyID string) (bool, error) {
	var ok bool
	_ = r.s.with(func(d *data) error {
		_, ok = d.links[linkKey{accountID, companyID}]
		return nil
	})
	return ok, nil
}

func (r admins) ListCompanyIDs(_ context.Context, accountID string) ([]string, error) {
	var ids []string
	_ = r.s.with(func(d *data) error {
		for k := range d.links {
			if k.accountID == accountID {
				ids = append(ids, k.companyID)
			}
		}
		return nil
	})
	sort.Strings(ids)
	return ids, nil
}

// ── personal profiles ─────────────────────────────────────────────────────────

type personal struct{ s *Store }

func (r personal) Create(_ context.Context, p *entity.PersonalProfile) error {
	if err := r.s.fail(OpPersonalCreate); err != nil {
		return err
	}
	return r.s.with(func(d *data) error {
		for _, existing := range d.personal {
			if existing.AccountID == p.AccountID {
				return fmt.Errorf("memstore: la cuenta %s ya tiene perfil personal", p.AccountID)
			}
		}
		d.personal[p.ID] = *p
		return nil
	})
}

func (r personal) GetByID(_ context.Context, id string) (*entity.PersonalProfile, error) {
	var out *entity.PersonalProfile
	_ = r.s.with(func(d *data) error {
		if p, ok := d.personal[id]; ok {
			out = &p
		}
		return nil
	})
	return out, nil
}

func (r personal) GetByAccountID(_ context.Context, accountID string) (*entity.PersonalProfile, error) {
	var out *entity.PersonalProfile
	_ = r.s.with(func(d *data) error {
		for _, p := range d.personal {
			if p.AccountID == accountID {
				p := p
				out = &p
			}
		}
		return nil
	})
	return out, nil
}

func (r personal) Update(_ context.Context, p *entity.PersonalProfile) error {
	return r.s.with(func(d *data) error {
		existing, ok := d.personal[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		updated := *p
		updated.Slug = existing.Slug
		d.personal[p.ID] = updated
		return nil
	})
}

// ── employees ─────────────────────────────────────────────────────────────────

type employees struct{ s *Store }

func (r employees) Create(_ context.Context, e *entity.EmployeeProfile) error {
	if err := r.s.fail(OpEmployeeCreate); err != nil {
		return err
	}
	return r.s.with(func(d *data) error {
		for _, existing := range d.employees {
			if existing.AccountID == e.AccountID {
				return fmt.Errorf("memstore: la cuenta %s ya tiene perfil de empleado", e.AccountID)
			}
		}
		d.employees[e.ID] = *e
		return nil
	})
}

func (r employees) GetByID(_ context.Context, id string) (*entity.EmployeeProfile, error) {
	var out *entity.EmployeeProfile
	_ = r.s.with(func(d *data) error {
		if e, ok := d.employees[id]; ok {
			out = &e
		}
		return nil
	})
	return out, nil
}

func (r employees) GetByAccountID(_ context.Context, accountID string) (*entity.EmployeeProfile, error) {
	var out *entity.EmployeeProfile
	_ = r.s.with(func(d *data) error {
		for _, e := range d.employees {
			if e.AccountID == accountID {
				e := e
				out = &e
			}
		}
		return nil
	})
	return out, nil
}

func (r employees) TransitionStatus(_ context.Context, e *entity.EmployeeProfile, from entity.EmployeeStatus) error {
	return r.s.with(func(d *data) error {
		current, ok := d.employees[e.ID]
		if !ok || current.Status != from {
			return domain.ErrInvalidStateTransition
		}
		current.Status = e.Status
		current.ReviewedBy = e.ReviewedBy
		current.ReviewedAt = e.ReviewedAt
		current.UpdatedAt = e.UpdatedAt
		d.employees[e.ID] = current
		return nil
	})
}

func (r employees) Update(_ context.Context, e *entity.EmployeeProfile) error {
	return r.s.with(func(d *data) error {
		current, ok := d.employees[e.ID]
		if !ok || current.Status == entity.EmployeeRejected {
			return domain.ErrNotFound
		}
		current.FullName = e.FullName
		current.Position = e.Position
		current.Phone = e.Phone
		current.Bio = e.Bio
		current.UpdatedAt = e.UpdatedAt
		d.employees[e.ID] = current
		return nil
	})
}

func (r employees) ListByCompany(_ context.Context, companyID string, status entity.EmployeeStatus, limit, offset int) ([]*entity.EmployeeProfile, error) {
	var all []*entity.EmployeeProfile
	_ = r.s.with(func(d *data) error {
		for _, e := range d.employees {
			if e.CompanyID != companyID || e.Status == entity.EmployeeRejected {
				continue
			}
			if status != "" && e.Status != status {
				continue
			}
			e := e
			all = append(all, &e)
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

// ── profile slugs ─────────────────────────────────────────────────────────────

type slugs struct{ s *Store }

func (r slugs) Reserve(_ context.Context, ps *entity.ProfileSlug) error {
	if err := r.s.fail(OpSlugReserve); err != nil {
		return err
	}
	return r.s.with(func(d *data) error {
		if _, ok := d.slugs[ps.Slug]; ok {
			return domain.ErrSlugTaken
		}
		d.slugs[ps.Slug] = *ps
		return nil
	})
}

func (r slugs) Exists(ctx context.Context, slug string) (bool, error) {
	ps, err := r.Get(ctx, slug)
	return ps != nil, err
}

func (r slugs) Get(_ context.Context, slug string) (*entity.ProfileSlug, error) {
	var out *entity.ProfileSlug
	_ = r.s.with(func(d *data) error {
		if ps, ok := d.slugs[slug]; ok {
			out = &ps
		}
		return nil
	})
	return out, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
