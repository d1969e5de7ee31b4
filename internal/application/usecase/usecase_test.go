package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/usecase"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/testutil/memstore"
)

const testSecret = "test-secret-key-for-unit-tests-0001"

type fixture struct {
	store     *memstore.Store
	auth      *auth.AuthUseCase
	authn     *auth.Authenticator
	scope     *auth.ScopeChecker
	companies *usecase.CompanyUseCase
	employees *usecase.EmployeeUseCase
	personal  *usecase.PersonalUseCase
	accounts  *usecase.AccountUseCase
	public    *usecase.PublicUseCase
	cards     *fakeCards
}

type fakeCards struct {
	mu   sync.Mutex
	last dto.ContactCard
}

func (f *fakeCards) GenerateCard(_ context.Context, card dto.ContactCard) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = card
	return []byte("%PDF-fake"), nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	scope := auth.NewScopeChecker(store.CompanyAdmins())
	links := usecase.NewLinks("https://ophua.test/")
	cards := &fakeCards{}
	return &fixture{
		store: store,
		auth: auth.NewAuthUseCase(store, store, auth.Config{
			JWTSecret: testSecret, TokenTTL: time.Hour, Issuer: "test", BcryptCost: bcrypt.MinCost,
		}, nil),
		authn:     auth.NewAuthenticator(store, testSecret),
		scope:     scope,
		companies: usecase.NewCompanyUseCase(store, scope, links, nil),
		employees: usecase.NewEmployeeUseCase(store, scope, nil),
		personal:  usecase.NewPersonalUseCase(store.PersonalProfiles()),
		accounts:  usecase.NewAccountUseCase(store.Accounts(), nil),
		public:    usecase.NewPublicUseCase(store, cards, links),
		cards:     cards,
	}
}

func (f *fixture) principal(t *testing.T, token string) *auth.Principal {
	t.Helper()
	p, err := f.authn.Authenticate(context.Background(), token)
	require.NoError(t, err)
	return p
}

func (f *fixture) company(t *testing.T, email, name string) (*auth.Principal, string) {
	t.Helper()
	out, err := f.auth.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{Email: email, Password: "Secret1!", CompanyName: name})
	require.NoError(t, err)
	return f.principal(t, out.Token), out.Company.ID
}

func (f *fixture) employee(t *testing.T, companySlug, email, name string) (*auth.Principal, string) {
	t.Helper()
	out, err := f.auth.RegisterEmployee(context.Background(), companySlug, dto.RegisterEmployeeRequest{Email: email, Password: "Secret1!", FullName: name, Position: "Ventas"})
	require.NoError(t, err)
	return f.principal(t, out.Token), out.User.Employee.ID
}

func (f *fixture) superAdmin(t *testing.T) *auth.Principal {
	t.Helper()
	ctx := context.Background()
	_, err := f.auth.CreateSuperAdmin(ctx, "root@ophua.io", "Sup3rSecret!")
	require.NoError(t, err)
	out, err := f.auth.Login(ctx, dto.LoginRequest{Email: "root@ophua.io", Password: "Sup3rSecret!"})
	require.NoError(t, err)
	return f.principal(t, out.Token)
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Aprobación de empleados
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_AdminDeLaMismaEmpresa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, _ := f.company(t, "owner@acme.co", "Acme")
	_, empID := f.employee(t, "acme", "j@acme.co", "Juan")

	out, err := f.employees.Approve(ctx, admin, empID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", out.Status)
	require.NotNil(t, out.ReviewedAt)

	stored, _ := f.store.Employees().GetByID(ctx, empID)
	assert.Equal(t, entity.EmployeeApproved, stored.Status)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, admin.Account.ID, *stored.ReviewedBy)
}

func TestApprove_AdminDeOtraEmpresa_Forbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.company(t, "owner@acme.co", "Acme")
	other, _ := f.company(t, "owner@globex.co", "Globex")
	_, empID := f.employee(t, "acme", "j@acme.co", "Juan")

	_, err := f.employees.Approve(ctx, other, empID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, _ := f.store.Employees().GetByID(ctx, empID)
	assert.Equal(t, entity.EmployeePending, stored.Status)
}

func TestApprove_SuperAdminCualquierEmpresa(t *testing.T) {
	f := newFixture(t)
	f.company(t, "owner@acme.co", "Acme")
	_, empID := f.employee(t, "acme", "j@acme.co", "Juan")

	out, err := f.employees.Approve(context.Background(), f.superAdmin(t), empID)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", out.Status)
}

func TestApprove_EmpleadoNoPuedeAprobarse(t *testing.T) {
	f := newFixture(t)
	f.company(t, "owner@acme.co", "Acme")
	emp, empID := f.employee(t, "acme", "j@acme.co", "Juan")

	_, err := f.employees.Approve(context.Background(), emp, empID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApprove_Inexistente(t *testing.T) {
	f := newFixture(t)
	admin, _ := f.company(t, "owner@acme.co", "Acme")
	_, err := f.employees.Approve(context.Background(), admin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_DosVeces_InvalidStateTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, _ := f.company(t, "owner@acme.co", "Acme")
	_, empID := f.employee(t, "acme", "j@acme.co", "Juan")

	_, err := f.employees.Approve(ctx, admin, empID)
	require.NoError(t, err)
	_, err = f.employees.Approve(ctx, admin, empID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	_, err = f.employees.Reject(ctx, admin, empID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestReject_EsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, companyID := f.company(t, "owner@acme.co", "Acme")
	_, empID := f.employee(t, "acme", "j@acme.co", "Juan")

	out, err := f.employees.Reject(ctx, admin, empID)
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", out.Status)

	_, err = f.employees.Approve(ctx, admin, empID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	list, err := f.employees.ListByCompany(ctx, admin, companyID, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestApprove_Concurrente_SoloUnoGana(t *testing.T) {
	f := newFixture(t)
	admin, _ := f.company(t, "owner@acme.co", "Acme")
	root := f.superAdmin(t)
	_, empID := f.employee(t, "acme", "j@acme.co", "Juan")

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := admin
			if i%2 == 1 {
				p = root
			}
			_, errs[i] = f.employees.Approve(context.Background(), p, empID)
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	}
	assert.Equal(t, 1, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y autoservicio de empleados
// ──────────────────────────────────────────────────────────────────────────────

func TestListByCompany_FiltroYAlcance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, companyID := f.company(t, "owner@acme.co", "Acme")
	other, _ := f.company(t, "owner@globex.co", "Globex")
	_, e1 := f.employee(t, "acme", "a@acme.co", "Ana")
	f.employee(t, "acme", "b@acme.co", "Beto")
	_, e3 := f.employee(t, "acme", "c@acme.co", "Carla")
	_, err := f.employees.Approve(ctx, admin, e1)
	require.NoError(t, err)
	_, err = f.employees.Reject(ctx, admin, e3)
	require.NoError(t, err)

	all, err := f.employees.ListByCompany(ctx, admin, companyID, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 20, all.Page.Limit)

	approved, err := f.employees.ListByCompany(ctx, admin, companyID, "approved", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, approved.Items, 1)
	assert.Equal(t, "Ana", approved.Items[0].FullName)

	_, err = f.employees.ListByCompany(ctx, admin, companyID, "REJECTED", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.employees.ListByCompany(ctx, other, companyID, "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEmployeeMe_RequiereAprobado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, _ := f.company(t, "owner@acme.co", "Acme")
	emp, empID := f.employee(t, "acme", "j@acme.co", "Juan")

	_, err := f.employees.GetMe(ctx, emp)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.employees.UpdateMe(ctx, emp, dto.UpdateEmployeeProfileRequest{Bio: ptr("hola")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.employees.Approve(ctx, admin, empID)
	require.NoError(t, err)

	out, err := f.employees.UpdateMe(ctx, emp, dto.UpdateEmployeeProfileRequest{Bio: ptr("  hola  "), Position: ptr("Gerente")})
	require.NoError(t, err)
	assert.Equal(t, "hola", out.Bio)
	assert.Equal(t, "Gerente", out.Position)
	assert.Equal(t, "APPROVED", out.Status)

	me, err := f.employees.GetMe(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, "Gerente", me.Position)
}

// ──────────────────────────────────────────────────────────────────────────────
// Empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestCompany_GetUpdateConAlcance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, companyID := f.company(t, "owner@acme.co", "Acme")
	other, _ := f.company(t, "owner@globex.co", "Globex")

	_, err := f.companies.Get(ctx, other, companyID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.companies.Update(ctx, admin, companyID, dto.UpdateCompanyRequest{
		Name: ptr("Acme Global"), PrimaryColor: ptr("#ff0000"), Website: ptr(" https://acme.co "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Global", out.Name)
	assert.Equal(t, "acme", out.Slug)
	assert.Equal(t, "#FF0000", out.Theme.PrimaryColor)
	assert.Equal(t, "https://acme.co", out.Website)

	_, err = f.companies.Update(ctx, admin, companyID, dto.UpdateCompanyRequest{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompany_InviteLink(t *testing.T) {
	f := newFixture(t)
	admin, companyID := f.company(t, "owner@acme.co", "Acme")

	out, err := f.companies.InviteLink(context.Background(), admin, companyID)
	require.NoError(t, err)
	assert.Equal(t, "acme", out.CompanySlug)
	assert.Equal(t, "https://ophua.test/join/acme", out.InviteURL)
	assert.Equal(t, "/api/auth/register/employee/acme", out.RegisterPath)
}

func TestCompany_SetStatusYList_SoloSuperAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, companyID := f.company(t, "owner@acme.co", "Acme")
	root := f.superAdmin(t)

	_, err := f.companies.SetStatus(ctx, admin, companyID, dto.CompanyStatusRequest{Status: "SUSPENDED"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.companies.List(ctx, admin, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.companies.SetStatus(ctx, root, companyID, dto.CompanyStatusRequest{Status: "SUSPENDED"})
	require.NoError(t, err)
	assert.Equal(t, "SUSPENDED", out.Status)

	_, err = f.auth.RegisterEmployee(ctx, "acme", dto.RegisterEmployeeRequest{Email: "x@acme.co", Password: "Secret1!", FullName: "X"})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	list, err := f.companies.List(ctx, root, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil personal y cuentas
// ──────────────────────────────────────────────────────────────────────────────

func TestPersonalMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg, err := f.auth.RegisterPersonal(ctx, dto.RegisterPersonalRequest{Email: "a@x.com", Password: "Secret1!", FullName: "Ana"})
	require.NoError(t, err)
	p := f.principal(t, reg.Token)

	out, err := f.personal.UpdateMe(ctx, p, dto.UpdatePersonalProfileRequest{Headline: ptr("Diseñadora")})
	require.NoError(t, err)
	assert.Equal(t, "Diseñadora", out.Headline)
	assert.Equal(t, "ana", out.Slug)

	admin, _ := f.company(t, "owner@acme.co", "Acme")
	_, err = f.personal.GetMe(ctx, admin)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAccount_SetActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, _ := f.company(t, "owner@acme.co", "Acme")
	root := f.superAdmin(t)

	_, err := f.accounts.SetActive(ctx, admin, root.Account.ID, dto.AccountStatusRequest{Active: ptr(false)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.accounts.SetActive(ctx, root, root.Account.ID, dto.AccountStatusRequest{Active: ptr(false)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	out, err := f.accounts.SetActive(ctx, root, admin.Account.ID, dto.AccountStatusRequest{Active: ptr(false)})
	require.NoError(t, err)
	assert.False(t, out.Active)

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "owner@acme.co", Password: "Secret1!"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.accounts.SetActive(ctx, root, "no-existe", dto.AccountStatusRequest{Active: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Directorio público
// ──────────────────────────────────────────────────────────────────────────────

func TestPublic_CompanySoloAprobados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, _ := f.company(t, "owner@acme.co", "Acme")
	_, e1 := f.employee(t, "acme", "a@acme.co", "Ana")
	f.employee(t, "acme", "b@acme.co", "Beto")
	_, err := f.employees.Approve(ctx, admin, e1)
	require.NoError(t, err)

	out, err := f.public.Company(ctx, "ACME")
	require.NoError(t, err)
	assert.Equal(t, "https://ophua.test/c/acme", out.PublicURL)
	require.Len(t, out.Employees, 1)
	assert.Equal(t, "Ana", out.Employees[0].FullName)

	_, err = f.public.Company(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPublic_ProfileOcultaPendientesYRechazados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, _ := f.company(t, "owner@acme.co", "Acme")
	_, pending := f.employee(t, "acme", "a@acme.co", "Ana")
	_, rejected := f.employee(t, "acme", "b@acme.co", "Beto")
	_, err := f.employees.Reject(ctx, admin, rejected)
	require.NoError(t, err)

	_, err = f.public.Profile(ctx, "ana")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.public.Profile(ctx, "beto")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.employees.Approve(ctx, admin, pending)
	require.NoError(t, err)
	out, err := f.public.Profile(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, dto.ProfileTypeEmployee, out.ProfileType)
	require.NotNil(t, out.Company)
	assert.Equal(t, "acme", out.Company.Slug)
	assert.Equal(t, "https://ophua.test/p/ana", out.PublicURL)
}

func TestPublic_ProfileCard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.RegisterPersonal(ctx, dto.RegisterPersonalRequest{Email: "a@x.com", Password: "Secret1!", FullName: "Ana", Phone: "300 000 0000", Headline: "Fotógrafa"})
	require.NoError(t, err)

	pdf, err := f.public.ProfileCard(ctx, "ana")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "Ana", f.cards.last.Title)
	assert.Equal(t, "Fotógrafa", f.cards.last.Subtitle)
	assert.Equal(t, "https://ophua.test/p/ana", f.cards.last.URL)
	assert.Equal(t, []string{"300 000 0000"}, f.cards.last.Lines)
	assert.Equal(t, entity.DefaultTheme().PrimaryColor, f.cards.last.PrimaryColor)
}
