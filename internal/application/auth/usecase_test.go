package auth_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/testutil/memstore"
	"github.com/jhoicas/ophuaconnect-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests-0001"

var errBoom = errors.New("fallo inyectado")

func newAuth(t *testing.T) (*auth.AuthUseCase, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	uc := auth.NewAuthUseCase(store, store, auth.Config{
		JWTSecret:  testSecret,
		TokenTTL:   time.Hour,
		Issuer:     "ophuaconnect-test",
		BcryptCost: bcrypt.MinCost,
	}, nil)
	return uc, store
}

func registerCompany(t *testing.T, uc *auth.AuthUseCase, email, name string) *dto.AuthResponse {
	t.Helper()
	out, err := uc.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{
		Email: email, Password: "Secret1!", CompanyName: name,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro personal + login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterPersonal_LuegoLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	reg, err := uc.RegisterPersonal(ctx, dto.RegisterPersonalRequest{
		Email: "a@x.com", Password: "Secret1!", FullName: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "PERSONAL", reg.User.Role)
	assert.Equal(t, dto.ProfileTypePersonal, reg.User.ProfileType)
	require.NotNil(t, reg.User.Personal)
	assert.Equal(t, "ana", reg.User.Personal.Slug)
	assert.Nil(t, reg.User.CompanyAdmin)
	assert.Nil(t, reg.User.Employee)
	assert.NotEmpty(t, reg.Token)

	login, err := uc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "Secret1!"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, login.Token)
	require.NoError(t, err)
	assert.Equal(t, "PERSONAL", claims.Role)
	assert.Equal(t, reg.User.ID, claims.AccountID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestLogin_FallosIndistinguibles(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterPersonal(ctx, dto.RegisterPersonalRequest{Email: "a@x.com", Password: "Secret1!", FullName: "Ana"})
	require.NoError(t, err)

	_, wrongPwd := uc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "otra-cosa"})
	_, noAccount := uc.Login(ctx, dto.LoginRequest{Email: "nadie@x.com", Password: "Secret1!"})

	assert.ErrorIs(t, wrongPwd, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, noAccount, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPwd.Error(), noAccount.Error())
}

func TestLogin_EmailSinNormalizar(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterPersonal(ctx, dto.RegisterPersonalRequest{Email: "Ana@X.com", Password: "Secret1!", FullName: "Ana"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "  ANA@x.COM ", Password: "Secret1!"})
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", out.User.Email)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	reg, err := uc.RegisterPersonal(ctx, dto.RegisterPersonalRequest{Email: "a@x.com", Password: "Secret1!", FullName: "Ana"})
	require.NoError(t, err)
	require.NoError(t, store.Accounts().SetActive(ctx, reg.User.ID, false))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ──────────────────────────────────────────────────────────────────────────────
// Unicidad de email entre roles
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EmailDuplicadoEnCualquierRol(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	company := registerCompany(t, uc, "owner@acme.co", "Acme")

	_, err := uc.RegisterPersonal(ctx, dto.RegisterPersonalRequest{Email: "OWNER@acme.co", Password: "Secret1!", FullName: "X"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = uc.RegisterCompany(ctx, dto.RegisterCompanyRequest{Email: "owner@acme.co", Password: "Secret1!", CompanyName: "Otra"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = uc.RegisterEmployee(ctx, company.Company.Slug, dto.RegisterEmployeeRequest{Email: "owner@acme.co", Password: "Secret1!", FullName: "X"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	assert.Equal(t, 1, store.Counts()["accounts"])
	assert.Equal(t, 1, store.Counts()["companies"])
}

func TestRegisterPersonal_EmailConcurrente_SoloUnoGana(t *testing.T) {
	uc, store := newAuth(t)
	const n = 20

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		ok    int
		taken int
		other []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.RegisterPersonal(context.Background(), dto.RegisterPersonalRequest{
				Email: "ana@x.com", Password: "Secret1!", FullName: fmt.Sprintf("Ana %d", i),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrEmailTaken):
				taken++
			default:
				other = append(other, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, taken)
	assert.Equal(t, 1, store.Counts()["accounts"])
	assert.Equal(t, 1, store.Counts()["personal"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de empresa y de empleado
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterCompany_CreaEmpresaYVinculo(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	out := registerCompany(t, uc, "owner@acme.co", "Acmé Ltda")
	require.NotNil(t, out.Company)
	assert.Equal(t, "acme-ltda", out.Company.Slug)
	assert.Equal(t, "ACTIVE", out.Company.Status)
	assert.Equal(t, dto.ProfileTypeCompanyAdmin, out.User.ProfileType)
	require.NotNil(t, out.User.CompanyAdmin)
	require.Len(t, out.User.CompanyAdmin.Companies, 1)
	assert.Equal(t, out.Company.ID, out.User.CompanyAdmin.Companies[0].ID)

	linked, err := store.CompanyAdmins().Exists(ctx, out.User.ID, out.Company.ID)
	require.NoError(t, err)
	assert.True(t, linked)
}

func TestRegisterCompany_SlugsNoColisionan(t *testing.T) {
	uc, _ := newAuth(t)
	a := registerCompany(t, uc, "a@acme.co", "Acme")
	b := registerCompany(t, uc, "b@acme.co", "ACME")
	assert.Equal(t, "acme", a.Company.Slug)
	assert.Equal(t, "acme-2", b.Company.Slug)
}

func TestRegisterEmployee_QuedaPending(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	company := registerCompany(t, uc, "owner@acme.co", "Acme")

	out, err := uc.RegisterEmployee(ctx, "ACME", dto.RegisterEmployeeRequest{
		Email: "juan@acme.co", Password: "Secret1!", FullName: "Juan Pérez", Position: "Ventas",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMPLOYEE", out.User.Role)
	assert.Equal(t, dto.ProfileTypeEmployee, out.User.ProfileType)
	require.NotNil(t, out.User.Employee)
	assert.Equal(t, "PENDING", out.User.Employee.Status)
	assert.Equal(t, "juan-perez", out.User.Employee.Slug)
	require.NotNil(t, out.User.Employee.Company)
	assert.Equal(t, company.Company.ID, out.User.Employee.Company.ID)
}

func TestRegisterEmployee_EmpresaInexistente_NoCreaCuenta(t *testing.T) {
	uc, store := newAuth(t)

	_, err := uc.RegisterEmployee(context.Background(), "no-existe", dto.RegisterEmployeeRequest{
		Email: "juan@acme.co", Password: "Secret1!", FullName: "Juan",
	})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
	assert.Zero(t, store.Counts()["accounts"])

	exists, err := store.Accounts().ExistsByEmail(context.Background(), "juan@acme.co")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegisterEmployee_EmpresaSuspendida(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	company := registerCompany(t, uc, "owner@acme.co", "Acme")
	require.NoError(t, store.Companies().SetStatus(ctx, company.Company.ID, entity.CompanySuspended))

	_, err := uc.RegisterEmployee(ctx, "acme", dto.RegisterEmployeeRequest{Email: "juan@acme.co", Password: "Secret1!", FullName: "Juan"})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestRegister_SlugCompartidoEntrePerfiles(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	registerCompany(t, uc, "owner@acme.co", "Acme")

	p, err := uc.RegisterPersonal(ctx, dto.RegisterPersonalRequest{Email: "ana1@x.com", Password: "Secret1!", FullName: "Ana"})
	require.NoError(t, err)
	e, err := uc.RegisterEmployee(ctx, "acme", dto.RegisterEmployeeRequest{Email: "ana2@x.com", Password: "Secret1!", FullName: "Ana"})
	require.NoError(t, err)

	assert.Equal(t, "ana", p.User.Personal.Slug)
	assert.Equal(t, "ana-2", e.User.Employee.Slug)
}

func TestRegisterPersonal_NombreSinLatinos_NoAgotaSlugs(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 60; i++ {
		out, err := uc.RegisterPersonal(ctx, dto.RegisterPersonalRequest{
			Email: fmt.Sprintf("zhang%d@x.com", i), Password: "Secret1!", FullName: "张伟",
		})
		require.NoError(t, err, "registro #%d", i+1)
		s := out.User.Personal.Slug
		assert.True(t, strings.HasPrefix(s, "perfil-"), s)
		assert.False(t, seen[s], "slug repetido %s", s)
		seen[s] = true
	}
}

func TestRegisterPersonal_MismoNombre_TrasSufijosNumericos(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	seen := map[string]bool{}
	var last string
	for i := 0; i < 55; i++ {
		out, err := uc.RegisterPersonal(ctx, dto.RegisterPersonalRequest{
			Email: fmt.Sprintf("ana%d@x.com", i), Password: "Secret1!", FullName: "Ana",
		})
		require.NoError(t, err, "registro #%d", i+1)
		last = out.User.Personal.Slug
		assert.False(t, seen[last], "slug repetido %s", last)
		seen[last] = true
	}
	assert.True(t, seen["ana"])
	assert.True(t, seen["ana-50"])
	assert.False(t, seen["ana-51"])
	assert.Regexp(t, `^ana-[0-9a-f]{8}$`, last)
}

func TestRegisterCompany_NombreSinLatinos_SlugAleatorio(t *testing.T) {
	uc, _ := newAuth(t)
	a := registerCompany(t, uc, "a@x.com", "東京商事")
	b := registerCompany(t, uc, "b@x.com", "東京商事")
	assert.Regexp(t, `^empresa-[0-9a-f]{8}$`, a.Company.Slug)
	assert.Regexp(t, `^empresa-[0-9a-f]{8}$`, b.Company.Slug)
	assert.NotEqual(t, a.Company.Slug, b.Company.Slug)
}

// ──────────────────────────────────────────────────────────────────────────────
// Empleado rechazado: la sesión no expone el perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmpleadoRechazado_SinDatosDePerfil(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	company := registerCompany(t, uc, "owner@acme.co", "Acme")
	reg, err := uc.RegisterEmployee(ctx, "acme", dto.RegisterEmployeeRequest{
		Email: "eva@acme.co", Password: "Secret1!", FullName: "Eva", Position: "Ventas", Phone: "300",
	})
	require.NoError(t, err)

	emp, err := store.Employees().GetByAccountID(ctx, reg.User.ID)
	require.NoError(t, err)
	require.NoError(t, emp.Reject(company.User.ID, time.Now().UTC()))
	require.NoError(t, store.Employees().TransitionStatus(ctx, emp, entity.EmployeePending))

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "eva@acme.co", Password: "Secret1!"})
	require.NoError(t, err)
	assert.Equal(t, dto.ProfileTypeEmployee, out.User.ProfileType)
	require.NotNil(t, out.User.Employee)
	e := out.User.Employee
	assert.Equal(t, "REJECTED", e.Status)
	assert.Empty(t, e.FullName)
	assert.Empty(t, e.Position)
	assert.Empty(t, e.Phone)
	assert.Empty(t, e.Slug)
	assert.Nil(t, e.Company)
	assert.NotNil(t, e.ReviewedAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: un fallo tras crear la cuenta no deja registros
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterPersonal_FalloTrasCrearCuenta_Rollback(t *testing.T) {
	uc, store := newAuth(t)
	store.FailOn(memstore.OpPersonalCreate, errBoom)

	_, err := uc.RegisterPersonal(context.Background(), dto.RegisterPersonalRequest{Email: "a@x.com", Password: "Secret1!", FullName: "Ana"})
	require.ErrorIs(t, err, errBoom)

	for table, n := range store.Counts() {
		assert.Zero(t, n, "tabla %s debe quedar vacía", table)
	}

	// El email queda libre: el reintento funciona.
	store.ClearFailures()
	_, err = uc.RegisterPersonal(context.Background(), dto.RegisterPersonalRequest{Email: "a@x.com", Password: "Secret1!", FullName: "Ana"})
	require.NoError(t, err)
}

func TestRegisterCompany_FalloEnVinculo_Rollback(t *testing.T) {
	uc, store := newAuth(t)
	store.FailOn(memstore.OpAdminLinkCreate, errBoom)

	_, err := uc.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{Email: "o@acme.co", Password: "Secret1!", CompanyName: "Acme"})
	require.ErrorIs(t, err, errBoom)
	assert.Zero(t, store.Counts()["accounts"])
	assert.Zero(t, store.Counts()["companies"])
	assert.Zero(t, store.Counts()["links"])
}

func TestRegisterEmployee_FalloEnSlug_Rollback(t *testing.T) {
	uc, store := newAuth(t)
	registerCompany(t, uc, "owner@acme.co", "Acme")
	before := store.Counts()
	store.FailOn(memstore.OpSlugReserve, errBoom)

	_, err := uc.RegisterEmployee(context.Background(), "acme", dto.RegisterEmployeeRequest{Email: "j@acme.co", Password: "Secret1!", FullName: "Juan"})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, before, store.Counts())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambio de contraseña y super admin
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	reg, err := uc.RegisterPersonal(ctx, dto.RegisterPersonalRequest{Email: "a@x.com", Password: "Secret1!", FullName: "Ana"})
	require.NoError(t, err)
	acc, err := store.Accounts().GetByID(ctx, reg.User.ID)
	require.NoError(t, err)
	p := &auth.Principal{Account: acc}

	err = uc.ChangePassword(ctx, p, dto.ChangePasswordRequest{CurrentPassword: "mal", NewPassword: "Nuevo123!"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.NoError(t, uc.ChangePassword(ctx, p, dto.ChangePasswordRequest{CurrentPassword: "Secret1!", NewPassword: "Nuevo123!"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "Nuevo123!"})
	assert.NoError(t, err)
}

func TestCreateSuperAdmin_Idempotente(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	created, err := uc.CreateSuperAdmin(ctx, "root@ophua.io", "Sup3rSecret!")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.CreateSuperAdmin(ctx, "ROOT@ophua.io", "Sup3rSecret!")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, store.Counts()["accounts"])

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "root@ophua.io", Password: "Sup3rSecret!"})
	require.NoError(t, err)
	assert.Equal(t, dto.ProfileTypeSuperAdmin, out.User.ProfileType)
}
