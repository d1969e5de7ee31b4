package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/usecase"
	apphttp "github.com/jhoicas/ophuaconnect-api/internal/interfaces/http"
	"github.com/jhoicas/ophuaconnect-api/internal/testutil/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests-0001"
	testIssuer    = "ophuaconnect-test"
	testPassword  = "Secret1!"
)

type fakeCards struct{}

func (fakeCards) GenerateCard(_ context.Context, card dto.ContactCard) ([]byte, error) {
	return []byte("%PDF-1.4 " + card.Title), nil
}

// fakeThrottle bloquea cuando failures[key] alcanza max.
type fakeThrottle struct {
	mu       sync.Mutex
	max      int
	failures map[string]int
	err      error
}

func newFakeThrottle(max int) *fakeThrottle {
	return &fakeThrottle{max: max, failures: map[string]int{}}
}

func (f *fakeThrottle) Blocked(_ context.Context, key string) (bool, time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, 0, f.err
	}
	return f.failures[key] >= f.max, 90 * time.Second, nil
}

func (f *fakeThrottle) RegisterFailure(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[key]++
	return f.err
}

func (f *fakeThrottle) Reset(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failures, key)
	return f.err
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

var errDown = errors.New("conexión rechazada")

type testServer struct {
	app      *fiber.App
	store    *memstore.Store
	auth     *auth.AuthUseCase
	throttle *fakeThrottle
}

// newTestServer monta la app completa sobre el store en memoria.
func newTestServer(t *testing.T, checks map[string]apphttp.Pinger) *testServer {
	t.Helper()
	store := memstore.New()
	scope := auth.NewScopeChecker(store.CompanyAdmins())
	links := usecase.NewLinks("https://ophua.test")
	authUC := auth.NewAuthUseCase(store, store, auth.Config{
		JWTSecret:  testJWTSecret,
		TokenTTL:   time.Hour,
		Issuer:     testIssuer,
		BcryptCost: bcrypt.MinCost,
	}, nil)
	throttle := newFakeThrottle(3)

	app := apphttp.NewApp("ophuaconnect-test", nil)
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		Authenticator: auth.NewAuthenticator(store, testJWTSecret),
		Scope:         scope,
		CompanyUC:     usecase.NewCompanyUseCase(store, scope, links, nil),
		EmployeeUC:    usecase.NewEmployeeUseCase(store, scope, nil),
		PersonalUC:    usecase.NewPersonalUseCase(store.PersonalProfiles()),
		AccountUC:     usecase.NewAccountUseCase(store.Accounts(), nil),
		PublicUC:      usecase.NewPublicUseCase(store, fakeCards{}, links),
		Throttle:      throttle,
		HealthChecks:  checks,
	})
	return &testServer{app: app, store: store, auth: authUC, throttle: throttle}
}

// do lanza la petición con body JSON opcional y token opcional (sin "Bearer ").
func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[dto.ErrorResponse](t, resp).Code
}

func (s *testServer) registerCompany(t *testing.T, email, name string) dto.AuthResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/register/company", "", dto.RegisterCompanyRequest{
		Email: email, Password: testPassword, CompanyName: name,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	out := decode[dto.AuthResponse](t, resp)
	require.NotNil(t, out.Company)
	return out
}

func (s *testServer) registerEmployee(t *testing.T, companySlug, email, name string) dto.AuthResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/register/employee/"+companySlug, "", dto.RegisterEmployeeRequest{
		Email: email, Password: testPassword, FullName: name, Position: "Ventas",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	out := decode[dto.AuthResponse](t, resp)
	require.NotNil(t, out.User.Employee)
	return out
}

func (s *testServer) superAdminToken(t *testing.T) string {
	t.Helper()
	created, err := s.auth.CreateSuperAdmin(context.Background(), "root@ophua.test", testPassword)
	require.NoError(t, err)
	require.True(t, created)
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "root@ophua.test", Password: testPassword})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decode[dto.AuthResponse](t, resp).Token
}
