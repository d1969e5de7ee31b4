package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/mapper"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
	"github.com/jhoicas/ophuaconnect-api/pkg/jwt"
	"github.com/jhoicas/ophuaconnect-api/pkg/logger"
	"github.com/jhoicas/ophuaconnect-api/pkg/slug"
)

// Config parámetros de emisión de credenciales. Todos vienen de la configuración del despliegue.
type Config struct {
	JWTSecret  string
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
}

// AuthUseCase casos de uso de autenticación: login, registros por rol y cambio de contraseña.
type AuthUseCase struct {
	store     repository.Store
	tx        TxRunner
	cfg       Config
	log       *logger.Logger
	dummyHash []byte
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(store repository.Store, tx TxRunner, cfg Config, log *logger.Logger) *AuthUseCase {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logger.Nop()
	}
	// Hash de relleno: el login compara contra él cuando la cuenta no existe,
	// así el tiempo de respuesta no revela qué emails están registrados.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("ophua-dummy-password"), cfg.BcryptCost)
	return &AuthUseCase{
		store:     store,
		tx:        tx,
		cfg:       cfg,
		log:       log.Component("auth"),
		dummyHash: dummy,
		now:       time.Now,
	}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente, cuenta inactiva y password incorrecto devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	acc, err := uc.store.Accounts().GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: buscar cuenta: %w", err)
	}
	if acc == nil || !acc.Active {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
		uc.log.Info().Str("email", email).Msg("login rechazado: cuenta inexistente o inactiva")
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Info().Str("account_id", acc.ID).Msg("login rechazado: password incorrecto")
		return nil, domain.ErrInvalidCredentials
	}

	out, err := uc.issue(ctx, acc)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("account_id", acc.ID).Str("role", string(acc.Role)).Msg("login correcto")
	return out, nil
}

// RegisterPersonal crea Account(PERSONAL) + PersonalProfile en una sola transacción.
func (uc *AuthUseCase) RegisterPersonal(ctx context.Context, in dto.RegisterPersonalRequest) (*dto.AuthResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	if err := uc.ensureEmailAvailable(ctx, email); err != nil {
		return nil, err
	}
	hash, err := uc.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	acc := newAccount(email, hash, entity.RolePersonal, now)

	err = uc.tx.RunInTx(ctx, func(s repository.Store) error {
		if err := s.Accounts().Create(ctx, acc); err != nil {
			return err
		}
		profileSlug, err := allocateSlug(ctx, slug.Make(in.FullName), "perfil", s.ProfileSlugs().Exists)
		if err != nil {
			return err
		}
		profile := &entity.PersonalProfile{
			ID:        uuid.New().String(),
			AccountID: acc.ID,
			FullName:  strings.TrimSpace(in.FullName),
			Phone:     strings.TrimSpace(in.Phone),
			Headline:  strings.TrimSpace(in.Headline),
			Slug:      profileSlug,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.PersonalProfiles().Create(ctx, profile); err != nil {
			return err
		}
		return s.ProfileSlugs().Reserve(ctx, &entity.ProfileSlug{
			Slug: profileSlug, Kind: entity.ProfilePersonal, ProfileID: profile.ID, CreatedAt: now,
		})
	})
	if err != nil {
		return nil, uc.registrationFailed("personal", email, err)
	}
	uc.log.Info().Str("account_id", acc.ID).Msg("registro personal completado")
	return uc.issue(ctx, acc)
}

// RegisterCompany crea Account(COMPANY_ADMIN) + Company + CompanyAdminLink en una sola transacción.
func (uc *AuthUseCase) RegisterCompany(ctx context.Context, in dto.RegisterCompanyRequest) (*dto.AuthResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	if err := uc.ensureEmailAvailable(ctx, email); err != nil {
		return nil, err
	}
	hash, err := uc.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	acc := newAccount(email, hash, entity.RoleCompanyAdmin, now)
	var company *entity.Company

	err = uc.tx.RunInTx(ctx, func(s repository.Store) error {
		if err := s.Accounts().Create(ctx, acc); err != nil {
			return err
		}
		companySlug, err := allocateSlug(ctx, slug.Make(in.CompanyName), "empresa", s.Companies().SlugExists)
		if err != nil {
			return err
		}
		company = &entity.Company{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(in.CompanyName),
			Slug:        companySlug,
			Description: strings.TrimSpace(in.Description),
			Email:       email,
			Phone:       strings.TrimSpace(in.Phone),
			Website:     strings.TrimSpace(in.Website),
			Status:      entity.CompanyActive,
			Theme:       entity.DefaultTheme(),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Companies().Create(ctx, company); err != nil {
			return err
		}
		return s.CompanyAdmins().Create(ctx, &entity.CompanyAdminLink{
			AccountID: acc.ID, CompanyID: company.ID, CreatedAt: now,
		})
	})
	if err != nil {
		return nil, uc.registrationFailed("company", email, err)
	}
	uc.log.Info().Str("account_id", acc.ID).Str("company_id", company.ID).Msg("registro de empresa completado")

	out, err := uc.issue(ctx, acc)
	if err != nil {
		return nil, err
	}
	out.Company = mapper.Company(company)
	return out, nil
}

// RegisterEmployee crea Account(EMPLOYEE) + EmployeeProfile(PENDING) en la empresa companySlug.
// Devuelve ErrCompanyNotFound, sin escribir nada, si la empresa no existe o no está activa.
func (uc *AuthUseCase) RegisterEmployee(ctx context.Context, companySlug string, in dto.RegisterEmployeeRequest) (*dto.AuthResponse, error) {
	company, err := uc.store.Companies().GetBySlug(ctx, strings.ToLower(strings.TrimSpace(companySlug)))
	if err != nil {
		return nil, fmt.Errorf("register employee: buscar empresa: %w", err)
	}
	if !company.IsPublic() {
		return nil, domain.ErrCompanyNotFound
	}

	email := entity.NormalizeEmail(in.Email)
	if err := uc.ensureEmailAvailable(ctx, email); err != nil {
		return nil, err
	}
	hash, err := uc.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	acc := newAccount(email, hash, entity.RoleEmployee, now)

	err = uc.tx.RunInTx(ctx, func(s repository.Store) error {
		if err := s.Accounts().Create(ctx, acc); err != nil {
			return err
		}
		profileSlug, err := allocateSlug(ctx, slug.Make(in.FullName), "perfil", s.ProfileSlugs().Exists)
		if err != nil {
			return err
		}
		emp := &entity.EmployeeProfile{
			ID:        uuid.New().String(),
			AccountID: acc.ID,
			CompanyID: company.ID,
			FullName:  strings.TrimSpace(in.FullName),
			Position:  strings.TrimSpace(in.Position),
			Phone:     strings.TrimSpace(in.Phone),
			Slug:      profileSlug,
			Status:    entity.EmployeePending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Employees().Create(ctx, emp); err != nil {
			return err
		}
		return s.ProfileSlugs().Reserve(ctx, &entity.ProfileSlug{
			Slug: profileSlug, Kind: entity.ProfileEmployee, ProfileID: emp.ID, CreatedAt: now,
		})
	})
	if err != nil {
		return nil, uc.registrationFailed("employee", email, err)
	}
	uc.log.Info().Str("account_id", acc.ID).Str("company_id", company.ID).Msg("registro de empleado pendiente de aprobación")
	return uc.issue(ctx, acc)
}

// Profile devuelve el usuario con forma según rol para la cuenta autenticada.
func (uc *AuthUseCase) Profile(ctx context.Context, p *Principal) (*dto.UserResponse, error) {
	if p == nil || p.Account == nil {
		return nil, domain.ErrUnauthorized
	}
	return ShapeUser(ctx, uc.store, p.Account)
}

// ChangePassword cambia la contraseña tras verificar la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, p *Principal, in dto.ChangePasswordRequest) error {
	if p == nil || p.Account == nil {
		return domain.ErrUnauthorized
	}
	acc, err := uc.store.Accounts().GetByID(ctx, p.Account.ID)
	if err != nil {
		return fmt.Errorf("change password: cargar cuenta: %w", err)
	}
	if acc == nil || !acc.Active {
		return domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := uc.hashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.store.Accounts().UpdatePassword(ctx, acc.ID, hash); err != nil {
		return err
	}
	uc.log.Info().Str("account_id", acc.ID).Msg("contraseña actualizada")
	return nil
}

// CreateSuperAdmin crea (si no existe) la cuenta SUPER_ADMIN inicial. Usado por cmd/seed.
// Devuelve created=false si el email ya estaba registrado.
func (uc *AuthUseCase) CreateSuperAdmin(ctx context.Context, email, password string) (created bool, err error) {
	email = entity.NormalizeEmail(email)
	if err := uc.ensureEmailAvailable(ctx, email); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return false, nil
		}
		return false, err
	}
	if len(password) < 8 || len(password) > 72 {
		return false, fmt.Errorf("%w: la contraseña debe tener entre 8 y 72 caracteres", domain.ErrValidation)
	}
	hash, err := uc.hashPassword(password)
	if err != nil {
		return false, err
	}
	acc := newAccount(email, hash, entity.RoleSuperAdmin, uc.now())
	if err := uc.store.Accounts().Create(ctx, acc); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *AuthUseCase) issue(ctx context.Context, acc *entity.Account) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.cfg.JWTSecret, acc.ID, acc.Email, string(acc.Role), uc.cfg.Issuer, uc.cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	user, err := ShapeUser(ctx, uc.store, acc)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: *user}, nil
}

func (uc *AuthUseCase) ensureEmailAvailable(ctx context.Context, email string) error {
	exists, err := uc.store.Accounts().ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("verificar email: %w", err)
	}
	if exists {
		return domain.ErrEmailTaken
	}
	return nil
}

func (uc *AuthUseCase) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: la contraseña no puede superar 72 bytes", domain.ErrValidation)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// registrationFailed registra el fallo y conserva los errores de dominio tal cual.
func (uc *AuthUseCase) registrationFailed(kind, email string, err error) error {
	if errors.Is(err, domain.ErrEmailTaken) || errors.Is(err, domain.ErrSlugTaken) {
		uc.log.Info().Str("kind", kind).Str("email", email).Err(err).Msg("registro rechazado")
		return err
	}
	return fmt.Errorf("registro %s: %w", kind, err)
}

func newAccount(email, hash string, role entity.Role, now time.Time) *entity.Account {
	return &entity.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// maxSlugAttempts límite de sufijos numéricos probados antes de pasar a sufijos aleatorios.
const maxSlugAttempts = 50

// randomSlugAttempts intentos con sufijo aleatorio tras agotar los numéricos.
const randomSlugAttempts = 5

// allocateSlug devuelve base, base-2, base-3... el primero que exists reporte libre.
// Agotados los numéricos prueba base-<hex aleatorio>; la restricción única decide al insertar.
// Una base vacía (nombre sin caracteres latinos) arranca directamente con fallback-<hex>.
func allocateSlug(ctx context.Context, base, fallback string, exists func(context.Context, string) (bool, error)) (string, error) {
	if base != "" {
		for i := 1; i <= maxSlugAttempts; i++ {
			candidate := base
			if i > 1 {
				candidate = slug.WithSuffix(base, i)
			}
			taken, err := exists(ctx, candidate)
			if err != nil {
				return "", fmt.Errorf("verificar slug: %w", err)
			}
			if !taken {
				return candidate, nil
			}
		}
	} else {
		base = fallback
	}
	for i := 0; i < randomSlugAttempts; i++ {
		candidate := slug.WithToken(base, randomSlugToken())
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("verificar slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", domain.ErrSlugTaken
}

// randomSlugToken 8 caracteres hex de un UUID v4.
func randomSlugToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
