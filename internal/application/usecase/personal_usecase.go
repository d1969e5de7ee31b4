package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ophuaconnect-api/internal/application/auth"
	"github.com/jhoicas/ophuaconnect-api/internal/application/dto"
	"github.com/jhoicas/ophuaconnect-api/internal/application/mapper"
	"github.com/jhoicas/ophuaconnect-api/internal/domain"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/entity"
	"github.com/jhoicas/ophuaconnect-api/internal/domain/repository"
)

// PersonalUseCase autoservicio del perfil personal.
type PersonalUseCase struct {
	repo repository.PersonalProfileRepository
	now  func() time.Time
}

// NewPersonalUseCase construye el caso de uso con el puerto de persistencia.
func NewPersonalUseCase(repo repository.PersonalProfileRepository) *PersonalUseCase {
	return &PersonalUseCase{repo: repo, now: time.Now}
}

// GetMe perfil de la cuenta PERSONAL autenticada.
func (uc *PersonalUseCase) GetMe(ctx context.Context, p *auth.Principal) (*dto.PersonalProfileResponse, error) {
	profile, err := uc.self(ctx, p)
	if err != nil {
		return nil, err
	}
	return mapper.PersonalProfile(profile), nil
}

// UpdateMe edita los campos presentes. El slug se asigna en el registro y no cambia.
func (uc *PersonalUseCase) UpdateMe(ctx context.Context, p *auth.Principal, in dto.UpdatePersonalProfileRequest) (*dto.PersonalProfileResponse, error) {
	profile, err := uc.self(ctx, p)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrValidation)
		}
		profile.FullName = name
	}
	setTrimmed(&profile.Phone, in.Phone)
	setTrimmed(&profile.Headline, in.Headline)
	setTrimmed(&profile.Bio, in.Bio)
	setTrimmed(&profile.Website, in.Website)
	profile.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("actualizar perfil personal: %w", err)
	}
	return mapper.PersonalProfile(profile), nil
}

func (uc *PersonalUseCase) self(ctx context.Context, p *auth.Principal) (*entity.PersonalProfile, error) {
	if p == nil || p.Account == nil {
		return nil, domain.ErrUnauthorized
	}
	if p.Role() != entity.RolePersonal {
		return nil, domain.ErrForbidden
	}
	profile, err := uc.repo.GetByAccountID(ctx, p.Account.ID)
	if err != nil {
		return nil, fmt.Errorf("buscar perfil personal: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}
