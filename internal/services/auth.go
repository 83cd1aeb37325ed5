package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/repositories"
	apperrors "ticketdesk/pkg/errors"
	"ticketdesk/pkg/service"
	"ticketdesk/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	profileRepo repositories.ProfileRepositoryInterface
	jwtService  service.JWTService
	logger      *zap.Logger
}

func NewAuthService(
	profileRepo repositories.ProfileRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{profileRepo: profileRepo, jwtService: jwtService, logger: logger}
}

// Login проверяет учетные данные и выдает пару токенов.
// Несуществующий email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	profile, err := s.profileRepo.FindProfileByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(profile.PasswordHash, payload.Password); err != nil {
		s.logger.Warn("Неудачная попытка входа", zap.String("email", payload.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.jwtService.GenerateTokens(profile.ID, profile.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}
