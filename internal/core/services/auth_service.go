package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
	"github.com/finbook/finbook_app/internal/utils"
	"github.com/finbook/finbook_app/pkg/config"
)

// ErrInvalidCredentials is returned for any authentication failure. The same
// error covers unknown usernames and wrong passwords so responses do not
// reveal which one occurred.
var ErrInvalidCredentials = errors.New("invalid username or password")

// authService implements the AuthSvcFacade interface
type authService struct {
	BaseService
	userRepo        portsrepo.UserRepositoryFacade
	categoryService portssvc.CategorySvcFacade
	cfg             *config.Config
}

// NewAuthService creates a new auth service. The category service is used to
// seed a new user's default categories at registration.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, categoryService portssvc.CategorySvcFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:        userRepo,
		categoryService: categoryService,
		cfg:             cfg,
	}
}

// Ensure authService implements the AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now()
	user := domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to save user")
		return nil, err
	}

	// Seed the starter categories; registration still succeeds if this
	// fails, the user just begins without them.
	if err := s.categoryService.SeedDefaults(ctx, saved.UserID); err != nil {
		s.LogError(ctx, err, "Failed to seed default categories for new user",
			slog.Int64("user_id", saved.UserID))
	}

	s.LogInfo(ctx, "User registered", slog.Int64("user_id", saved.UserID))
	return saved, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a valid refresh token into a fresh token pair. The old
// token is invalidated by overwriting its stored hash.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, err := utils.ParseAndValidateJWT(refreshToken, s.cfg.JWTSecret)
	if err != nil {
		return nil, apperrors.NewAppError(401, "invalid refresh token", err)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.RefreshTokenHash == "" || !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, apperrors.NewAppError(401, "refresh token revoked", nil)
	}
	if user.RefreshExpiresAt == nil || time.Now().After(*user.RefreshExpiresAt) {
		return nil, apperrors.NewAppError(401, "refresh token expired", nil)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// issueTokens creates the access/refresh pair and stores the refresh token
// hash, rotating out any previous one.
func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.Int64("user_id", user.UserID))
		return nil, apperrors.NewAppError(500, "failed to generate access token", err)
	}

	refreshToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.Int64("user_id", user.UserID))
		return nil, apperrors.NewAppError(500, "failed to generate refresh token", err)
	}

	now := time.Now()
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiryDuration)
	refreshHash := utils.HashRefreshToken(refreshToken)
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshHash, &refreshExpiry, now); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.Int64("user_id", user.UserID))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.JWTExpiryDuration.Seconds()),
		User:         dto.ToUserResponse(user),
	}, nil
}
