package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/dto"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/repository"
	"github.com/MahmudHudayiTaner/kafka-proje/pkg/auth"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

var _ AdminStore = (*repository.AdminRepository)(nil)

type AuthService struct {
	admins     AdminStore
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(admins AdminStore, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		admins:     admins,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	admin, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(req.Password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(admin.ID.String(), admin.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", zap.String("username", admin.Username))

	return &dto.AuthResponse{
		Token:     token,
		ExpiresIn: int64(s.jwtManager.GetTokenDuration().Seconds()),
	}, nil
}

// EnsureAdmin creates the initial account from configuration on
// startup. Empty credentials skip seeding; an existing account is
// left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.logger.Warn("admin credentials not configured, no account seeded")
		return nil
	}

	if existing, _ := s.admins.GetByUsername(ctx, username); existing != nil {
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		ID:        uuid.New(),
		Username:  username,
		Password:  hashed,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := s.admins.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("admin account seeded", zap.String("username", username))
	return nil
}
