package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/epicesports/tournament-platform/models"
	"github.com/epicesports/tournament-platform/repositories"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials — запасные креды администратора из окружения; позволяют
// войти в админку, даже когда БД недоступна.
type AdminCredentials struct {
	Email    string
	Password string
}

type AuthService struct {
	userRepo repositories.UserRepository
	fallback AdminCredentials
	logger   *slog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, fallback AdminCredentials, logger *slog.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, fallback: fallback, logger: logger}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if user := s.fallbackLogin(input); user != nil {
			if !errors.Is(err, repositories.ErrUserNotFound) {
				s.logger.Warn("store unavailable, admin logged in via environment credentials", slog.Any("error", err))
			}
			return user, nil
		}
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *AuthService) fallbackLogin(input LoginInput) *models.User {
	if s.fallback.Email == "" || s.fallback.Password == "" {
		return nil
	}
	if !strings.EqualFold(input.Email, s.fallback.Email) || input.Password != s.fallback.Password {
		return nil
	}
	return &models.User{
		Email: strings.ToLower(s.fallback.Email),
		Name:  "Admin Owner",
		Role:  models.RoleAdmin,
	}
}

// EnsureAdmin создаёт администратора из окружения при первом старте, если его
// ещё нет в БД. Ошибки хранилища не фатальны: fallback-вход остаётся доступен.
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	if s.fallback.Email == "" || s.fallback.Password == "" {
		return nil
	}

	if _, err := s.userRepo.GetByEmail(ctx, s.fallback.Email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.fallback.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        strings.ToLower(s.fallback.Email),
		PasswordHash: string(hash),
		Name:         "Admin Owner",
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.logger.Info("admin account bootstrapped", slog.String("email", admin.Email))
	return nil
}
