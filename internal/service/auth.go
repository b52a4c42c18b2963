package service

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"stc-compliance-backend/internal/domain"
	"stc-compliance-backend/internal/repository"
	"stc-compliance-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Signup registers a new tradie account. Admin accounts are provisioned out
// of band, never self-registered.
func (s *authService) Signup(ctx context.Context, user *domain.User, password string) (*domain.User, string, string, error) {
	if user.Email == "" {
		return nil, "", "", validationErrorf("email is required")
	}
	if len(password) < 8 {
		return nil, "", "", validationErrorf("password must be at least 8 characters")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, "", "", validationErrorf("email already registered")
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	user.PasswordHash = string(hash)
	user.Role = domain.UserRoleTradie

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", "", errors.New("invalid email or password")
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", errors.New("invalid email or password")
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	// Re-read the user so a role change invalidates stale claims.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
