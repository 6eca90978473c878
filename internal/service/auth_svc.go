package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
	"github.com/graphuraprojects/farming-sub001/pkg/auth"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
}

// RefreshStore is the allowlist of live refresh tokens (redis in prod).
type RefreshStore interface {
	Save(ctx context.Context, userID, token string) error
	Validate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type AuthSvc struct {
	users      UserStore
	tokens     RefreshStore
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthSvc(users UserStore, tokens RefreshStore, accessTTL, refreshTTL time.Duration) *AuthSvc {
	return &AuthSvc{users: users, tokens: tokens, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *AuthSvc) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Name: name, Email: email, PasswordHash: string(hash), Role: r}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthSvc) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, "", "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", domain.ErrInvalidCredentials
	}
	access, refresh, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// Refresh rotates the refresh token: the presented one is revoked whether or
// not a new pair is issued, so a replayed token dies on first use.
func (s *AuthSvc) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	userID, err := s.tokens.Validate(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return "", "", err
	}
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return "", "", domain.ErrInvalidToken
	}
	return s.issueTokens(ctx, u)
}

func (s *AuthSvc) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *AuthSvc) issueTokens(ctx context.Context, u *domain.User) (string, string, error) {
	access, err := auth.CreateToken(u.ID, string(u.Role), u.Email, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.CreateToken(u.ID, string(u.Role), u.Email, s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	if err := s.tokens.Save(ctx, u.ID, refresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
