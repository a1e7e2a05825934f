package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mandalart/internal/model"
	"mandalart/internal/repository"
	"mandalart/internal/util"
	"mandalart/pkg/logger"
)

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
}

type AuthService struct {
	users     UserStore
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthService(users UserStore, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Login checks credentials and returns the user plus a signed session
// token. An unknown email auto-registers: first login creates the
// account with the email local-part as name and a seeded avatar.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	if u == nil {
		hash, err := util.HashPassword(password)
		if err != nil {
			return nil, "", err
		}

		u = &model.User{
			Email:        email,
			Name:         strings.SplitN(email, "@", 2)[0],
			Avatar:       fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", email),
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		}
		if err := s.users.CreateUser(ctx, u); err != nil {
			return nil, "", err
		}
		logger.WithTrace(ctx, s.logger).Info("user auto-registered", zap.Int("user_id", u.ID), zap.String("email", email))
	} else if !util.CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// CurrentUser resolves a session token into a user, or ErrUnauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	userID, err := util.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return u, nil
}
