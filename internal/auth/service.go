package auth

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/consite/inventory-service/internal/errs"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/logger"
)

// UserReader is the slice of the user repository login needs.
type UserReader interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type Service struct {
	users  UserReader
	tokens *TokenManager
	logger logger.Logger
}

func NewService(users UserReader, tokens *TokenManager, log logger.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: log}
}

// Login verifies the credentials and issues a signed token. Failures are
// indistinguishable to the caller regardless of whether the account
// exists.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errs.Internal("failed to resolve user", err)
	}
	if u == nil || !u.IsActive {
		return "", nil, errs.AuthenticationRequired("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", email))
		return "", nil, errs.AuthenticationRequired("invalid credentials")
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return "", nil, errs.Internal("failed to issue token", err)
	}
	return token, u, nil
}
