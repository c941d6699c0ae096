package services

import (
	"time"

	"github.com/charmbracelet/log"

	"task-board.com/task-board/internal/auth"
	apperrors "task-board.com/task-board/internal/errors"
)

type AuthService struct {
	admins *auth.CredentialStore
	tokens *auth.TokenService
	logger *log.Logger
	now    func() time.Time
}

func NewAuthService(
	admins *auth.CredentialStore,
	tokens *auth.TokenService,
	logger *log.Logger,
	now func() time.Time,
) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		admins: admins,
		tokens: tokens,
		logger: logger,
		now:    now,
	}
}

// Login returns a signed token for a matching administrator.
func (s *AuthService) Login(username, password string) (string, error) {
	admin, ok := s.admins.FindAdmin(username, password)
	if !ok {
		s.logger.Warn("login rejected", "username", username)
		return "", apperrors.ErrUnauthenticated
	}

	token, err := s.tokens.Issue(admin.Username, s.now())
	if err != nil {
		s.logger.Error("failed to issue token", "username", admin.Username, "err", err)
		return "", apperrors.ErrInternal
	}

	s.logger.Info("login accepted", "username", admin.Username)
	return token, nil
}
