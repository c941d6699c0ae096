package auth

import (
	"strings"
	"time"

	apperrors "task-board.com/task-board/internal/errors"
)

const bearerPrefix = "Bearer "

// Guard admits a request only when it carries a valid token whose subject is
// still a configured administrator.
type Guard struct {
	tokens *TokenService
	admins *CredentialStore
}

func NewGuard(tokens *TokenService, admins *CredentialStore) *Guard {
	return &Guard{tokens: tokens, admins: admins}
}

// Check returns ErrUnauthenticated for a missing, malformed, forged or
// expired token and ErrForbidden when the subject is no longer an admin.
func (g *Guard) Check(authorization string, now time.Time) (SessionClaims, error) {
	token, ok := strings.CutPrefix(authorization, bearerPrefix)
	if !ok || token == "" {
		return SessionClaims{}, apperrors.ErrUnauthenticated
	}

	claims, err := g.tokens.Verify(token, now)
	if err != nil {
		return SessionClaims{}, apperrors.ErrUnauthenticated
	}

	if !g.admins.IsAdmin(claims.Subject) {
		return SessionClaims{}, apperrors.ErrForbidden
	}
	return claims, nil
}
