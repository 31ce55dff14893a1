package middleware

import (
	"context"
	"net/http"
	"strings"

	"taskhub/internal/domain"
	"taskhub/internal/logger"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key under which the authenticated account
// is stored.
const SessionKey = "session_account"

// AccountLoader resolves a verified token subject to a persisted account.
type AccountLoader interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// RequireAuth verifies the bearer token and resolves its subject to an
// account, failing closed. A missing header, a bad token, and a valid
// token whose account no longer exists all produce the same 401; the
// distinction lives only in the logs.
func RequireAuth(tokens *service.TokenService, accounts AccountLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c)
			return
		}

		claims, err := tokens.VerifyAccess(token)
		if err != nil {
			unauthorized(c)
			return
		}

		acc, err := accounts.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil {
			logger.Warn("token subject has no account", "account_id", claims.AccountID)
			unauthorized(c)
			return
		}

		c.Set(SessionKey, acc)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}

// SessionAccount returns the account stored by RequireAuth.
func SessionAccount(c *gin.Context) (*domain.Account, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	acc, ok := v.(*domain.Account)
	return acc, ok
}
