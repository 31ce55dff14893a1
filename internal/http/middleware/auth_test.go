package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
)

type stubAccounts struct {
	accounts map[string]*domain.Account
}

func (s stubAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func newAuthTestRouter(t *testing.T, tokens *service.TokenService, accounts AccountLoader) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(tokens, accounts), func(c *gin.Context) {
		acc, ok := SessionAccount(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": acc.ID})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	tokens := service.NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour)
	accounts := stubAccounts{accounts: map[string]*domain.Account{
		"acc-1": {ID: "acc-1", Email: "a@example.com"},
	}}
	r := newAuthTestRouter(t, tokens, accounts)

	access, err := tokens.MintAccess("acc-1", "a@example.com")
	if err != nil {
		t.Fatalf("mint access: %v", err)
	}
	refresh, err := tokens.MintRefresh("acc-1", "a@example.com")
	if err != nil {
		t.Fatalf("mint refresh: %v", err)
	}
	orphan, err := tokens.MintAccess("acc-gone", "gone@example.com")
	if err != nil {
		t.Fatalf("mint orphan: %v", err)
	}

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"refresh token on api", "Bearer " + refresh, http.StatusUnauthorized},
		{"valid token, account gone", "Bearer " + orphan, http.StatusUnauthorized},
		{"valid token", "Bearer " + access, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
			if tc.wantStatus == http.StatusUnauthorized {
				if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
					t.Errorf("WWW-Authenticate = %q, want Bearer", got)
				}
			}
		})
	}
}

// Every authentication failure must produce the same body: a valid token
// whose account disappeared is indistinguishable from a bad token.
func TestRequireAuth_UniformFailureBody(t *testing.T) {
	tokens := service.NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour)
	accounts := stubAccounts{accounts: map[string]*domain.Account{}}
	r := newAuthTestRouter(t, tokens, accounts)

	orphan, err := tokens.MintAccess("acc-gone", "gone@example.com")
	if err != nil {
		t.Fatalf("mint orphan: %v", err)
	}

	var bodies []string
	for _, header := range []string{"Bearer bad.token", "Bearer " + orphan} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		bodies = append(bodies, w.Body.String())
	}

	if bodies[0] != bodies[1] {
		t.Errorf("failure bodies differ: %q vs %q", bodies[0], bodies[1])
	}
}
