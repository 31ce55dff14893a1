package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every way a token can fail verification: bad
// signature, expired, malformed, or the wrong kind for the operation. The
// caller gets no finer-grained signal than 401.
var ErrInvalidToken = errors.New("invalid token")

const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// Claims are the payload carried by both token kinds.
type Claims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256-signed bearer tokens with an
// embedded expiry. Refresh rotation is stateless: nothing is persisted and
// old refresh tokens stay valid until they expire.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) MintAccess(accountID, email string) (string, error) {
	return s.mint(accountID, email, TokenKindAccess, s.accessTTL)
}

func (s *TokenService) MintRefresh(accountID, email string) (string, error) {
	return s.mint(accountID, email, TokenKindRefresh, s.refreshTTL)
}

func (s *TokenService) mint(accountID, email, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		Email:     email,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token of either kind.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AccountID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccess accepts only access-kind tokens.
func (s *TokenService) VerifyAccess(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenKindAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh accepts only refresh-kind tokens.
func (s *TokenService) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenKindRefresh {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
