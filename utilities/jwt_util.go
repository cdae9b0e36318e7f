package utilities

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cms-extensions/internal/model"
)

// Secret keys
var (
	secretsMu     sync.RWMutex
	accessSecret  = []byte("change-me-access")
	refreshSecret = []byte("change-me-refresh")
	accessExpiry  = AccessTokenExpiry
)

// Token expiration times
const (
	AccessTokenExpiry  = time.Minute * 15
	RefreshTokenExpiry = time.Hour * 24 * 7
)

var (
	ErrInvalidToken = errors.New("invalid or malformed token")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims struct
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// ConfigureTokens derives the access and refresh signing keys from secret.
// A positive sessionMinutes replaces the default access token lifetime.
func ConfigureTokens(secret string, sessionMinutes int) {
	secretsMu.Lock()
	defer secretsMu.Unlock()
	if secret != "" {
		accessSecret = []byte("access:" + secret)
		refreshSecret = []byte("refresh:" + secret)
	}
	if sessionMinutes > 0 {
		accessExpiry = time.Duration(sessionMinutes) * time.Minute
	} else {
		accessExpiry = AccessTokenExpiry
	}
}

func keys() (access, refresh []byte, expiry time.Duration) {
	secretsMu.RLock()
	defer secretsMu.RUnlock()
	return accessSecret, refreshSecret, accessExpiry
}

// GenerateTokens creates both access and refresh tokens
func GenerateTokens(p model.Principal) (string, string, error) {
	access, refresh, expiry := keys()

	accessToken, err := generateToken(p, access, expiry)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := generateToken(p, refresh, RefreshTokenExpiry)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateToken verifies the token and extracts claims
func ValidateToken(tokenStr string, isRefresh bool) (*Claims, error) {
	secret, refresh, _ := keys()
	if isRefresh {
		secret = refresh
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RefreshTokens generates a new access and refresh token using a valid refresh token
func RefreshTokens(refreshToken string) (string, string, error) {
	claims, err := ValidateToken(refreshToken, true)
	if err != nil {
		return "", "", err
	}
	return GenerateTokens(model.Principal{Username: claims.Username, Role: claims.Role})
}

// Helper function to generate JWT token
func generateToken(p model.Principal, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   p.Username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
