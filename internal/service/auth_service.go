package service

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"cms-extensions/internal/config"
	"cms-extensions/internal/model"
	"cms-extensions/utilities"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

const RoleAdmin = "admin"

// TokenPair is returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService interface
type AuthService interface {
	Login(username, password string) (TokenPair, error)
	Refresh(refreshToken string) (TokenPair, error)
}

type authService struct {
	adminUser    string
	passwordHash []byte
}

// NewAuthService authenticates against the single admin account from the
// AUTHENTICATION config section.
func NewAuthService(cfg config.AuthenticationConfig) AuthService {
	return &authService{
		adminUser:    cfg.AdminUser,
		passwordHash: []byte(cfg.AdminPasswordHash),
	}
}

// HashPassword returns the bcrypt hash to put in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login function to authenticate the admin user
func (s *authService) Login(username, password string) (TokenPair, error) {
	if s.adminUser == "" || len(s.passwordHash) == 0 {
		return TokenPair{}, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUser)) == 1
	// bcrypt runs even when the user name is wrong
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		utilities.Warn("failed login for %q", username)
		return TokenPair{}, ErrInvalidCredentials
	}

	access, refresh, err := utilities.GenerateTokens(model.Principal{Username: username, Role: RoleAdmin})
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Refresh(refreshToken string) (TokenPair, error) {
	access, refresh, err := utilities.RefreshTokens(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
