package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const RoleAdmin = "admin"

type Config struct {
	AdminUsername string
	// AdminPasswordHash, when set, is a bcrypt hash and takes precedence
	// over the plaintext AdminPassword.
	AdminPassword     string
	AdminPasswordHash string
	JWT               JWTConfig
}

// Service authenticates the single operator account and issues tokens for it.
// Credentials are static configuration; there is no user database.
type Service struct {
	config Config
}

func NewService(config Config) *Service {
	return &Service{config: config}
}

// Login exchanges the admin credentials for a signed operator token.
func (s *Service) Login(username, password string) (string, error) {
	if !s.checkCredentials(username, password) {
		return "", ErrInvalidCredentials
	}

	token, err := GenerateToken(s.config.JWT, s.config.AdminUsername, RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

func (s *Service) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUsername)) == 1

	if s.config.AdminPasswordHash != "" {
		passOK := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(password)) == nil
		return userOK && passOK
	}

	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) == 1
	return userOK && passOK
}
