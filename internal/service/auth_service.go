package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "ade-data"

// AuthSettings admin credentials and token signing
type AuthSettings struct {
	JWTSecret    string
	Username     string
	PasswordHash string // bcrypt
	TokenTTL     time.Duration
}

// AdminClaims JWT claims of an admin token
type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService single-account admin login backed by a bcrypt hash.
type AuthService struct {
	settings AuthSettings
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(settings AuthSettings, logger *zap.Logger) *AuthService {
	if settings.TokenTTL <= 0 {
		settings.TokenTTL = 24 * time.Hour
	}
	return &AuthService{settings: settings, logger: logger, now: time.Now}
}

// LoginResult body of a successful login
type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login checks the credentials and issues an HS256 token.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	if s.settings.PasswordHash == "" {
		s.logger.Warn("Admin login attempted but ADMIN_PASSWORD_HASH is not set")
		return nil, UnauthorizedError("Admin login is disabled")
	}
	username = strings.TrimSpace(username)
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.settings.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.settings.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		s.logger.Info("Admin login rejected", zap.String("username", username))
		return nil, UnauthorizedError("Invalid username or password")
	}

	token, expiresAt, err := s.GenerateToken(username)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	s.logger.Info("Admin logged in", zap.String("username", username))
	return &LoginResult{Token: token, Username: username, ExpiresAt: expiresAt}, nil
}

// GenerateToken signs an admin token for username.
func (s *AuthService) GenerateToken(username string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.settings.TokenTTL)
	claims := &AdminClaims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.settings.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies an admin token.
func (s *AuthService) ValidateToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.settings.JWTSecret), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, UnauthorizedError("Token expired")
		}
		return nil, UnauthorizedError("Invalid token")
	}
	if !token.Valid || claims.Role != "admin" {
		return nil, UnauthorizedError("Invalid token")
	}
	return claims, nil
}

// HashPassword bcrypt-hashes a password for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", errors.New("password must be at least 8 characters")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
