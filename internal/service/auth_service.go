package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"littlestar/internal/security"
	"littlestar/internal/store"
)

var (
	// ErrInvalidPIN is returned when a parent PIN does not match.
	ErrInvalidPIN = errors.New("invalid PIN")
	// ErrInvalidToken is returned for missing, malformed or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthService guards the parent surface. Parents authenticate with a PIN and
// receive a signed token for the session; there are no user accounts.
type AuthService struct {
	store       *store.Store
	secret      []byte
	duration    time.Duration
	pinOverride string
}

// NewAuthService creates the auth service. pinOverride, when non-empty, takes
// precedence over the PIN stored in settings (set via environment so the
// secret never has to live in the settings document).
func NewAuthService(st *store.Store, secret string, duration time.Duration, pinOverride string) *AuthService {
	return &AuthService{
		store:       st,
		secret:      []byte(secret),
		duration:    duration,
		pinOverride: pinOverride,
	}
}

// storedPIN returns the PIN (or bcrypt hash) the login should check against.
func (s *AuthService) storedPIN() (string, error) {
	if s.pinOverride != "" {
		return s.pinOverride, nil
	}
	settings, err := s.store.Settings()
	if err != nil {
		return "", err
	}
	return settings.AdminPIN, nil
}

// Login validates the PIN and returns a signed session token.
func (s *AuthService) Login(pin string) (string, error) {
	stored, err := s.storedPIN()
	if err != nil {
		return "", err
	}
	if !security.CheckPIN(stored, pin) {
		return "", ErrInvalidPIN
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Subject:   "parent",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks a session token's signature and expiry.
func (s *AuthService) VerifyToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// ChangePIN verifies the current PIN and stores the new one hashed.
func (s *AuthService) ChangePIN(current, updated string) error {
	stored, err := s.storedPIN()
	if err != nil {
		return err
	}
	if !security.CheckPIN(stored, current) {
		return ErrInvalidPIN
	}
	if len(updated) < 4 {
		return errors.New("PIN must be at least 4 characters")
	}

	hash, err := security.HashPIN(updated)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}

	settings, err := s.store.Settings()
	if err != nil {
		return err
	}
	settings.AdminPIN = hash
	return s.store.SaveSettings(settings)
}
