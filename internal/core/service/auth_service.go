package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
	"github.com/vertex-clinic/booking-api/internal/core/ports"
	"github.com/vertex-clinic/booking-api/internal/infrastructure/metrics"
)

const defaultSessionTTL = time.Hour

// AuthService authenticates the single configured administrator and manages
// the resulting server-side sessions.
type AuthService struct {
	sessions     ports.SessionStore
	username     []byte
	passwordHash []byte
	sessionTTL   time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAuthService hashes the admin password once so that login attempts are
// verified with bcrypt rather than compared as plain strings.
func NewAuthService(sessions ports.SessionStore, username, password string, sessionTTL time.Duration, logger zerolog.Logger) (*AuthService, error) {
	if username == "" || password == "" {
		return nil, errors.New("auth: admin username and password are required")
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash admin password: %w", err)
	}

	return &AuthService{
		sessions:     sessions,
		username:     []byte(username),
		passwordHash: hash,
		sessionTTL:   sessionTTL,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// SessionTTL is the inactivity window applied to new and refreshed sessions.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Login checks the credentials and, on success, opens a new admin session.
// A wrong username and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), s.username) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	if !userOK || !passOK {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		s.logger.Warn().Msg("admin login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		IsAdmin:   true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session, s.sessionTTL); err != nil {
		s.logger.Error().Err(err).Msg("failed to save session")
		return nil, fmt.Errorf("%w: save session: %w", domain.ErrPersistence, err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Msg("admin logged in")
	return session, nil
}

// Authorize resolves a session ID to an admin session and slides its
// inactivity window. Anything short of a live admin session is ErrUnauthorized.
func (s *AuthService) Authorize(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: load session: %w", domain.ErrPersistence, err)
	}

	now := s.now().UTC()
	if !session.IsAdmin || session.Expired(now) {
		return nil, domain.ErrUnauthorized
	}

	if err := s.sessions.Touch(ctx, session.ID, s.sessionTTL); err != nil {
		// The session is still valid for this request; only the extension failed.
		s.logger.Warn().Err(err).Msg("failed to refresh session ttl")
	} else {
		session.ExpiresAt = now.Add(s.sessionTTL)
	}

	return session, nil
}
