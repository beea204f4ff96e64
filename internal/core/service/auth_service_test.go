package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

type stubSessionStore struct {
	sessions map[string]*domain.Session
	ttls     map[string]time.Duration
	saveErr  error
	getErr   error
	touchErr error
	touched  []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		sessions: make(map[string]*domain.Session),
		ttls:     make(map[string]time.Duration),
	}
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	clone := *sess
	s.sessions[sess.ID] = &clone
	s.ttls[sess.ID] = ttl
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Touch(_ context.Context, id string, ttl time.Duration) error {
	if s.touchErr != nil {
		return s.touchErr
	}
	s.touched = append(s.touched, id)
	s.ttls[id] = ttl
	return nil
}

func newTestAuthService(t *testing.T, store *stubSessionStore) *AuthService {
	t.Helper()
	svc, err := NewAuthService(store, "admin", "s3cret", time.Hour, discardLogger)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc
}

func TestNewAuthService_RequiresCredentials(t *testing.T) {
	if _, err := NewAuthService(newStubSessionStore(), "", "pw", time.Hour, discardLogger); err == nil {
		t.Fatalf("expected error for empty username")
	}
	if _, err := NewAuthService(newStubSessionStore(), "admin", "", time.Hour, discardLogger); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestNewAuthService_DefaultTTL(t *testing.T) {
	svc, err := NewAuthService(newStubSessionStore(), "admin", "pw", 0, discardLogger)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	if svc.SessionTTL() != time.Hour {
		t.Fatalf("expected default TTL of 1h, got %v", svc.SessionTTL())
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(t, store)

	sess, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if sess.ID == "" || !sess.IsAdmin {
		t.Fatalf("expected admin session with an ID, got %+v", sess)
	}
	if _, ok := store.sessions[sess.ID]; !ok {
		t.Fatalf("session not saved in store")
	}
	if store.ttls[sess.ID] != time.Hour {
		t.Fatalf("expected session TTL 1h, got %v", store.ttls[sess.ID])
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	cases := []struct{ name, user, pass string }{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "s3cret"},
		{"both empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStubSessionStore()
			svc := newTestAuthService(t, store)

			sess, err := svc.Login(context.Background(), tc.user, tc.pass)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if sess != nil {
				t.Fatalf("expected no session")
			}
			if len(store.sessions) != 0 {
				t.Fatalf("failed login must not create a session")
			}
		})
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	store := newStubSessionStore()
	store.saveErr = errors.New("redis down")
	svc := newTestAuthService(t, store)

	_, err := svc.Login(context.Background(), "admin", "s3cret")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestAuthService_Authorize_ValidSessionSlidesWindow(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(t, store)

	sess, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	later := time.Now().Add(30 * time.Minute)
	svc.now = func() time.Time { return later }

	got, err := svc.Authorize(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if got.ID != sess.ID {
		t.Fatalf("expected session %s, got %s", sess.ID, got.ID)
	}
	if len(store.touched) != 1 || store.touched[0] != sess.ID {
		t.Fatalf("expected session TTL refreshed, touched=%v", store.touched)
	}
	if !got.ExpiresAt.Equal(later.UTC().Add(time.Hour)) {
		t.Fatalf("expected expiry slid to %v, got %v", later.UTC().Add(time.Hour), got.ExpiresAt)
	}
}

func TestAuthService_Authorize_Rejects(t *testing.T) {
	now := time.Now().UTC()
	store := newStubSessionStore()
	store.sessions["guest"] = &domain.Session{ID: "guest", IsAdmin: false, ExpiresAt: now.Add(time.Hour)}
	store.sessions["stale"] = &domain.Session{ID: "stale", IsAdmin: true, ExpiresAt: now.Add(-time.Minute)}
	svc := newTestAuthService(t, store)

	for _, id := range []string{"", "unknown", "guest", "stale"} {
		if _, err := svc.Authorize(context.Background(), id); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("session %q: expected ErrUnauthorized, got %v", id, err)
		}
	}
	if len(store.touched) != 0 {
		t.Fatalf("rejected sessions must not be refreshed")
	}
}

func TestAuthService_Authorize_StoreError(t *testing.T) {
	store := newStubSessionStore()
	store.getErr = errors.New("redis down")
	svc := newTestAuthService(t, store)

	_, err := svc.Authorize(context.Background(), "abc")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestAuthService_Authorize_TouchFailureStillAuthorizes(t *testing.T) {
	store := newStubSessionStore()
	svc := newTestAuthService(t, store)
	sess, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	store.touchErr = errors.New("redis blip")

	if _, err := svc.Authorize(context.Background(), sess.ID); err != nil {
		t.Fatalf("expected authorization despite touch failure, got %v", err)
	}
}
