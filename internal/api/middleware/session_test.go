package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

type stubAuthorizer struct {
	sessions map[string]*domain.Session
	err      error
}

func (a *stubAuthorizer) Authorize(_ context.Context, id string) (*domain.Session, error) {
	if a.err != nil {
		return nil, a.err
	}
	s, ok := a.sessions[id]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s, nil
}

// stubCookies stores the raw session ID in the cookie value.
type stubCookies struct {
	reissued []string
}

func (s *stubCookies) Read(c echo.Context) (string, error) {
	ck, err := c.Cookie("sid")
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (s *stubCookies) Issue(c echo.Context, id string) error {
	s.reissued = append(s.reissued, id)
	return nil
}

func runRequireAdmin(t *testing.T, auth *stubAuthorizer, cookies *stubCookies, cookieValue string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := RequireAdmin(auth, cookies)(func(c echo.Context) error {
		called = true
		if _, ok := c.Get(SessionContextKey).(*domain.Session); !ok {
			t.Fatalf("session not stored in context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRequireAdmin_ValidSession(t *testing.T) {
	auth := &stubAuthorizer{sessions: map[string]*domain.Session{"s1": {ID: "s1", IsAdmin: true}}}
	cookies := &stubCookies{}

	rec, called := runRequireAdmin(t, auth, cookies, "s1")

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(cookies.reissued) != 1 || cookies.reissued[0] != "s1" {
		t.Fatalf("expected cookie re-issued for s1, got %v", cookies.reissued)
	}
}

func TestRequireAdmin_MissingCookie(t *testing.T) {
	rec, called := runRequireAdmin(t, &stubAuthorizer{}, &stubCookies{}, "")

	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdmin_UnknownSession(t *testing.T) {
	cookies := &stubCookies{}
	rec, called := runRequireAdmin(t, &stubAuthorizer{sessions: map[string]*domain.Session{}}, cookies, "stale")

	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(cookies.reissued) != 0 {
		t.Fatalf("rejected session must not get a fresh cookie")
	}
}

func TestRequireAdmin_StoreFailure(t *testing.T) {
	auth := &stubAuthorizer{err: errors.Join(domain.ErrPersistence, errors.New("redis down"))}

	rec, called := runRequireAdmin(t, auth, &stubCookies{}, "s1")

	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
