package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{"no deadline", time.Time{}, false},
		{"future", now.Add(time.Minute), false},
		{"exactly now", now, true},
		{"past", now.Add(-time.Second), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Session{ID: "abc", IsAdmin: true, ExpiresAt: tc.expires}
			if got := s.Expired(now); got != tc.want {
				t.Fatalf("Expired() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create appointment: %w", &ValidationError{Fields: []string{"fullName", "department"}})

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is(err, ErrValidation)")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected errors.As to find ValidationError")
	}
	if got := ve.Error(); got != "Missing required fields: fullName, department" {
		t.Fatalf("unexpected message: %q", got)
	}
}
