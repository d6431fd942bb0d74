package rotation

import (
	"context"
	"errors"
	"testing"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// --- Mocks ---

type mockRotator struct {
	err   error
	calls int
}

func (m *mockRotator) ChangePassword(_ context.Context, _, _, _ string) error {
	m.calls++
	return m.err
}

type mockSessions struct {
	token   string
	logouts int
}

func (m *mockSessions) Credential() (string, error) {
	if m.token == "" {
		return "", domain.ErrNoSession
	}
	return m.token, nil
}

func (m *mockSessions) Logout() error {
	m.logouts++
	m.token = ""
	return nil
}

// --- Tests ---

func TestCheckPolicy(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "secret123", true},
		{"too short", "ab1", false},
		{"digits only", "12345678", false},
		{"letters only", "abcdefgh", false},
		{"exactly eight", "abcdef12", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckPolicy(c.password)
			if c.ok && err != nil {
				t.Errorf("expected pass, got %v", err)
			}
			if !c.ok && !errors.Is(err, domain.ErrWeakPassword) {
				t.Errorf("expected ErrWeakPassword, got %v", err)
			}
		})
	}
}

func TestRotate_WeakPasswordSkipsNetwork(t *testing.T) {
	rot := &mockRotator{}
	sessions := &mockSessions{token: "tok"}
	svc := New(rot, sessions, nil)

	err := svc.Rotate(context.Background(), "admin123", "short")
	if !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if rot.calls != 0 {
		t.Errorf("weak password must not reach the backend, got %d calls", rot.calls)
	}
	if sessions.logouts != 0 {
		t.Errorf("failed rotation must not clear the session")
	}
}

func TestRotate_RequiresSession(t *testing.T) {
	svc := New(&mockRotator{}, &mockSessions{}, nil)

	err := svc.Rotate(context.Background(), "admin123", "newsecret1")
	if !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRotate_WrongCurrentKeepsSession(t *testing.T) {
	rot := &mockRotator{err: domain.ErrUnauthorized}
	sessions := &mockSessions{token: "tok"}
	svc := New(rot, sessions, nil)

	err := svc.Rotate(context.Background(), "wrong", "newsecret1")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if sessions.logouts != 0 {
		t.Errorf("rejected rotation must leave the session valid")
	}
	if _, err := sessions.Credential(); err != nil {
		t.Errorf("session should survive a rejected rotation: %v", err)
	}
}

func TestRotate_SuccessRetiresSession(t *testing.T) {
	rot := &mockRotator{}
	sessions := &mockSessions{token: "tok"}
	svc := New(rot, sessions, nil)

	if err := svc.Rotate(context.Background(), "admin123", "newsecret1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessions.logouts != 1 {
		t.Errorf("successful rotation must clear the session, logouts=%d", sessions.logouts)
	}
	if _, err := sessions.Credential(); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("expected ErrNoSession after rotation, got %v", err)
	}
}
