package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/anuvad-labs/anuvad-go/internal/domain"
)

// --- Mocks ---

type mockSource struct {
	ledger     domain.Ledger
	dashErr    error
	resetErr   error
	resets     int
	dashboards int
}

func (m *mockSource) Dashboard(_ context.Context, _ string) (domain.Ledger, error) {
	m.dashboards++
	if m.dashErr != nil {
		return domain.Ledger{}, m.dashErr
	}
	return m.ledger, nil
}

func (m *mockSource) ResetUsage(_ context.Context, _ string) error {
	m.resets++
	if m.resetErr != nil {
		return m.resetErr
	}
	m.ledger = domain.Ledger{BudgetLimit: m.ledger.BudgetLimit, RemainingBudget: m.ledger.BudgetLimit}
	return nil
}

type mockSessions struct {
	token      string
	err        error
	downgrades []error
}

func (m *mockSessions) Credential() (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func (m *mockSessions) Downgrade(err error) { m.downgrades = append(m.downgrades, err) }

func fixtures() (*mockSource, *mockSessions) {
	return &mockSource{ledger: domain.Ledger{
		CurrentUsage:    45,
		BudgetLimit:     100,
		RemainingBudget: 55,
		PercentageUsed:  45,
		TotalRequests:   9,
	}}, &mockSessions{token: "tok"}
}

// --- Tests ---

func TestLoad_ReplacesSnapshotWholesale(t *testing.T) {
	source, sessions := fixtures()
	svc := New(source, sessions, nil)

	if _, ok := svc.Snapshot(); ok {
		t.Fatal("snapshot should be empty before first load")
	}

	ledger, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.CurrentUsage != 45 || ledger.RemainingBudget != 55 {
		t.Errorf("unexpected ledger %+v", ledger)
	}

	source.ledger.CurrentUsage = 60
	source.ledger.RemainingBudget = 40
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, ok := svc.Snapshot()
	if !ok || snap.CurrentUsage != 60 {
		t.Errorf("stale snapshot survived a reload: %+v", snap)
	}
}

func TestLoad_NoSession(t *testing.T) {
	source, _ := fixtures()
	svc := New(source, &mockSessions{err: domain.ErrNoSession}, nil)

	_, err := svc.Load(context.Background())
	if !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if source.dashboards != 0 {
		t.Errorf("no credential means no backend call, got %d", source.dashboards)
	}
}

func TestLoad_UnauthorizedDowngradesSession(t *testing.T) {
	source, sessions := fixtures()
	source.dashErr = domain.ErrUnauthorized
	svc := New(source, sessions, nil)

	_, err := svc.Load(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(sessions.downgrades) != 1 {
		t.Errorf("expected one downgrade, got %d", len(sessions.downgrades))
	}
}

func TestReset_RequiresConfirmation(t *testing.T) {
	source, sessions := fixtures()
	svc := New(source, sessions, nil)

	_, err := svc.Reset(context.Background(), false)
	if !errors.Is(err, domain.ErrResetNotConfirmed) {
		t.Fatalf("expected ErrResetNotConfirmed, got %v", err)
	}
	if source.resets != 0 {
		t.Errorf("unconfirmed reset must not reach the backend, got %d", source.resets)
	}
}

func TestReset_ReloadsAfterZeroing(t *testing.T) {
	source, sessions := fixtures()
	svc := New(source, sessions, nil)

	ledger, err := svc.Reset(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.resets != 1 {
		t.Errorf("expected one reset call, got %d", source.resets)
	}
	if ledger.CurrentUsage != 0 || ledger.RemainingBudget != 100 {
		t.Errorf("reset should surface zeroed server state, got %+v", ledger)
	}

	snap, ok := svc.Snapshot()
	if !ok || snap.CurrentUsage != 0 {
		t.Errorf("snapshot should reflect the forced reload, got %+v", snap)
	}
}
