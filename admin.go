package anuvad

import (
	"context"
	"time"
)

// Login verifies the admin credential against the backend and stores it
// on success. The returned report is the dashboard snapshot fetched
// during verification.
func (c *Client) Login(ctx context.Context, username, password string) (UsageReport, error) {
	start := time.Now()

	ledger, err := c.sessionSvc.Login(ctx, username, password)
	c.obs.observe("login", start, err, "username", username)
	if err != nil {
		return UsageReport{}, err
	}
	return fromDomainLedger(ledger), nil
}

// Logout discards the stored admin session. Safe to call when no
// session exists.
func (c *Client) Logout() error {
	start := time.Now()

	err := c.sessionSvc.Logout()
	c.obs.observe("logout", start, err)
	return err
}

// Dashboard fetches the current usage report. Requires a session; a
// stale credential is cleared automatically and reported as
// ErrUnauthorized.
func (c *Client) Dashboard(ctx context.Context) (UsageReport, error) {
	start := time.Now()

	ledger, err := c.ledgerSvc.Load(ctx)
	c.obs.observe("dashboard", start, err)
	if err != nil {
		return UsageReport{}, err
	}
	return fromDomainLedger(ledger), nil
}

// CachedDashboard returns the last report fetched by Dashboard, Login or
// ResetUsage without a network call. ok is false before the first fetch.
func (c *Client) CachedDashboard() (UsageReport, bool) {
	ledger, ok := c.ledgerSvc.Snapshot()
	if !ok {
		return UsageReport{}, false
	}
	return fromDomainLedger(ledger), true
}

// ResetUsage irreversibly zeroes the server usage ledger and returns the
// post-reset report. confirmed must be true; the guard exists so callers
// wire an explicit confirmation step.
func (c *Client) ResetUsage(ctx context.Context, confirmed bool) (UsageReport, error) {
	start := time.Now()

	ledger, err := c.ledgerSvc.Reset(ctx, confirmed)
	c.obs.observe("reset_usage", start, err)
	if err != nil {
		return UsageReport{}, err
	}
	return fromDomainLedger(ledger), nil
}

// ChangePassword rotates the admin secret. The new secret must be at
// least 8 characters with at least one letter and one digit. On success
// the stored session is discarded and a fresh Login is required.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	start := time.Now()

	err := c.rotationSvc.Rotate(ctx, currentPassword, newPassword)
	c.obs.observe("change_password", start, err)
	return err
}

// Health checks that the backend is reachable and reports itself
// healthy.
func (c *Client) Health(ctx context.Context) error {
	start := time.Now()

	err := c.health.Ping(ctx)
	c.obs.observe("health", start, err)
	return err
}
