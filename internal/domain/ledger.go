package domain

import "time"

// UsageRecord is one immutable cost entry in the server ledger.
type UsageRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Operation string    `json:"operation"`
	Pages     int       `json:"pages"`
	Cost      float64   `json:"cost"`
}

// Ledger is the server-maintained cost snapshot, mirrored read-only.
// All arithmetic is server-authoritative; the client only clamps for
// display.
type Ledger struct {
	CurrentUsage    float64       `json:"current_usage"`
	BudgetLimit     float64       `json:"budget_limit"`
	RemainingBudget float64       `json:"remaining_budget"`
	PercentageUsed  float64       `json:"percentage_used"`
	TotalRequests   int           `json:"total_requests"`
	RecentRequests  []UsageRecord `json:"recent_requests"`
}

// DisplayPercent returns the usage percentage clamped to [0,100] for
// progress bar rendering.
func (l Ledger) DisplayPercent() float64 {
	switch {
	case l.PercentageUsed < 0:
		return 0
	case l.PercentageUsed > 100:
		return 100
	default:
		return l.PercentageUsed
	}
}
