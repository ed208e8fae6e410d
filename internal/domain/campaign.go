package domain

import "time"

// Campaign is a fundraising campaign owned by the backend. The console
// holds read-through copies only, re-fetched on every view.
type Campaign struct {
	ID          string
	Title       string
	Description string
	GoalAmount  float64
	Deadline    time.Time
	// IsActive is nil when the backend omits the field; absent means
	// active.
	IsActive *bool
	// CurrentAmount and TotalVerifiedDonations are backend-supplied
	// aggregates. Both are optional and untrusted; they only serve as
	// fallbacks when the donation collection cannot be fetched.
	CurrentAmount          float64
	TotalVerifiedDonations float64
}

// Active reports the administrative flag, defaulting to true when the
// backend omitted it.
func (c Campaign) Active() bool {
	return c.IsActive == nil || *c.IsActive
}

// Expired compares the deadline against now at date granularity:
// a campaign expires only once its deadline day is strictly in the
// past, regardless of time of day.
func (c Campaign) Expired(now time.Time) bool {
	deadline := truncateToDay(c.Deadline)
	today := truncateToDay(now)
	return deadline.Before(today)
}

// EffectivelyActive reports whether the campaign is both
// administratively active and not past its deadline.
func (c Campaign) EffectivelyActive(now time.Time) bool {
	return c.Active() && !c.Expired(now)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CampaignRef is the normalized foreign-key shape for a donation's
// campaign. The backend sends either a bare id or a populated summary;
// the gateway collapses both into this one form so nothing downstream
// branches on wire shape.
type CampaignRef struct {
	ID    string
	Title string
}
