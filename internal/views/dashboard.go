package views

import (
	"sort"

	"console/internal/domain"
)

// recentLimit is how many donations the dashboard lists.
const recentLimit = 5

// Summary is the dashboard projection: three totals over the fetched
// donation collection plus the most recent donations.
type Summary struct {
	Total    string `json:"total"`
	Verified string `json:"verified"`
	Pending  string `json:"pending"`

	Recent []DonationRow `json:"recent"`
}

// Dashboard aggregates donations for a role. The scope of the input
// collection (all vs own) is the caller's concern; the projection only
// sums what it is handed.
func Dashboard(donations []domain.Donation, role domain.Role) Summary {
	var total, verifiedSum, pendingSum float64
	for _, d := range donations {
		total += d.Amount
		switch d.Status {
		case domain.StatusVerified:
			verifiedSum += d.Amount
		case domain.StatusPending:
			pendingSum += d.Amount
		}
	}

	return Summary{
		Total:    FormatAmount(total),
		Verified: FormatAmount(verifiedSum),
		Pending:  FormatAmount(pendingSum),
		Recent:   rows(recent(donations), role),
	}
}

// recent sorts a copy by createdAt descending, ties keeping fetch
// order, and truncates to the display limit.
func recent(donations []domain.Donation) []domain.Donation {
	sorted := make([]domain.Donation, len(donations))
	copy(sorted, donations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	return sorted
}
