package views

import (
	"time"

	"console/internal/domain"
	"console/internal/reconcile"
)

// CampaignCard is one entry of the list projection. Raised and
// Progress are admin-only and omitted for everyone else; non-admin
// cards show the goal and a state-dependent call to action instead.
type CampaignCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Goal        string   `json:"goal"`
	Raised      *string  `json:"raised,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
	Deadline    string   `json:"deadline"`

	// Badge is "Expired" or "Inactive" on de-emphasized cards, empty
	// otherwise.
	Badge  string `json:"badge,omitempty"`
	Dimmed bool   `json:"dimmed"`

	// ActionLabel is the non-admin donate button text; admins get
	// edit/delete via CanModify instead.
	ActionLabel   string `json:"actionLabel,omitempty"`
	ActionEnabled bool   `json:"actionEnabled"`
	CanModify     bool   `json:"canModify"`
}

// Cards builds the list projection for the given role.
func Cards(campaigns []reconcile.Campaign, role domain.Role, now time.Time) []CampaignCard {
	out := make([]CampaignCard, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, card(c, role, now))
	}
	return out
}

func card(c reconcile.Campaign, role domain.Role, now time.Time) CampaignCard {
	expired := c.Expired(now)
	effective := c.EffectivelyActive(now)
	admin := role == domain.RoleAdmin

	out := CampaignCard{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Goal:          FormatAmount(c.GoalAmount),
		Deadline:      FormatDate(c.Deadline),
		Dimmed:        !effective,
		ActionEnabled: effective,
		CanModify:     admin && effective,
	}
	if !effective {
		if expired {
			out.Badge = "Expired"
		} else {
			out.Badge = "Inactive"
		}
	}
	if admin {
		raised := FormatAmount(c.Raised)
		progress := c.ProgressPercent
		out.Raised = &raised
		out.Progress = &progress
	} else {
		switch {
		case expired:
			out.ActionLabel = "Expired"
		case effective:
			out.ActionLabel = "Donate Now"
		default:
			out.ActionLabel = "Closed"
		}
	}
	return out
}

// CampaignPage is the detail projection for a single campaign.
type CampaignPage struct {
	CampaignCard
	// DonationOpen reports whether the donate action is offered at
	// all; it is suppressed on expired or inactive campaigns.
	DonationOpen bool `json:"donationOpen"`
}

// Page builds the detail projection.
func Page(c reconcile.Campaign, role domain.Role, now time.Time) CampaignPage {
	base := card(c, role, now)
	return CampaignPage{
		CampaignCard: base,
		DonationOpen: role != domain.RoleAdmin && c.EffectivelyActive(now),
	}
}
