package views

import (
	"strings"

	"console/internal/domain"
)

// Criteria is the client-side donation filter state. Dimensions
// compose conjunctively. Search, type and method are admin-only
// dimensions; for other roles they are ignored even when set, because
// non-admin views expose neither donor fields nor those controls.
type Criteria struct {
	Search string
	Status string
	Type   string
	Method string
}

// Filter narrows donations without re-ordering them. Sorting is always
// a separate, explicit stage.
func Filter(donations []domain.Donation, c Criteria, role domain.Role) []domain.Donation {
	admin := role == domain.RoleAdmin
	search := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]domain.Donation, 0, len(donations))
	for _, d := range donations {
		if c.Status != "" && string(d.Status) != c.Status {
			continue
		}
		if admin {
			if c.Type != "" && string(d.Type) != c.Type {
				continue
			}
			if c.Method != "" && string(d.Method) != c.Method {
				continue
			}
			if search != "" && !matchesDonor(d, search) {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

func matchesDonor(d domain.Donation, loweredTerm string) bool {
	name := strings.ToLower(d.DonorName())
	email := strings.ToLower(d.Donor.Email)
	return strings.Contains(name, loweredTerm) || strings.Contains(email, loweredTerm)
}

// FilterForm describes which filter controls a role's view exposes.
type FilterForm struct {
	Search bool `json:"search"`
	Status bool `json:"status"`
	Type   bool `json:"type"`
	Method bool `json:"method"`
}

// FormFor returns the filter controls for a role. Status is the only
// dimension everyone gets.
func FormFor(role domain.Role) FilterForm {
	admin := role == domain.RoleAdmin
	return FilterForm{Search: admin, Status: true, Type: admin, Method: admin}
}
