package views

import "console/internal/domain"

// DonationRow is one table or receipt entry. Donor identity fields are
// populated for admin projections only and omitted from the JSON when
// empty.
type DonationRow struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Campaign string `json:"campaign"`
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Method   string `json:"method"`
	Status   string `json:"status"`

	Donor string `json:"donor,omitempty"`
	Email string `json:"email,omitempty"`

	// CanVerify marks rows an admin may still act on.
	CanVerify bool `json:"canVerify"`
}

// DonationTable is the table projection: a role-gated column set plus
// the rows.
type DonationTable struct {
	Columns []string      `json:"columns"`
	Rows    []DonationRow `json:"rows"`
}

// Table builds the donation table for a role. It does not filter; run
// the pipeline first.
func Table(donations []domain.Donation, role domain.Role) DonationTable {
	return DonationTable{
		Columns: columns(role),
		Rows:    rows(donations, role),
	}
}

// Receipts builds the receipt projection. Only Verified donations ever
// appear on a receipt, regardless of how broad the underlying fetch
// was.
func Receipts(donations []domain.Donation, role domain.Role) DonationTable {
	verifiedOnly := make([]domain.Donation, 0, len(donations))
	for _, d := range donations {
		if d.Status == domain.StatusVerified {
			verifiedOnly = append(verifiedOnly, d)
		}
	}
	return Table(verifiedOnly, role)
}

func columns(role domain.Role) []string {
	cols := []string{"Date"}
	if role == domain.RoleAdmin {
		cols = append(cols, "Donor Name", "Email")
	}
	return append(cols, "Campaign", "Amount", "Type", "Method", "Status")
}

func rows(donations []domain.Donation, role domain.Role) []DonationRow {
	admin := role == domain.RoleAdmin
	out := make([]DonationRow, 0, len(donations))
	for _, d := range donations {
		row := DonationRow{
			ID:        d.ID,
			Date:      FormatDate(d.CreatedAt),
			Campaign:  d.CampaignLabel(),
			Amount:    FormatAmount(d.Amount),
			Type:      string(d.Type),
			Method:    string(d.Method),
			Status:    string(d.Status),
			CanVerify: admin && d.Status == domain.StatusPending,
		}
		if admin {
			row.Donor = d.DonorName()
			row.Email = d.Donor.Email
		}
		out = append(out, row)
	}
	return out
}
