package views

import (
	"fmt"
	"strings"

	"console/internal/domain"
)

// ReceiptText renders one verified donation as a printable plain-text
// receipt. Donor identity lines appear on admin receipts only.
func ReceiptText(d domain.Donation, role domain.Role) []byte {
	var b strings.Builder
	b.WriteString("DONATION RECEIPT\n")
	b.WriteString("================\n")
	fmt.Fprintf(&b, "Receipt ID: %s\n", d.ID)
	fmt.Fprintf(&b, "Date:       %s\n", FormatDate(d.CreatedAt))
	fmt.Fprintf(&b, "Campaign:   %s\n", d.CampaignLabel())
	fmt.Fprintf(&b, "Amount:     %s\n", FormatAmount(d.Amount))
	fmt.Fprintf(&b, "Type:       %s\n", d.Type)
	fmt.Fprintf(&b, "Method:     %s\n", d.Method)
	if role == domain.RoleAdmin {
		fmt.Fprintf(&b, "Donor:      %s\n", d.DonorName())
		if d.Donor.Email != "" {
			fmt.Fprintf(&b, "Email:      %s\n", d.Donor.Email)
		}
	}
	b.WriteString("Status:     Verified\n")
	return []byte(b.String())
}

// ReceiptFilename names the archive entry for a donation.
func ReceiptFilename(d domain.Donation) string {
	return "receipt-" + d.ID + ".txt"
}
