package domain

import "time"

// DonationType enumerates the supported donation categories.
type DonationType string

const (
	DonationZakat   DonationType = "Zakat"
	DonationSadqah  DonationType = "Sadqah"
	DonationFitra   DonationType = "Fitra"
	DonationGeneral DonationType = "General"
)

// PaymentMethod enumerates how a donation was paid.
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "Online"
	PaymentBank   PaymentMethod = "Bank"
	PaymentCash   PaymentMethod = "Cash"
)

// DonationStatus enumerates the backend verification states.
type DonationStatus string

const (
	StatusPending  DonationStatus = "Pending"
	StatusVerified DonationStatus = "Verified"
	StatusRejected DonationStatus = "Rejected"
)

// DonorRef is the donor summary embedded in a donation. For non-admin
// fetch scopes the backend omits it entirely; Name may fall back to a
// free-text donor name.
type DonorRef struct {
	Name  string
	Email string
}

// Donation is a single contribution record.
type Donation struct {
	ID string
	// Campaign is the resolved reference. Its ID follows the fixed
	// precedence populated-object id, then raw id field, then category
	// field, first non-empty wins (resolved by the gateway).
	Campaign  CampaignRef
	Category  string
	Amount    float64
	Type      DonationType
	Method    PaymentMethod
	Status    DonationStatus
	CreatedAt time.Time
	Donor     DonorRef
}

// CampaignLabel returns the human-readable campaign name for table
// rows, falling back to the category, then "General".
func (d Donation) CampaignLabel() string {
	if d.Campaign.Title != "" {
		return d.Campaign.Title
	}
	if d.Category != "" {
		return d.Category
	}
	return "General"
}

// DonorName returns the display name for admin rows, "Anonymous" when
// the backend supplied no donor.
func (d Donation) DonorName() string {
	if d.Donor.Name != "" {
		return d.Donor.Name
	}
	return "Anonymous"
}

// ValidType reports whether t is one of the known donation types.
func ValidType(t DonationType) bool {
	switch t {
	case DonationZakat, DonationSadqah, DonationFitra, DonationGeneral:
		return true
	}
	return false
}

// ValidMethod reports whether m is one of the known payment methods.
func ValidMethod(m PaymentMethod) bool {
	switch m {
	case PaymentOnline, PaymentBank, PaymentCash:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s DonationStatus) bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}
