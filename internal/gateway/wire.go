package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"console/internal/domain"
)

// The backend is inconsistent about envelopes and foreign-key shape:
// list endpoints answer either a bare array or a wrapped object, ids
// arrive as "_id" or "id", a donation's campaign is either a populated
// summary or a raw id string, and amounts occasionally come back as
// strings. All of that is flattened here so nothing past this file
// branches on wire shape.

type wireCampaign struct {
	MongoID                string     `json:"_id"`
	ID                     string     `json:"id"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	GoalAmount             wireAmount `json:"goalAmount"`
	Deadline               wireTime   `json:"deadline"`
	IsActive               *bool      `json:"isActive"`
	CurrentAmount          wireAmount `json:"currentAmount"`
	TotalVerifiedDonations wireAmount `json:"totalVerifiedDonations"`
}

func (w wireCampaign) toDomain() domain.Campaign {
	id := w.MongoID
	if id == "" {
		id = w.ID
	}
	return domain.Campaign{
		ID:                     id,
		Title:                  w.Title,
		Description:            w.Description,
		GoalAmount:             float64(w.GoalAmount),
		Deadline:               time.Time(w.Deadline),
		IsActive:               w.IsActive,
		CurrentAmount:          float64(w.CurrentAmount),
		TotalVerifiedDonations: float64(w.TotalVerifiedDonations),
	}
}

type wireUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type wireDonation struct {
	MongoID   string     `json:"_id"`
	ID        string     `json:"id"`
	Campaign  wireRef    `json:"campaignId"`
	Category  string     `json:"campaign"`
	Amount    wireAmount `json:"amount"`
	Type      string     `json:"donationType"`
	Method    string     `json:"paymentMethod"`
	Status    string     `json:"status"`
	CreatedAt wireTime   `json:"createdAt"`
	Date      wireTime   `json:"date"`
	User      *wireUser  `json:"user"`
	DonorName string     `json:"donorName"`
}

func (w wireDonation) toDomain() domain.Donation {
	id := w.MongoID
	if id == "" {
		id = w.ID
	}

	// Resolved campaign id precedence: populated-object id, then raw
	// id, then the free-text category. First non-empty wins.
	ref := domain.CampaignRef{ID: w.Campaign.ID, Title: w.Campaign.Title}
	if ref.ID == "" {
		ref.ID = w.Category
	}

	createdAt := time.Time(w.CreatedAt)
	if createdAt.IsZero() {
		createdAt = time.Time(w.Date)
	}

	donor := domain.DonorRef{Name: w.DonorName}
	if w.User != nil {
		if w.User.Name != "" {
			donor.Name = w.User.Name
		}
		donor.Email = w.User.Email
	}

	return domain.Donation{
		ID:        id,
		Campaign:  ref,
		Category:  w.Category,
		Amount:    float64(w.Amount),
		Type:      domain.DonationType(w.Type),
		Method:    domain.PaymentMethod(w.Method),
		Status:    domain.DonationStatus(w.Status),
		CreatedAt: createdAt,
		Donor:     donor,
	}
}

// wireRef accepts either a bare id string or a populated campaign
// summary object.
type wireRef struct {
	ID    string
	Title string
}

func (r *wireRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.ID = id
		return nil
	}
	var populated struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(data, &populated); err != nil {
		return err
	}
	r.ID = populated.MongoID
	if r.ID == "" {
		r.ID = populated.ID
	}
	r.Title = populated.Title
	return nil
}

// wireAmount accepts a JSON number or a numeric string. Anything else
// decodes as zero, matching the defensive parseFloat the views used to
// do.
type wireAmount float64

func (a *wireAmount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*a = 0
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = wireAmount(parsed)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = wireAmount(f)
	return nil
}

// wireTime accepts RFC 3339 timestamps or bare calendar dates.
type wireTime time.Time

func (t *wireTime) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` || trimmed == "" {
		*t = wireTime(time.Time{})
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = wireTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("gateway: unsupported time %q", s)
}

type campaignListEnvelope struct {
	Campaign []wireCampaign `json:"campaign"`
}

func decodeCampaignList(raw []byte) ([]domain.Campaign, error) {
	var list []wireCampaign
	if err := json.Unmarshal(raw, &list); err != nil {
		var envelope campaignListEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("gateway: decode campaign list: %w", err)
		}
		list = envelope.Campaign
	}
	out := make([]domain.Campaign, 0, len(list))
	for _, w := range list {
		out = append(out, w.toDomain())
	}
	return out, nil
}

type campaignEnvelope struct {
	Campaign *wireCampaign `json:"campaign"`
}

func decodeCampaign(raw []byte) (domain.Campaign, error) {
	var envelope campaignEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Campaign != nil {
		return envelope.Campaign.toDomain(), nil
	}
	var w wireCampaign
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.Campaign{}, fmt.Errorf("gateway: decode campaign: %w", err)
	}
	return w.toDomain(), nil
}

type donationListEnvelope struct {
	Donations []wireDonation `json:"donations"`
}

func decodeDonationList(raw []byte) ([]domain.Donation, error) {
	var list []wireDonation
	if err := json.Unmarshal(raw, &list); err != nil {
		var envelope donationListEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("gateway: decode donation list: %w", err)
		}
		list = envelope.Donations
	}
	out := make([]domain.Donation, 0, len(list))
	for _, w := range list {
		out = append(out, w.toDomain())
	}
	return out, nil
}
