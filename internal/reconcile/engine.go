// Package reconcile merges the two independently-fetched backend
// collections (campaigns and donations) into the derived aggregates
// every view renders from. It is the single implementation of the
// merge; no view re-derives raised amounts on its own.
package reconcile

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"console/internal/domain"
	"console/internal/gateway"
)

// ErrSuperseded marks a reconciliation cycle whose result arrived
// after a newer cycle had already started. Callers discard it.
var ErrSuperseded = errors.New("reconcile: cycle superseded")

// Gateway is the slice of the backend client the engine needs.
type Gateway interface {
	Campaigns(ctx context.Context) ([]domain.Campaign, error)
	CampaignByID(ctx context.Context, id string) (domain.Campaign, error)
	Donations(ctx context.Context, scope gateway.Scope, q gateway.DonationQuery) ([]domain.Donation, error)
}

// Roles answers the one question the engine asks about the session.
type Roles interface {
	Admin() bool
}

// DonationState describes how the best-effort donation fetch settled.
type DonationState string

const (
	// DonationsFetched means the full collection arrived and the
	// verified sums are freshly computed.
	DonationsFetched DonationState = "fetched"
	// DonationsSkipped means the fetch was never attempted (non-admin
	// role; authorization is known in advance to deny it).
	DonationsSkipped DonationState = "skipped"
	// DonationsDegraded means the backend denied the fetch (403).
	// Silent fallback, never retried.
	DonationsDegraded DonationState = "degraded"
	// DonationsUnavailable means the fetch failed for a non-authorization
	// reason. Fallback applies, but the failure stays observable.
	DonationsUnavailable DonationState = "unavailable"
)

// Outcome reports how the donation side of a cycle settled. Err is
// non-nil only for DonationsUnavailable; it is the non-fatal warning
// surfaced to the caller.
type Outcome struct {
	State DonationState
	Err   error
}

// Fetched reports whether fresh donation data backs the aggregates.
func (o Outcome) Fetched() bool { return o.State == DonationsFetched }

// Campaign is a campaign plus its reconciled aggregates.
type Campaign struct {
	domain.Campaign

	// VerifiedRaised is the freshly computed sum of Verified donation
	// amounts for this campaign. Only meaningful when the cycle's
	// Outcome is DonationsFetched.
	VerifiedRaised float64
	// Raised is the display amount after the fallback precedence:
	// fresh VerifiedRaised, then backend totalVerifiedDonations, then
	// backend currentAmount, then zero.
	Raised float64
	// ProgressPercent is Raised/Goal clamped to [0,100]; zero when the
	// goal is zero or absent.
	ProgressPercent float64
}

// Overview is the reconciled campaign list.
type Overview struct {
	Campaigns []Campaign
	Donations Outcome
}

// Detail is a single reconciled campaign.
type Detail struct {
	Campaign  Campaign
	Donations Outcome
}

// Engine runs reconciliation cycles. A new cycle supersedes any
// in-flight one: results of older cycles are discarded on arrival, not
// cancelled mid-air.
type Engine struct {
	gw     Gateway
	roles  Roles
	logger zerolog.Logger
	cycle  atomic.Uint64
}

// New constructs an engine.
func New(gw Gateway, roles Roles, logger zerolog.Logger) *Engine {
	return &Engine{gw: gw, roles: roles, logger: logger}
}

// Overview fetches campaigns (required) and, for admins, the full
// donation collection (best effort), then merges. The campaign fetch
// and the donation fetch run concurrently; the merge waits for both to
// settle. A campaign fetch failure is fatal to the view and propagates
// as-is.
func (e *Engine) Overview(ctx context.Context) (*Overview, error) {
	cycle := e.begin()

	campaigns, donations, outcome, err := e.fetch(ctx, func(g Gateway) ([]domain.Campaign, error) {
		return g.Campaigns(ctx)
	})
	if err != nil {
		return nil, err
	}
	if !e.latest(cycle) {
		return nil, ErrSuperseded
	}

	out := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, merge(c, donations, outcome.Fetched()))
	}
	sortActiveFirst(out)

	return &Overview{Campaigns: out, Donations: outcome}, nil
}

// Detail fetches one campaign plus the best-effort donation collection
// and merges, under the same policy as Overview.
func (e *Engine) Detail(ctx context.Context, id string) (*Detail, error) {
	cycle := e.begin()

	campaigns, donations, outcome, err := e.fetch(ctx, func(g Gateway) ([]domain.Campaign, error) {
		c, err := g.CampaignByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return []domain.Campaign{c}, nil
	})
	if err != nil {
		return nil, err
	}
	if !e.latest(cycle) {
		return nil, ErrSuperseded
	}

	return &Detail{
		Campaign:  merge(campaigns[0], donations, outcome.Fetched()),
		Donations: outcome,
	}, nil
}

// fetch issues the required campaign fetch and the best-effort
// donation fetch concurrently and waits for both to settle. Donation
// failures never surface through the returned error.
func (e *Engine) fetch(ctx context.Context, loadCampaigns func(Gateway) ([]domain.Campaign, error)) ([]domain.Campaign, []domain.Donation, Outcome, error) {
	var (
		campaigns []domain.Campaign
		donations []domain.Donation
		donErr    error
	)

	admin := e.roles.Admin()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		campaigns, err = loadCampaigns(e.gw)
		return err
	})
	if admin {
		g.Go(func() error {
			donations, donErr = e.gw.Donations(gctx, gateway.ScopeAll, gateway.DonationQuery{})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, Outcome{}, err
	}

	return campaigns, donations, e.settle(admin, donErr), nil
}

// settle classifies how the donation fetch ended.
func (e *Engine) settle(attempted bool, donErr error) Outcome {
	switch {
	case !attempted:
		return Outcome{State: DonationsSkipped}
	case donErr == nil:
		return Outcome{State: DonationsFetched}
	case errors.Is(donErr, domain.ErrForbidden):
		// Insufficient privilege: degrade silently, never retry.
		e.logger.Debug().Err(donErr).Msg("donation fetch forbidden, using campaign fallbacks")
		return Outcome{State: DonationsDegraded}
	default:
		e.logger.Warn().Err(donErr).Msg("donation fetch failed, using campaign fallbacks")
		return Outcome{State: DonationsUnavailable, Err: donErr}
	}
}

func merge(c domain.Campaign, donations []domain.Donation, fetched bool) Campaign {
	rc := Campaign{Campaign: c}
	switch {
	case fetched:
		rc.VerifiedRaised = verifiedRaised(c.ID, donations)
		rc.Raised = rc.VerifiedRaised
	case c.TotalVerifiedDonations > 0:
		rc.Raised = c.TotalVerifiedDonations
	case c.CurrentAmount > 0:
		rc.Raised = c.CurrentAmount
	}
	rc.ProgressPercent = Progress(rc.Raised, c.GoalAmount)
	return rc
}

// verifiedRaised sums the amounts of donations whose resolved campaign
// id matches and whose status is exactly Verified. Pending and
// Rejected never contribute.
func verifiedRaised(campaignID string, donations []domain.Donation) float64 {
	var sum float64
	for _, d := range donations {
		if d.Campaign.ID == campaignID && d.Status == domain.StatusVerified {
			sum += d.Amount
		}
	}
	return sum
}

// Progress converts raised/goal into a percentage clamped to [0,100].
// A zero or absent goal reads as zero progress.
func Progress(raised, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(raised/goal*100, 100)
}

// sortActiveFirst orders administratively active campaigns before
// inactive ones, preserving fetch order within each group. Expiry does
// not affect ordering.
func sortActiveFirst(campaigns []Campaign) {
	sort.SliceStable(campaigns, func(i, j int) bool {
		return campaigns[i].Active() && !campaigns[j].Active()
	})
}

func (e *Engine) begin() uint64 {
	return e.cycle.Add(1)
}

func (e *Engine) latest(cycle uint64) bool {
	return e.cycle.Load() == cycle
}
