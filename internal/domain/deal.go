package domain

import (
	"fmt"
	"time"
)

// Communication is a single message exchanged on a deal. Deals exclusively
// own their communications; the sequence is append-only.
type Communication struct {
	Direction Direction
	Content   string
	Timestamp time.Time
}

// Timeline is a delivery window measured in whole days.
type Timeline struct {
	Start        time.Time
	End          time.Time
	DurationDays int
}

// Proposal holds the commercial terms offered on a deal. Negotiation
// adjustments are applied to a copy; the stored proposal only changes when
// terms are accepted.
type Proposal struct {
	Services            []string
	Price               float64
	Timeline            *Timeline
	AdditionalRevisions int
	FeatureSubstitution bool
	DiscountApplied     float64
	RushFeeApplied      float64
}

// Deal tracks a lead through commercial close.
type Deal struct {
	ID           string
	LeadID       string
	BusinessName string
	Status       DealStatus

	Communications    []Communication
	Proposal          *Proposal
	NegotiationRounds int

	ClosedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// dealStageOrder fixes the monotonic progression of deal statuses. Both
// terminal statuses share the final rank.
var dealStageOrder = map[DealStatus]int{
	DealReceived:     0,
	DealOutreachSent: 1,
	DealEngaged:      2,
	DealProposalSent: 3,
	DealNegotiating:  4,
	DealClosedWon:    5,
	DealClosedLost:   5,
}

// IsClosed reports whether the deal reached a terminal status.
func (d *Deal) IsClosed() bool {
	return d.Status == DealClosedWon || d.Status == DealClosedLost
}

// AdvanceTo moves the deal exactly one stage forward. Any skip, regression or
// transition out of a terminal status is rejected; the counter-offer cycle
// back to proposal_sent goes through ReturnToProposal instead.
func (d *Deal) AdvanceTo(next DealStatus, now time.Time) error {
	cur, ok := dealStageOrder[d.Status]
	if !ok {
		return fmt.Errorf("deal %s has unknown status %q", d.ID, d.Status)
	}
	nxt, ok := dealStageOrder[next]
	if !ok {
		return fmt.Errorf("unknown deal status %q", next)
	}
	if d.IsClosed() {
		return fmt.Errorf("deal %s is closed (%s)", d.ID, d.Status)
	}
	if nxt != cur+1 {
		return fmt.Errorf("deal %s cannot move %s -> %s", d.ID, d.Status, next)
	}
	d.Status = next
	d.UpdatedAt = now
	if d.IsClosed() {
		d.ClosedAt = &now
	}
	return nil
}

// ReturnToProposal cycles a negotiating deal back to proposal_sent after a
// counter-offer. Each cycle counts as one negotiation round; once maxRounds
// rounds have been used the deal is forced to closed_lost instead of
// oscillating further. Returns true when the deal was force-closed.
func (d *Deal) ReturnToProposal(now time.Time, maxRounds int) (bool, error) {
	if d.Status != DealNegotiating {
		return false, fmt.Errorf("deal %s cannot counter from status %s", d.ID, d.Status)
	}
	d.NegotiationRounds++
	d.UpdatedAt = now
	if d.NegotiationRounds >= maxRounds {
		d.Status = DealClosedLost
		d.ClosedAt = &now
		return true, nil
	}
	d.Status = DealProposalSent
	return false, nil
}

// AddCommunication appends a message to the deal's communication log.
func (d *Deal) AddCommunication(dir Direction, content string, at time.Time) {
	d.Communications = append(d.Communications, Communication{
		Direction: dir,
		Content:   content,
		Timestamp: at,
	})
	d.UpdatedAt = at
}

// LatestCommunication returns the most recent communication by timestamp.
// Equal timestamps keep original insertion order, so the earliest-appended
// of a tie wins.
func (d *Deal) LatestCommunication() (*Communication, error) {
	if len(d.Communications) == 0 {
		return nil, ErrNoCommunications
	}
	best := 0
	for i := 1; i < len(d.Communications); i++ {
		if d.Communications[i].Timestamp.After(d.Communications[best].Timestamp) {
			best = i
		}
	}
	return &d.Communications[best], nil
}
