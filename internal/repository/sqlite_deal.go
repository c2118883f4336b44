package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/dealflow/internal/db"
	"github.com/alexanderramin/dealflow/internal/domain"
)

// SQLiteDealRepo implements DealRepo using a SQLite database. Communications
// live in a child table ordered by insertion; the proposal is stored as a
// JSON document column.
type SQLiteDealRepo struct {
	db db.DBTX
}

// NewSQLiteDealRepo creates a new SQLiteDealRepo. The connection may be a
// *sql.DB or a transaction-scoped DBTX.
func NewSQLiteDealRepo(conn db.DBTX) *SQLiteDealRepo {
	return &SQLiteDealRepo{db: conn}
}

// proposalDoc is the JSON column form of a domain.Proposal.
type proposalDoc struct {
	Services            []string     `json:"services"`
	Price               float64      `json:"price"`
	Timeline            *timelineDoc `json:"timeline,omitempty"`
	AdditionalRevisions int          `json:"additional_revisions"`
	FeatureSubstitution bool         `json:"feature_substitution"`
	DiscountApplied     float64      `json:"discount_applied"`
	RushFeeApplied      float64      `json:"rush_fee_applied"`
}

type timelineDoc struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	DurationDays int       `json:"duration_days"`
}

func marshalProposal(p *domain.Proposal) (interface{}, error) {
	if p == nil {
		return nil, nil
	}
	doc := proposalDoc{
		Services:            p.Services,
		Price:               p.Price,
		AdditionalRevisions: p.AdditionalRevisions,
		FeatureSubstitution: p.FeatureSubstitution,
		DiscountApplied:     p.DiscountApplied,
		RushFeeApplied:      p.RushFeeApplied,
	}
	if p.Timeline != nil {
		doc.Timeline = &timelineDoc{
			Start:        p.Timeline.Start,
			End:          p.Timeline.End,
			DurationDays: p.Timeline.DurationDays,
		}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling proposal: %w", err)
	}
	return string(b), nil
}

func unmarshalProposal(raw sql.NullString) (*domain.Proposal, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var doc proposalDoc
	if err := json.Unmarshal([]byte(raw.String), &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling proposal: %w", err)
	}
	p := &domain.Proposal{
		Services:            doc.Services,
		Price:               doc.Price,
		AdditionalRevisions: doc.AdditionalRevisions,
		FeatureSubstitution: doc.FeatureSubstitution,
		DiscountApplied:     doc.DiscountApplied,
		RushFeeApplied:      doc.RushFeeApplied,
	}
	if doc.Timeline != nil {
		p.Timeline = &domain.Timeline{
			Start:        doc.Timeline.Start,
			End:          doc.Timeline.End,
			DurationDays: doc.Timeline.DurationDays,
		}
	}
	return p, nil
}

const dealColumns = `id, lead_id, business_name, status, proposal, negotiation_rounds,
	closed_at, created_at, updated_at`

func (r *SQLiteDealRepo) Create(ctx context.Context, d *domain.Deal) error {
	proposal, err := marshalProposal(d.Proposal)
	if err != nil {
		return err
	}
	query := `INSERT INTO deals (` + dealColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		d.ID,
		d.LeadID,
		d.BusinessName,
		string(d.Status),
		proposal,
		d.NegotiationRounds,
		nullableTimeToString(d.ClosedAt, time.RFC3339),
		d.CreatedAt.Format(time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting deal: %w", err)
	}
	for _, c := range d.Communications {
		if err := r.AddCommunication(ctx, d.ID, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteDealRepo) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = ?`
	return r.getDeal(ctx, query, id)
}

func (r *SQLiteDealRepo) GetByLeadID(ctx context.Context, leadID string) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE lead_id = ?`
	return r.getDeal(ctx, query, leadID)
}

func (r *SQLiteDealRepo) getDeal(ctx context.Context, query string, arg interface{}) (*domain.Deal, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	d, err := scanDeal(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("deal %v: %w", arg, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if d.Communications, err = r.loadCommunications(ctx, d.ID); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *SQLiteDealRepo) List(ctx context.Context) ([]*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals ORDER BY created_at`
	return r.queryDeals(ctx, query)
}

func (r *SQLiteDealRepo) ListByStatus(ctx context.Context, status domain.DealStatus) ([]*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE status = ? ORDER BY created_at`
	return r.queryDeals(ctx, query, string(status))
}

func (r *SQLiteDealRepo) ListOpen(ctx context.Context) ([]*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals
		WHERE status NOT IN ('closed_won', 'closed_lost') ORDER BY created_at`
	return r.queryDeals(ctx, query)
}

func (r *SQLiteDealRepo) queryDeals(ctx context.Context, query string, args ...interface{}) ([]*domain.Deal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	defer rows.Close()

	var deals []*domain.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deals: %w", err)
	}

	for _, d := range deals {
		if d.Communications, err = r.loadCommunications(ctx, d.ID); err != nil {
			return nil, err
		}
	}
	return deals, nil
}

func (r *SQLiteDealRepo) Update(ctx context.Context, d *domain.Deal) error {
	proposal, err := marshalProposal(d.Proposal)
	if err != nil {
		return err
	}
	query := `UPDATE deals SET business_name = ?, status = ?, proposal = ?,
		negotiation_rounds = ?, closed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.BusinessName,
		string(d.Status),
		proposal,
		d.NegotiationRounds,
		nullableTimeToString(d.ClosedAt, time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating deal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating deal: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deal %s: %w", d.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteDealRepo) AddCommunication(ctx context.Context, dealID string, c domain.Communication) error {
	query := `INSERT INTO communications (deal_id, direction, content, timestamp) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		dealID,
		string(c.Direction),
		c.Content,
		c.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting communication: %w", err)
	}
	return nil
}

func (r *SQLiteDealRepo) CountByStatus(ctx context.Context) (map[domain.DealStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM deals GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting deals: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.DealStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning deal count: %w", err)
		}
		counts[domain.DealStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deal counts: %w", err)
	}
	return counts, nil
}

// loadCommunications reads a deal's messages in insertion order, which
// preserves tie-breaking on equal timestamps.
func (r *SQLiteDealRepo) loadCommunications(ctx context.Context, dealID string) ([]domain.Communication, error) {
	query := `SELECT direction, content, timestamp FROM communications WHERE deal_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, dealID)
	if err != nil {
		return nil, fmt.Errorf("listing communications: %w", err)
	}
	defer rows.Close()

	var comms []domain.Communication
	for rows.Next() {
		var c domain.Communication
		var direction, timestamp string
		if err := rows.Scan(&direction, &c.Content, &timestamp); err != nil {
			return nil, fmt.Errorf("scanning communication: %w", err)
		}
		c.Direction = domain.Direction(direction)
		if c.Timestamp, err = time.Parse(time.RFC3339, timestamp); err != nil {
			return nil, fmt.Errorf("parsing communication timestamp: %w", err)
		}
		comms = append(comms, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating communications: %w", err)
	}
	return comms, nil
}

func scanDeal(row scanner) (*domain.Deal, error) {
	var d domain.Deal
	var statusStr, createdAtStr, updatedAtStr string
	var proposal, closedAtStr sql.NullString

	err := row.Scan(
		&d.ID, &d.LeadID, &d.BusinessName, &statusStr, &proposal,
		&d.NegotiationRounds, &closedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning deal: %w", err)
	}

	d.Status = domain.DealStatus(statusStr)
	if d.Proposal, err = unmarshalProposal(proposal); err != nil {
		return nil, err
	}
	d.ClosedAt = parseNullableTime(closedAtStr, time.RFC3339)

	if d.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &d, nil
}
