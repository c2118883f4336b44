package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/dealflow/internal/db"
	"github.com/alexanderramin/dealflow/internal/domain"
)

// SQLiteLeadRepo implements LeadRepo using a SQLite database.
type SQLiteLeadRepo struct {
	db db.DBTX
}

// NewSQLiteLeadRepo creates a new SQLiteLeadRepo. The connection may be a
// *sql.DB or a transaction-scoped DBTX.
func NewSQLiteLeadRepo(conn db.DBTX) *SQLiteLeadRepo {
	return &SQLiteLeadRepo{db: conn}
}

const leadColumns = `id, business_name, source, website, website_quality, social_profiles,
	technologies, content_topics, online_reviews, growth_indicators, service_needs,
	business_maturity, digital_presence, status, score, identified_needs,
	discovered_at, created_at, updated_at`

func (r *SQLiteLeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	socialProfiles, err := marshalStrings(l.SocialProfiles)
	if err != nil {
		return err
	}
	technologies, err := marshalStrings(l.Technologies)
	if err != nil {
		return err
	}
	contentTopics, err := marshalStrings(l.ContentTopics)
	if err != nil {
		return err
	}
	growthIndicators, err := marshalStrings(l.GrowthIndicators)
	if err != nil {
		return err
	}
	serviceNeeds, err := marshalStrings(l.ServiceNeeds)
	if err != nil {
		return err
	}
	identifiedNeeds, err := marshalStrings(l.IdentifiedNeeds)
	if err != nil {
		return err
	}

	query := `INSERT INTO leads (` + leadColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		l.ID,
		l.BusinessName,
		l.Source,
		l.Website,
		l.WebsiteQuality,
		socialProfiles,
		technologies,
		contentTopics,
		l.OnlineReviews,
		growthIndicators,
		serviceNeeds,
		nullableFloatToValue(l.BusinessMaturity),
		nullableFloatToValue(l.DigitalPresence),
		string(l.Status),
		nullableIntToValue(l.Score),
		identifiedNeeds,
		l.DiscoveredAt.Format(time.RFC3339),
		l.CreatedAt.Format(time.RFC3339),
		l.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting lead: %w", err)
	}
	return nil
}

func (r *SQLiteLeadRepo) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lead %s: %w", id, ErrNotFound)
	}
	return l, err
}

func (r *SQLiteLeadRepo) List(ctx context.Context) ([]*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at`
	return r.queryLeads(ctx, query)
}

func (r *SQLiteLeadRepo) ListByStatus(ctx context.Context, status domain.LeadStatus) ([]*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE status = ? ORDER BY created_at`
	return r.queryLeads(ctx, query, string(status))
}

func (r *SQLiteLeadRepo) queryLeads(ctx context.Context, query string, args ...interface{}) ([]*domain.Lead, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leads: %w", err)
	}
	return leads, nil
}

func (r *SQLiteLeadRepo) Update(ctx context.Context, l *domain.Lead) error {
	socialProfiles, err := marshalStrings(l.SocialProfiles)
	if err != nil {
		return err
	}
	technologies, err := marshalStrings(l.Technologies)
	if err != nil {
		return err
	}
	contentTopics, err := marshalStrings(l.ContentTopics)
	if err != nil {
		return err
	}
	growthIndicators, err := marshalStrings(l.GrowthIndicators)
	if err != nil {
		return err
	}
	serviceNeeds, err := marshalStrings(l.ServiceNeeds)
	if err != nil {
		return err
	}
	identifiedNeeds, err := marshalStrings(l.IdentifiedNeeds)
	if err != nil {
		return err
	}

	query := `UPDATE leads SET business_name = ?, source = ?, website = ?, website_quality = ?,
		social_profiles = ?, technologies = ?, content_topics = ?, online_reviews = ?,
		growth_indicators = ?, service_needs = ?, business_maturity = ?, digital_presence = ?,
		status = ?, score = ?, identified_needs = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		l.BusinessName,
		l.Source,
		l.Website,
		l.WebsiteQuality,
		socialProfiles,
		technologies,
		contentTopics,
		l.OnlineReviews,
		growthIndicators,
		serviceNeeds,
		nullableFloatToValue(l.BusinessMaturity),
		nullableFloatToValue(l.DigitalPresence),
		string(l.Status),
		nullableIntToValue(l.Score),
		identifiedNeeds,
		l.UpdatedAt.Format(time.RFC3339),
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating lead: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating lead: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("lead %s: %w", l.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteLeadRepo) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting leads: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.LeadStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning lead count: %w", err)
		}
		counts[domain.LeadStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lead counts: %w", err)
	}
	return counts, nil
}

// scanner is the shared subset of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row scanner) (*domain.Lead, error) {
	var l domain.Lead
	var socialProfiles, technologies, contentTopics, growthIndicators, serviceNeeds, identifiedNeeds string
	var businessMaturity, digitalPresence sql.NullFloat64
	var score sql.NullInt64
	var statusStr, discoveredAtStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&l.ID, &l.BusinessName, &l.Source, &l.Website, &l.WebsiteQuality, &socialProfiles,
		&technologies, &contentTopics, &l.OnlineReviews, &growthIndicators, &serviceNeeds,
		&businessMaturity, &digitalPresence, &statusStr, &score, &identifiedNeeds,
		&discoveredAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning lead: %w", err)
	}

	l.Status = domain.LeadStatus(statusStr)
	if businessMaturity.Valid {
		v := businessMaturity.Float64
		l.BusinessMaturity = &v
	}
	if digitalPresence.Valid {
		v := digitalPresence.Float64
		l.DigitalPresence = &v
	}
	if score.Valid {
		v := int(score.Int64)
		l.Score = &v
	}

	if l.SocialProfiles, err = unmarshalStrings(socialProfiles); err != nil {
		return nil, err
	}
	if l.Technologies, err = unmarshalStrings(technologies); err != nil {
		return nil, err
	}
	if l.ContentTopics, err = unmarshalStrings(contentTopics); err != nil {
		return nil, err
	}
	if l.GrowthIndicators, err = unmarshalStrings(growthIndicators); err != nil {
		return nil, err
	}
	if l.ServiceNeeds, err = unmarshalStrings(serviceNeeds); err != nil {
		return nil, err
	}
	if l.IdentifiedNeeds, err = unmarshalStrings(identifiedNeeds); err != nil {
		return nil, err
	}

	if l.DiscoveredAt, err = time.Parse(time.RFC3339, discoveredAtStr); err != nil {
		return nil, fmt.Errorf("parsing discovered_at: %w", err)
	}
	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &l, nil
}
