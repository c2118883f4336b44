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

// SQLiteProjectRepo implements ProjectRepo using a SQLite database. Tasks and
// deliverables live in child tables keyed by (project_id, id); status history
// is stored as a JSON document column.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo. The connection may be
// a *sql.DB or a transaction-scoped DBTX.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

// statusChangeDoc is the JSON column form of a domain.StatusChange.
type statusChangeDoc struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

func marshalHistory(h []domain.StatusChange) (string, error) {
	if h == nil {
		return "[]", nil
	}
	docs := make([]statusChangeDoc, len(h))
	for i, c := range h {
		docs[i] = statusChangeDoc(c)
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("marshaling status history: %w", err)
	}
	return string(b), nil
}

func unmarshalHistory(raw string) ([]domain.StatusChange, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var docs []statusChangeDoc
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return nil, fmt.Errorf("unmarshaling status history: %w", err)
	}
	h := make([]domain.StatusChange, len(docs))
	for i, d := range docs {
		h[i] = domain.StatusChange(d)
	}
	return h, nil
}

const projectColumns = `id, deal_id, business_name, service_type, status, start_date, end_date,
	duration_days, progress, status_history, completed_at, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	history, err := marshalHistory(p.StatusHistory)
	if err != nil {
		return err
	}
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.DealID,
		p.BusinessName,
		p.ServiceType,
		string(p.Status),
		p.Timeline.Start.Format(time.RFC3339),
		p.Timeline.End.Format(time.RFC3339),
		p.Timeline.DurationDays,
		p.Progress,
		history,
		nullableTimeToString(p.CompletedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}

	for i := range p.Tasks {
		if err := r.insertTask(ctx, p.ID, &p.Tasks[i]); err != nil {
			return err
		}
	}
	for i := range p.Deliverables {
		if err := r.insertDeliverable(ctx, p.ID, &p.Deliverables[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.getProject(ctx, query, id)
}

func (r *SQLiteProjectRepo) GetByDealID(ctx context.Context, dealID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE deal_id = ?`
	return r.getProject(ctx, query, dealID)
}

func (r *SQLiteProjectRepo) getProject(ctx context.Context, query string, arg interface{}) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %v: %w", arg, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	return r.queryProjects(ctx, query)
}

func (r *SQLiteProjectRepo) ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE status = ? ORDER BY created_at`
	return r.queryProjects(ctx, query, string(status))
}

func (r *SQLiteProjectRepo) queryProjects(ctx context.Context, query string, args ...interface{}) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	for _, p := range projects {
		if err := r.loadChildren(ctx, p); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	history, err := marshalHistory(p.StatusHistory)
	if err != nil {
		return err
	}
	query := `UPDATE projects SET business_name = ?, service_type = ?, status = ?,
		start_date = ?, end_date = ?, duration_days = ?, progress = ?,
		status_history = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.BusinessName,
		p.ServiceType,
		string(p.Status),
		p.Timeline.Start.Format(time.RFC3339),
		p.Timeline.End.Format(time.RFC3339),
		p.Timeline.DurationDays,
		p.Progress,
		history,
		nullableTimeToString(p.CompletedAt, time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", p.ID, ErrNotFound)
	}

	for i := range p.Tasks {
		if err := r.UpdateTask(ctx, p.ID, &p.Tasks[i]); err != nil {
			return err
		}
	}
	for i := range p.Deliverables {
		if err := r.UpdateDeliverable(ctx, p.ID, &p.Deliverables[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) UpdateTask(ctx context.Context, projectID string, t *domain.Task) error {
	history, err := marshalHistory(t.History)
	if err != nil {
		return err
	}
	query := `UPDATE tasks SET name = ?, description = ?, status = ?, start_date = ?, end_date = ?,
		history = ?, completed_at = ?, reviewed_at = ?, feedback = ?
		WHERE project_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Description,
		string(t.Status),
		t.Start.Format(time.RFC3339),
		t.End.Format(time.RFC3339),
		history,
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		nullableTimeToString(t.ReviewedAt, time.RFC3339),
		t.Feedback,
		projectID,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s in project %s: %w", t.ID, projectID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteProjectRepo) UpdateDeliverable(ctx context.Context, projectID string, d *domain.Deliverable) error {
	query := `UPDATE deliverables SET type = ?, description = ?, status = ?, due_date = ?,
		file_path = ?, notes = ?
		WHERE project_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Type,
		d.Description,
		string(d.Status),
		d.DueDate.Format(time.RFC3339),
		d.FilePath,
		d.Notes,
		projectID,
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating deliverable: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating deliverable: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deliverable %s in project %s: %w", d.ID, projectID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteProjectRepo) CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM projects GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting projects: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ProjectStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning project count: %w", err)
		}
		counts[domain.ProjectStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project counts: %w", err)
	}
	return counts, nil
}

func (r *SQLiteProjectRepo) insertTask(ctx context.Context, projectID string, t *domain.Task) error {
	history, err := marshalHistory(t.History)
	if err != nil {
		return err
	}
	query := `INSERT INTO tasks (project_id, id, name, description, status, start_date, end_date,
		history, completed_at, reviewed_at, feedback)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		projectID,
		t.ID,
		t.Name,
		t.Description,
		string(t.Status),
		t.Start.Format(time.RFC3339),
		t.End.Format(time.RFC3339),
		history,
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		nullableTimeToString(t.ReviewedAt, time.RFC3339),
		t.Feedback,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) insertDeliverable(ctx context.Context, projectID string, d *domain.Deliverable) error {
	query := `INSERT INTO deliverables (project_id, id, type, description, status, due_date, file_path, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		projectID,
		d.ID,
		d.Type,
		d.Description,
		string(d.Status),
		d.DueDate.Format(time.RFC3339),
		d.FilePath,
		d.Notes,
	)
	if err != nil {
		return fmt.Errorf("inserting deliverable: %w", err)
	}
	return nil
}

// loadChildren populates tasks and deliverables in their template order.
func (r *SQLiteProjectRepo) loadChildren(ctx context.Context, p *domain.Project) error {
	taskRows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, status, start_date, end_date, history,
			completed_at, reviewed_at, feedback
		FROM tasks WHERE project_id = ? ORDER BY id`, p.ID)
	if err != nil {
		return fmt.Errorf("listing tasks: %w", err)
	}
	defer taskRows.Close()

	p.Tasks = nil
	for taskRows.Next() {
		var t domain.Task
		var statusStr, startStr, endStr, historyStr string
		var completedAtStr, reviewedAtStr sql.NullString
		if err := taskRows.Scan(
			&t.ID, &t.Name, &t.Description, &statusStr, &startStr, &endStr,
			&historyStr, &completedAtStr, &reviewedAtStr, &t.Feedback,
		); err != nil {
			return fmt.Errorf("scanning task: %w", err)
		}
		t.Status = domain.TaskStatus(statusStr)
		if t.Start, err = time.Parse(time.RFC3339, startStr); err != nil {
			return fmt.Errorf("parsing task start_date: %w", err)
		}
		if t.End, err = time.Parse(time.RFC3339, endStr); err != nil {
			return fmt.Errorf("parsing task end_date: %w", err)
		}
		if t.History, err = unmarshalHistory(historyStr); err != nil {
			return err
		}
		t.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
		t.ReviewedAt = parseNullableTime(reviewedAtStr, time.RFC3339)
		p.Tasks = append(p.Tasks, t)
	}
	if err := taskRows.Err(); err != nil {
		return fmt.Errorf("iterating tasks: %w", err)
	}

	delivRows, err := r.db.QueryContext(ctx,
		`SELECT id, type, description, status, due_date, file_path, notes
		FROM deliverables WHERE project_id = ? ORDER BY id`, p.ID)
	if err != nil {
		return fmt.Errorf("listing deliverables: %w", err)
	}
	defer delivRows.Close()

	p.Deliverables = nil
	for delivRows.Next() {
		var d domain.Deliverable
		var statusStr, dueStr string
		if err := delivRows.Scan(&d.ID, &d.Type, &d.Description, &statusStr, &dueStr, &d.FilePath, &d.Notes); err != nil {
			return fmt.Errorf("scanning deliverable: %w", err)
		}
		d.Status = domain.DeliverableStatus(statusStr)
		if d.DueDate, err = time.Parse(time.RFC3339, dueStr); err != nil {
			return fmt.Errorf("parsing deliverable due_date: %w", err)
		}
		p.Deliverables = append(p.Deliverables, d)
	}
	if err := delivRows.Err(); err != nil {
		return fmt.Errorf("iterating deliverables: %w", err)
	}
	return nil
}

func scanProject(row scanner) (*domain.Project, error) {
	var p domain.Project
	var statusStr, startStr, endStr, historyStr, createdAtStr, updatedAtStr string
	var completedAtStr sql.NullString

	err := row.Scan(
		&p.ID, &p.DealID, &p.BusinessName, &p.ServiceType, &statusStr,
		&startStr, &endStr, &p.Timeline.DurationDays, &p.Progress,
		&historyStr, &completedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(statusStr)
	if p.Timeline.Start, err = time.Parse(time.RFC3339, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.Timeline.End, err = time.Parse(time.RFC3339, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if p.StatusHistory, err = unmarshalHistory(historyStr); err != nil {
		return nil, err
	}
	p.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)

	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
