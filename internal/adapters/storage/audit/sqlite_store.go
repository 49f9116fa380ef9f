package audit

import (
	"context"
	"database/sql"
	"time"

	domain "societydesk/internal/domain/audit"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements the audit Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new audit event store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an audit event.
// PRE: event is valid
// POST: Event is persisted
func (s *SQLiteStore) Save(ctx context.Context, event domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_event (id, timestamp, actor, action, resource_id, detail)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.Timestamp.Format(dateLayout), event.Actor,
		string(event.Action), event.ResourceID, event.Detail)
	return err
}

// List returns audit events ordered by timestamp desc.
// PRE: limit > 0
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, actor, action, resource_id, detail
		 FROM audit_event ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		var e domain.Event
		var ts string
		var action string
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &ts, &e.Actor, &action, &e.ResourceID, &detail); err != nil {
			return nil, err
		}
		e.Action = domain.Action(action)
		e.Detail = detail.String
		e.Timestamp, _ = time.Parse(dateLayout, ts)
		results = append(results, e)
	}
	return results, rows.Err()
}
