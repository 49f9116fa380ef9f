package notice

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "societydesk/internal/domain/notice"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new notice store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Notice (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Notice) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notice (id, title, body, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title, body=excluded.body`,
		entity.ID, entity.Title, entity.Body, entity.CreatedAt.Format(dateLayout))
	return err
}

// GetByID retrieves a Notice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notice, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, body, created_at FROM notice WHERE id = ?", id)
	entity, err := scanNotice(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Notice{}, fmt.Errorf("notice not found: %w", err)
	}
	return entity, err
}

// List returns notices newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Notice, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, body, created_at FROM notice ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Notice
	for rows.Next() {
		entity, err := scanNotice(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Delete removes a Notice from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notice WHERE id = ?", id)
	return err
}

// scanNotice extracts a Notice from a row scanner function.
func scanNotice(scan func(dest ...interface{}) error) (domain.Notice, error) {
	var entity domain.Notice
	var createdAt string
	if err := scan(&entity.ID, &entity.Title, &entity.Body, &createdAt); err != nil {
		return domain.Notice{}, err
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
