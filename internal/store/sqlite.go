package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/helpdesk/internal/model"
)

// SQLiteStore implements Store on an in-memory SQLite database. The
// collection lives only as long as the process.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex // guards entropy
	entropy *rand.Rand
	nowFn   func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens an empty in-memory call collection.
func NewSQLiteStore() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every connection to :memory: gets its own database.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		nowFn:   func() time.Time { return time.Now().UTC() },
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(s.nowFn()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calls (
		id                TEXT PRIMARY KEY,
		caller_name       TEXT NOT NULL,
		caller_email      TEXT NOT NULL DEFAULT '',
		caller_phone      TEXT NOT NULL DEFAULT '',
		issue_description TEXT NOT NULL DEFAULT '',
		priority          TEXT NOT NULL DEFAULT 'medium'
		                  CHECK (priority IN ('low', 'medium', 'high', 'critical')),
		status            TEXT NOT NULL DEFAULT 'new',
		issue_image       TEXT,
		date_created      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_calls_created ON calls(date_created DESC);
	CREATE INDEX IF NOT EXISTS idx_calls_status ON calls(status);
	CREATE INDEX IF NOT EXISTS idx_calls_priority ON calls(priority);

	CREATE VIRTUAL TABLE IF NOT EXISTS calls_fts USING fts5(
		caller_name,
		issue_description,
		content=calls,
		content_rowid=rowid
	);

	CREATE TRIGGER IF NOT EXISTS calls_ai AFTER INSERT ON calls BEGIN
		INSERT INTO calls_fts(rowid, caller_name, issue_description)
		VALUES (new.rowid, new.caller_name, new.issue_description);
	END;
	CREATE TRIGGER IF NOT EXISTS calls_ad AFTER DELETE ON calls BEGIN
		INSERT INTO calls_fts(calls_fts, rowid, caller_name, issue_description)
		VALUES ('delete', old.rowid, old.caller_name, old.issue_description);
	END;
	CREATE TRIGGER IF NOT EXISTS calls_au AFTER UPDATE ON calls BEGIN
		INSERT INTO calls_fts(calls_fts, rowid, caller_name, issue_description)
		VALUES ('delete', old.rowid, old.caller_name, old.issue_description);
		INSERT INTO calls_fts(rowid, caller_name, issue_description)
		VALUES (new.rowid, new.caller_name, new.issue_description);
	END;
	`
	_, err := s.db.Exec(schema)
	return err
}

// checkDraft enforces the record invariants the form leaves open: status is
// free-form while editing but a stored call must use a known value.
func checkDraft(d model.Draft) (model.Priority, model.Status, error) {
	if strings.TrimSpace(d.CallerName) == "" {
		return "", "", fmt.Errorf("caller name is required")
	}
	p, err := model.ParsePriority(d.Priority)
	if err != nil {
		return "", "", err
	}
	st, err := model.ParseStatus(d.Status)
	if err != nil {
		return "", "", err
	}
	return p, st, nil
}

func (s *SQLiteStore) Create(ctx context.Context, p CreateParams) (*model.Call, error) {
	priority, status, err := checkDraft(p.Draft)
	if err != nil {
		return nil, err
	}

	id := p.ID
	if id == "" {
		id = s.newID()
	}
	created := p.DateCreated
	if created.IsZero() {
		created = s.nowFn()
	}

	c := p.Draft.Apply(model.Call{ID: id, DateCreated: created.UTC()})
	c.Priority, c.Status = priority, status

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO calls (id, caller_name, caller_email, caller_phone, issue_description,
		                    priority, status, issue_image, date_created)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.CallerName, c.CallerEmail, c.CallerPhone, c.IssueDescription,
		string(c.Priority), string(c.Status), nullString(c.IssueImage), formatTime(c.DateCreated))
	if err != nil {
		return nil, fmt.Errorf("insert call %s: %w", c.ID, err)
	}
	return &c, nil
}

func (s *SQLiteStore) Replace(ctx context.Context, id string, d model.Draft) (*model.Call, error) {
	priority, status, err := checkDraft(d)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE calls SET caller_name = ?, caller_email = ?, caller_phone = ?, issue_description = ?,
		                  priority = ?, status = ?, issue_image = ?
		 WHERE id = ?`,
		d.CallerName, d.CallerEmail, d.CallerPhone, d.IssueDescription,
		string(priority), string(status), nullString(d.IssueImage), id)
	if err != nil {
		return nil, fmt.Errorf("update call %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.Get(ctx, id)
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Call, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+callColumns+` FROM calls WHERE id = ?`, id)
	c, err := scanCall(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Call, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if p.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(p.Status))
	}
	if p.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, string(p.Priority))
	}

	query := `SELECT ` + callColumns + ` FROM calls WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY date_created DESC, id`
	if p.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, p.Limit)
	}

	return s.queryCalls(ctx, query, args...)
}

func (s *SQLiteStore) Rm(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM calls WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const callColumns = `id, caller_name, caller_email, caller_phone, issue_description,
	priority, status, issue_image, date_created`

func (s *SQLiteStore) queryCalls(ctx context.Context, query string, args ...interface{}) ([]model.Call, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []model.Call
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCall(row scanner) (model.Call, error) {
	var c model.Call
	var priority, status, created string
	var image sql.NullString

	err := row.Scan(
		&c.ID, &c.CallerName, &c.CallerEmail, &c.CallerPhone, &c.IssueDescription,
		&priority, &status, &image, &created,
	)
	if err != nil {
		return c, err
	}

	c.Priority = model.Priority(priority)
	c.Status = model.Status(status)
	if image.Valid {
		c.IssueImage = image.String
	}
	c.DateCreated, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return c, fmt.Errorf("parse date_created of %s: %w", c.ID, err)
	}
	return c, nil
}

// timeLayout is fixed width so date_created sorts lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
