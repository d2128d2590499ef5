package store

import (
	"context"
	"fmt"

	"github.com/rcliao/helpdesk/internal/model"
)

// ExportAll returns every call ordered by id.
func (s *SQLiteStore) ExportAll(ctx context.Context) ([]model.Call, error) {
	return s.queryCalls(ctx, `SELECT `+callColumns+` FROM calls ORDER BY id`)
}

// Import stores calls from an export or seed file, keeping their ids and
// creation times. Calls whose id already exists are skipped.
func (s *SQLiteStore) Import(ctx context.Context, calls []model.Call) (int, error) {
	imported := 0
	for _, c := range calls {
		if _, err := s.Get(ctx, c.ID); err == nil {
			continue
		}
		_, err := s.Create(ctx, CreateParams{
			Draft:       model.DraftFromCall(c),
			ID:          c.ID,
			DateCreated: c.DateCreated,
		})
		if err != nil {
			return imported, fmt.Errorf("import %s: %w", c.ID, err)
		}
		imported++
	}
	return imported, nil
}
