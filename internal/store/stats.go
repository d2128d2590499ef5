package store

import (
	"context"
)

// Stats holds collection statistics.
type Stats struct {
	TotalCalls int            `json:"total_calls" yaml:"total_calls"`
	WithImage  int            `json:"with_image" yaml:"with_image"`
	ByStatus   map[string]int `json:"by_status" yaml:"by_status"`
	ByPriority map[string]int `json:"by_priority" yaml:"by_priority"`
}

// Stats returns collection statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{
		ByStatus:   map[string]int{},
		ByPriority: map[string]int{},
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(issue_image) FROM calls`).Scan(&st.TotalCalls, &st.WithImage); err != nil {
		return nil, err
	}

	for column, counts := range map[string]map[string]int{
		"status":   st.ByStatus,
		"priority": st.ByPriority,
	} {
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+column+`, COUNT(*) FROM calls GROUP BY `+column)
		if err != nil {
			return st, err
		}
		for rows.Next() {
			var k string
			var n int
			if err := rows.Scan(&k, &n); err != nil {
				rows.Close()
				return st, err
			}
			counts[k] = n
		}
		rows.Close()
	}

	return st, nil
}
