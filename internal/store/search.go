package store

import (
	"context"
	"strings"

	"github.com/rcliao/helpdesk/internal/model"
)

// Search finds calls whose caller name or issue description contain every
// term of the query as a word prefix, best matches first.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.Call, error) {
	match := ftsQuery(p.Query)
	if match == "" {
		return nil, nil
	}
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + prefixed("c.", callColumns) + `
		FROM calls_fts
		JOIN calls c ON c.rowid = calls_fts.rowid
		WHERE calls_fts MATCH ?
		ORDER BY calls_fts.rank, c.date_created DESC
		LIMIT ?`

	return s.queryCalls(ctx, query, match, limit)
}

// ftsQuery quotes each term so user input cannot inject FTS5 syntax, and
// makes each one a prefix match.
func ftsQuery(q string) string {
	var terms []string
	for _, t := range strings.Fields(q) {
		terms = append(terms, `"`+strings.ReplaceAll(t, `"`, `""`)+`"*`)
	}
	return strings.Join(terms, " ")
}

func prefixed(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = prefix + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
