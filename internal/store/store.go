// Package store provides the host-side call collection and its SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/helpdesk/internal/model"
)

// ErrNotFound is returned when no call has the requested id.
var ErrNotFound = errors.New("call not found")

// CreateParams holds parameters for recording a new call.
type CreateParams struct {
	Draft       model.Draft
	ID          string    // empty assigns a fresh ULID
	DateCreated time.Time // zero means now
}

// ListParams holds parameters for listing calls.
type ListParams struct {
	Status   model.Status
	Priority model.Priority
	Limit    int // 0 means no limit
}

// SearchParams holds parameters for a full-text search over calls.
type SearchParams struct {
	Query string
	Limit int
}

// Store defines the call collection interface.
type Store interface {
	// Create records a new call from a validated draft.
	Create(ctx context.Context, p CreateParams) (*model.Call, error)

	// Replace overwrites every editable field of an existing call.
	Replace(ctx context.Context, id string, d model.Draft) (*model.Call, error)

	// Get retrieves a call by id.
	Get(ctx context.Context, id string) (*model.Call, error)

	// List lists calls matching the given filters, newest first.
	List(ctx context.Context, p ListParams) ([]model.Call, error)

	// Search finds calls whose caller name or description match the query.
	Search(ctx context.Context, p SearchParams) ([]model.Call, error)

	// Rm deletes a call.
	Rm(ctx context.Context, id string) error

	// Stats returns call totals by status and priority.
	Stats(ctx context.Context) (*Stats, error)

	// ExportAll returns every call ordered by id.
	ExportAll(ctx context.Context) ([]model.Call, error)

	// Import inserts calls whose ids are not yet taken and returns how many
	// were added.
	Import(ctx context.Context, calls []model.Call) (int, error)

	// Close closes the store.
	Close() error
}
