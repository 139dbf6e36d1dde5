package store

import (
	"context"
	"time"

	"github.com/sells-group/policy-extract/internal/model"
)

// Record is one persisted extraction with its storage metadata.
type Record struct {
	ID         string                    `json:"id"`
	Filename   string                    `json:"filename"`
	Extraction *model.DocumentExtraction `json:"extraction"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// Filter specifies criteria for listing extraction records.
type Filter struct {
	Filename string `json:"filename,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for extraction results.
type Store interface {
	SaveExtraction(ctx context.Context, doc *model.DocumentExtraction) (*Record, error)
	GetExtraction(ctx context.Context, id string) (*Record, error)
	ListExtractions(ctx context.Context, filter Filter) ([]Record, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
