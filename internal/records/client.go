package records

import (
	"context"
	"time"
)

// Client is the interface for reading record collections from the hosted
// record store. All four reads return the full collection; filtering and
// aggregation happen in the analytics engine, never in the store.
type Client interface {
	ListSubmissions(ctx context.Context) ([]Submission, error)
	ListStageHistory(ctx context.Context) ([]StageHistoryEntry, error)
	ListComments(ctx context.Context) ([]Comment, error)
	ListStaff(ctx context.Context) ([]StaffProfile, error)
}

// Config holds the connection settings for the record store.
type Config struct {
	BaseURL string
	APIKey  string

	// Timeout bounds each individual collection read.
	Timeout time.Duration

	// RequestDelay is the minimum spacing between requests to the store.
	// Zero disables throttling.
	RequestDelay time.Duration

	// CacheTTL is how long a collection response may be replayed without
	// re-fetching. Zero disables the response cache.
	CacheTTL time.Duration
}

// NewClient creates a record-store client for the given configuration.
func NewClient(cfg Config) Client {
	return newRESTClient(cfg)
}
