package recommendation

import (
	"context"
	"time"

	"github.com/compasshq/compass/pkg/kernel"
)

type Repository interface {
	// Insert appends one recommendation row (older rows are kept)
	Insert(ctx context.Context, rec *Recommendation) error

	// ListRecentByUser retrieves up to limit most-recently-created rows
	ListRecentByUser(ctx context.Context, userID kernel.UserID, limit int) ([]Recommendation, error)
}

// Completer invokes the remote text-generation endpoint
type Completer interface {
	Complete(ctx context.Context, instruction, content string) (string, error)
}

// Extractor turns a resume document URL into plain text
type Extractor interface {
	Extract(ctx context.Context, documentURL string) (string, error)
}

// RunLock is a best-effort per-user mutual exclusion for generation runs.
// Acquisition failure never blocks a run; it only narrows the window for
// duplicate model calls.
type RunLock interface {
	// Acquire returns a release func and whether the lock was obtained
	Acquire(ctx context.Context, userID kernel.UserID, ttl time.Duration) (release func(), acquired bool)
}
