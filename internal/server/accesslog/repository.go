package accesslog

import (
	"context"
	"time"
)

type Repository interface {
	Append(ctx context.Context, entry *Entry) error

	// CountSince counts the user's entries with timestamp >= since. The
	// lower boundary is inclusive.
	CountSince(ctx context.Context, username string, since time.Time) (int, error)

	// ListByUser returns the user's entries with timestamp >= since, oldest
	// first. A zero since returns everything.
	ListByUser(ctx context.Context, username string, since time.Time) ([]Entry, error)

	// ListAll returns every user's entries with timestamp >= since, oldest
	// first.
	ListAll(ctx context.Context, since time.Time) ([]Entry, error)
}
