// Package accesslog stores the append-only audit trail of gated API
// requests. The quota gate reads the same table to count a caller's requests
// in the trailing window, which is why entries are written for denials too.
package accesslog

import "time"

// Entry is one gated request: who called which endpoint and what status the
// request ended with. Entries are never updated or deleted.
type Entry struct {
	ID        int64
	Timestamp time.Time
	Username  string
	Endpoint  string
	Status    int
}
