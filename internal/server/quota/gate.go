// Package quota decides whether a gated request is allowed under the
// caller's subscription tier. Limited tiers are throttled on the number of
// logged requests within the trailing window ending at the current time; the
// clock is injected so tests can pin the window boundary.
package quota

import (
	"context"
	"time"

	"github.com/dpatil-neu/skycatalog/internal/server/accesslog"
	"github.com/dpatil-neu/skycatalog/internal/server/users"
	"github.com/jonboulle/clockwork"
)

// Window is the trailing interval quota counting looks back over, computed
// from the current time rather than the start of a clock hour.
const Window = time.Hour

// Decision is the outcome of a quota check. Used/Limit are only meaningful
// for limited tiers.
type Decision struct {
	Allowed bool
	Plan    users.Plan
	Limit   int
	Used    int
}

// Gate enforces the tier quota. The quota count and the later log append are
// two separate operations; two concurrent requests from the same near-quota
// user can both pass and overshoot by one. Accepted here — see the windowed
// counter note in DESIGN.md.
type Gate struct {
	users users.Repository
	logs  accesslog.Repository
	clock clockwork.Clock
}

func NewGate(usersRepo users.Repository, logsRepo accesslog.Repository, clock clockwork.Clock) *Gate {
	return &Gate{
		users: usersRepo,
		logs:  logsRepo,
		clock: clock,
	}
}

// Check resolves the user's tier and compares their trailing-window request
// count against the tier limit. Admin and Platinum are always allowed. The
// window's lower boundary is inclusive and count >= limit denies.
func (g *Gate) Check(ctx context.Context, username string) (Decision, error) {

	user, err := g.users.GetByUsername(ctx, username)
	if err != nil {
		return Decision{}, err
	}

	limit, limited := user.Plan.HourlyQuota()
	if !limited {
		return Decision{Allowed: true, Plan: user.Plan}, nil
	}

	since := g.clock.Now().Add(-Window)
	used, err := g.logs.CountSince(ctx, username, since)
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		Allowed: used < limit,
		Plan:    user.Plan,
		Limit:   limit,
		Used:    used,
	}, nil
}
