package users

import "time"

// Plan is a subscription tier. It governs the hourly request quota on the
// gated endpoints.
type Plan string

const (
	PlanFree     Plan = "Free"
	PlanGold     Plan = "Gold"
	PlanPlatinum Plan = "Platinum"
	PlanAdmin    Plan = "Admin"
)

// HourlyQuota returns the tier's request limit for the trailing hour and
// whether the tier is limited at all. Platinum and Admin are unlimited.
func (p Plan) HourlyQuota() (int, bool) {
	switch p {
	case PlanFree:
		return 10, true
	case PlanGold:
		return 15, true
	default:
		return 0, false
	}
}

// Next returns the tier reached by one self-service upgrade. Platinum is the
// top of the ladder and upgrades to itself; Admin is not reachable by
// upgrade.
func (p Plan) Next() Plan {
	switch p {
	case PlanFree:
		return PlanGold
	case PlanGold:
		return PlanPlatinum
	default:
		return p
	}
}

// Valid reports whether p is one of the known tiers.
func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanGold, PlanPlatinum, PlanAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	FullName     string
	Username     string
	PasswordHash string
	Plan         Plan
	CreatedAt    time.Time
}
