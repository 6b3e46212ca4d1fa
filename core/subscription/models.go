package subscription

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Plans
const (
	PlanMonthly   = "1month"
	PlanQuarterly = "3months"
	PlanYearly    = "12months"
)

// Statuses
const (
	StatusActive   = "active"
	StatusCanceled = "canceled"
	StatusPastDue  = "past_due"
)

const day = 24 * time.Hour

var (
	Plans = []Plan{
		{Value: PlanMonthly, Name: "1 mes", Duration: 30 * day},
		{Value: PlanQuarterly, Name: "3 meses", Duration: 90 * day},
		{Value: PlanYearly, Name: "12 meses", Duration: 365 * day},
	}

	AllStatuses = []string{StatusActive, StatusCanceled, StatusPastDue}
)

type Plan struct {
	Value    string        `json:"value"`
	Name     string        `json:"name"`
	Duration time.Duration `json:"-"`
}

// GetPlan looks a plan up by value.
func GetPlan(value string) (Plan, bool) {
	for _, p := range Plans {
		if p.Value == value {
			return p, true
		}
	}
	return Plan{}, false
}

type Subscription struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Plan             string    `json:"plan"`
	Status           string    `json:"status"`
	CurrentPeriodEnd time.Time `json:"current_period_end"` // UTC
	CreatedAt        time.Time `json:"created_at"`         // UTC
	UpdatedAt        time.Time `json:"updated_at"`         // UTC
}

// GrantsAccess reports whether the subscription is active and its period has not ended at `now`.
func (s Subscription) GrantsAccess(now time.Time) bool {
	return s.Status == StatusActive && s.CurrentPeriodEnd.After(now)
}

// DaysLeft is the number of started days until the period ends, 0 once it has ended.
func (s Subscription) DaysLeft(now time.Time) int {
	left := s.CurrentPeriodEnd.Sub(now)
	if left <= 0 {
		return 0
	}
	days := int(left / day)
	if left%day != 0 {
		days++
	}
	return days
}

// NewSubscription contains information needed to create a new Subscription.
type NewSubscription struct {
	UserID           string    `json:"user_id" validate:"required,uuid"`
	Plan             string    `json:"plan" validate:"required,oneof=1month 3months 12months"`
	Status           string    `json:"status" validate:"omitempty,oneof=active canceled past_due"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
}

func (ns *NewSubscription) Validate(validate *validator.Validate) error {
	if ns.Status == "" {
		ns.Status = StatusActive
	}
	return validate.Struct(ns)
}

// GrantRequest is the payload admins use to grant a plan.
type GrantRequest struct {
	Plan string `json:"plan" form:"plan" validate:"required,oneof=1month 3months 12months"`
}

func (gr GrantRequest) Validate(validate *validator.Validate) error { return validate.Struct(gr) }
