package subscription

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core"
)

var (
	// errors
	ErrNotFound    = errors.New("subscription not found")
	ErrInvalidPlan = errors.New("invalid plan")
	ErrUserHasOne  = errors.New("user already has a subscription")
)

type (
	Repository interface {
		CreateSubscription(ctx context.Context, sub Subscription, exec ...core.DBExecutor) (Subscription, error)
		GetSubscription(ctx context.Context, userID string, exec ...core.DBExecutor) (Subscription, error)
		QuerySubscriptions(ctx context.Context, userIDs []string, exec ...core.DBExecutor) ([]Subscription, error)
		UpdateSubscription(ctx context.Context, sub Subscription, exec ...core.DBExecutor) (Subscription, error)
	}

	Service struct {
		repo Repository
		now  func() time.Time // mockable
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceMock returns a Service whose clock is fixed by `now`.
func NewServiceMock(repo Repository, now func() time.Time) *Service {
	return &Service{repo: repo, now: now}
}

func (svc *Service) utcNow() time.Time {
	return svc.now().UTC().Truncate(time.Microsecond)
}

func (svc *Service) GetByUserID(ctx context.Context, userID string) (Subscription, error) {
	return svc.repo.GetSubscription(ctx, userID)
}

// ByUserIDs returns the subscriptions of the given users, keyed by user ID.
func (svc *Service) ByUserIDs(ctx context.Context, userIDs []string) (map[string]Subscription, error) {
	subs, err := svc.repo.QuerySubscriptions(ctx, userIDs)
	if err != nil {
		return nil, errors.Wrap(err, "querying subscriptions")
	}
	byUser := make(map[string]Subscription, len(subs))
	for _, sub := range subs {
		byUser[sub.UserID] = sub
	}
	return byUser, nil
}

// Create stores a new subscription. The period ends a plan's duration from now unless CurrentPeriodEnd is set.
func (svc *Service) Create(ctx context.Context, ns NewSubscription) (Subscription, error) {
	plan, ok := GetPlan(ns.Plan)
	if !ok {
		return Subscription{}, ErrInvalidPlan
	}
	if ns.Status == "" {
		ns.Status = StatusActive
	}

	now := svc.utcNow()
	periodEnd := ns.CurrentPeriodEnd.UTC()
	if ns.CurrentPeriodEnd.IsZero() {
		periodEnd = now.Add(plan.Duration)
	}
	sub, err := svc.repo.CreateSubscription(ctx, Subscription{
		UserID:           ns.UserID,
		Plan:             plan.Value,
		Status:           ns.Status,
		CurrentPeriodEnd: periodEnd,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	return sub, errors.Wrap(err, "creating subscription")
}

// CreateIfMissing creates an active subscription for the user only when they have none.
// It reports whether a subscription was created.
func (svc *Service) CreateIfMissing(ctx context.Context, userID, plan string) (Subscription, bool, error) {
	sub, err := svc.repo.GetSubscription(ctx, userID)
	switch errors.Cause(err) {
	case nil:
		return sub, false, nil
	case ErrNotFound:
		sub, err = svc.Create(ctx, NewSubscription{UserID: userID, Plan: plan})
		if err != nil {
			return Subscription{}, false, err
		}
		return sub, true, nil
	default:
		return Subscription{}, false, errors.Wrap(err, "finding subscription")
	}
}

// Grant gives the user `plan`. A subscription that still grants access is extended from its current end,
// anything else restarts from now.
func (svc *Service) Grant(ctx context.Context, userID, plan string) (Subscription, error) {
	p, ok := GetPlan(plan)
	if !ok {
		return Subscription{}, ErrInvalidPlan
	}

	sub, err := svc.repo.GetSubscription(ctx, userID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return svc.Create(ctx, NewSubscription{UserID: userID, Plan: p.Value})
		}
		return Subscription{}, errors.Wrap(err, "finding subscription")
	}

	now := svc.utcNow()
	start := now
	if sub.GrantsAccess(now) {
		start = sub.CurrentPeriodEnd
	}
	sub.Plan = p.Value
	sub.Status = StatusActive
	sub.CurrentPeriodEnd = start.Add(p.Duration)
	sub.UpdatedAt = now

	sub, err = svc.repo.UpdateSubscription(ctx, sub)
	return sub, errors.Wrap(err, "updating subscription")
}

// Cancel marks the user's subscription as canceled, which revokes access immediately.
func (svc *Service) Cancel(ctx context.Context, userID string) (Subscription, error) {
	sub, err := svc.repo.GetSubscription(ctx, userID)
	if err != nil {
		return Subscription{}, err
	}
	if sub.Status == StatusCanceled {
		return sub, nil
	}
	sub.Status = StatusCanceled
	sub.UpdatedAt = svc.utcNow()

	sub, err = svc.repo.UpdateSubscription(ctx, sub)
	return sub, errors.Wrap(err, "updating subscription")
}

// HasAccess reports whether the user currently has an active subscription.
func (svc *Service) HasAccess(ctx context.Context, userID string) (bool, error) {
	sub, err := svc.repo.GetSubscription(ctx, userID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, errors.Wrap(err, "finding subscription")
	}
	return sub.GrantsAccess(svc.now()), nil
}

// Now is the service's clock.
func (svc *Service) Now() time.Time {
	return svc.now()
}
