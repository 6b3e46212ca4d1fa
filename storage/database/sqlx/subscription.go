package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
)

const subscriptionColumns = `id, user_id, plan, status, current_period_end, created_at, updated_at`

type subscriptionRow struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	Plan             string    `db:"plan"`
	Status           string    `db:"status"`
	CurrentPeriodEnd time.Time `db:"current_period_end"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func toSubscriptionRow(sub subscription.Subscription) subscriptionRow {
	return subscriptionRow{
		ID:               sub.ID,
		UserID:           sub.UserID,
		Plan:             sub.Plan,
		Status:           sub.Status,
		CurrentPeriodEnd: sub.CurrentPeriodEnd.UTC(),
		CreatedAt:        sub.CreatedAt.UTC(),
		UpdatedAt:        sub.UpdatedAt.UTC(),
	}
}

func (r subscriptionRow) subscription() subscription.Subscription {
	return subscription.Subscription{
		ID:               r.ID,
		UserID:           r.UserID,
		Plan:             r.Plan,
		Status:           r.Status,
		CurrentPeriodEnd: r.CurrentPeriodEnd.UTC(),
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
}

type subscriptionRepository struct {
	base
}

var _ subscription.Repository = (*subscriptionRepository)(nil) // interface compliance check

func NewSubscriptionRepository(exec core.DBExecutor) subscription.Repository {
	return &subscriptionRepository{base{exec: exec}}
}

func (repo subscriptionRepository) CreateSubscription(ctx context.Context, sub subscription.Subscription, exec ...core.DBExecutor) (subscription.Subscription, error) {
	sub.ID = uuid.New().String()
	row := toSubscriptionRow(sub)
	_, err := repo.namedExec(ctx, repo.getExec(exec),
		`INSERT INTO subscription (`+subscriptionColumns+`)
		VALUES (:id, :user_id, :plan, :status, :current_period_end, :created_at, :updated_at)`, row)
	if err != nil {
		if isUniqueViolation(err) {
			return subscription.Subscription{}, subscription.ErrUserHasOne
		}
		return subscription.Subscription{}, errors.Wrap(err, "inserting subscription")
	}
	return row.subscription(), nil
}

func (repo subscriptionRepository) GetSubscription(ctx context.Context, userID string, exec ...core.DBExecutor) (subscription.Subscription, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return subscription.Subscription{}, subscription.ErrNotFound
	}

	var rows []subscriptionRow
	q := `SELECT ` + subscriptionColumns + ` FROM subscription WHERE user_id = ? LIMIT 1`
	if err := repo.selectRows(ctx, repo.getExec(exec), &rows, q, userID); err != nil {
		return subscription.Subscription{}, errors.Wrap(err, "finding subscription")
	}
	if len(rows) == 0 {
		return subscription.Subscription{}, subscription.ErrNotFound
	}
	return rows[0].subscription(), nil
}

func (repo subscriptionRepository) QuerySubscriptions(ctx context.Context, userIDs []string, exec ...core.DBExecutor) ([]subscription.Subscription, error) {
	valid := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []subscription.Subscription{}, nil
	}

	q, args, err := sqlx.In(`SELECT `+subscriptionColumns+` FROM subscription WHERE user_id IN (?) ORDER BY user_id`, valid)
	if err != nil {
		return nil, errors.Wrap(err, "binding user ids")
	}
	var rows []subscriptionRow
	if err = repo.selectRows(ctx, repo.getExec(exec), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying subscriptions")
	}
	subs := make([]subscription.Subscription, 0, len(rows))
	for _, r := range rows {
		subs = append(subs, r.subscription())
	}
	return subs, nil
}

func (repo subscriptionRepository) UpdateSubscription(ctx context.Context, sub subscription.Subscription, exec ...core.DBExecutor) (subscription.Subscription, error) {
	row := toSubscriptionRow(sub)
	n, err := repo.namedExec(ctx, repo.getExec(exec),
		`UPDATE subscription
		SET plan = :plan, status = :status, current_period_end = :current_period_end, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`, row)
	if err != nil {
		return subscription.Subscription{}, errors.Wrap(err, "updating subscription")
	}
	if n == 0 {
		return subscription.Subscription{}, subscription.ErrNotFound
	}
	return row.subscription(), nil
}
