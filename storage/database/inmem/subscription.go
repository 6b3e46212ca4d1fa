package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
)

type subscriptionRepository struct {
	db *DB
}

var _ subscription.Repository = (*subscriptionRepository)(nil) // interface compliance check

func NewSubscriptionRepository(db *DB) subscription.Repository {
	return &subscriptionRepository{db: db}
}

func (repo *subscriptionRepository) CreateSubscription(_ context.Context, sub subscription.Subscription, _ ...core.DBExecutor) (subscription.Subscription, error) {
	repo.db.subscription.Lock()
	defer repo.db.subscription.Unlock()

	if _, ok := repo.db.subscription.table[sub.UserID]; ok {
		return subscription.Subscription{}, subscription.ErrUserHasOne
	}
	sub.ID = uuid.New().String()
	repo.db.subscription.table[sub.UserID] = &sub
	return sub, nil
}

func (repo *subscriptionRepository) GetSubscription(_ context.Context, userID string, _ ...core.DBExecutor) (subscription.Subscription, error) {
	repo.db.subscription.RLock()
	defer repo.db.subscription.RUnlock()

	if sub, ok := repo.db.subscription.table[userID]; ok {
		return *sub, nil
	}
	return subscription.Subscription{}, subscription.ErrNotFound
}

func (repo *subscriptionRepository) QuerySubscriptions(_ context.Context, userIDs []string, _ ...core.DBExecutor) ([]subscription.Subscription, error) {
	repo.db.subscription.RLock()
	defer repo.db.subscription.RUnlock()

	subs := make([]subscription.Subscription, 0, len(userIDs))
	for _, id := range userIDs {
		if sub, ok := repo.db.subscription.table[id]; ok {
			subs = append(subs, *sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].UserID < subs[j].UserID })
	return subs, nil
}

func (repo *subscriptionRepository) UpdateSubscription(_ context.Context, sub subscription.Subscription, _ ...core.DBExecutor) (subscription.Subscription, error) {
	repo.db.subscription.Lock()
	defer repo.db.subscription.Unlock()

	orig, ok := repo.db.subscription.table[sub.UserID]
	if !ok || orig.ID != sub.ID {
		return subscription.Subscription{}, subscription.ErrNotFound
	}
	repo.db.subscription.table[sub.UserID] = &sub
	return sub, nil
}
