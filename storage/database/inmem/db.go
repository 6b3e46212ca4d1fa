package inmemdb

import (
	"sync"

	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

type (
	DB struct {
		user         *userTable
		subscription *subscriptionTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	subscriptionTable struct {
		sync.RWMutex
		table map[string]*subscription.Subscription // {userID: Subscription}
	}
)

func NewDB() *DB {
	return &DB{
		user:         &userTable{table: make(map[string]*user.User)},
		subscription: &subscriptionTable{table: make(map[string]*subscription.Subscription)},
	}
}

// Reset empties all tables.
func (db *DB) Reset() {
	db.user.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.Unlock()

	db.subscription.Lock()
	db.subscription.table = make(map[string]*subscription.Subscription)
	db.subscription.Unlock()
}
