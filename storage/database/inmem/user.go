package inmemdb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.user.table))
	for _, u := range repo.db.user.table {
		users = append(users, *u)
	}
	return users
}

func (repo *userRepository) emailTaken(email, exclID string) bool {
	for _, u := range repo.db.user.table {
		if u.Email == email && u.ID != exclID {
			return true
		}
	}
	return false
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User, _ ...core.DBExecutor) (user.User, error) {
	repo.db.user.Lock()
	defer repo.db.user.Unlock()

	if repo.emailTaken(usr.Email, "") {
		return user.User{}, user.ErrEmailExists
	}
	usr.ID = uuid.New().String()
	repo.db.user.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) QueryUsers(_ context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, _ ...core.DBExecutor) ([]user.User, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	users := make([]user.User, 0, len(repo.db.user.table))
	for _, usr := range repo.query() {
		if filter != nil {
			if filter.Search != "" {
				search := strings.ToLower(filter.Search)
				if !(strings.Contains(strings.ToLower(usr.Name), search) || strings.Contains(strings.ToLower(usr.Email), search)) {
					continue
				}
			}
			if filter.Role != "" && usr.Role != filter.Role {
				continue
			}
		}
		users = append(users, usr)
	}

	sort.SliceStable(users, func(i, j int) bool {
		for _, ord := range ordering {
			cmp := compareUsers(users[i], users[j], ord.Field)
			if cmp == 0 {
				continue
			}
			if ord.Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter, _ ...core.DBExecutor) (user.User, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	if filter.ID != "" {
		if usr, ok := repo.db.user.table[filter.ID]; ok {
			return *usr, nil
		}
		return user.User{}, user.ErrNotFound
	}
	if filter.Email != "" {
		for _, usr := range repo.db.user.table {
			if usr.Email == filter.Email {
				return *usr, nil
			}
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User, _ ...core.DBExecutor) (user.User, error) {
	repo.db.user.Lock()
	defer repo.db.user.Unlock()

	if _, ok := repo.db.user.table[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	if repo.emailTaken(usr.Email, usr.ID) {
		return user.User{}, user.ErrEmailExists
	}
	repo.db.user.table[usr.ID] = &usr
	return usr, nil
}

// DeleteUsersByID also deletes the users' subscriptions.
func (repo *userRepository) DeleteUsersByID(_ context.Context, ids []string, _ ...core.DBExecutor) (int, error) {
	repo.db.user.Lock()
	defer repo.db.user.Unlock()
	repo.db.subscription.Lock()
	defer repo.db.subscription.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.user.table[id]; ok {
			delete(repo.db.user.table, id)
			delete(repo.db.subscription.table, id)
			cnt++
		}
	}
	return cnt, nil
}

func compareUsers(a, b user.User, field string) int {
	switch field {
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "role":
		return strings.Compare(a.Role, b.Role)
	case "created_at":
		return compareTimes(a.CreatedAt, b.CreatedAt)
	case "updated_at":
		return compareTimes(a.UpdatedAt, b.UpdatedAt)
	case "last_login":
		return compareTimes(a.LastLogin, b.LastLogin)
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
