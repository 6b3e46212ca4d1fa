package sqlxrepos

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

func TestUserQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   *user.QueryFilter
		ordering []core.DBOrdering
		wantQ    string
		wantArgs []interface{}
	}{
		{
			name:  "no filter",
			wantQ: `SELECT ` + userColumns + ` FROM "user" ORDER BY created_at DESC`,
		},
		{
			name:     "search",
			filter:   &user.QueryFilter{Search: "axel"},
			wantQ:    `SELECT ` + userColumns + ` FROM "user" WHERE (name ILIKE ? OR email ILIKE ?) ORDER BY created_at DESC`,
			wantArgs: []interface{}{"%axel%", "%axel%"},
		},
		{
			name:     "search and role, ordered",
			filter:   &user.QueryFilter{Search: "axel", Role: user.RoleAdmin},
			ordering: []core.DBOrdering{{Field: "email", Ascending: true}, {Field: "password"}, {Field: "last_login"}},
			wantQ: `SELECT ` + userColumns + ` FROM "user" WHERE (name ILIKE ? OR email ILIKE ?) AND role = ?` +
				` ORDER BY email ASC, last_login DESC`,
			wantArgs: []interface{}{"%axel%", "%axel%", user.RoleAdmin},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := userQuery(tt.filter, tt.ordering)
			assert.Equal(t, tt.wantQ, q)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestUserRow(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	usr := user.User{ID: "id", Email: "a@b.c", Role: user.RoleUser, CreatedAt: now, UpdatedAt: now}
	row := toUserRow(usr)
	assert.False(t, row.Name.Valid)
	assert.False(t, row.LastLogin.Valid)
	assert.Equal(t, usr, row.user())

	usr.Name = "Axel"
	usr.LastLogin = now
	row = toUserRow(usr)
	assert.Equal(t, null.StringFrom("Axel"), row.Name)
	assert.Equal(t, null.TimeFrom(now), row.LastLogin)
	assert.Equal(t, usr, row.user())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(errors.Wrap(&pq.Error{Code: "23505"}, "inserting")))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
