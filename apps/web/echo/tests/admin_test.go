package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Axelresells/AxelScale-Formacion/apps/web/echo"
	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
	"github.com/Axelresells/AxelScale-Formacion/tests"
)

func TestAdminArea_permissions(t *testing.T) {
	app := setup(t)
	_, memberCookie := app.createMember(t, "member@example.com")

	rec := app.get("/app/admin", memberCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acceso denegado")

	rec = app.get("/api/admin/users", memberCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error": "permission denied"}`, rec.Body.String())

	rec = app.get("/app/admin")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAdminArea_roleChangeDuringSession(t *testing.T) {
	ctx := context.Background()
	app := setup(t)
	usr, cookie := app.createMember(t, "member@example.com")
	adminLink := `href="/app/admin"`

	// promoted after login
	_, _, err := app.usrSvc.Upsert(ctx, usr.Email, user.RoleAdmin)
	require.NoError(t, err)

	rec := app.get("/app", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), adminLink)
	assert.Equal(t, http.StatusOK, app.get("/app/admin", cookie).Code)
	assert.Equal(t, http.StatusOK, app.get("/api/admin/users", cookie).Code)

	// demoted after login
	_, _, err = app.usrSvc.Upsert(ctx, usr.Email, user.RoleUser)
	require.NoError(t, err)

	rec = app.get("/app", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), adminLink)
	assert.Equal(t, http.StatusForbidden, app.get("/app/admin", cookie).Code)
	assert.Equal(t, http.StatusForbidden, app.get("/api/admin/users", cookie).Code)
}

func TestAdminArea_users(t *testing.T) {
	app := setup(t)
	_, adminCookie := app.createAdmin(t, "admin@example.com")
	app.createMember(t, "ana@example.com")
	testutil.CreateUser(t, app.usrRepo, "Bruno", "bruno@example.com", user.RoleUser)

	rec := app.get("/app/admin", adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "3 usuarios")
	assert.Contains(t, body, "ana@example.com")
	assert.Contains(t, body, "bruno@example.com")
	assert.Contains(t, body, "Sin suscripción")
	assert.Contains(t, body, `href="/app/admin" class="nav-link nav-admin active"`)

	rec = app.get("/app/admin?search=BRU", adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 usuarios")
	assert.NotContains(t, rec.Body.String(), "ana@example.com")

	tests := []struct {
		name      string
		query     string
		wantUsers []string
	}{
		{name: "email asc", query: "?ordering=email", wantUsers: []string{"admin@example.com", "ana@example.com", "bruno@example.com"}},
		{name: "email desc", query: "?ordering=-email", wantUsers: []string{"bruno@example.com", "ana@example.com", "admin@example.com"}},
		{name: "role filter", query: "?role=ADMIN", wantUsers: []string{"admin@example.com"}},
		{name: "unknown role is ignored", query: "?role=ROOT&ordering=email", wantUsers: []string{"admin@example.com", "ana@example.com", "bruno@example.com"}},
		{name: "search", query: "?search=ana", wantUsers: []string{"ana@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.get("/api/admin/users"+tt.query, adminCookie)
			require.Equal(t, http.StatusOK, rec.Code)

			var members []Member
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
			emails := make([]string, 0, len(members))
			for _, m := range members {
				emails = append(emails, m.User.Email)
			}
			assert.Equal(t, tt.wantUsers, emails)
		})
	}
}

func TestAdminArea_grant(t *testing.T) {
	app := setup(t)
	_, adminCookie := app.createAdmin(t, "admin@example.com")
	usr := testutil.CreateUser(t, app.usrRepo, "", "new@example.com", user.RoleUser)
	path := "/app/admin/users/" + usr.ID + "/subscription"

	t.Run("invalid plan", func(t *testing.T) {
		rec := app.postForm(path, url.Values{"plan": {"lifetime"}}, adminCookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Datos no válidos")
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := app.postForm("/app/admin/users/nope/subscription", url.Values{"plan": {"1month"}}, adminCookie)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("grant", func(t *testing.T) {
		rec := app.postForm(path, url.Values{"plan": {subscription.PlanQuarterly}}, adminCookie)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/app/admin", rec.Header().Get("Location"))

		sub, err := app.subSvc.GetByUserID(context.Background(), usr.ID)
		require.NoError(t, err)
		assert.Equal(t, subscription.PlanQuarterly, sub.Plan)
		assert.Equal(t, subscription.StatusActive, sub.Status)
		assert.WithinDuration(t, time.Now().Add(90*24*time.Hour), sub.CurrentPeriodEnd, time.Minute)
	})

	t.Run("user can now enter", func(t *testing.T) {
		rec := app.get("/app", app.login(t, mustGetUser(t, app, usr.ID)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cancel", func(t *testing.T) {
		rec := app.postForm(path+"/cancel", nil, adminCookie)
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		ok, err := app.subSvc.HasAccess(context.Background(), usr.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func mustGetUser(t *testing.T, app *testApp, id string) user.User {
	usr, err := app.usrSvc.GetByID(context.Background(), id)
	require.NoError(t, err)
	return usr
}
