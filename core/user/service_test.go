package user_test

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
	emailsvc "github.com/Axelresells/AxelScale-Formacion/services/email"
	inmemdb "github.com/Axelresells/AxelScale-Formacion/storage/database/inmem"
	testutil "github.com/Axelresells/AxelScale-Formacion/tests"
)

func setup(t *testing.T) (*user.Service, user.Repository, *emailsvc.ConsoleServiceMock) {
	conf := testutil.NewConfig()
	db := inmemdb.NewDB()
	repo := inmemdb.NewUserRepository(db)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	return user.NewService(repo, mailSvc, conf), repo, mailSvc
}

func TestService_Upsert(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()

	existing := testutil.CreateUser(t, repo, "Alumno", "alumno@test.es", user.RoleUser)

	usr, created, err := svc.Upsert(ctx, "  Admin@Test.es ", user.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "admin@test.es", usr.Email)
	assert.Equal(t, user.RoleAdmin, usr.Role)
	assert.NotEmpty(t, usr.ID)

	usr, created, err = svc.Upsert(ctx, "admin@test.es", user.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)

	promoted, created, err := svc.Upsert(ctx, existing.Email, user.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, promoted.ID)
	assert.True(t, promoted.IsAdmin())

	_, _, err = svc.Upsert(ctx, "x@test.es", "ROOT")
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestService_Create(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	testutil.CreateUser(t, repo, "Taken", "taken@test.es", user.RoleUser)

	nu := user.NewUser{Email: " New@Test.es", Name: " Nuevo "}
	require.NoError(t, nu.Validate(validate))
	usr, err := svc.Create(ctx, nu)
	require.NoError(t, err)
	assert.Equal(t, "new@test.es", usr.Email)
	assert.Equal(t, "Nuevo", usr.Name)
	assert.Equal(t, user.RoleUser, usr.Role)

	_, err = svc.Create(ctx, user.NewUser{Email: "taken@test.es"})
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "email", vErr.Fields[0].Field)

	bad := user.NewUser{Email: "not-an-email", Role: "ROOT"}
	assert.Error(t, bad.Validate(validate))
}

func TestService_Query(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()

	now := time.Now()
	ana := testutil.CreateUser(t, repo, "Ana", "ana@test.es", user.RoleUser, now.Add(-3*time.Hour))
	bob := testutil.CreateUser(t, repo, "Bob", "bob@axel.es", user.RoleAdmin, now.Add(-2*time.Hour))
	cai := testutil.CreateUser(t, repo, "Caïn", "cain@test.es", user.RoleUser, now.Add(-1*time.Hour))

	tests := []struct {
		name     string
		filter   *user.QueryFilter
		ordering []core.DBOrdering
		want     []user.User
	}{
		{name: "all (newest first)", want: []user.User{cai, bob, ana}},
		{name: "search email", filter: &user.QueryFilter{Search: "TEST.es"}, want: []user.User{cai, ana}},
		{name: "search name", filter: &user.QueryFilter{Search: "bo"}, want: []user.User{bob}},
		{name: "role", filter: &user.QueryFilter{Role: user.RoleAdmin}, want: []user.User{bob}},
		{name: "unknown role is ignored", filter: &user.QueryFilter{Role: "lol"}, want: []user.User{cai, bob, ana}},
		{
			name: "order by email", ordering: []core.DBOrdering{{Field: "email", Ascending: true}},
			want: []user.User{ana, bob, cai},
		},
		{
			name: "unknown ordering is dropped", ordering: []core.DBOrdering{{Field: "password", Ascending: true}},
			want: []user.User{cai, bob, ana},
		},
		{
			name: "order by role,-name", ordering: []core.DBOrdering{{Field: "role", Ascending: true}, {Field: "name"}},
			want: []user.User{bob, cai, ana},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Query(ctx, tt.filter, tt.ordering)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_LoginLink(t *testing.T) {
	svc, repo, mailSvc := setup(t)
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "Axel", "axel@test.es", user.RoleUser)

	err := svc.RequestLoginLink(ctx, "nobody@test.es")
	assert.Equal(t, user.ErrNotFound, errors.Cause(err))
	assert.Empty(t, mailSvc.SentMessages())

	require.NoError(t, svc.RequestLoginLink(ctx, " AXEL@test.es "))
	sent := mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "axel@test.es", sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "/login/verify?")

	data, ok := sent[0].TemplateData.(user.LoginLinkData)
	require.True(t, ok)
	assert.Equal(t, 30, data.ValidMinutes)
	link, err := url.Parse(data.URL)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(data.URL, "http://localhost:8000/login/verify?"))

	uid, token := link.Query().Get("uid"), link.Query().Get("token")

	_, err = svc.VerifyLogin(ctx, uid, "NRXWY-sig")
	assert.Equal(t, user.ErrInvalidLoginLink, err)
	_, err = svc.VerifyLogin(ctx, "%%%", token)
	assert.Equal(t, user.ErrInvalidLoginLink, err)

	loggedIn, err := svc.VerifyLogin(ctx, uid, token)
	require.NoError(t, err)
	assert.Equal(t, usr.ID, loggedIn.ID)
	assert.False(t, loggedIn.LastLogin.IsZero())

	// links are single use
	_, err = svc.VerifyLogin(ctx, uid, token)
	assert.Equal(t, user.ErrInvalidLoginLink, err)
}
