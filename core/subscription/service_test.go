package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
	inmemdb "github.com/Axelresells/AxelScale-Formacion/storage/database/inmem"
	testutil "github.com/Axelresells/AxelScale-Formacion/tests"
)

var now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*subscription.Service, user.Repository, subscription.Repository) {
	db := inmemdb.NewDB()
	usrRepo := inmemdb.NewUserRepository(db)
	subRepo := inmemdb.NewSubscriptionRepository(db)
	return subscription.NewServiceMock(subRepo, func() time.Time { return now }), usrRepo, subRepo
}

func TestSubscription_GrantsAccess(t *testing.T) {
	tests := []struct {
		name string
		sub  subscription.Subscription
		want bool
	}{
		{name: "active, running", sub: subscription.Subscription{Status: subscription.StatusActive, CurrentPeriodEnd: now.Add(time.Hour)}, want: true},
		{name: "active, ended", sub: subscription.Subscription{Status: subscription.StatusActive, CurrentPeriodEnd: now.Add(-time.Hour)}},
		{name: "active, ends now", sub: subscription.Subscription{Status: subscription.StatusActive, CurrentPeriodEnd: now}},
		{name: "canceled", sub: subscription.Subscription{Status: subscription.StatusCanceled, CurrentPeriodEnd: now.Add(time.Hour)}},
		{name: "past due", sub: subscription.Subscription{Status: subscription.StatusPastDue, CurrentPeriodEnd: now.Add(time.Hour)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.GrantsAccess(now))
		})
	}
}

func TestSubscription_DaysLeft(t *testing.T) {
	sub := subscription.Subscription{CurrentPeriodEnd: now.Add(36 * time.Hour)}
	assert.Equal(t, 2, sub.DaysLeft(now))
	assert.Equal(t, 0, sub.DaysLeft(now.Add(48*time.Hour)))
}

func TestGetPlan(t *testing.T) {
	p, ok := subscription.GetPlan(subscription.PlanYearly)
	require.True(t, ok)
	assert.Equal(t, 365*24*time.Hour, p.Duration)
	_, ok = subscription.GetPlan("lifetime")
	assert.False(t, ok)
}

func TestNewSubscription_Validate(t *testing.T) {
	validate := validator.New()

	ns := subscription.NewSubscription{UserID: "0b6ef8c4-8bd7-4f4c-9c55-5a4a0c2d1f11", Plan: subscription.PlanQuarterly}
	require.NoError(t, ns.Validate(validate))
	assert.Equal(t, subscription.StatusActive, ns.Status)

	bad := subscription.NewSubscription{UserID: "1", Plan: "6months"}
	assert.Error(t, bad.Validate(validate))
	assert.Error(t, subscription.GrantRequest{Plan: "lifetime"}.Validate(validate))
}

func TestService_CreateIfMissing(t *testing.T) {
	svc, usrRepo, _ := setup(t)
	ctx := context.Background()
	usr := testutil.CreateUser(t, usrRepo, "Admin", "admin@test.es", user.RoleAdmin)

	sub, created, err := svc.CreateIfMissing(ctx, usr.ID, subscription.PlanYearly)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, subscription.PlanYearly, sub.Plan)
	assert.Equal(t, subscription.StatusActive, sub.Status)
	assert.Equal(t, now.Add(365*24*time.Hour), sub.CurrentPeriodEnd)

	again, created, err := svc.CreateIfMissing(ctx, usr.ID, subscription.PlanMonthly)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, sub, again)

	_, _, err = svc.CreateIfMissing(ctx, usr.ID+"x", "lifetime")
	assert.Equal(t, subscription.ErrInvalidPlan, errors.Cause(err))
}

func TestService_Grant(t *testing.T) {
	svc, usrRepo, subRepo := setup(t)
	ctx := context.Background()
	fresh := testutil.CreateUser(t, usrRepo, "Nuevo", "nuevo@test.es", user.RoleUser)
	running := testutil.CreateUser(t, usrRepo, "Activo", "activo@test.es", user.RoleUser)
	expired := testutil.CreateUser(t, usrRepo, "Caducado", "caducado@test.es", user.RoleUser)
	canceled := testutil.CreateUser(t, usrRepo, "Cancelado", "cancelado@test.es", user.RoleUser)

	testutil.CreateSubscription(t, subRepo, running.ID, subscription.PlanMonthly, subscription.StatusActive, now.Add(10*24*time.Hour))
	testutil.CreateSubscription(t, subRepo, expired.ID, subscription.PlanMonthly, subscription.StatusActive, now.Add(-24*time.Hour))
	testutil.CreateSubscription(t, subRepo, canceled.ID, subscription.PlanYearly, subscription.StatusCanceled, now.Add(100*24*time.Hour))

	tests := []struct {
		name    string
		userID  string
		plan    string
		wantEnd time.Time
		wantErr error
	}{
		{name: "invalid plan", userID: fresh.ID, plan: "lifetime", wantErr: subscription.ErrInvalidPlan},
		{name: "no subscription", userID: fresh.ID, plan: subscription.PlanQuarterly, wantEnd: now.Add(90 * 24 * time.Hour)},
		{name: "running subscription is extended", userID: running.ID, plan: subscription.PlanQuarterly, wantEnd: now.Add(100 * 24 * time.Hour)},
		{name: "expired subscription restarts", userID: expired.ID, plan: subscription.PlanMonthly, wantEnd: now.Add(30 * 24 * time.Hour)},
		{name: "canceled subscription restarts", userID: canceled.ID, plan: subscription.PlanMonthly, wantEnd: now.Add(30 * 24 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := svc.Grant(ctx, tt.userID, tt.plan)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.plan, sub.Plan)
			assert.Equal(t, subscription.StatusActive, sub.Status)
			assert.Equal(t, tt.wantEnd, sub.CurrentPeriodEnd)

			hasAccess, err := svc.HasAccess(ctx, tt.userID)
			require.NoError(t, err)
			assert.True(t, hasAccess)
		})
	}
}

func TestService_CancelAndHasAccess(t *testing.T) {
	svc, usrRepo, subRepo := setup(t)
	ctx := context.Background()
	usr := testutil.CreateUser(t, usrRepo, "Alumno", "alumno@test.es", user.RoleUser)
	other := testutil.CreateUser(t, usrRepo, "Otro", "otro@test.es", user.RoleUser)

	hasAccess, err := svc.HasAccess(ctx, usr.ID)
	require.NoError(t, err)
	assert.False(t, hasAccess)

	_, err = svc.Cancel(ctx, usr.ID)
	assert.Equal(t, subscription.ErrNotFound, errors.Cause(err))

	testutil.CreateSubscription(t, subRepo, usr.ID, subscription.PlanQuarterly, subscription.StatusActive, now.Add(time.Hour))
	hasAccess, err = svc.HasAccess(ctx, usr.ID)
	require.NoError(t, err)
	assert.True(t, hasAccess)

	sub, err := svc.Cancel(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusCanceled, sub.Status)

	hasAccess, err = svc.HasAccess(ctx, usr.ID)
	require.NoError(t, err)
	assert.False(t, hasAccess)

	byUser, err := svc.ByUserIDs(ctx, []string{usr.ID, other.ID})
	require.NoError(t, err)
	assert.Len(t, byUser, 1)
	assert.Equal(t, subscription.StatusCanceled, byUser[usr.ID].Status)
}
