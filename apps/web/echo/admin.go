package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

type (
	// Member is a user together with their subscription state.
	Member struct {
		User         user.User                  `json:"user"`
		Subscription *subscription.Subscription `json:"subscription"`
		HasAccess    bool                       `json:"has_access"`
		DaysLeft     int                        `json:"days_left"`
	}

	adminUsersData struct {
		Members  []Member
		Filter   user.QueryFilter
		Ordering string
		Roles    []user.Role
		Plans    []subscription.Plan
	}
)

type adminArea struct {
	deps ServerDeps
	auth *authenticator
}

func registerAdminArea(g *echo.Group, deps ServerDeps, auth *authenticator) {
	aa := adminArea{deps: deps, auth: auth}

	g.GET("", aa.users)
	g.POST("/users/:id/subscription", aa.grant)
	g.POST("/users/:id/subscription/cancel", aa.cancel)
}

// queryMembers binds the search, role and ordering query params and lists the matching users.
func queryMembers(ctx echo.Context, deps ServerDeps) ([]Member, user.QueryFilter, Ordering, error) {
	filter := new(user.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		*filter = user.QueryFilter{}
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	rctx := ctx.Request().Context()
	users, err := deps.UserSvc.Query(rctx, filter, ordering.Orderings)
	if err != nil {
		return nil, *filter, *ordering, errors.Wrap(err, "querying users")
	}

	ids := make([]string, 0, len(users))
	for _, usr := range users {
		ids = append(ids, usr.ID)
	}
	subs, err := deps.SubSvc.ByUserIDs(rctx, ids)
	if err != nil {
		return nil, *filter, *ordering, errors.Wrap(err, "querying subscriptions")
	}

	now := deps.SubSvc.Now()
	members := make([]Member, 0, len(users))
	for _, usr := range users {
		m := Member{User: usr}
		if sub, ok := subs[usr.ID]; ok {
			m.Subscription = &sub
			m.HasAccess = sub.GrantsAccess(now)
			m.DaysLeft = sub.DaysLeft(now)
		}
		members = append(members, m)
	}
	return members, *filter, *ordering, nil
}

// Handlers

func (aa *adminArea) users(ctx echo.Context) error {
	members, filter, ordering, err := queryMembers(ctx, aa.deps)
	if err != nil {
		return err
	}
	data := adminUsersData{
		Members:  members,
		Filter:   filter,
		Ordering: ordering.String(),
		Roles:    user.Roles,
		Plans:    subscription.Plans,
	}
	return renderApp(ctx, aa.deps, "admin_users.gohtml", "Panel Admin", data)
}

func (aa *adminArea) grant(ctx echo.Context) error {
	usr, err := aa.deps.UserSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding user by ID")
	}

	var data subscription.GrantRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GrantRequest")
	}
	if err = data.Validate(aa.deps.Validate); err != nil {
		return err
	}

	sub, err := aa.deps.SubSvc.Grant(ctx.Request().Context(), usr.ID, data.Plan)
	if err != nil {
		return errors.Wrap(err, "granting subscription")
	}
	aa.deps.Logger.Info("subscription granted", map[string]interface{}{
		"user_id": usr.ID, "plan": sub.Plan, "current_period_end": sub.CurrentPeriodEnd,
	})
	return ctx.Redirect(http.StatusSeeOther, "/app/admin")
}

func (aa *adminArea) cancel(ctx echo.Context) error {
	if _, err := aa.deps.SubSvc.Cancel(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == subscription.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "canceling subscription")
	}
	return ctx.Redirect(http.StatusSeeOther, "/app/admin")
}
