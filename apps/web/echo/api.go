package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

type meResponse struct {
	User         user.User                  `json:"user"`
	Subscription *subscription.Subscription `json:"subscription"`
	HasAccess    bool                       `json:"has_access"`
}

type webAPI struct {
	deps ServerDeps
	auth *authenticator
}

func registerAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps, auth *authenticator) {
	api := webAPI{deps: deps, auth: auth}

	// un-authed endpoints
	g.POST("/auth/logout", api.logout)

	// authed endpoints
	ag := g.Group("", jwt)
	ag.GET("/me", api.me)
	ag.GET("/admin/users", api.queryMembers, adminMiddleware(auth))
}

// Handlers

func (api *webAPI) logout(ctx echo.Context) error {
	api.auth.clearTokenCookie(ctx)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *webAPI) me(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	resp := meResponse{User: usr, HasAccess: usr.IsAdmin()}
	sub, err := api.deps.SubSvc.GetByUserID(ctx.Request().Context(), usr.ID)
	switch errors.Cause(err) {
	case nil:
		resp.Subscription = &sub
		resp.HasAccess = resp.HasAccess || sub.GrantsAccess(api.deps.SubSvc.Now())
	case subscription.ErrNotFound:
	default:
		return errors.Wrap(err, "finding subscription")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *webAPI) queryMembers(ctx echo.Context) error {
	members, _, _, err := queryMembers(ctx, api.deps)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, members)
}
