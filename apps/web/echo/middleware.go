package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
)

// subscriptionMiddleware lets admins and users with an active subscription through.
// Everyone else is sent to the pricing page.
func subscriptionMiddleware(svc *subscription.Service, auth *authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := auth.contextUser(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			if usr.IsAdmin() {
				return next(ctx)
			}

			ok, err := svc.HasAccess(ctx.Request().Context(), usr.ID)
			if err != nil {
				return errors.Wrap(err, "checking subscription")
			}
			if !ok {
				return ctx.Redirect(http.StatusFound, "/subscribe")
			}
			return next(ctx)
		}
	}
}

// adminMiddleware checks the stored role, so role changes apply to sessions already open.
func adminMiddleware(auth *authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := auth.contextUser(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			if usr.IsAdmin() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
