package echoweb

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// sidebarCookieName keeps the IDs of the expanded sidebar modules, comma separated.
const sidebarCookieName = "sidebar"

func expandedModules(ctx echo.Context) []string {
	cookie, err := ctx.Cookie(sidebarCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	ids := make([]string, 0)
	for _, id := range strings.Split(cookie.Value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func setExpandedModules(ctx echo.Context, ids []string, secure bool) {
	ctx.SetCookie(&http.Cookie{
		Name:     sidebarCookieName,
		Value:    strings.Join(ids, ","),
		Path:     "/app",
		MaxAge:   365 * 24 * 60 * 60,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext only allows redirects within the learner area.
func safeNext(next string) string {
	if next == "/app" || (strings.HasPrefix(next, "/app/") && !strings.HasPrefix(next, "//")) {
		return next
	}
	return "/app"
}
