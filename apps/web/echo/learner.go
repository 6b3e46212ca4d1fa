package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core/course"
	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

type (
	dashboardData struct {
		User         user.User
		Subscription *subscription.Subscription
		PlanName     string
		DaysLeft     int
		Modules      []course.Module
		Pages        []course.Page
		LessonCount  int
	}

	contentPageData struct {
		Page course.Page
	}

	moduleData struct {
		Module course.Module
	}

	lessonData struct {
		Lesson   course.Lesson
		Module   course.Module
		Position course.Position
	}
)

type learnerArea struct {
	deps ServerDeps
	auth *authenticator
}

func registerLearnerArea(g *echo.Group, deps ServerDeps, auth *authenticator) {
	la := learnerArea{deps: deps, auth: auth}

	g.GET("", la.dashboard)
	g.GET("/introduccion", la.contentPage("introduccion"))
	g.GET("/plan-50-dias", la.contentPage("plan-50-dias"))
	g.GET("/module/:slug", la.module)
	g.GET("/lesson/:id", la.lesson)
	g.POST("/sidebar/modules/:id/toggle", la.toggleModule)

	registerAdminArea(g.Group("/admin", adminMiddleware(auth)), deps, auth)
}

// render wraps the page in the app shell, with the sidebar of the current user.
func (la *learnerArea) render(ctx echo.Context, name, title string, data interface{}) error {
	return renderApp(ctx, la.deps, name, title, data)
}

func renderApp(ctx echo.Context, deps ServerDeps, name, title string, data interface{}) error {
	p := newPage(ctx, deps.Conf, title, data)
	var viewer course.Viewer
	if p.Viewer != nil {
		viewer = course.Viewer{Email: p.Viewer.Email, IsAdmin: p.Viewer.IsAdmin()}
	}
	sb := course.NewSidebar(p.Path, viewer, deps.Catalog.Modules(), expandedModules(ctx))
	p.Sidebar = &sb
	return ctx.Render(http.StatusOK, name, p)
}

// Handlers

func (la *learnerArea) dashboard(ctx echo.Context) error {
	usr, err := la.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	data := dashboardData{
		User:        usr,
		Modules:     la.deps.Catalog.Modules(),
		Pages:       la.deps.Catalog.Pages(),
		LessonCount: la.deps.Catalog.LessonCount(),
	}
	sub, err := la.deps.SubSvc.GetByUserID(ctx.Request().Context(), usr.ID)
	switch errors.Cause(err) {
	case nil:
		data.Subscription = &sub
		data.DaysLeft = sub.DaysLeft(la.deps.SubSvc.Now())
		if plan, ok := subscription.GetPlan(sub.Plan); ok {
			data.PlanName = plan.Name
		}
	case subscription.ErrNotFound: // admins may have none
	default:
		return errors.Wrap(err, "finding subscription")
	}
	return la.render(ctx, "dashboard.gohtml", "Dashboard", data)
}

func (la *learnerArea) contentPage(slug string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		pg, ok := la.deps.Catalog.Page(slug)
		if !ok {
			return errHttpNotFound
		}
		return la.render(ctx, "page.gohtml", pg.Title, contentPageData{Page: pg})
	}
}

func (la *learnerArea) module(ctx echo.Context) error {
	mod, ok := la.deps.Catalog.ModuleBySlug(ctx.Param("slug"))
	if !ok {
		return errHttpNotFound
	}
	return la.render(ctx, "module.gohtml", mod.Title, moduleData{Module: mod})
}

func (la *learnerArea) lesson(ctx echo.Context) error {
	lsn, mod, ok := la.deps.Catalog.Lesson(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	pos, ok := course.Navigate(mod, lsn)
	if !ok {
		return errHttpNotFound
	}
	return la.render(ctx, "lesson.gohtml", lsn.Title, lessonData{Lesson: lsn, Module: mod, Position: pos})
}

func (la *learnerArea) toggleModule(ctx echo.Context) error {
	mod, ok := la.deps.Catalog.Module(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	expanded := course.ToggleExpanded(expandedModules(ctx), mod.ID)
	setExpandedModules(ctx, expanded, la.deps.Conf.Server.CookieSecure)
	return ctx.Redirect(http.StatusSeeOther, safeNext(ctx.FormValue("next")))
}
