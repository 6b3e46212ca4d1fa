package echoweb

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core/pricing"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

const landingTitle = "AXELSCALE 2.0 - Tu guía hacia los 50.000€/mes"

type (
	subscribeData struct {
		Cards []pricing.Card
	}

	loginData struct {
		Email       string
		Errors      map[string]string
		InvalidLink bool
	}

	loginSentData struct {
		Email        string
		ValidMinutes int
	}
)

type publicPages struct {
	deps ServerDeps
	auth *authenticator
}

func registerPublicPages(e *echo.Echo, deps ServerDeps, auth *authenticator) {
	pp := publicPages{deps: deps, auth: auth}

	e.GET("/", pp.landing)
	e.GET("/subscribe", pp.subscribe)
	e.GET("/login", pp.loginForm)
	e.POST("/login", pp.login)
	e.GET("/login/verify", pp.verifyLogin)
}

// Handlers

func (pp *publicPages) landing(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "landing.gohtml", newPage(ctx, pp.deps.Conf, landingTitle, nil))
}

func (pp *publicPages) subscribe(ctx echo.Context) error {
	data := subscribeData{Cards: pricing.Cards()}
	return ctx.Render(http.StatusOK, "subscribe.gohtml", newPage(ctx, pp.deps.Conf, "Suscripciones", data))
}

func (pp *publicPages) loginForm(ctx echo.Context) error {
	data := loginData{InvalidLink: ctx.QueryParam("error") == "invalid_link"}
	return ctx.Render(http.StatusOK, "login.gohtml", newPage(ctx, pp.deps.Conf, "Acceder", data))
}

func (pp *publicPages) login(ctx echo.Context) error {
	var data user.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(pp.deps.Validate); err != nil {
		vErrs, ok := errors.Cause(err).(validator.ValidationErrors)
		if !ok {
			return err
		}
		form := loginData{Email: data.Email, Errors: make(map[string]string, len(vErrs))}
		for _, vErr := range vErrs {
			form.Errors[vErr.Field()] = vErr.Translate(pp.deps.Translator)
		}
		return ctx.Render(http.StatusBadRequest, "login.gohtml", newPage(ctx, pp.deps.Conf, "Acceder", form))
	}

	err := pp.deps.UserSvc.RequestLoginLink(ctx.Request().Context(), data.Email)
	if !(err == nil || errors.Cause(err) == user.ErrNotFound) {
		// do not return errors to attackers
		pp.deps.Logger.Error("requesting login link", errors.Wrap(err, "requesting login link"))
	}

	sent := loginSentData{Email: data.Email, ValidMinutes: int(pp.deps.Conf.LoginLinkTimeoutDelta / time.Minute)}
	return ctx.Render(http.StatusOK, "login_sent.gohtml", newPage(ctx, pp.deps.Conf, "Revisa tu email", sent))
}

func (pp *publicPages) verifyLogin(ctx echo.Context) error {
	usr, err := pp.deps.UserSvc.VerifyLogin(ctx.Request().Context(), ctx.QueryParam("uid"), ctx.QueryParam("token"))
	if err != nil {
		if errors.Cause(err) == user.ErrInvalidLoginLink {
			return ctx.Redirect(http.StatusFound, "/login?error=invalid_link")
		}
		return errors.Wrap(err, "verifying login link")
	}

	token, err := pp.auth.GenerateToken(usr)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	pp.auth.setTokenCookie(ctx, token)
	return ctx.Redirect(http.StatusFound, "/app")
}
