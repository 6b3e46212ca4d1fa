package echoweb

import (
	"net/http"
	"sort"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound  = echo.NewHTTPError(http.StatusNotFound, "not found")
)

type errorData struct {
	Code    int
	Title   string
	Message string
	Fields  []fieldMessage
}

type fieldMessage struct {
	Field   string
	Message string
}

func isAPIRequest(ctx echo.Context) bool {
	p := ctx.Request().URL.Path
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// API requests get JSON, everything else an HTML page. Unauthenticated page requests are sent to /login.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, auth *authenticator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.Subject
				usr.Email = claims.Email
			}
			logger.Error(msg, errors.Wrap(err, msg), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Response().Committed {
			return
		}

		if isAPIRequest(ctx) {
			if ctx.Echo().Debug {
				message = err.Error()
			} else if m, ok := message.(string); ok {
				message = echo.Map{"error": m}
			}
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
		} else if code == http.StatusUnauthorized {
			auth.clearTokenCookie(ctx)
			err = ctx.Redirect(http.StatusFound, "/login")
		} else {
			err = ctx.Render(code, "error.gohtml", newPage(ctx, auth.conf, http.StatusText(code), newErrorData(code, message)))
		}
		if err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}

func newErrorData(code int, message interface{}) errorData {
	data := errorData{Code: code, Title: errorTitle(code)}
	switch m := message.(type) {
	case string:
		data.Message = m
	case map[string]string:
		data.Fields = make([]fieldMessage, 0, len(m))
		for fld, msg := range m {
			data.Fields = append(data.Fields, fieldMessage{Field: fld, Message: msg})
		}
		sort.Slice(data.Fields, func(i, j int) bool { return data.Fields[i].Field < data.Fields[j].Field })
	default:
		data.Message = http.StatusText(code)
	}
	return data
}

func errorTitle(code int) string {
	switch code {
	case http.StatusNotFound:
		return "Página no encontrada"
	case http.StatusForbidden:
		return "Acceso denegado"
	case http.StatusBadRequest:
		return "Datos no válidos"
	case http.StatusInternalServerError:
		return "Algo ha ido mal"
	}
	return http.StatusText(code)
}
