package tests

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	. "github.com/Axelresells/AxelScale-Formacion/apps/web/echo"
	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/course"
	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
	appfs "github.com/Axelresells/AxelScale-Formacion/fs"
	emailsvc "github.com/Axelresells/AxelScale-Formacion/services/email"
	logsvc "github.com/Axelresells/AxelScale-Formacion/services/logger"
	"github.com/Axelresells/AxelScale-Formacion/storage/database/inmem"
	"github.com/Axelresells/AxelScale-Formacion/tests"
)

type testApp struct {
	Server
	conf    *core.Config
	usrRepo user.Repository
	subRepo subscription.Repository
	usrSvc  *user.Service
	subSvc  *subscription.Service
	mailSvc *emailsvc.ConsoleServiceMock
}

func setup(t *testing.T) *testApp {
	conf := testutil.NewConfig()

	// set up DB & repos
	db := inmemdb.NewDB()
	usrRepo := inmemdb.NewUserRepository(db)
	subRepo := inmemdb.NewSubscriptionRepository(db)

	// set up services
	logger := logsvc.NewRollbarLogger(zap.NewNop(), conf)
	logger.Enable(false)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewService(usrRepo, mailSvc, conf)
	subSvc := subscription.NewService(subRepo)

	catalog, err := course.LoadCatalog(appfs.FS, course.CatalogPath)
	require.NoError(t, err)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	// set up server
	srv, err := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		UserSvc:    usrSvc,
		SubSvc:     subSvc,
		Catalog:    catalog,
		Validate:   validate,
		Translator: translator,
	})
	require.NoError(t, err)

	return &testApp{
		Server:  srv,
		conf:    conf,
		usrRepo: usrRepo,
		subRepo: subRepo,
		usrSvc:  usrSvc,
		subSvc:  subSvc,
		mailSvc: mailSvc,
	}
}

func (app *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return app.do(req)
}

func (app *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return app.do(req)
}

// login follows the user's login link and returns the session cookie.
func (app *testApp) login(t *testing.T, usr user.User) *http.Cookie {
	link, err := url.Parse(app.usrSvc.LoginURL(usr))
	require.NoError(t, err)

	rec := app.get(link.RequestURI())
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/app", rec.Header().Get("Location"))

	cookie := findCookie(rec, "token")
	require.NotNil(t, cookie, "token cookie not set")
	return cookie
}

func (app *testApp) createMember(t *testing.T, email string, subEnd ...time.Time) (user.User, *http.Cookie) {
	usr := testutil.CreateUser(t, app.usrRepo, "", email, user.RoleUser)
	end := time.Now().Add(24 * time.Hour)
	if len(subEnd) > 0 {
		end = subEnd[0]
	}
	testutil.CreateSubscription(t, app.subRepo, usr.ID, subscription.PlanMonthly, subscription.StatusActive, end)
	return usr, app.login(t, usr)
}

func (app *testApp) createAdmin(t *testing.T, email string) (user.User, *http.Cookie) {
	usr := testutil.CreateUser(t, app.usrRepo, "Admin", email, user.RoleAdmin)
	return usr, app.login(t, usr)
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
