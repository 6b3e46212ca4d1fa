package echoweb

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Axelresells/AxelScale-Formacion/core"
)

func TestOrdering_Bind(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   []core.DBOrdering
		wantQS string
	}{
		{name: "empty", query: "", want: nil, wantQS: ""},
		{name: "ascending", query: "email", want: []core.DBOrdering{{Field: "email", Ascending: true}}, wantQS: "email"},
		{name: "descending", query: "-created_at", want: []core.DBOrdering{{Field: "created_at"}}, wantQS: "-created_at"},
		{
			name:   "many with blanks",
			query:  " role , ,-last_login,-",
			want:   []core.DBOrdering{{Field: "role", Ascending: true}, {Field: "last_login"}},
			wantQS: "role,-last_login",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?ordering="+url.QueryEscape(tt.query), nil)
			ctx := echo.New().NewContext(req, httptest.NewRecorder())

			var ord Ordering
			ord.Bind(ctx)
			assert.Equal(t, tt.want, ord.Orderings)
			assert.Equal(t, tt.wantQS, ord.String())
		})
	}
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                     "/app",
		"/app":                 "/app",
		"/app/lesson/m1-l1":    "/app/lesson/m1-l1",
		"/application":         "/app",
		"https://evil.example": "/app",
		"//evil.example/app/":  "/app",
		"/login":               "/app",
	}
	for next, want := range tests {
		assert.Equal(t, want, safeNext(next), next)
	}
}

func TestExpandedModules(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.AddCookie(&http.Cookie{Name: sidebarCookieName, Value: "m1, ,m3"})
	ctx := echo.New().NewContext(req, httptest.NewRecorder())
	assert.Equal(t, []string{"m1", "m3"}, expandedModules(ctx))

	ctx = echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/app", nil), httptest.NewRecorder())
	assert.Nil(t, expandedModules(ctx))
}

func TestNewErrorData(t *testing.T) {
	data := newErrorData(http.StatusNotFound, "not found")
	assert.Equal(t, errorData{Code: 404, Title: "Página no encontrada", Message: "not found"}, data)

	data = newErrorData(http.StatusBadRequest, map[string]string{"plan": "bad plan", "email": "bad email"})
	assert.Equal(t, "Datos no válidos", data.Title)
	assert.Equal(t, []fieldMessage{{Field: "email", Message: "bad email"}, {Field: "plan", Message: "bad plan"}}, data.Fields)

	data = newErrorData(http.StatusTeapot, 42)
	assert.Equal(t, http.StatusText(http.StatusTeapot), data.Title)
	assert.Equal(t, http.StatusText(http.StatusTeapot), data.Message)
}
