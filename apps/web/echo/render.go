package echoweb

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/course"
	"github.com/Axelresells/AxelScale-Formacion/core/pricing"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

const (
	webTemplatesDir = "templates/web"
	baseTemplate    = "_base.gohtml"
)

type (
	// templateRenderer holds one template set per page: the page itself plus every "_" partial.
	templateRenderer struct {
		templates map[string]*template.Template
	}

	appInfo struct {
		Name         string
		Build        string
		DiscordURL   string
		SupportURL   string
		SupportPhone string
	}

	// page is what every web template receives.
	page struct {
		Title   string
		Path    string
		App     appInfo
		Viewer  *user.User
		Sidebar *course.Sidebar
		Data    interface{}
	}
)

var _ echo.Renderer = (*templateRenderer)(nil)

func newTemplateRenderer(fsys fs.FS, conf *core.Config) (*templateRenderer, error) {
	pages, err := fs.Glob(fsys, path.Join(webTemplatesDir, "*.gohtml"))
	if err != nil {
		return nil, errors.Wrap(err, "listing web templates")
	}

	partials := path.Join(webTemplatesDir, "_*.gohtml")
	r := &templateRenderer{templates: make(map[string]*template.Template, len(pages))}
	for _, fp := range pages {
		name := path.Base(fp)
		if strings.HasPrefix(name, "_") {
			continue
		}
		tmpl, err := template.New(name).Funcs(templateFuncs(conf)).ParseFS(fsys, partials, fp)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", name)
		}
		r.templates[name] = tmpl.Option("missingkey=error")
	}
	return r, nil
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, baseTemplate, data)
}

func newPage(ctx echo.Context, conf *core.Config, title string, data interface{}) page {
	p := page{
		Title: title,
		Path:  ctx.Request().URL.Path,
		App: appInfo{
			Name:         conf.AppName,
			Build:        conf.Build,
			DiscordURL:   conf.DiscordURL,
			SupportURL:   conf.SupportURL(),
			SupportPhone: conf.SupportPhone,
		},
		Data: data,
	}
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		p.Viewer = &usr
	}
	return p
}

func templateFuncs(conf *core.Config) template.FuncMap {
	return template.FuncMap{
		"icon":      icon,
		"markdown":  course.Markdown,
		"cardStyle": cardStyle,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("02/01/2006")
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("02/01/2006, 15:04")
		},
		"appName": func() string { return conf.AppName },
	}
}

// cardStyle exposes both states of a pricing card as CSS variables read by the stylesheet's :hover rule.
func cardStyle(card pricing.Card) template.CSS {
	rest, hover := card.Style(false), card.Style(true)
	return template.CSS(fmt.Sprintf(
		"background:%s;border:%s;--card-shadow:%s;--card-shadow-hover:%s;--card-transform:%s;--card-transform-hover:%s;",
		rest.Background, rest.Border, rest.BoxShadow, hover.BoxShadow, rest.Transform, hover.Transform,
	))
}

var iconPaths = map[string]string{
	course.IconDashboard:  `<path d="m3 9 9-7 9 7v11a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z"/><polyline points="9 22 9 12 15 12 15 22"/>`,
	course.IconBook:       `<path d="M2 3h6a4 4 0 0 1 4 4v14a3 3 0 0 0-3-3H2z"/><path d="M22 3h-6a4 4 0 0 0-4 4v14a3 3 0 0 1 3-3h7z"/>`,
	course.IconCalendar:   `<rect width="18" height="18" x="3" y="4" rx="2"/><path d="M16 2v4M8 2v4M3 10h18"/>`,
	course.IconShield:     `<path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10"/>`,
	course.IconGhost:      `<path d="M9 10h.01M15 10h.01M12 2a8 8 0 0 0-8 8v12l3-3 2.5 2.5L12 19l2.5 2.5L17 19l3 3V10a8 8 0 0 0-8-8z"/>`,
	course.IconPackage:    `<path d="m7.5 4.27 9 5.15"/><path d="M21 8a2 2 0 0 0-1-1.73l-7-4a2 2 0 0 0-2 0l-7 4A2 2 0 0 0 3 8v8a2 2 0 0 0 1 1.73l7 4a2 2 0 0 0 2 0l7-4A2 2 0 0 0 21 16Z"/><path d="m3.3 7 8.7 5 8.7-5M12 22V12"/>`,
	course.IconSmartphone: `<rect width="14" height="20" x="5" y="2" rx="2"/><path d="M12 18h.01"/>`,
	"play":                `<circle cx="12" cy="12" r="10"/><polygon points="10 8 16 12 10 16 10 8"/>`,
	"chevron-right":       `<path d="m9 18 6-6-6-6"/>`,
	"chevron-down":        `<path d="m6 9 6 6 6-6"/>`,
	"arrow-left":          `<path d="m12 19-7-7 7-7M19 12H5"/>`,
	"arrow-right":         `<path d="M5 12h14M12 5l7 7-7 7"/>`,
	"clock":               `<circle cx="12" cy="12" r="10"/><polyline points="12 6 12 12 16 14"/>`,
	"logout":              `<path d="M9 21H5a2 2 0 0 1-2-2V5a2 2 0 0 1 2-2h4"/><polyline points="16 17 21 12 16 7"/><line x1="21" x2="9" y1="12" y2="12"/>`,
	"message":             `<path d="M7.9 20A9 9 0 1 0 4 16.1L2 22Z"/>`,
	"menu":                `<line x1="4" x2="20" y1="12" y2="12"/><line x1="4" x2="20" y1="6" y2="6"/><line x1="4" x2="20" y1="18" y2="18"/>`,
	"users":               `<path d="M16 21v-2a4 4 0 0 0-4-4H6a4 4 0 0 0-4 4v2"/><circle cx="9" cy="7" r="4"/><path d="M22 21v-2a4 4 0 0 0-3-3.87M16 3.13a4 4 0 0 1 0 7.75"/>`,
	"discord":             `<path d="M20.3 4.4A19.8 19.8 0 0 0 15.4 3l-.6 1.3a18.4 18.4 0 0 0-5.6 0L8.6 3a19.7 19.7 0 0 0-4.9 1.5C.6 9.1-.3 13.7.1 18.2a19.9 19.9 0 0 0 6 3l1.3-2a12.9 12.9 0 0 1-2-1l.5-.4a14.2 14.2 0 0 0 12.2 0l.5.4c-.6.4-1.3.7-2 1l1.3 2a19.8 19.8 0 0 0 6-3c.5-5.2-.8-9.8-3.6-13.8ZM8 15.5c-1.2 0-2.2-1.1-2.2-2.4S6.8 10.7 8 10.7s2.2 1.1 2.2 2.4-1 2.4-2.2 2.4Zm8 0c-1.2 0-2.2-1.1-2.2-2.4s1-2.4 2.2-2.4 2.2 1.1 2.2 2.4-1 2.4-2.2 2.4Z" fill="currentColor" stroke="none"/>`,
}

// icon renders an inline SVG icon. Unknown names render the package icon.
func icon(name string, class ...string) template.HTML {
	paths, ok := iconPaths[name]
	if !ok {
		paths = iconPaths[course.IconPackage]
	}
	cls := "icon"
	if len(class) > 0 {
		cls += " " + template.HTMLEscapeString(class[0])
	}
	return template.HTML(`<svg class="` + cls + `" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" ` +
		`stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">` +
		paths + `</svg>`)
}
