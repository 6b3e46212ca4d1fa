package course

import (
	"strings"
	"time"
)

// Sidebar icons of the fixed links
const (
	IconDashboard = "home"
	IconBook      = "book"
	IconCalendar  = "calendar"
	IconShield    = "shield"
)

type (
	// Viewer is who the sidebar is rendered for.
	Viewer struct {
		Email   string
		IsAdmin bool
	}

	NavLink struct {
		Label  string
		Href   string
		Icon   string
		Active bool
	}

	SidebarModule struct {
		ID       string
		Title    string
		Href     string
		Icon     string
		Active   bool
		Expanded bool
		Lessons  []NavLink
	}

	// Sidebar is the navigation of the learner area.
	Sidebar struct {
		Links   []NavLink
		Admin   *NavLink // nil unless the viewer is an admin
		Modules []SidebarModule
		Viewer  Viewer
		Logout  LogoutAnimation
	}

	// LogoutAnimation is the progress shown while logging out:
	// Step percent every Interval until 100. The logout request is sent Delay after the click.
	LogoutAnimation struct {
		Step     int
		Interval time.Duration
		Delay    time.Duration
	}
)

var DefaultLogoutAnimation = LogoutAnimation{Step: 10, Interval: 40 * time.Millisecond, Delay: 500 * time.Millisecond}

// NewSidebar builds the sidebar for `path`. Links are active on an exact path match
// and modules listed in `expanded` show their lessons.
func NewSidebar(path string, viewer Viewer, modules []Module, expanded []string) Sidebar {
	path = normalizePath(path)
	link := func(label, href, icon string) NavLink {
		return NavLink{Label: label, Href: href, Icon: icon, Active: path == href}
	}

	sb := Sidebar{
		Links: []NavLink{
			link("Dashboard", "/app", IconDashboard),
			link("Introducción ESENCIAL", "/app/introduccion", IconBook),
			link("Plan 50 Días", "/app/plan-50-dias", IconCalendar),
		},
		Modules: make([]SidebarModule, 0, len(modules)),
		Viewer:  viewer,
		Logout:  DefaultLogoutAnimation,
	}
	if viewer.IsAdmin {
		admin := link("Panel Admin", "/app/admin", IconShield)
		sb.Admin = &admin
	}

	for _, mod := range modules {
		sm := SidebarModule{
			ID:       mod.ID,
			Title:    mod.Title,
			Href:     mod.Href(),
			Icon:     mod.IconName(),
			Active:   path == mod.Href(),
			Expanded: containsID(expanded, mod.ID),
			Lessons:  make([]NavLink, 0, len(mod.Lessons)),
		}
		for _, l := range mod.Lessons {
			sm.Lessons = append(sm.Lessons, NavLink{Label: l.Title, Href: l.Href(), Active: path == l.Href()})
		}
		sb.Modules = append(sb.Modules, sm)
	}
	return sb
}

// ToggleExpanded removes `id` from the list if present, appends it otherwise.
func ToggleExpanded(list []string, id string) []string {
	toggled := make([]string, 0, len(list)+1)
	var found bool
	for _, item := range list {
		if item == id {
			found = true
			continue
		}
		toggled = append(toggled, item)
	}
	if !found {
		toggled = append(toggled, id)
	}
	return toggled
}

// Frames lists the successive progress values, clamped at 100.
func (a LogoutAnimation) Frames() []int {
	step := a.Step
	if step <= 0 {
		step = 100
	}
	frames := make([]int, 0, 100/step+1)
	for p := step; ; p += step {
		if p >= 100 {
			frames = append(frames, 100)
			break
		}
		frames = append(frames, p)
	}
	return frames
}

// IntervalMillis is the time between two progress frames, for the data-interval attribute.
func (a LogoutAnimation) IntervalMillis() int64 { return a.Interval.Milliseconds() }

// DelayMillis is the time from the click to the logout request, for the data-delay attribute.
// The delay runs alongside the progress frames, it does not wait for them.
func (a LogoutAnimation) DelayMillis() int64 { return a.Delay.Milliseconds() }

func normalizePath(p string) string {
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

func containsID(list []string, id string) bool {
	for _, item := range list {
		if item == id {
			return true
		}
	}
	return false
}
