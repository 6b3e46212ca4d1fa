package course

// Module icons
const (
	IconGhost      = "ghost"
	IconPackage    = "package"
	IconSmartphone = "smartphone"
)

const defaultLessonMinutes = 15

var knownIcons = map[string]bool{IconGhost: true, IconPackage: true, IconSmartphone: true}

type Module struct {
	ID          string   `yaml:"id" json:"id"`
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Icon        string   `yaml:"icon" json:"icon"`
	Description string   `yaml:"description" json:"description"`
	Lessons     []Lesson `yaml:"lessons" json:"lessons"`
}

// IconName is the module's icon, IconPackage when unset or unknown.
func (m Module) IconName() string {
	if knownIcons[m.Icon] {
		return m.Icon
	}
	return IconPackage
}

func (m Module) Href() string { return "/app/module/" + m.Slug }

type Lesson struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Order    int    `yaml:"order" json:"order"` // 1-based, within its module
	Content  string `yaml:"content" json:"-"`   // markdown
	VideoURL string `yaml:"video_url" json:"video_url,omitempty"`
	Minutes  int    `yaml:"minutes" json:"minutes"`
}

func (l Lesson) Href() string { return "/app/lesson/" + l.ID }

// Page is a standalone content page of the learner area, e.g. the introduction.
type Page struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Content     string `yaml:"content"` // markdown
}

func (p Page) Href() string { return "/app/" + p.Slug }
