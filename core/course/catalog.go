package course

import (
	"io/fs"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// CatalogPath is where the course catalog lives in the embedded assets.
const CatalogPath = "content/course.yaml"

type (
	// Catalog is the read-only course structure. It is safe for concurrent use.
	Catalog struct {
		pages   []Page
		modules []Module

		pageBySlug   map[string]int
		moduleBySlug map[string]int
		moduleByID   map[string]int
		lessonByID   map[string]lessonRef
	}

	lessonRef struct {
		module int
		lesson int
	}

	catalogFile struct {
		Pages   []Page   `yaml:"pages"`
		Modules []Module `yaml:"modules"`
	}
)

// LoadCatalog reads and validates the catalog at `path` in `fsys`.
func LoadCatalog(fsys fs.FS, path string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrap(err, "reading course catalog")
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog. Module IDs and slugs, lesson IDs and page slugs must be unique.
// Lessons are sorted by order, missing orders follow the list position.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "decoding course catalog")
	}

	cat := &Catalog{
		pages:        file.Pages,
		modules:      file.Modules,
		pageBySlug:   make(map[string]int, len(file.Pages)),
		moduleBySlug: make(map[string]int, len(file.Modules)),
		moduleByID:   make(map[string]int, len(file.Modules)),
		lessonByID:   make(map[string]lessonRef),
	}

	for i, p := range cat.pages {
		if p.Slug == "" {
			return nil, errors.Errorf("page #%d: missing slug", i+1)
		}
		if _, ok := cat.pageBySlug[p.Slug]; ok {
			return nil, errors.Errorf("page %q: duplicate slug", p.Slug)
		}
		cat.pageBySlug[p.Slug] = i
	}

	for mi := range cat.modules {
		mod := &cat.modules[mi]
		if mod.ID == "" || mod.Slug == "" {
			return nil, errors.Errorf("module #%d: missing id or slug", mi+1)
		}
		if _, ok := cat.moduleByID[mod.ID]; ok {
			return nil, errors.Errorf("module %q: duplicate id", mod.ID)
		}
		if _, ok := cat.moduleBySlug[mod.Slug]; ok {
			return nil, errors.Errorf("module %q: duplicate slug %q", mod.ID, mod.Slug)
		}
		cat.moduleByID[mod.ID] = mi
		cat.moduleBySlug[mod.Slug] = mi

		for li := range mod.Lessons {
			if mod.Lessons[li].Order == 0 {
				mod.Lessons[li].Order = li + 1
			}
			if mod.Lessons[li].Minutes == 0 {
				mod.Lessons[li].Minutes = defaultLessonMinutes
			}
		}
		sort.SliceStable(mod.Lessons, func(i, j int) bool { return mod.Lessons[i].Order < mod.Lessons[j].Order })

		for li, l := range mod.Lessons {
			if l.ID == "" {
				return nil, errors.Errorf("module %q: lesson #%d: missing id", mod.ID, li+1)
			}
			if _, ok := cat.lessonByID[l.ID]; ok {
				return nil, errors.Errorf("lesson %q: duplicate id", l.ID)
			}
			cat.lessonByID[l.ID] = lessonRef{module: mi, lesson: li}
		}
	}
	return cat, nil
}

// Modules returns the modules in catalog order.
func (c *Catalog) Modules() []Module {
	return append([]Module(nil), c.modules...)
}

func (c *Catalog) Module(id string) (Module, bool) {
	if i, ok := c.moduleByID[id]; ok {
		return c.modules[i], true
	}
	return Module{}, false
}

func (c *Catalog) ModuleBySlug(slug string) (Module, bool) {
	if i, ok := c.moduleBySlug[slug]; ok {
		return c.modules[i], true
	}
	return Module{}, false
}

// Lesson returns the lesson with the given ID and the module it belongs to.
func (c *Catalog) Lesson(id string) (Lesson, Module, bool) {
	ref, ok := c.lessonByID[id]
	if !ok {
		return Lesson{}, Module{}, false
	}
	mod := c.modules[ref.module]
	return mod.Lessons[ref.lesson], mod, true
}

func (c *Catalog) Pages() []Page {
	return append([]Page(nil), c.pages...)
}

func (c *Catalog) Page(slug string) (Page, bool) {
	if i, ok := c.pageBySlug[slug]; ok {
		return c.pages[i], true
	}
	return Page{}, false
}

// LessonCount is the number of lessons across all modules.
func (c *Catalog) LessonCount() int {
	return len(c.lessonByID)
}
