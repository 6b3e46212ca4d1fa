package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfs "github.com/Axelresells/AxelScale-Formacion/fs"
)

func TestLoadCatalog_embedded(t *testing.T) {
	cat, err := LoadCatalog(appfs.FS, CatalogPath)
	require.NoError(t, err)

	mods := cat.Modules()
	require.Len(t, mods, 3)
	assert.Equal(t, []string{IconGhost, IconPackage, IconSmartphone}, []string{mods[0].IconName(), mods[1].IconName(), mods[2].IconName()})
	for _, m := range mods {
		require.NotEmpty(t, m.Lessons, m.ID)
		for i, l := range m.Lessons {
			assert.Equal(t, i+1, l.Order, l.ID)
			assert.Equal(t, 15, l.Minutes, l.ID)
			assert.NotEmpty(t, l.Content, l.ID)
		}
	}

	_, ok := cat.Page("introduccion")
	assert.True(t, ok)
	_, ok = cat.Page("plan-50-dias")
	assert.True(t, ok)
	assert.Len(t, cat.Pages(), 2)
}

const testCatalog = `
pages:
  - slug: intro
    title: Intro
    content: hola
modules:
  - id: m1
    slug: primero
    title: Primero
    icon: rocket
    lessons:
      - id: l2
        title: Segunda
        order: 2
      - id: l1
        title: Primera
        order: 1
      - id: l3
        title: Tercera
        order: 3
        minutes: 40
  - id: m2
    slug: segundo
    title: Segundo
    icon: ghost
    lessons:
      - id: l4
        title: Única
`

func TestParseCatalog(t *testing.T) {
	cat, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	mod, ok := cat.ModuleBySlug("primero")
	require.True(t, ok)
	assert.Equal(t, IconPackage, mod.IconName())
	assert.Equal(t, []string{"l1", "l2", "l3"}, []string{mod.Lessons[0].ID, mod.Lessons[1].ID, mod.Lessons[2].ID})
	assert.Equal(t, 40, mod.Lessons[2].Minutes)
	assert.Equal(t, "/app/module/primero", mod.Href())

	lesson, lmod, ok := cat.Lesson("l4")
	require.True(t, ok)
	assert.Equal(t, "m2", lmod.ID)
	assert.Equal(t, 1, lesson.Order)
	assert.Equal(t, "/app/lesson/l4", lesson.Href())

	_, _, ok = cat.Lesson("nope")
	assert.False(t, ok)
	_, ok = cat.ModuleBySlug("nope")
	assert.False(t, ok)
	m2, ok := cat.Module("m2")
	require.True(t, ok)
	assert.Equal(t, "segundo", m2.Slug)
	assert.Equal(t, 4, cat.LessonCount())

	// returned slices are copies
	mods := cat.Modules()
	mods[0].Title = "changed"
	mod, _ = cat.Module("m1")
	assert.Equal(t, "Primero", mod.Title)
}

func TestParseCatalog_invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "bad yaml", yaml: "modules: [", wantErr: "decoding course catalog"},
		{name: "missing slug", yaml: "modules:\n  - id: a\n", wantErr: "module #1: missing id or slug"},
		{name: "duplicate module id", yaml: "modules:\n  - {id: a, slug: a}\n  - {id: a, slug: b}\n", wantErr: `module "a": duplicate id`},
		{name: "duplicate module slug", yaml: "modules:\n  - {id: a, slug: x}\n  - {id: b, slug: x}\n", wantErr: `module "b": duplicate slug "x"`},
		{
			name:    "duplicate lesson id",
			yaml:    "modules:\n  - {id: a, slug: a, lessons: [{id: l}]}\n  - {id: b, slug: b, lessons: [{id: l}]}\n",
			wantErr: `lesson "l": duplicate id`,
		},
		{name: "missing lesson id", yaml: "modules:\n  - {id: a, slug: a, lessons: [{title: x}]}\n", wantErr: `module "a": lesson #1: missing id`},
		{name: "duplicate page slug", yaml: "pages:\n  - {slug: p}\n  - {slug: p}\n", wantErr: `page "p": duplicate slug`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNavigate(t *testing.T) {
	cat, err := ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)
	mod, _ := cat.Module("m1")

	first, ok := Navigate(mod, mod.Lessons[0])
	require.True(t, ok)
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, 3, first.Total)
	assert.Nil(t, first.Prev)
	require.NotNil(t, first.Next)
	assert.Equal(t, "l2", first.Next.ID)

	last, ok := Navigate(mod, mod.Lessons[2])
	require.True(t, ok)
	assert.True(t, last.IsLast())
	require.NotNil(t, last.Prev)
	assert.Equal(t, "l2", last.Prev.ID)

	other, _ := cat.Module("m2")
	single, ok := Navigate(other, other.Lessons[0])
	require.True(t, ok)
	assert.Nil(t, single.Prev)
	assert.True(t, single.IsLast())

	_, ok = Navigate(mod, other.Lessons[0])
	assert.False(t, ok)
}
