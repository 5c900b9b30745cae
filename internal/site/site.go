// Package site renders the static website from the data directory: an index
// page, the link collection, and the learning lessons as HTML.
package site

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/jepemo/mystuff/internal/config"
	"github.com/jepemo/mystuff/internal/frontmatter"
	"github.com/jepemo/mystuff/internal/learn"
	"github.com/jepemo/mystuff/internal/links"
	"github.com/jepemo/mystuff/internal/slugs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/css/*.css
var staticFS embed.FS

// Lesson statuses on the generated site.
const (
	statusDone    = "done"
	statusCurrent = "current"
	statusTodo    = "todo"
)

// Generator renders the site from one data directory.
type Generator struct {
	DataDir string
	Config  config.WebConfig

	// Client is used for GitHub repository lookups, nil disables them.
	Client *http.Client
	// Logf reports progress, discarded when nil.
	Logf func(format string, args ...interface{})
	// Now supplies the generation timestamp, overridable in tests.
	Now func() time.Time
}

func (g *Generator) logf(format string, args ...interface{}) {
	if g.Logf != nil {
		g.Logf(format, args...)
	}
}

// Lesson is one lesson page on the site.
type Lesson struct {
	Name   string
	Title  string
	Status string
	URL    string

	body string
}

type navLink struct {
	URL   string
	Title string
}

type pageData struct {
	Title        string
	Description  string
	Author       string
	MenuItems    []config.MenuItem
	GeneratedAt  string
	RelativeRoot string

	Links     []links.Link
	LinksJSON template.JS
	Repos     []Repo
	Learning  *navLink
	Lessons   []*Lesson

	LessonTitle   string
	LessonContent template.HTML
	Prev          *navLink
	Next          *navLink
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Generate renders the whole site into outputDir.
func (g *Generator) Generate(outputDir string) error {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(outputDir, "css"), 0o755); err != nil {
		return err
	}
	if err := g.copyStatic(outputDir); err != nil {
		return err
	}

	allLinks, err := links.NewStore(g.DataDir).Load()
	if err != nil {
		return fmt.Errorf("loading links: %w", err)
	}
	g.logf("loaded %d links", len(allLinks))

	lessons, err := g.loadLessons()
	if err != nil {
		return fmt.Errorf("loading lessons: %w", err)
	}
	g.logf("loaded %d lessons", len(lessons))

	var repos []Repo
	if g.Client != nil && g.Config.GithubUsername != "" && len(g.Config.Repositories) > 0 {
		repos = g.fetchRepos()
	}

	linksJSON, err := json.Marshal(allLinks)
	if err != nil {
		return err
	}

	base := pageData{
		Title:        orDefault(g.Config.Title, "My Knowledge Base"),
		Description:  orDefault(g.Config.Description, "Personal knowledge management"),
		Author:       orDefault(g.Config.Author, "Anonymous"),
		MenuItems:    g.Config.MenuItems,
		GeneratedAt:  now().UTC().Format("2006-01-02 15:04 UTC"),
		RelativeRoot: "./",
		Links:        allLinks,
		LinksJSON:    template.JS(linksJSON),
		Repos:        repos,
		Learning:     g.currentLearning(lessons),
		Lessons:      lessons,
	}

	for name, out := range map[string]string{
		"index.html":    "index.html",
		"links.html":    "links.html",
		"learning.html": "learning.html",
	} {
		if err := renderTo(tmpl, name, base, filepath.Join(outputDir, out)); err != nil {
			return err
		}
		g.logf("generated %s", out)
	}

	if err := g.renderLessonPages(tmpl, base, lessons, outputDir); err != nil {
		return err
	}
	g.logf("site written to %s", outputDir)
	return nil
}

func (g *Generator) copyStatic(outputDir string) error {
	return fs.WalkDir(staticFS, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := staticFS.ReadFile(p)
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(p, "static/")
		dest := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		return os.WriteFile(dest, data, 0o644)
	})
}

// loadLessons enumerates reviewed lessons with a numeric filename prefix and
// classifies them against the learning metadata.
func (g *Generator) loadLessons() ([]*Lesson, error) {
	store := learn.NewStore(g.DataDir)
	files, err := store.Lessons(true)
	if err != nil {
		return nil, err
	}

	meta, err := store.LoadMetadata()
	if err != nil {
		return nil, err
	}

	var lessons []*Lesson
	for _, f := range files {
		if !leadingNumRe.MatchString(path.Base(f.Name)) {
			continue
		}
		raw, err := os.ReadFile(f.Path)
		if err != nil {
			g.logf("skipping %s: %v", f.Name, err)
			continue
		}

		body := string(raw)
		if metaBlock, rest, ok := frontmatter.Split(body); ok {
			if !reviewed(metaBlock) {
				continue
			}
			body = rest
		}

		title := LessonTitle(body)
		if title == "" {
			title = FallbackTitle(f.Name)
		}

		status := statusTodo
		switch meta.Status(f.Name) {
		case learn.StatusCompleted:
			status = statusDone
		case learn.StatusCurrent:
			status = statusCurrent
		}

		lessons = append(lessons, &Lesson{
			Name:   f.Name,
			Title:  title,
			Status: status,
			URL:    "lessons/" + slugs.Path(f.Name) + ".html",
			body:   body,
		})
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Name < lessons[j].Name })
	return lessons, nil
}

// reviewed parses a front-matter block and reports whether the lesson should
// be published. Only an explicit reviewed: false hides it.
func reviewed(metaBlock string) bool {
	var m map[string]interface{}
	if err := yaml.Unmarshal([]byte(metaBlock), &m); err != nil {
		return true
	}
	for _, key := range []string{"reviewed", "Reviewed"} {
		if v, ok := m[key]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
	}
	return true
}

func (g *Generator) currentLearning(lessons []*Lesson) *navLink {
	for _, l := range lessons {
		if l.Status == statusCurrent {
			return &navLink{URL: l.URL, Title: l.Title}
		}
	}
	return nil
}

func (g *Generator) renderLessonPages(tmpl *template.Template, base pageData, lessons []*Lesson, outputDir string) error {
	for i, lesson := range lessons {
		var htmlBuf bytes.Buffer
		if err := markdown.Convert([]byte(lesson.body), &htmlBuf); err != nil {
			return fmt.Errorf("rendering %s: %w", lesson.Name, err)
		}

		page := base
		page.LessonTitle = lesson.Title
		page.LessonContent = template.HTML(htmlBuf.String())
		page.RelativeRoot = relativeRoot(lesson.Name)
		if i > 0 {
			page.Prev = &navLink{URL: relativeLessonURL(lesson.Name, lessons[i-1].Name), Title: lessons[i-1].Title}
		}
		if i < len(lessons)-1 {
			page.Next = &navLink{URL: relativeLessonURL(lesson.Name, lessons[i+1].Name), Title: lessons[i+1].Title}
		}

		out := filepath.Join(outputDir, "lessons", filepath.FromSlash(slugs.Path(lesson.Name)+".html"))
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := renderTo(tmpl, "lesson.html", page, out); err != nil {
			return err
		}
	}
	if len(lessons) > 0 {
		g.logf("generated %d lesson pages", len(lessons))
	}
	return nil
}

// relativeRoot returns the ../ chain from a lesson page back to the site
// root, counting the lessons directory itself.
func relativeRoot(name string) string {
	depth := strings.Count(name, "/") + 1
	return strings.Repeat("../", depth)
}

// relativeLessonURL links from one lesson page to another.
func relativeLessonURL(from, to string) string {
	toHTML := slugs.Path(to) + ".html"
	if path.Dir(from) == path.Dir(to) {
		return path.Base(toHTML)
	}
	up := 0
	if dir := path.Dir(from); dir != "." {
		up = strings.Count(dir, "/") + 1
	}
	return strings.Repeat("../", up) + toHTML
}

func renderTo(tmpl *template.Template, name string, data pageData, out string) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
