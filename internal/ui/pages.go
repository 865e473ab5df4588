package ui

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"pagedeck/internal/domain"
)

const tabWidth = 4

// pageBody is the materialized form of a page
type pageBody struct {
	viewport viewport.Model
	content  string
	err      error
}

// PageStore owns page bodies. It is the window host: the carousel attaches
// a page when it becomes visible and detaches it once it falls out of the
// lazy window.
type PageStore struct {
	pages       []domain.Page
	bodies      map[int]*pageBody
	width       int
	height      int
	syntaxStyle string
	readFile    func(string) ([]byte, error)
	loads       int
}

// NewPageStore creates a store for pages. Nothing is loaded until attached.
func NewPageStore(pages []domain.Page, syntaxStyle string) *PageStore {
	return &PageStore{
		pages:       pages,
		bodies:      make(map[int]*pageBody),
		width:       80,
		height:      20,
		syntaxStyle: syntaxStyle,
		readFile:    os.ReadFile,
	}
}

// AttachPage reads and highlights page i
func (s *PageStore) AttachPage(i int) {
	if i < 0 || i >= len(s.pages) {
		return
	}
	if _, ok := s.bodies[i]; ok {
		return
	}

	page := s.pages[i]
	body := &pageBody{viewport: viewport.New(s.width, s.height)}
	content, err := s.load(page)
	if err != nil {
		log.Printf("Failed to load page %d (%s): %v", i, page.Source, err)
		body.err = err
		content = fmt.Sprintf("Could not load %s\n\n%v", page.Source, err)
	}
	body.content = content
	body.viewport.SetContent(content)

	s.bodies[i] = body
	s.loads++
}

// DetachPage releases page i
func (s *PageStore) DetachPage(i int) {
	delete(s.bodies, i)
}

func (s *PageStore) load(page domain.Page) (string, error) {
	if page.Source == "" {
		return page.Title, nil
	}
	data, err := s.readFile(page.Source)
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}
	source := strings.ReplaceAll(string(data), "\t", strings.Repeat(" ", tabWidth))
	return highlightSource(page.Source, source, s.syntaxStyle), nil
}

// Resize sets the body size of every page, loaded or not
func (s *PageStore) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.width, s.height = width, height
	for _, body := range s.bodies {
		body.viewport.Width = width
		body.viewport.Height = height
	}
}

// Loaded reports whether page i is materialized
func (s *PageStore) Loaded(i int) bool {
	_, ok := s.bodies[i]
	return ok
}

// LoadedCount returns the number of materialized pages
func (s *PageStore) LoadedCount() int {
	return len(s.bodies)
}

// Loads returns how many times a page has been materialized
func (s *PageStore) Loads() int {
	return s.loads
}

// View renders the visible part of page i. Unloaded pages render empty.
func (s *PageStore) View(i int) (string, bool) {
	body, ok := s.bodies[i]
	if !ok {
		return "", false
	}
	return body.viewport.View(), true
}

// Viewport returns the scrollable body of page i
func (s *PageStore) Viewport(i int) (*viewport.Model, bool) {
	body, ok := s.bodies[i]
	if !ok {
		return nil, false
	}
	return &body.viewport, true
}

// Err returns the load error of page i, if any
func (s *PageStore) Err(i int) error {
	if body, ok := s.bodies[i]; ok {
		return body.err
	}
	return nil
}

// Page returns the page description at i
func (s *PageStore) Page(i int) (domain.Page, bool) {
	if i < 0 || i >= len(s.pages) {
		return domain.Page{}, false
	}
	return s.pages[i], true
}

// Count returns the number of pages
func (s *PageStore) Count() int {
	return len(s.pages)
}

// Titles returns the page titles in order
func (s *PageStore) Titles() []string {
	titles := make([]string, len(s.pages))
	for i, p := range s.pages {
		titles[i] = p.Title
	}
	return titles
}
