package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagedeck/internal/config"
	"pagedeck/internal/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestResolvePagesFromArgs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.go")
	b := filepath.Join(dir, "b.md")
	touch(t, a)
	touch(t, b)

	pages, err := resolvePages([]string{b, a}, nil, dir)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, domain.Page{Index: 0, Title: "b.md", Source: b}, pages[0])
	assert.Equal(t, domain.Page{Index: 1, Title: "a.go", Source: a}, pages[1])
}

func TestResolvePagesExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "docs", "z.txt"))
	touch(t, filepath.Join(dir, "docs", "a.txt"))
	touch(t, filepath.Join(dir, "docs", ".hidden"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "sub"), 0o755))

	pages, err := resolvePages([]string{filepath.Join(dir, "docs")}, nil, dir)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "a.txt", pages[0].Title)
	assert.Equal(t, "z.txt", pages[1].Title)
	assert.Equal(t, 1, pages[1].Index)
}

func TestResolvePagesArgsReplaceConfig(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	touch(t, a)

	pages, err := resolvePages([]string{a}, []config.PageConfig{{Title: "ignored", Path: "x"}}, dir)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, a, pages[0].Source)
}

func TestResolvePagesFromConfig(t *testing.T) {
	dir := t.TempDir()
	configured := []config.PageConfig{
		{Title: "Notes", Path: "notes.md"},
		{Path: "/abs/todo.txt"},
		{Title: "Blank"},
	}

	pages, err := resolvePages(nil, configured, dir)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, filepath.Join(dir, "notes.md"), pages[0].Source)
	assert.Equal(t, "Notes", pages[0].Title)
	assert.Equal(t, "/abs/todo.txt", pages[1].Source)
	assert.Equal(t, "todo.txt", pages[1].Title)
	assert.Equal(t, "", pages[2].Source)
}

func TestResolvePagesErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := resolvePages(nil, nil, dir)
	assert.ErrorIs(t, err, domain.ErrNoPages)

	_, err = resolvePages([]string{filepath.Join(dir, "missing")}, nil, dir)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))
	_, err = resolvePages([]string{filepath.Join(dir, "empty")}, nil, dir)
	assert.ErrorIs(t, err, domain.ErrNoPages)
}
