package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pagedeck/internal/config"
	"pagedeck/internal/domain"
)

// resolvePages builds the page list from arguments, or from the config
// file when there are none. Relative config paths resolve against baseDir.
func resolvePages(args []string, configured []config.PageConfig, baseDir string) ([]domain.Page, error) {
	var pages []domain.Page
	add := func(title, path string) {
		pages = append(pages, domain.Page{Index: len(pages), Title: title, Source: path})
	}

	if len(args) > 0 {
		for _, arg := range args {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("page %s: %w", arg, err)
			}
			if !info.IsDir() {
				add(filepath.Base(arg), arg)
				continue
			}
			files, err := listFiles(arg)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(filepath.Base(f), f)
			}
		}
	} else {
		for _, pc := range configured {
			path := pc.Path
			if path != "" && !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			title := pc.Title
			if title == "" && path != "" {
				title = filepath.Base(path)
			}
			add(title, path)
		}
	}

	if len(pages) == 0 {
		return nil, errNoPages(filepath.Join(baseDir, config.FileName))
	}
	return pages, nil
}

// listFiles returns the visible regular files of dir in name order
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
