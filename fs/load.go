package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/bizextract"
	"gopkg.in/yaml.v3"
)

// LoadPages reads the pages saved in dir by a FileStore, ordered by their
// saved position. It returns ENOTFOUND when dir is missing or holds no pages.
func LoadPages(dir string) ([]*bizextract.Page, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, bizextract.Errorf(bizextract.ENOTFOUND, "Page directory %q not found.", dir)
	} else if err != nil {
		return nil, err
	}

	type loaded struct {
		name     string
		position int
		page     *bizextract.Page
	}
	var all []loaded
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		meta, content, err := parsePage(data)
		if err != nil {
			return nil, bizextract.Errorf(bizextract.EINVALID, "%s: %s", e.Name(), bizextract.ErrorMessage(err))
		}
		all = append(all, loaded{
			name:     e.Name(),
			position: meta.Position,
			page:     &bizextract.Page{URL: meta.Source, Title: meta.Title, Content: content},
		})
	}
	if len(all) == 0 {
		return nil, bizextract.Errorf(bizextract.ENOTFOUND, "No pages found in %q.", dir)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].position != all[j].position {
			return all[i].position < all[j].position
		}
		return all[i].name < all[j].name
	})

	pages := make([]*bizextract.Page, len(all))
	for i, l := range all {
		pages[i] = l.page
	}
	return pages, nil
}

// parsePage splits a saved page into its frontmatter and content.
// Files without frontmatter are returned as content only.
func parsePage(data []byte) (frontmatter, string, error) {
	var meta frontmatter
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return meta, strings.TrimSpace(text), nil
	}

	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return meta, "", bizextract.Errorf(bizextract.EINVALID, "unterminated frontmatter")
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return meta, "", bizextract.Errorf(bizextract.EINVALID, "invalid frontmatter: %v", err)
	}
	return meta, strings.TrimSpace(rest[end+len("\n---\n"):]), nil
}
