// Package fs stores crawled pages as Markdown files with YAML frontmatter.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/bizextract"
	"gopkg.in/yaml.v3"
)

// maxSlugLen bounds the URL-derived part of a file name.
const maxSlugLen = 60

var _ bizextract.PageStore = (*FileStore)(nil)

// frontmatter is the YAML header of a saved page.
type frontmatter struct {
	Source   string `yaml:"source"`
	Title    string `yaml:"title"`
	Position int    `yaml:"position"`
	Crawled  string `yaml:"crawled"`
}

// FileStore implements bizextract.PageStore with atomic update semantics.
// Pages are written to baseDir/name.tmp as NNNN-slug.md, numbered in save
// order, and moved to baseDir/name on Commit.
type FileStore struct {
	baseDir string
	name    string

	// Now returns the crawl date written to frontmatter. Defaults to time.Now.
	Now func() time.Time

	mu       sync.Mutex
	position int
}

// NewFileStore creates a new FileStore.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		Now:     time.Now,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page to the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *bizextract.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if page == nil || page.URL == "" {
		return bizextract.Errorf(bizextract.EINVALID, "page URL required")
	}

	s.mu.Lock()
	position := s.position
	s.position++
	s.mu.Unlock()

	data, err := FormatPage(page, position, s.Now())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.tempDir(), 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%04d-%s.md", position, Slug(page.URL))
	return os.WriteFile(filepath.Join(s.tempDir(), name), data, 0o644)
}

// Commit replaces the final directory with the temporary one.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the temporary directory.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// FormatPage renders page as YAML frontmatter followed by its content.
func FormatPage(page *bizextract.Page, position int, crawled time.Time) ([]byte, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:   page.URL,
		Title:    page.Title,
		Position: position,
		Crawled:  crawled.Format(time.DateOnly),
	})
	if err != nil {
		return nil, bizextract.Errorf(bizextract.EINTERNAL, "encoding frontmatter: %v", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	b.WriteString("\n")
	return b.Bytes(), nil
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a file-name-safe name from a URL path, e.g.
// "https://vetclinic.com/about/our-team/" becomes "about-our-team".
// The site root is "index".
func Slug(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	slug := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(path), "-"), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "index"
	}
	return slug
}
