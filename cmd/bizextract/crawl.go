package main

import (
	"fmt"

	"github.com/fwojciec/bizextract"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	pages, err := deps.Crawler.Crawl(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bizextract.ErrorMessage(err))
		return err
	}

	store := deps.NewStore(c.Dir)
	for _, page := range pages {
		if err := store.Save(deps.Ctx, page); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error saving %s: %v\n", page.URL, err)
			return err
		}
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return fmt.Errorf("failed to write %s: %w", c.Dir, err)
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages to %s\n", len(pages), c.Dir)
	return nil
}
