package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/bizextract"
	"github.com/fwojciec/bizextract/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if (c.URL == "") == (c.Dir == "") {
		err := bizextract.Errorf(bizextract.EINVALID, "Provide either a website URL or --dir, but not both.")
		fmt.Fprintf(deps.Stderr, "error: %s\n", bizextract.ErrorMessage(err))
		return err
	}

	pages, err := c.pages(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bizextract.ErrorMessage(err))
		return err
	}

	record := deps.Extractor.Extract(deps.Ctx, pages)

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}

func (c *ExtractCmd) pages(deps *Dependencies) ([]*bizextract.Page, error) {
	if c.Dir != "" {
		return fs.LoadPages(c.Dir)
	}
	return deps.Crawler.Crawl(deps.Ctx, c.URL)
}
