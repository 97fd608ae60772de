package grid

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// Search replaces the grid contents with rows matching queryText in any of
// the selected columns. Every whitespace-separated token must match (in some
// selected column) for a row to qualify. Search results are a single
// unpaginated set, so both paging controls go dark until the next Refresh or
// Advance restores paged browsing.
func (c *Controller) Search(columns []string, queryText string) error {
	if c.refreshing {
		return types.ErrBusy
	}
	c.refreshing = true
	defer func() { c.refreshing = false }()

	rows, err := c.store.Search(c.table, columns, queryText)
	if err != nil {
		if errors.Is(err, types.ErrEmptySearch) {
			c.surface.Notify("Enter a search term and select at least one column.")
			return err
		}
		c.log.Error("searching",
			zap.String("table", c.table),
			zap.Strings("columns", columns),
			zap.Error(err))
		c.surface.Notify(fmt.Sprintf("Search failed: %v", err))
		return fmt.Errorf("searching %s: %w", c.table, err)
	}

	c.render(rows)
	c.searchMode = true
	c.surface.ScrollToTop()
	c.surface.SetPrevEnabled(false)
	c.surface.SetNextEnabled(false)
	c.surface.SetPageLabel("Search results")
	c.surface.SetStatus(fmt.Sprintf("%d matching records", len(rows)))
	return nil
}

// InSearch reports whether the grid currently shows search results rather
// than a page.
func (c *Controller) InSearch() bool { return c.searchMode }
