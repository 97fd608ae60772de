package grid

import "github.com/laptopdoctor/shopdesk/pkg/types"

// Advance moves the grid by delta rows (positive for the next page, negative
// for the previous). The offset is clamped at zero, so paging backward from
// the first page re-renders it. Paging forward into an empty page means the
// table has no more data: the user is told, the Next control is disabled,
// and the offset stays where it was so the current page remains addressable.
func (c *Controller) Advance(delta int) error {
	if c.refreshing {
		return types.ErrBusy
	}
	c.refreshing = true
	defer func() { c.refreshing = false }()

	proposed := c.offset + delta
	if proposed < 0 {
		proposed = 0
	}
	page := c.fetch(proposed)
	if delta > 0 && len(page.Rows) == 0 {
		c.surface.Notify("No more records to load.")
		c.surface.SetNextEnabled(false)
		return nil
	}
	c.present(proposed, page)
	return nil
}

// NextPage advances one page forward.
func (c *Controller) NextPage() error { return c.Advance(c.limit) }

// PrevPage moves one page back.
func (c *Controller) PrevPage() error { return c.Advance(-c.limit) }
