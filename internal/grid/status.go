package grid

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// SelectorChanged commits a new value chosen in an enumeration cell. For the
// job status column this also stamps the completion time when the job moves
// to Completed. The grid is re-read afterwards so derived columns (the end
// date) show what the database actually stored.
func (c *Controller) SelectorChanged(row int, value string) error {
	if c.refreshing {
		return types.ErrBusy
	}
	key := c.RowKey(row)
	if key == "" {
		c.log.Warn("selector change on row with no committed key",
			zap.String("table", c.table),
			zap.Int("row", row))
		return types.ErrStaleRow
	}

	c.refreshing = true
	err := c.store.UpdateStatus(c.table, c.pkCol, key, value)
	c.refreshing = false
	if err != nil {
		c.log.Error("updating status",
			zap.String("table", c.table),
			zap.String("key", key),
			zap.String("status", value),
			zap.Error(err))
		c.surface.Notify(fmt.Sprintf("Could not update status: %v", err))
		return fmt.Errorf("updating status of %s %s: %w", c.table, key, err)
	}
	return c.Refresh()
}
