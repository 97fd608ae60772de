package grid

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// AddRecord inserts a new row built from values keyed by column name. The
// primary key is left to the database's auto-increment; columns absent from
// values are stored as NULL. The grid is re-read afterwards so the new row
// appears with the key the database assigned.
func (c *Controller) AddRecord(values map[string]string) error {
	if c.addingRecord || c.refreshing {
		return types.ErrBusy
	}
	c.addingRecord = true
	defer func() { c.addingRecord = false }()

	cols := make([]string, 0, len(c.cols)-1)
	vals := make([]string, 0, len(c.cols)-1)
	for _, col := range c.cols {
		if col.Name == c.pkCol {
			continue
		}
		cols = append(cols, col.Name)
		vals = append(vals, values[col.Name])
	}
	if err := c.store.Insert(c.table, cols, vals); err != nil {
		c.log.Error("inserting record",
			zap.String("table", c.table),
			zap.Error(err))
		c.surface.Notify(fmt.Sprintf("Could not add record: %v", err))
		return fmt.Errorf("inserting into %s: %w", c.table, err)
	}
	c.repairWatermark()
	if err := c.Refresh(); err != nil {
		return err
	}
	c.surface.SetStatus("Record added.")
	return nil
}

// DeleteRecord removes the row at the given grid position. Deleting the
// highest-keyed row pulls the auto-increment counter back down, so a deleted
// key is reissued to the next insert instead of leaving a gap.
func (c *Controller) DeleteRecord(row int) error {
	if c.refreshing {
		return types.ErrBusy
	}
	c.refreshing = true
	defer func() { c.refreshing = false }()

	key := c.RowKey(row)
	if key == "" {
		c.log.Warn("delete on row with no committed key",
			zap.String("table", c.table),
			zap.Int("row", row))
		return types.ErrStaleRow
	}
	if err := c.store.Delete(c.table, c.pkCol, key); err != nil {
		c.log.Error("deleting record",
			zap.String("table", c.table),
			zap.String("key", key),
			zap.Error(err))
		c.surface.Notify(fmt.Sprintf("Could not delete record %s: %v", key, err))
		return fmt.Errorf("deleting %s from %s: %w", key, c.table, err)
	}
	c.repairWatermark()
	c.reload(c.offset)
	c.surface.SetStatus(fmt.Sprintf("Record %s deleted.", key))
	return nil
}
