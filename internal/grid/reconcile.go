package grid

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// CellEdited reconciles a user edit against the database. The sequence is
// fixed: locate the row's committed key, confirm the row still exists,
// short-circuit when nothing changed, then commit either a primary-key
// rename (with a uniqueness check first) or a plain column update. On any
// commit failure the cell is reverted to the database's value so the grid
// never displays uncommitted data. A successful mutation ends with a
// watermark repair.
//
// The returned error reports what happened for callers that care; all user
// feedback (notifications, reverts) has already been delivered by the time
// it returns, so surfaces may ignore it.
func (c *Controller) CellEdited(row, col int, text string) error {
	if c.refreshing {
		return types.ErrBusy
	}
	c.refreshing = true
	defer func() { c.refreshing = false }()

	if row < 0 || row >= len(c.rows) || col < 0 || col >= len(c.cols) {
		c.log.Warn("edit outside grid bounds",
			zap.String("table", c.table),
			zap.Int("row", row),
			zap.Int("col", col))
		return types.ErrStaleRow
	}
	m := &c.rows[row]
	colName := c.cols[col].Name
	if m.committedKey == "" {
		c.log.Warn("edit on row with no committed key",
			zap.String("table", c.table),
			zap.Int("row", row))
		return types.ErrStaleRow
	}

	// The row may have been deleted or renamed out from under the grid
	// since the last render. Confirm the committed key still resolves
	// before touching anything.
	if _, err := c.store.Field(c.table, c.pkCol, c.pkCol, m.committedKey); err != nil {
		if errors.Is(err, types.ErrStaleRow) {
			c.log.Warn("edit on stale row",
				zap.String("table", c.table),
				zap.String("key", m.committedKey))
			return types.ErrStaleRow
		}
		c.log.Error("checking row liveness",
			zap.String("table", c.table),
			zap.String("key", m.committedKey),
			zap.Error(err))
		return fmt.Errorf("checking row %s of %s: %w", m.committedKey, c.table, err)
	}

	current, err := c.store.Field(c.table, colName, c.pkCol, m.committedKey)
	if err != nil {
		c.log.Error("reading current cell value",
			zap.String("table", c.table),
			zap.String("column", colName),
			zap.Error(err))
		return fmt.Errorf("reading %s.%s: %w", c.table, colName, err)
	}
	if text == current {
		return types.ErrNoChange
	}

	if col == c.pkIndex {
		return c.commitKeyRename(row, col, m, text)
	}
	return c.commitCellUpdate(row, col, m, colName, text, current)
}

// commitKeyRename handles an edit to the primary-key column: the new key
// must be free, the rename is a single UPDATE, and the shadow key advances
// only after the database accepts it.
func (c *Controller) commitKeyRename(row, col int, m *rowModel, newKey string) error {
	exists, err := c.store.KeyExists(c.table, c.pkCol, newKey)
	if err != nil {
		c.revertCell(row, col, m.committedKey)
		c.log.Error("checking key uniqueness",
			zap.String("table", c.table),
			zap.String("key", newKey),
			zap.Error(err))
		c.surface.Notify(fmt.Sprintf("Could not verify key %s: %v", newKey, err))
		return fmt.Errorf("checking key %s in %s: %w", newKey, c.table, err)
	}
	if exists {
		c.revertCell(row, col, m.committedKey)
		c.surface.Notify(fmt.Sprintf("A record with %s %s already exists.", c.pkCol, newKey))
		return types.ErrDuplicateKey
	}

	if err := c.store.RenameKey(c.table, c.pkCol, m.committedKey, newKey); err != nil {
		c.revertCell(row, col, m.committedKey)
		c.log.Error("renaming key",
			zap.String("table", c.table),
			zap.String("old", m.committedKey),
			zap.String("new", newKey),
			zap.Error(err))
		c.surface.Notify(fmt.Sprintf("Could not change %s to %s: %v", c.pkCol, newKey, err))
		return fmt.Errorf("renaming %s %s to %s: %w", c.pkCol, m.committedKey, newKey, err)
	}

	m.committedKey = newKey
	c.setCell(row, col, newKey)
	c.repairWatermark()
	return nil
}

// commitCellUpdate handles an edit to a non-key column.
func (c *Controller) commitCellUpdate(row, col int, m *rowModel, colName, text, current string) error {
	if err := c.store.UpdateCell(c.table, colName, c.pkCol, m.committedKey, text); err != nil {
		c.revertCell(row, col, current)
		c.log.Error("updating cell",
			zap.String("table", c.table),
			zap.String("column", colName),
			zap.String("key", m.committedKey),
			zap.Error(err))
		c.surface.Notify(fmt.Sprintf("Could not save %s: %v", colName, err))
		return fmt.Errorf("updating %s.%s for key %s: %w", c.table, colName, m.committedKey, err)
	}
	c.setCell(row, col, text)
	c.repairWatermark()
	return nil
}
