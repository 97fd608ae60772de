package grid

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/internal/store"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// DefaultPageSize is the number of rows fetched per page.
const DefaultPageSize = 50

// rowModel is the controller's shadow of one rendered row. committedKey is
// the primary-key value the database holds for the row; it lags a pending
// key edit until the rename commits, so reverts and stale checks always use
// the last known-good key rather than whatever sits in the cell.
type rowModel struct {
	cells        types.Row
	committedKey string
}

// Controller drives one table's grid. All methods must be called from a
// single goroutine; an in-flight operation is guarded by the refreshing
// flag, and a concurrent call returns types.ErrBusy instead of interleaving.
type Controller struct {
	store   *store.Session
	log     *zap.Logger
	surface Surface

	table   string
	pkCol   string
	pkIndex int
	cols    []types.Column
	plan    types.RenderPlan

	offset     int
	limit      int
	rows       []rowModel
	searchMode bool

	refreshing   bool
	addingRecord bool
}

// Open inspects the table's schema, builds a controller over it, and renders
// the first page. Tables without a primary key cannot be edited safely, so
// opening one fails after telling the user why.
func Open(sess *store.Session, log *zap.Logger, surface Surface, table string) (*Controller, error) {
	pk, err := sess.PrimaryKey(table)
	if err != nil {
		if errors.Is(err, types.ErrNoPrimaryKey) {
			surface.Notify(fmt.Sprintf("Table %s has no primary key and cannot be opened for editing.", table))
		}
		return nil, fmt.Errorf("inspecting primary key of %s: %w", table, err)
	}
	cols, err := sess.Columns(table)
	if err != nil {
		return nil, fmt.Errorf("inspecting columns of %s: %w", table, err)
	}
	pkIndex := -1
	for i, col := range cols {
		if col.Name == pk {
			pkIndex = i
			break
		}
	}
	if pkIndex < 0 {
		return nil, fmt.Errorf("primary key %s not among columns of %s", pk, table)
	}

	c := &Controller{
		store:   sess,
		log:     log,
		surface: surface,
		table:   table,
		pkCol:   pk,
		pkIndex: pkIndex,
		cols:    cols,
		plan:    types.ResolveRenderPlan(table, cols),
		limit:   DefaultPageSize,
	}
	c.reload(0)
	return c, nil
}

// Table returns the table the controller is bound to.
func (c *Controller) Table() string { return c.table }

// PrimaryKey returns the table's primary-key column name.
func (c *Controller) PrimaryKey() string { return c.pkCol }

// Columns returns the table's columns in declared order.
func (c *Controller) Columns() []types.Column { return c.cols }

// Plan returns the render plan chosen for this table.
func (c *Controller) Plan() types.RenderPlan { return c.plan }

// Offset returns the current page offset.
func (c *Controller) Offset() int { return c.offset }

// RowCount returns the number of rendered rows.
func (c *Controller) RowCount() int { return len(c.rows) }

// RowKey returns the committed primary-key value of a rendered row, or ""
// when the row index is out of range.
func (c *Controller) RowKey(row int) string {
	if row < 0 || row >= len(c.rows) {
		return ""
	}
	return c.rows[row].committedKey
}

// bulk runs fn inside a suppression scope so the controller's own surface
// writes do not echo back as user edits. The token is released on every
// path, including a panic inside fn.
func (c *Controller) bulk(fn func()) {
	token := c.surface.Suspend()
	defer c.surface.Resume(token)
	fn()
}

// render replaces the grid contents and the shadow row models with recs.
func (c *Controller) render(recs []types.Row) {
	c.rows = make([]rowModel, len(recs))
	c.bulk(func() {
		names := make([]string, len(c.cols))
		for i, col := range c.cols {
			names[i] = col.Name
		}
		c.surface.SetColumns(names)
		c.surface.SetRowCount(len(recs))
		for i, rec := range recs {
			key := ""
			if c.pkIndex < len(rec) {
				key = rec[c.pkIndex]
			}
			c.rows[i] = rowModel{cells: append(types.Row(nil), rec...), committedKey: key}
			for j, col := range c.cols {
				val := ""
				if j < len(rec) {
					val = rec[j]
				}
				if plan, ok := c.plan[col.Name]; ok && plan.Kind == types.CellEnumeration {
					c.surface.SetSelector(i, j, plan.Options, plan.Normalize(val))
				} else {
					c.surface.SetCell(i, j, val)
				}
			}
		}
	})
}

// fetch reads the page at offset. A fetch failure is logged and comes back
// as an empty page so the grid degrades to blank instead of crashing the
// session.
func (c *Controller) fetch(offset int) types.Page {
	page, err := c.store.FetchPage(c.table, c.limit, offset)
	if err != nil {
		c.log.Error("fetching page",
			zap.String("table", c.table),
			zap.Int("offset", offset),
			zap.Error(err))
		return types.Page{Offset: offset, Limit: c.limit}
	}
	return page
}

// present adopts offset as current, renders the page, and updates the
// navigation chrome. Callers hold the refreshing guard.
func (c *Controller) present(offset int, page types.Page) {
	c.offset = offset
	c.searchMode = false
	c.render(page.Rows)
	c.surface.ScrollToTop()
	c.surface.SetPageLabel(fmt.Sprintf("Page %d", c.offset/c.limit+1))
	c.surface.SetPrevEnabled(c.offset > 0)
	c.surface.SetNextEnabled(page.Full())
}

// reload fetches and presents the page at offset.
func (c *Controller) reload(offset int) {
	c.present(offset, c.fetch(offset))
}

// Refresh re-reads and re-renders the current page.
func (c *Controller) Refresh() error {
	if c.refreshing {
		return types.ErrBusy
	}
	c.refreshing = true
	defer func() { c.refreshing = false }()
	c.reload(c.offset)
	return nil
}

// repairWatermark re-derives the table's auto-increment counter from the
// surviving keys. Failures are logged only: the grid state is already
// correct and the next successful mutation repairs the counter again.
func (c *Controller) repairWatermark() {
	if err := c.store.RepairAutoIncrement(c.table, c.pkCol); err != nil {
		c.log.Warn("repairing auto-increment counter",
			zap.String("table", c.table),
			zap.Error(err))
	}
}

// revertCell puts val back into a cell, shadow model included, without the
// write echoing back as an edit.
func (c *Controller) revertCell(row, col int, val string) {
	c.rows[row].cells[col] = val
	c.bulk(func() {
		c.surface.SetCell(row, col, val)
	})
}

// setCell records a committed value in a cell and the shadow model.
func (c *Controller) setCell(row, col int, val string) {
	c.rows[row].cells[col] = val
	c.bulk(func() {
		c.surface.SetCell(row, col, val)
	})
}
