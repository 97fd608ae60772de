package types

import "strings"

// CellKind selects the widget a column's cells render as.
type CellKind int

const (
	// CellPlainText renders as an editable text cell.
	CellPlainText CellKind = iota
	// CellEnumeration renders as a fixed-option selector.
	CellEnumeration
)

// CellPlan is the resolved render strategy for one column: plain text, or an
// enumeration with its options and the fallback used when the stored value
// matches none of them.
type CellPlan struct {
	Kind    CellKind
	Options []string
	Default string
}

// RenderPlan maps column names to their cell plans. It is resolved once when
// a grid is opened, not re-derived per cell per render.
type RenderPlan map[string]CellPlan

// JobsTable is the distinguished table whose status column renders as an
// enumeration selector.
const JobsTable = "jobs"

// StatusColumn is the column name (matched case-insensitively) that gets the
// enumeration treatment on the jobs table.
const StatusColumn = "status"

// Job status values.
const (
	StatusWaitingForParts = "Waiting for Parts"
	StatusInProgress      = "In Progress"
	StatusCompleted       = "Completed"
	StatusPickedUp        = "Picked Up"
)

// JobStatusOptions lists the selectable job statuses in display order.
var JobStatusOptions = []string{
	StatusWaitingForParts,
	StatusInProgress,
	StatusCompleted,
	StatusPickedUp,
}

// NormalizeStatus returns v when it is one of the job status options, and
// the default status otherwise.
func NormalizeStatus(v string) string {
	for _, opt := range JobStatusOptions {
		if v == opt {
			return opt
		}
	}
	return StatusInProgress
}

// Normalize returns v when it is one of the plan's options, and the plan's
// default otherwise. Plain-text plans return v unchanged.
func (p CellPlan) Normalize(v string) string {
	if p.Kind != CellEnumeration {
		return v
	}
	for _, opt := range p.Options {
		if v == opt {
			return opt
		}
	}
	return p.Default
}

// ResolveRenderPlan builds the render plan for a table. Only the jobs table's
// status column (case-insensitive) renders as an enumeration; every other
// column is plain text.
func ResolveRenderPlan(table string, cols []Column) RenderPlan {
	plan := make(RenderPlan, len(cols))
	for _, col := range cols {
		if strings.EqualFold(table, JobsTable) && strings.EqualFold(col.Name, StatusColumn) {
			plan[col.Name] = CellPlan{
				Kind:    CellEnumeration,
				Options: JobStatusOptions,
				Default: StatusInProgress,
			}
			continue
		}
		plan[col.Name] = CellPlan{Kind: CellPlainText}
	}
	return plan
}
