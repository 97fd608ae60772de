package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"known status passes through", StatusCompleted, StatusCompleted},
		{"unknown status falls back to In Progress", "Cancelled", StatusInProgress},
		{"empty status falls back to In Progress", "", StatusInProgress},
		{"case matters for stored values", "completed", StatusInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.in))
		})
	}
}

func TestResolveRenderPlan(t *testing.T) {
	cols := []Column{
		{Name: "JobID", Type: "int", Ordinal: 0},
		{Name: "Status", Type: "varchar", Ordinal: 1},
		{Name: "Notes", Type: "text", Ordinal: 2},
	}

	t.Run("jobs table status column is an enumeration", func(t *testing.T) {
		plan := ResolveRenderPlan("Jobs", cols)
		assert.Equal(t, CellEnumeration, plan["Status"].Kind)
		assert.Equal(t, JobStatusOptions, plan["Status"].Options)
		assert.Equal(t, StatusInProgress, plan["Status"].Default)
		assert.Equal(t, CellPlainText, plan["JobID"].Kind)
		assert.Equal(t, CellPlainText, plan["Notes"].Kind)
	})

	t.Run("other tables render status as plain text", func(t *testing.T) {
		plan := ResolveRenderPlan("customers", cols)
		assert.Equal(t, CellPlainText, plan["Status"].Kind)
	})
}

func TestPageFull(t *testing.T) {
	p := Page{Limit: 2, Rows: []Row{{"1"}, {"2"}}}
	assert.True(t, p.Full())
	p.Rows = p.Rows[:1]
	assert.False(t, p.Full())
}
