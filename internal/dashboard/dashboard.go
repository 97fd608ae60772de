// Package dashboard renders shop metrics as an HTML page of charts: job
// counts by status, the busiest customers, completed work by month, and,
// when the jobs table carries the columns, device brands and revenue.
package dashboard

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/laptopdoctor/shopdesk/internal/store"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// topCustomerLimit caps the busiest-customers chart.
const topCustomerLimit = 10

// Optional jobs columns feeding extra charts when present.
var (
	brandColumns   = []string{"Brand", "DeviceBrand", "Make"}
	revenueColumns = []string{"Price", "Cost", "Amount"}
)

// Metrics holds the aggregates the dashboard charts.
type Metrics struct {
	JobsByStatus  []Count
	TopCustomers  []Count
	MonthlyClosed []Count
	// JobsByBrand and MonthlyRevenue stay nil when the jobs table has no
	// brand or price column.
	JobsByBrand    []Count
	MonthlyRevenue []Count
}

// Count is one labeled tally.
type Count struct {
	Label string
	N     int
}

// Collect runs the dashboard's aggregate queries.
func Collect(sess *store.Session) (*Metrics, error) {
	m := &Metrics{}
	var err error
	if m.JobsByStatus, err = counts(sess,
		"SELECT `status`, COUNT(*) FROM `jobs` GROUP BY `status`"); err != nil {
		return nil, fmt.Errorf("counting jobs by status: %w", err)
	}
	if m.TopCustomers, err = counts(sess, fmt.Sprintf(
		"SELECT `CustomerID`, COUNT(*) FROM `jobs` GROUP BY `CustomerID` "+
			"ORDER BY COUNT(*) DESC LIMIT %d", topCustomerLimit)); err != nil {
		return nil, fmt.Errorf("counting jobs by customer: %w", err)
	}
	// SUBSTR of the "2006-01-02 15:04:05" stamp gives the year-month.
	if m.MonthlyClosed, err = counts(sess,
		"SELECT SUBSTR(`EndDate`, 1, 7), COUNT(*) FROM `jobs` "+
			"WHERE `EndDate` IS NOT NULL GROUP BY SUBSTR(`EndDate`, 1, 7) "+
			"ORDER BY SUBSTR(`EndDate`, 1, 7)"); err != nil {
		return nil, fmt.Errorf("counting completed jobs by month: %w", err)
	}

	if col, ok, err := optionalColumn(sess, brandColumns); err != nil {
		return nil, err
	} else if ok {
		if m.JobsByBrand, err = counts(sess, fmt.Sprintf(
			"SELECT `%s`, COUNT(*) FROM `jobs` GROUP BY `%s`", col, col)); err != nil {
			return nil, fmt.Errorf("counting jobs by brand: %w", err)
		}
	}
	if col, ok, err := optionalColumn(sess, revenueColumns); err != nil {
		return nil, err
	} else if ok {
		if m.MonthlyRevenue, err = counts(sess, fmt.Sprintf(
			"SELECT SUBSTR(`EndDate`, 1, 7), CAST(SUM(`%s`) AS INTEGER) FROM `jobs` "+
				"WHERE `EndDate` IS NOT NULL GROUP BY SUBSTR(`EndDate`, 1, 7) "+
				"ORDER BY SUBSTR(`EndDate`, 1, 7)", col)); err != nil {
			return nil, fmt.Errorf("summing revenue by month: %w", err)
		}
	}
	return m, nil
}

// optionalColumn returns the first of the candidate columns the jobs table
// actually has, matched case-insensitively.
func optionalColumn(sess *store.Session, candidates []string) (string, bool, error) {
	cols, err := sess.Columns(types.JobsTable)
	if err != nil {
		return "", false, fmt.Errorf("inspecting jobs columns: %w", err)
	}
	for _, cand := range candidates {
		for _, col := range cols {
			if strings.EqualFold(col.Name, cand) {
				return col.Name, true, nil
			}
		}
	}
	return "", false, nil
}

func counts(sess *store.Session, query string) ([]Count, error) {
	rows, err := sess.DB().Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Count
	for rows.Next() {
		var label sql.NullString
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		c := Count{Label: label.String, N: n}
		if c.Label == "" {
			c.Label = "(none)"
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Render writes the dashboard HTML to w.
func (m *Metrics) Render(w io.Writer) error {
	page := components.NewPage()
	page.SetPageTitle("The Laptop Doctor")
	page.AddCharts(m.statusPie(), m.customerBar(), m.monthlyBar())
	if len(m.JobsByBrand) > 0 {
		page.AddCharts(pie("Jobs by Device Brand", "brand", m.JobsByBrand))
	}
	if len(m.MonthlyRevenue) > 0 {
		page.AddCharts(bar("Revenue by Month", "revenue", m.MonthlyRevenue))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	return nil
}

// RenderFile writes the dashboard HTML to path.
func (m *Metrics) RenderFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dashboard file: %w", err)
	}
	defer f.Close()
	return m.Render(f)
}

func (m *Metrics) statusPie() components.Charter {
	return pie("Jobs by Status", "status", m.JobsByStatus)
}

func (m *Metrics) customerBar() components.Charter {
	return bar("Busiest Customers", "jobs", m.TopCustomers)
}

func (m *Metrics) monthlyBar() components.Charter {
	return bar("Completed Jobs by Month", "completed", m.MonthlyClosed)
}

func pie(title, series string, data []Count) components.Charter {
	p := charts.NewPie()
	p.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	items := make([]opts.PieData, len(data))
	for i, c := range data {
		items[i] = opts.PieData{Name: c.Label, Value: c.N}
	}
	p.AddSeries(series, items)
	return p
}

func bar(title, series string, data []Count) components.Charter {
	b := charts.NewBar()
	b.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	labels := make([]string, len(data))
	items := make([]opts.BarData, len(data))
	for i, c := range data {
		labels[i] = c.Label
		items[i] = opts.BarData{Value: c.N}
	}
	b.SetXAxis(labels).AddSeries(series, items)
	return b
}
