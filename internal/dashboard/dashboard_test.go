package dashboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laptopdoctor/shopdesk/internal/store"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

func newTestSession(t *testing.T) *store.Session {
	t.Helper()
	sess, err := store.Open(types.Config{
		Driver:   types.DriverSQLite,
		Database: "dashdb",
		DataDir:  t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })

	_, err = sess.DB().Exec(`
		CREATE TABLE jobs (
			JobID INTEGER PRIMARY KEY AUTOINCREMENT,
			CustomerID TEXT,
			status TEXT,
			EndDate TEXT
		);
		INSERT INTO jobs (CustomerID, status, EndDate) VALUES
			('1', 'Completed', '2026-07-02 10:00:00'),
			('1', 'Completed', '2026-08-14 16:30:00'),
			('1', 'In Progress', NULL),
			('2', 'Waiting for Parts', NULL),
			('2', 'Completed', '2026-08-20 09:15:00');
	`)
	require.NoError(t, err)
	return sess
}

func TestCollect(t *testing.T) {
	sess := newTestSession(t)
	m, err := Collect(sess)
	require.NoError(t, err)

	byLabel := func(cs []Count) map[string]int {
		out := make(map[string]int, len(cs))
		for _, c := range cs {
			out[c.Label] = c.N
		}
		return out
	}

	status := byLabel(m.JobsByStatus)
	assert.Equal(t, 3, status[types.StatusCompleted])
	assert.Equal(t, 1, status[types.StatusInProgress])
	assert.Equal(t, 1, status[types.StatusWaitingForParts])

	customers := byLabel(m.TopCustomers)
	assert.Equal(t, 3, customers["1"])
	assert.Equal(t, 2, customers["2"])
	assert.Equal(t, "1", m.TopCustomers[0].Label, "busiest customer first")

	require.Len(t, m.MonthlyClosed, 2)
	assert.Equal(t, Count{Label: "2026-07", N: 1}, m.MonthlyClosed[0])
	assert.Equal(t, Count{Label: "2026-08", N: 2}, m.MonthlyClosed[1])

	assert.Nil(t, m.JobsByBrand, "no brand column in this schema")
	assert.Nil(t, m.MonthlyRevenue, "no price column in this schema")
}

func TestCollectOptionalColumns(t *testing.T) {
	sess, err := store.Open(types.Config{
		Driver:   types.DriverSQLite,
		Database: "dashdb",
		DataDir:  t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })

	_, err = sess.DB().Exec(`
		CREATE TABLE jobs (
			JobID INTEGER PRIMARY KEY AUTOINCREMENT,
			CustomerID TEXT,
			status TEXT,
			EndDate TEXT,
			brand TEXT,
			Price INTEGER
		);
		INSERT INTO jobs (CustomerID, status, EndDate, brand, Price) VALUES
			('1', 'Completed', '2026-07-02 10:00:00', 'Dell', 120),
			('1', 'Completed', '2026-08-14 16:30:00', 'Dell', 80),
			('2', 'Completed', '2026-08-20 09:15:00', 'Lenovo', 200),
			('2', 'In Progress', NULL, NULL, NULL);
	`)
	require.NoError(t, err)

	m, err := Collect(sess)
	require.NoError(t, err)

	brands := make(map[string]int, len(m.JobsByBrand))
	for _, c := range m.JobsByBrand {
		brands[c.Label] = c.N
	}
	assert.Equal(t, 2, brands["Dell"])
	assert.Equal(t, 1, brands["Lenovo"])
	assert.Equal(t, 1, brands["(none)"], "NULL brand still counted")

	require.Len(t, m.MonthlyRevenue, 2)
	assert.Equal(t, Count{Label: "2026-07", N: 120}, m.MonthlyRevenue[0])
	assert.Equal(t, Count{Label: "2026-08", N: 280}, m.MonthlyRevenue[1])

	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf))
	assert.Contains(t, buf.String(), "Jobs by Device Brand")
	assert.Contains(t, buf.String(), "Revenue by Month")
}

func TestRenderProducesCharts(t *testing.T) {
	sess := newTestSession(t)
	m, err := Collect(sess)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf))
	html := buf.String()
	assert.Contains(t, html, "Jobs by Status")
	assert.Contains(t, html, "Busiest Customers")
	assert.Contains(t, html, "Completed Jobs by Month")
	assert.Contains(t, html, "2026-08")
	assert.NotContains(t, html, "Jobs by Device Brand")
	assert.NotContains(t, html, "Revenue by Month")
}
