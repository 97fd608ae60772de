package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/laptopdoctor/shopdesk/internal/store"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

func newTestSession(t *testing.T) *store.Session {
	t.Helper()
	sess, err := store.Open(types.Config{
		Driver:   types.DriverSQLite,
		Database: "exportdb",
		DataDir:  t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })

	_, err = sess.DB().Exec(`
		CREATE TABLE jobs (
			JobID INTEGER PRIMARY KEY AUTOINCREMENT,
			Description TEXT
		);
		CREATE TABLE customers (
			CustomerID INTEGER PRIMARY KEY AUTOINCREMENT,
			Name TEXT
		);
		INSERT INTO jobs (Description) VALUES ('cracked screen');
		INSERT INTO customers (Name) VALUES ('Ada');
		INSERT INTO customers (Name) VALUES ('Grace');
	`)
	require.NoError(t, err)
	return sess
}

func TestEnsureExtension(t *testing.T) {
	assert.Equal(t, "report.xlsx", EnsureExtension("report"))
	assert.Equal(t, "report.xlsx", EnsureExtension("report.xlsx"))
	assert.Equal(t, "report.XLSX", EnsureExtension("report.XLSX"))
}

func TestDatabaseSheetPerTable(t *testing.T) {
	sess := newTestSession(t)
	path, err := Database(sess, filepath.Join(t.TempDir(), "shop"))
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.ElementsMatch(t, []string{"jobs", "customers"}, wb.GetSheetList())

	rows, err := wb.GetRows("customers")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"CustomerID", "Name"}, rows[0])
	assert.Equal(t, []string{"1", "Ada"}, rows[1])
	assert.Equal(t, []string{"2", "Grace"}, rows[2])
}

func TestQueryResultWorkbook(t *testing.T) {
	sess := newTestSession(t)
	cols, rows, err := sess.RunQuery("SELECT Name FROM customers ORDER BY Name")
	require.NoError(t, err)

	path, err := Query(cols, rows, filepath.Join(t.TempDir(), "names.xlsx"))
	require.NoError(t, err)

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	got, err := wb.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Name"}, got[0])
	assert.Equal(t, []string{"Ada"}, got[1])
}
