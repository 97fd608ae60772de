// Unit tests for the store layer against the sqlite dialect: schema
// inspection, paged reads, cell mutations, keyword search, and the
// auto-increment watermark repair.
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// newTestSession opens a sqlite-backed session in a temp dir and installs
// the shop schema used across these tests.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := Open(types.Config{
		Driver:   types.DriverSQLite,
		DataDir:  t.TempDir(),
		Database: "shopdesk_test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.DB().Exec(`
		CREATE TABLE jobs (
			JobID INTEGER PRIMARY KEY AUTOINCREMENT,
			CustomerID INTEGER,
			Description TEXT,
			status TEXT,
			EndDate TEXT
		);
		CREATE TABLE customers (
			CustomerID INTEGER PRIMARY KEY AUTOINCREMENT,
			Name TEXT,
			Phone TEXT
		);
		CREATE TABLE walkins (Visited TEXT, Reason TEXT);
	`)
	require.NoError(t, err)
	return s
}

func seedJobs(t *testing.T, s *Session, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := s.DB().Exec(
			"INSERT INTO jobs (CustomerID, Description, status) VALUES (?, ?, ?)",
			i, "job description", types.StatusInProgress)
		require.NoError(t, err)
	}
}

func TestPrimaryKey(t *testing.T) {
	s := newTestSession(t)

	pk, err := s.PrimaryKey("jobs")
	require.NoError(t, err)
	assert.Equal(t, "JobID", pk)

	_, err = s.PrimaryKey("walkins")
	assert.ErrorIs(t, err, types.ErrNoPrimaryKey)
}

func TestColumnsDeclaredOrder(t *testing.T) {
	s := newTestSession(t)

	cols, err := s.Columns("jobs")
	require.NoError(t, err)
	require.Len(t, cols, 5)
	assert.Equal(t, "JobID", cols[0].Name)
	assert.Equal(t, 0, cols[0].Ordinal)
	assert.Equal(t, "status", cols[3].Name)
	assert.Equal(t, 3, cols[3].Ordinal)
}

func TestTables(t *testing.T) {
	s := newTestSession(t)

	tables, err := s.Tables()
	require.NoError(t, err)
	assert.Contains(t, tables, "jobs")
	assert.Contains(t, tables, "customers")
	assert.NotContains(t, tables, "sqlite_sequence")
}

func TestFetchPage(t *testing.T) {
	s := newTestSession(t)
	seedJobs(t, s, 5)

	t.Run("orders by first column descending", func(t *testing.T) {
		page, err := s.FetchPage("jobs", 3, 0)
		require.NoError(t, err)
		require.Len(t, page.Rows, 3)
		assert.Equal(t, "5", page.Rows[0][0])
		assert.Equal(t, "4", page.Rows[1][0])
		assert.Equal(t, "3", page.Rows[2][0])
		assert.True(t, page.Full())
	})

	t.Run("offset past the end yields an empty page", func(t *testing.T) {
		page, err := s.FetchPage("jobs", 3, 50)
		require.NoError(t, err)
		assert.Empty(t, page.Rows)
	})

	t.Run("NULL renders as empty string", func(t *testing.T) {
		page, err := s.FetchPage("jobs", 1, 0)
		require.NoError(t, err)
		require.Len(t, page.Rows, 1)
		assert.Equal(t, "", page.Rows[0][4]) // EndDate never set
	})
}

func TestFieldAndStaleRow(t *testing.T) {
	s := newTestSession(t)
	seedJobs(t, s, 2)

	v, err := s.Field("jobs", "Description", "JobID", "1")
	require.NoError(t, err)
	assert.Equal(t, "job description", v)

	_, err = s.Field("jobs", "Description", "JobID", "99")
	assert.ErrorIs(t, err, types.ErrStaleRow)
}

func TestUpdateCell(t *testing.T) {
	s := newTestSession(t)
	seedJobs(t, s, 1)

	require.NoError(t, s.UpdateCell("jobs", "Description", "JobID", "1", "screen swap"))
	v, err := s.Field("jobs", "Description", "JobID", "1")
	require.NoError(t, err)
	assert.Equal(t, "screen swap", v)

	t.Run("empty text commits NULL", func(t *testing.T) {
		require.NoError(t, s.UpdateCell("jobs", "Description", "JobID", "1", ""))
		var isNull int
		err := s.DB().QueryRow("SELECT COUNT(*) FROM jobs WHERE JobID = 1 AND Description IS NULL").Scan(&isNull)
		require.NoError(t, err)
		assert.Equal(t, 1, isNull)
	})
}

func TestRenameKey(t *testing.T) {
	s := newTestSession(t)
	seedJobs(t, s, 3)

	exists, err := s.KeyExists("jobs", "JobID", "2")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.RenameKey("jobs", "JobID", "3", "9"))
	exists, err = s.KeyExists("jobs", "JobID", "9")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = s.KeyExists("jobs", "JobID", "3")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDelete(t *testing.T) {
	s := newTestSession(t)
	seedJobs(t, s, 2)

	require.NoError(t, s.Delete("jobs", "JobID", "1"))
	assert.ErrorIs(t, s.Delete("jobs", "JobID", "1"), types.ErrStaleRow)
}

func TestRepairAutoIncrement(t *testing.T) {
	t.Run("watermark follows max key plus one", func(t *testing.T) {
		s := newTestSession(t)
		seedJobs(t, s, 3)

		// Rename the highest key upward, then repair.
		require.NoError(t, s.RenameKey("jobs", "JobID", "3", "9"))
		require.NoError(t, s.RepairAutoIncrement("jobs", "JobID"))

		next, ok, err := SQLiteDialect{}.AutoIncrement(s.DB(), "jobs")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(10), next)
	})

	t.Run("empty table resets the watermark to 1", func(t *testing.T) {
		s := newTestSession(t)
		seedJobs(t, s, 2)
		require.NoError(t, s.Delete("jobs", "JobID", "1"))
		require.NoError(t, s.Delete("jobs", "JobID", "2"))
		require.NoError(t, s.RepairAutoIncrement("jobs", "JobID"))

		next, ok, err := SQLiteDialect{}.AutoIncrement(s.DB(), "jobs")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(1), next)
	})

	t.Run("non-numeric keys are skipped", func(t *testing.T) {
		s := newTestSession(t)
		_, err := s.DB().Exec("CREATE TABLE parts (Code TEXT PRIMARY KEY, Name TEXT)")
		require.NoError(t, err)
		_, err = s.DB().Exec("INSERT INTO parts (Code, Name) VALUES ('SSD-1', 'drive')")
		require.NoError(t, err)
		assert.NoError(t, s.RepairAutoIncrement("parts", "Code"))
	})
}

func TestSearch(t *testing.T) {
	s := newTestSession(t)
	_, err := s.DB().Exec(`
		INSERT INTO jobs (CustomerID, Description, status) VALUES
			(1, 'hard drive replacement', 'In Progress'),
			(2, 'drive imaging', 'In Progress'),
			(3, 'keyboard swap', 'Completed')`)
	require.NoError(t, err)

	t.Run("all tokens must match", func(t *testing.T) {
		rows, err := s.Search("jobs", []string{"Description"}, "hard drive")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "hard drive replacement", rows[0][2])
	})

	t.Run("a token may match any selected column", func(t *testing.T) {
		rows, err := s.Search("jobs", []string{"Description", "status"}, "drive Completed")
		require.NoError(t, err)
		// "drive" matches Description of rows 1 and 2, but "Completed"
		// matches neither of their columns; no row carries both.
		assert.Empty(t, rows)

		rows, err = s.Search("jobs", []string{"Description", "status"}, "keyboard Completed")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "keyboard swap", rows[0][2])
	})

	t.Run("case-insensitive substring match", func(t *testing.T) {
		rows, err := s.Search("jobs", []string{"Description"}, "HARD")
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("empty input is a user error", func(t *testing.T) {
		_, err := s.Search("jobs", []string{"Description"}, "   ")
		assert.ErrorIs(t, err, types.ErrEmptySearch)
		_, err = s.Search("jobs", nil, "drive")
		assert.ErrorIs(t, err, types.ErrEmptySearch)
	})
}

func TestUpdateStatus(t *testing.T) {
	s := newTestSession(t)
	seedJobs(t, s, 1)

	t.Run("status only when not completed", func(t *testing.T) {
		require.NoError(t, s.UpdateStatus("jobs", "JobID", "1", types.StatusWaitingForParts))
		v, err := s.Field("jobs", "status", "JobID", "1")
		require.NoError(t, err)
		assert.Equal(t, types.StatusWaitingForParts, v)
		end, err := s.Field("jobs", "EndDate", "JobID", "1")
		require.NoError(t, err)
		assert.Empty(t, end)
	})

	t.Run("completed stamps EndDate", func(t *testing.T) {
		require.NoError(t, s.UpdateStatus("jobs", "JobID", "1", types.StatusCompleted))
		end, err := s.Field("jobs", "EndDate", "JobID", "1")
		require.NoError(t, err)
		assert.NotEmpty(t, end)
	})
}

func TestRunQuery(t *testing.T) {
	s := newTestSession(t)
	seedJobs(t, s, 2)

	t.Run("select returns columns and rows", func(t *testing.T) {
		cols, rows, err := s.RunQuery("SELECT JobID, Description FROM jobs ORDER BY JobID")
		require.NoError(t, err)
		assert.Equal(t, []string{"JobID", "Description"}, cols)
		require.Len(t, rows, 2)
		assert.Equal(t, "1", rows[0][0])
	})

	t.Run("exec returns rows affected", func(t *testing.T) {
		cols, rows, err := s.RunQuery("UPDATE jobs SET status = 'Picked Up'")
		require.NoError(t, err)
		assert.Equal(t, []string{"rows_affected"}, cols)
		require.Len(t, rows, 1)
		assert.Equal(t, "2", rows[0][0])
	})
}

func TestQuoteIdent(t *testing.T) {
	q, err := quoteIdent("JobID")
	require.NoError(t, err)
	assert.Equal(t, "`JobID`", q)

	_, err = quoteIdent("jobs; DROP TABLE jobs")
	assert.ErrorIs(t, err, types.ErrBadIdentifier)
	_, err = quoteIdent("")
	assert.ErrorIs(t, err, types.ErrBadIdentifier)
}
