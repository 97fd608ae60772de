package backup

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/internal/store"
)

// Restore replays a dump file against the session's database. Statements
// end with a semicolon at end of line, so semicolons inside quoted values do
// not split a statement. A statement that fails (typically a duplicate
// key when restoring over live data) is logged and skipped so one collision
// does not abandon the rest of the file. Returns how many statements were
// applied.
func Restore(sess *store.Session, log *zap.Logger, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading backup file: %w", err)
	}

	// Strip comment lines before splitting so a "-- table" header never
	// glues itself to the statement after it.
	var sb strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	applied := 0
	for _, stmt := range strings.Split(sb.String(), ";\n") {
		stmt = strings.TrimSpace(stmt)
		stmt = strings.TrimSuffix(stmt, ";")
		if stmt == "" {
			continue
		}
		if _, err := sess.DB().Exec(stmt); err != nil {
			log.Warn("skipping statement during restore",
				zap.String("statement", truncate(stmt, 120)),
				zap.Error(err))
			continue
		}
		applied++
	}
	return applied, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
