package store

import (
	"fmt"
	"regexp"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// identPattern accepts the identifiers the shop schema actually uses.
// Identifiers cannot be bound as parameters, so anything interpolated into a
// statement must pass this check first; values always go through placeholders.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// quoteIdent validates an identifier and wraps it in backticks. Backtick
// quoting is native to MySQL and accepted by SQLite.
func quoteIdent(name string) (string, error) {
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("%w: %q", types.ErrBadIdentifier, name)
	}
	return "`" + name + "`", nil
}

// quoteIdents validates and quotes a list of identifiers.
func quoteIdents(names []string) ([]string, error) {
	out := make([]string, len(names))
	for i, n := range names {
		q, err := quoteIdent(n)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}
