package db

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect renders the SQL fragments that differ between the backing stores.
// Query templates always use ? placeholders; Rebind turns them into the
// store's native form.
type Dialect interface {
	// Name is "postgres" or "sqlite".
	Name() string

	// Rebind rewrites ? placeholders into the store's native syntax.
	Rebind(query string) string

	// OlderThanDays is true when col is more than days days before the
	// reference time. With explicitRef the fragment takes one ? parameter
	// holding the reference timestamp, otherwise the store clock is used.
	OlderThanDays(col string, days int, explicitRef bool) string

	// WithinDays is true when col lies no more than days days before the
	// reference time. Parameters as for OlderThanDays.
	WithinDays(col string, days int, explicitRef bool) string

	// Greatest returns the larger of two expressions.
	Greatest(a, b string) string

	// DateOf renders a timestamp column as YYYY-MM-DD text.
	DateOf(col string) string

	// GroupConcatDistinct joins the distinct values of expr with commas.
	GroupConcatDistinct(expr string) string
}

// Rebind numbers ? placeholders as $1..$n from left to right. Placeholders
// inside single-quoted literals, double-quoted identifiers, line comments and
// block comments are left alone. A doubled quote inside a literal or
// identifier is treated as an escaped quote.
func Rebind(query string) string {
	if strings.IndexByte(query, '?') < 0 {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'' || c == '"':
			end := skipQuoted(query, i, c)
			b.WriteString(query[i:end])
			i = end - 1
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				end = len(query)
			} else {
				end += i
			}
			b.WriteString(query[i:end])
			i = end - 1
		case c == '/' && i+1 < len(query) && query[i+1] == '*':
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				end = len(query)
			} else {
				end += i + 4
			}
			b.WriteString(query[i:end])
			i = end - 1
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// skipQuoted returns the index just past the quoted run starting at start.
// An unterminated run extends to the end of the query.
func skipQuoted(query string, start int, quote byte) int {
	for i := start + 1; i < len(query); i++ {
		if query[i] != quote {
			continue
		}
		if i+1 < len(query) && query[i+1] == quote {
			i++
			continue
		}
		return i + 1
	}
	return len(query)
}

type postgresDialect struct{}

// Postgres is the PostgreSQL dialect.
var Postgres Dialect = postgresDialect{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Rebind(query string) string { return Rebind(query) }

func (postgresDialect) OlderThanDays(col string, days int, explicitRef bool) string {
	return fmt.Sprintf("%s < %s - INTERVAL '%d days'", col, pgRef(explicitRef), days)
}

func (postgresDialect) WithinDays(col string, days int, explicitRef bool) string {
	return fmt.Sprintf("%s >= %s - INTERVAL '%d days'", col, pgRef(explicitRef), days)
}

func (postgresDialect) Greatest(a, b string) string {
	return fmt.Sprintf("GREATEST(%s, %s)", a, b)
}

func (postgresDialect) DateOf(col string) string {
	return fmt.Sprintf("TO_CHAR(%s AT TIME ZONE 'UTC', 'YYYY-MM-DD')", col)
}

func (postgresDialect) GroupConcatDistinct(expr string) string {
	return fmt.Sprintf("STRING_AGG(DISTINCT %s, ',')", expr)
}

func pgRef(explicit bool) string {
	if explicit {
		return "CAST(? AS TIMESTAMPTZ)"
	}
	return "NOW()"
}

type sqliteDialect struct{}

// SQLite is the SQLite dialect.
var SQLite Dialect = sqliteDialect{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) OlderThanDays(col string, days int, explicitRef bool) string {
	return fmt.Sprintf("julianday(%s) - julianday(%s) > %d", sqliteRef(explicitRef), col, days)
}

func (sqliteDialect) WithinDays(col string, days int, explicitRef bool) string {
	return fmt.Sprintf("julianday(%s) - julianday(%s) <= %d", sqliteRef(explicitRef), col, days)
}

// Greatest uses the multi-argument scalar MAX.
func (sqliteDialect) Greatest(a, b string) string {
	return fmt.Sprintf("MAX(%s, %s)", a, b)
}

func (sqliteDialect) DateOf(col string) string {
	return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", col)
}

func (sqliteDialect) GroupConcatDistinct(expr string) string {
	return fmt.Sprintf("GROUP_CONCAT(DISTINCT %s)", expr)
}

func sqliteRef(explicit bool) string {
	if explicit {
		return "?"
	}
	return "'now'"
}
