// Package sqlxrepos implements the repositories on top of PostgreSQL with sqlx.
package sqlxrepos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core"
)

const uniqueViolation = "23505"

// base holds the default executor of a repository.
type base struct {
	exec core.DBExecutor
}

func (b base) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return b.exec
}

// selectRows runs a "?" query and scans every row into dest, a pointer to a slice of structs.
func (b base) selectRows(ctx context.Context, exe core.DBExecutor, dest interface{}, query string, args ...interface{}) error {
	rows, err := exe.QueryContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	return sqlx.StructScan(rows, dest)
}

// namedExec runs a ":name" statement bound to arg and returns the number of affected rows.
func (b base) namedExec(ctx context.Context, exe core.DBExecutor, query string, arg interface{}) (int64, error) {
	q, args, err := sqlx.Named(query, arg)
	if err != nil {
		return 0, errors.Wrap(err, "binding named query")
	}
	res, err := exe.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, q), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// orderBy renders a whitelisted ORDER BY clause. Unknown fields are skipped.
func orderBy(ordering []core.DBOrdering, allowed []string, fallback string) string {
	clauses := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		if core.ContainsString(allowed, ord.Field) {
			clauses = append(clauses, ord.String())
		}
	}
	if len(clauses) == 0 {
		return " ORDER BY " + fallback
	}
	return " ORDER BY " + strings.Join(clauses, ", ")
}
