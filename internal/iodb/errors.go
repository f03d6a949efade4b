package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Database connection failed

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database <em>%s</em> does not exist
  - Wrong credentials

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Create the database if needed:
     <em>createdb -h %s -U %s %s</em>
  3. Review database settings in ~/.config/invdb/config.yaml`

	vars := []any{database, host, port, host, user, database}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s as %s: %w",
			host, port, database, user, err),
	}
}

// NotConnectedError is returned when an operation needs a pool that
// was never opened.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	msg := "Could not verify database state"
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// TableExistsCheckError is returned when checking one table fails.
func TableExistsCheckError(table string, err error) error {
	msg := "Could not check if table <em>%s</em> exists"
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := "Could not drop table <em>%s</em>"
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

// QueryViewsError is returned when materialized views cannot be listed.
func QueryViewsError(err error) error {
	msg := "Could not list materialized views"
	return &gn.Error{
		Code: errcode.DBQueryViewsError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to query materialized views: %w", err),
	}
}

// DropViewError is returned when a materialized view cannot be dropped.
func DropViewError(view string, err error) error {
	msg := "Could not drop materialized view <em>%s</em>"
	return &gn.Error{
		Code: errcode.DBDropViewError,
		Msg:  msg,
		Vars: []any{view},
		Err:  fmt.Errorf("failed to drop materialized view %s: %w", view, err),
	}
}
