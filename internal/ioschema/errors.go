package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Table creation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.TablesGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateTableError creates an error for a dataset table
// that could not be created.
func CreateTableError(dataset string, err error) error {
	msg := `Cannot create table for dataset <em>%s</em>

<em>How to fix:</em>
  1. Check sql_type values of the dataset in variables.csv
  2. Run <em>invdb create --force</em> to rebuild changed tables`

	return &gn.Error{
		Code: errcode.TablesCreateError,
		Msg:  msg,
		Vars: []any{dataset},
		Err:  fmt.Errorf("failed to create table %s: %w", dataset, err),
	}
}

// DropTableError creates an error for a table that could not be
// dropped before recreation.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
