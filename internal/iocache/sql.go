package iocache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/oscaralateras/participant-inventory/pkg/frame"

	_ "github.com/marcboeker/go-duckdb/v2"
	_ "modernc.org/sqlite"
)

type parquetWriter struct {
	dir string
}

func (w *parquetWriter) Format() string { return "parquet" }

// Write loads the frame into an in-memory DuckDB table and exports it
// with COPY.
func (w *parquetWriter) Write(
	ctx context.Context,
	dataset string,
	f *frame.Frame,
) (string, error) {
	path := Path(w.dir, dataset, w.Format())

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return "", CacheWriteError(dataset, path, err)
	}
	defer db.Close()

	if err = fillTable(ctx, db, dataset, "VARCHAR", f); err != nil {
		return "", CacheWriteError(dataset, path, err)
	}

	q := fmt.Sprintf("COPY %s TO '%s' (FORMAT PARQUET)",
		quote(dataset), strings.ReplaceAll(path, "'", "''"))
	if _, err = db.ExecContext(ctx, q); err != nil {
		return "", CacheWriteError(dataset, path, err)
	}
	return path, nil
}

type sqliteWriter struct {
	dir string
}

func (w *sqliteWriter) Format() string { return "sqlite" }

// Write replaces the SQLite file of the dataset with one table named
// after the dataset.
func (w *sqliteWriter) Write(
	ctx context.Context,
	dataset string,
	f *frame.Frame,
) (string, error) {
	path := Path(w.dir, dataset, w.Format())
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", CacheWriteError(dataset, path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return "", CacheWriteError(dataset, path, err)
	}
	defer db.Close()

	if err = fillTable(ctx, db, dataset, "TEXT", f); err != nil {
		return "", CacheWriteError(dataset, path, err)
	}
	return path, nil
}

func fillTable(
	ctx context.Context,
	db *sql.DB,
	table, colType string,
	f *frame.Frame,
) error {
	cols := f.Columns()
	defs := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, v := range cols {
		defs[i] = quote(v) + " " + colType
		marks[i] = "?"
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)",
		quote(table), strings.Join(defs, ", "))
	if _, err := db.ExecContext(ctx, create); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		quote(table), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range f.Rows() {
		if _, err = stmt.ExecContext(ctx, nullable(row)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
