package schema

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// TableName returns the PostgreSQL table holding a dataset.
func (r *Registry) TableName(dataset string) string {
	return dataset
}

// TableColumns returns the column names of a dataset table: the
// participant identifier first, then canonical variables.
func (r *Registry) TableColumns(dataset string) []string {
	res := []string{r.idColumn}
	for _, v := range r.columns[dataset] {
		if v != r.idColumn {
			res = append(res, v)
		}
	}
	return res
}

// TableDDL creates a participant-keyed table for a dataset. Identifiers
// are quoted, sql types come from variables.csv.
func (r *Registry) TableDDL(dataset string) (string, error) {
	if !r.HasDataset(dataset) {
		return "", UnknownDatasetError(dataset, r.names)
	}

	cols := r.TableColumns(dataset)
	defs := make([]string, len(cols))
	for i, v := range cols {
		def := fmt.Sprintf("    %s %s", quote(v), r.SQLType(dataset, v))
		if i == 0 {
			def += " PRIMARY KEY"
		}
		defs[i] = def
	}

	res := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)",
		quote(r.TableName(dataset)),
		strings.Join(defs, ",\n"))
	return res, nil
}

func quote(s string) string {
	return pgx.Identifier{s}.Sanitize()
}
