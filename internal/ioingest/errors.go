package ioingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
)

var errNotRegular = errors.New("not a regular file")

// FileMissingError reports a raw file that does not exist or is not a
// regular file.
func FileMissingError(dataset, path string, err error) error {
	msg := "Input file of <em>%s</em> is not available: %s"
	return &gn.Error{
		Code: errcode.StandardizeFileMissingError,
		Msg:  msg,
		Vars: []any{dataset, path},
		Err:  fmt.Errorf("input file %s: %w", path, err),
	}
}

// FileEmptyError reports a zero-byte raw file.
func FileEmptyError(dataset, path string) error {
	msg := "Input file of <em>%s</em> is empty (0 bytes): %s"
	return &gn.Error{
		Code: errcode.StandardizeFileEmptyError,
		Msg:  msg,
		Vars: []any{dataset, path},
		Err:  fmt.Errorf("input file %s is empty (0 bytes)", path),
	}
}

// ReadError wraps a failure to parse a raw file.
func ReadError(dataset, path, kind string, err error) error {
	msg := "Failed to read %s file of <em>%s</em>: %s"
	return &gn.Error{
		Code: errcode.StandardizeReadError,
		Msg:  msg,
		Vars: []any{kind, dataset, path},
		Err:  fmt.Errorf("read %s file %s: %w", kind, path, err),
	}
}

// NoRowsError reports a file that parsed without data rows.
func NoRowsError(dataset, path string) error {
	msg := "No rows found in file of <em>%s</em>: %s"
	return &gn.Error{
		Code: errcode.StandardizeNoRowsError,
		Msg:  msg,
		Vars: []any{dataset, path},
		Err:  fmt.Errorf("no rows found in %s", path),
	}
}

// MissingIDError reports a file without the identifier column or any
// of its aliases.
func MissingIDError(
	dataset, canonical string,
	aliases, columns []string,
) error {
	msg := `Missing participant ID column in <em>%s</em>

<em>Expected:</em> %s or one of [%s]
<em>Found columns:</em> [%s]`

	vars := []any{
		dataset,
		canonical,
		strings.Join(aliases, ", "),
		strings.Join(columns, ", "),
	}
	return &gn.Error{
		Code: errcode.StandardizeMissingIDError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"dataset %q: missing participant ID column, expected %q or one of %q, found %q",
			dataset, canonical, aliases, columns),
	}
}

// NoMappingError reports a dataset without variables in variables.csv.
func NoMappingError(dataset string) error {
	msg := "No column mapping found for dataset <em>%s</em>"
	return &gn.Error{
		Code: errcode.StandardizeNoMappingError,
		Msg:  msg,
		Vars: []any{dataset},
		Err:  fmt.Errorf("no column mapping for dataset %q", dataset),
	}
}

// DuplicateColumnsError reports canonical names produced more than once
// by renaming.
func DuplicateColumnsError(dataset string, dups, original []string) error {
	msg := `Duplicate canonical columns after renaming in <em>%s</em>: %s

<em>Original columns:</em> [%s]`

	vars := []any{
		dataset,
		strings.Join(dups, ", "),
		strings.Join(original, ", "),
	}
	return &gn.Error{
		Code: errcode.StandardizeDuplicateColumnsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"dataset %q: duplicate canonical columns %q, original columns %q",
			dataset, dups, original),
	}
}

// MissingRequiredError lists required canonical columns absent after
// standardization.
func MissingRequiredError(dataset, path string, missing []string) error {
	names := strings.Join(missing, ", ")
	msg := "Dataset <em>%s</em> is missing required column(s): %s"
	return &gn.Error{
		Code: errcode.StandardizeMissingRequiredError,
		Msg:  msg,
		Vars: []any{dataset, names},
		Err: fmt.Errorf("dataset %q (%s): missing required columns: %s",
			dataset, path, names),
	}
}

// DirError reports a bulk import directory that cannot be used.
func DirError(dir string, err error) error {
	msg := "Data directory must be an existing directory: %s"
	return &gn.Error{
		Code: errcode.BulkDirError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("data directory %s: %w", dir, err),
	}
}

// CacheDirError reports a cache directory that cannot be created.
func CacheDirError(dir string, err error) error {
	msg := "Cannot prepare cache directory %s"
	return &gn.Error{
		Code: errcode.BulkCacheDirError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("cache directory %s: %w", dir, err),
	}
}

// ManifestError reports a failure to write the import manifest.
func ManifestError(path string, err error) error {
	msg := "Cannot write import manifest %s"
	return &gn.Error{
		Code: errcode.BulkManifestError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("manifest %s: %w", path, err),
	}
}

// CancelledError creates an error for a cancelled import.
func CancelledError(err error) error {
	msg := "Import was cancelled"
	return &gn.Error{
		Code: errcode.BulkCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("import cancelled: %w", err),
	}
}
