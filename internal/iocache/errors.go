package iocache

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/oscaralateras/participant-inventory/pkg/errcode"
)

// CacheWriteError reports a dataset that could not be cached. The
// dataset itself stays loaded.
func CacheWriteError(dataset, path string, err error) error {
	msg := "Cannot write cache of <em>%s</em> to %s"
	return &gn.Error{
		Code: errcode.BulkCacheWriteError,
		Msg:  msg,
		Vars: []any{dataset, path},
		Err:  fmt.Errorf("cache %q to %s: %w", dataset, path, err),
	}
}
