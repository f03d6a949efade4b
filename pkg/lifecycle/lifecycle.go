// Package lifecycle defines the database stages of the inventory:
// table creation, loading canonical datasets and building the summary
// view.
package lifecycle

import (
	"context"

	"github.com/oscaralateras/participant-inventory/pkg/ingest"
)

// SchemaManager creates one participant-keyed table per dataset.
// Creation is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates missing dataset tables. With force, existing dataset
	// tables are dropped first.
	Create(ctx context.Context, force bool) error
}

// Populator loads canonical datasets into their tables.
type Populator interface {
	// Populate replaces table contents with the loaded datasets of the
	// report. A dataset that fails to load does not stop the others; an
	// error is returned when every dataset failed.
	Populate(ctx context.Context, report *ingest.Report) error
}

// Optimizer rebuilds the summary materialized view and refreshes
// planner statistics.
type Optimizer interface {
	// Optimize drops existing materialized views and recreates the
	// configured summary view.
	Optimize(ctx context.Context) error
}
