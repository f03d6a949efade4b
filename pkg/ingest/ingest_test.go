package ingest_test

import (
	"errors"
	"testing"

	"github.com/oscaralateras/participant-inventory/pkg/frame"
	"github.com/oscaralateras/participant-inventory/pkg/ingest"
	"github.com/stretchr/testify/assert"
)

// TestReport verifies result aggregation.
func TestReport(t *testing.T) {
	f := frame.New([]string{"participant_id"}, [][]string{{"p1"}})
	r := ingest.Report{Results: []ingest.Result{
		{Dataset: "a", Status: ingest.Loaded, Frame: f},
		{Dataset: "b", Status: ingest.Failed, Err: errors.New("bad")},
		{Dataset: "c", Status: ingest.Skipped},
		{Dataset: "d", Status: ingest.Loaded, Frame: f},
	}}

	frames := r.Frames()
	assert.Len(t, frames, 2)
	assert.Same(t, f, frames["a"])
	assert.NotContains(t, frames, "b")

	assert.Equal(t, []string{"a", "d"}, r.Datasets(ingest.Loaded))
	assert.Equal(t, 1, r.Count(ingest.Failed))
	assert.Equal(t, 1, r.Count(ingest.Skipped))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "loaded", ingest.Loaded.String())
	assert.Equal(t, "skipped", ingest.Skipped.String())
	assert.Equal(t, "failed", ingest.Failed.String())
	assert.Equal(t, "unknown", ingest.Status(42).String())
}
