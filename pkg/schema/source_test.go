package schema_test

import (
	"testing"

	"github.com/oscaralateras/participant-inventory/pkg/errcode"
	"github.com/oscaralateras/participant-inventory/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveSource verifies source validation rules.
func TestResolveSource(t *testing.T) {
	tests := []struct {
		msg      string
		src      schema.SourceConfig
		override string
		want     schema.ResolvedSource
		wantErr  bool
	}{
		{
			msg:  "csv defaults header row to 0",
			src:  schema.SourceConfig{Kind: "CSV", FileName: "a.csv"},
			want: schema.ResolvedSource{Kind: schema.CSV, FileName: "a.csv"},
		},
		{
			msg: "xlsx with sheet and header row",
			src: schema.SourceConfig{Kind: "xlsx", FileName: "a.xlsx",
				SheetName: "Data", HeaderRow: "2"},
			want: schema.ResolvedSource{Kind: schema.XLSX, FileName: "a.xlsx",
				SheetName: "Data", HeaderRow: 2},
		},
		{
			msg:      "sheet override wins",
			src:      schema.SourceConfig{Kind: "xlsx", SheetName: "Data"},
			override: "Other",
			want:     schema.ResolvedSource{Kind: schema.XLSX, SheetName: "Other"},
		},
		{
			msg:     "xlsx without sheet",
			src:     schema.SourceConfig{Kind: "xlsx", FileName: "a.xlsx"},
			wantErr: true,
		},
		{
			msg:     "unsupported kind",
			src:     schema.SourceConfig{Kind: "json"},
			wantErr: true,
		},
		{
			msg:     "missing kind",
			src:     schema.SourceConfig{FileName: "a.csv"},
			wantErr: true,
		},
		{
			msg:     "negative header row",
			src:     schema.SourceConfig{Kind: "csv", HeaderRow: "-1"},
			wantErr: true,
		},
		{
			msg:     "non-integer header row",
			src:     schema.SourceConfig{Kind: "csv", HeaderRow: "first"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			doc := schema.Document{
				Datasets: map[string]schema.DatasetDefinition{
					"ds": {Source: tt.src},
				},
			}
			reg, err := schema.Build(doc, nil)
			require.NoError(t, err)

			src, err := reg.ResolveSource("ds", tt.override)
			if tt.wantErr {
				require.Error(t, err)
				gnErr := gnError(t, err)
				assert.Equal(t, errcode.StandardizeSourceConfigError, gnErr.Code)
				assert.Contains(t, gnErr.Err.Error(), `"ds"`)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, src)
		})
	}
}

// TestResolveSource_UnknownDataset verifies known datasets are listed.
func TestResolveSource_UnknownDataset(t *testing.T) {
	reg, err := schema.Build(testDoc(), nil)
	require.NoError(t, err)

	_, err = reg.ResolveSource("mri", "")
	require.Error(t, err)
	gnErr := gnError(t, err)
	assert.Equal(t, errcode.StandardizeUnknownDatasetError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(),
		"basic_covariates, dti, individual_symptoms")
}
