package typeinfer_test

import (
	"testing"

	"github.com/oscaralateras/participant-inventory/pkg/typeinfer"
	"github.com/stretchr/testify/assert"
)

// TestInfer_DefaultRules verifies the default policy including its
// ordering effects.
func TestInfer_DefaultRules(t *testing.T) {
	rules := typeinfer.DefaultRules("participant_id")

	tests := []struct {
		variable, dataset, want, rule string
	}{
		{"participant_id", "dti", "TEXT", "participant id"},
		{"Sex", "basic_covariates", "TEXT", "categorical"},
		{"dx_status", "basic_covariates", "TEXT", "categorical"},
		{"age", "basic_covariates", "INTEGER", "counts and scores"},
		{"age_of_onset", "clinical", "INTEGER", "counts and scores"},
		{"hdrs_total", "individual_symptoms", "INTEGER", "counts and scores"},
		{"fa_cc", "dti", "FLOAT", "imaging measures"},
		{"l_bankssts_thick", "cortical_thickness", "FLOAT", "imaging measures"},
		{"bmi", "basic_covariates", "FLOAT", "continuous"},
		{"notes", "basic_covariates", "TEXT", ""},
	}

	for _, tt := range tests {
		typ, rule := typeinfer.Infer(rules, tt.variable, tt.dataset)
		assert.Equal(t, tt.want, typ, tt.variable)
		assert.Equal(t, tt.rule, rule, tt.variable)
	}
}

// TestInfer_FirstMatchWins verifies rule order decides conflicts.
func TestInfer_FirstMatchWins(t *testing.T) {
	rules := []typeinfer.Rule{
		{Name: "a", Match: typeinfer.Contains("score"), Type: "INTEGER"},
		{Name: "b", Match: typeinfer.Contains("score"), Type: "FLOAT"},
	}
	typ, rule := typeinfer.Infer(rules, "total_score", "x")
	assert.Equal(t, "INTEGER", typ)
	assert.Equal(t, "a", rule)

	typ, rule = typeinfer.Infer(nil, "total_score", "x")
	assert.Equal(t, "TEXT", typ)
	assert.Empty(t, rule)
}

// TestApply verifies records are rewritten in place and only changes
// are reported.
func TestApply(t *testing.T) {
	header := []string{"dataset", "source_column", "variable_name",
		"is_required", "sql_type", "description"}
	records := func() [][]string {
		return [][]string{
			{"basic_covariates", "Age", "age", "yes", "", "Age in years"},
			{"basic_covariates", "Sex", "sex", "yes", "text", ""},
			{"dti", "FA_CC", "fa_cc", "no", "TEXT", ""},
			{"dti", "Notes", "notes", "no"},
		}
	}

	t.Run("all records", func(t *testing.T) {
		recs := records()
		changes := typeinfer.Apply(typeinfer.DefaultRules("participant_id"),
			header, recs, false)

		assert.Len(t, changes, 3)
		assert.Equal(t, typeinfer.Change{
			Record: 0, Dataset: "basic_covariates", Variable: "age",
			From: "", To: "INTEGER", Rule: "counts and scores",
		}, changes[0])
		assert.Equal(t, 2, changes[1].Record)
		assert.Equal(t, "FLOAT", changes[1].To)

		assert.Equal(t, "INTEGER", recs[0][4])
		assert.Equal(t, "Age in years", recs[0][5])
		assert.Equal(t, "text", recs[1][4], "equal type is not rewritten")
		assert.Equal(t, "FLOAT", recs[2][4])
		assert.Len(t, recs[3], 6, "short record is padded")
		assert.Equal(t, "TEXT", recs[3][4])
	})

	t.Run("only missing", func(t *testing.T) {
		recs := records()
		changes := typeinfer.Apply(typeinfer.DefaultRules("participant_id"),
			header, recs, true)

		assert.Len(t, changes, 2)
		assert.Equal(t, "INTEGER", recs[0][4])
		assert.Equal(t, "TEXT", recs[2][4])
		assert.Equal(t, "TEXT", recs[3][4])
	})

	t.Run("bad header", func(t *testing.T) {
		recs := records()
		assert.Nil(t, typeinfer.Apply(nil, []string{"dataset"}, recs, false))
	})
}
