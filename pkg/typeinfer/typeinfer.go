// Package typeinfer assigns sql_type values to variables with an ordered
// list of rules. Rules are evaluated top to bottom and the first match
// wins; TEXT is the fallback.
package typeinfer

import (
	"slices"
	"strings"

	"github.com/oscaralateras/participant-inventory/pkg/schema"
)

// Rule maps a predicate over a variable and its dataset to a sql type.
type Rule struct {
	// Name identifies the rule in logs and reports.
	Name string
	// Match decides whether the rule applies.
	Match func(variable, dataset string) bool
	// Type is the sql type assigned on match.
	Type string
}

// Infer returns the type of the first matching rule and its name.
// Without a match it returns TEXT and an empty name.
func Infer(rules []Rule, variable, dataset string) (string, string) {
	v := strings.ToLower(variable)
	for _, r := range rules {
		if r.Match(v, dataset) {
			return r.Type, r.Name
		}
	}
	return schema.TypeText, ""
}

// Exact matches a variable name exactly.
func Exact(name string) func(string, string) bool {
	name = strings.ToLower(name)
	return func(v, _ string) bool {
		return v == name
	}
}

// Contains matches variables containing any of the substrings.
func Contains(subs ...string) func(string, string) bool {
	return func(v, _ string) bool {
		for _, s := range subs {
			if strings.Contains(v, s) {
				return true
			}
		}
		return false
	}
}

// InDataset matches every variable of the given datasets.
func InDataset(datasets ...string) func(string, string) bool {
	return func(_, ds string) bool {
		return slices.Contains(datasets, ds)
	}
}

// DefaultRules returns the inventory's type policy. Order matters: for
// example age_of_onset is an INTEGER because the "age" rule comes before
// the float rule.
func DefaultRules(participantID string) []Rule {
	return []Rule{
		{
			Name:  "participant id",
			Match: Exact(participantID),
			Type:  schema.TypeText,
		},
		{
			Name: "categorical",
			Match: Contains("dx", "sex", "site_id", "method", "category",
				"scale", "ethnicity", "race"),
			Type: schema.TypeText,
		},
		{
			Name: "counts and scores",
			Match: Contains("age", "episodes", "recur", "ad", "rem", "epi",
				"adcur", "bdi_", "hdrs_", "ids_", "qids_", "madrs_", "cesd_",
				"ctq_", "education_years", "iq"),
			Type: schema.TypeInteger,
		},
		{
			Name: "imaging measures",
			Match: InDataset("dti", "cortical_thickness",
				"cortical_surface_area", "subcortical_volumes"),
			Type: schema.TypeFloat,
		},
		{
			Name: "continuous",
			Match: Contains("bmi", "ses", "severity", "age_of_onset", "icv",
				"surfarea", "thickness"),
			Type: schema.TypeFloat,
		},
	}
}

// Change records a sql_type assigned to one variables.csv record.
type Change struct {
	// Record is the zero-based index of the record.
	Record   int
	Dataset  string
	Variable string
	From     string
	To       string
	Rule     string
}

// Apply assigns sql types to variables.csv records in place. The header
// must contain dataset, variable_name and sql_type. With onlyMissing,
// records with a non-blank sql_type keep it. Apply returns the records
// whose type changed.
func Apply(
	rules []Rule,
	header []string,
	records [][]string,
	onlyMissing bool,
) []Change {
	dsIdx := slices.Index(header, "dataset")
	varIdx := slices.Index(header, "variable_name")
	typeIdx := slices.Index(header, "sql_type")
	if dsIdx < 0 || varIdx < 0 || typeIdx < 0 {
		return nil
	}

	var res []Change
	for i, rec := range records {
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		records[i] = rec

		from := strings.TrimSpace(rec[typeIdx])
		if onlyMissing && from != "" {
			continue
		}
		ds := strings.TrimSpace(rec[dsIdx])
		variable := strings.TrimSpace(rec[varIdx])
		to, rule := Infer(rules, variable, ds)
		if strings.EqualFold(from, to) {
			continue
		}
		rec[typeIdx] = to
		res = append(res, Change{
			Record:   i,
			Dataset:  ds,
			Variable: variable,
			From:     from,
			To:       to,
			Rule:     rule,
		})
	}
	return res
}
