package frame

import "strings"

var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {},
	"-1.#QNAN": {}, "-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {},
	"<NA>": {}, "N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a cell is blank after trimming or holds one
// of the conventional missing-value tokens used by spreadsheet and
// statistics tools.
func IsMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// NormalizeID trims an identifier value and turns missing-value tokens
// into an empty string.
func NormalizeID(s string) string {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return ""
	}
	return s
}
