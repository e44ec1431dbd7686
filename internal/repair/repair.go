// Package repair provides a deterministic fix pass for malformed JSON
// returned by the text-generation service.
package repair

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	commentPattern      = regexp.MustCompile(`(?s)//.*?\n|/\*.*?\*/`)
	bareKeyPattern      = regexp.MustCompile(`([{,]\s*)([a-zA-Z0-9_]+)(\s*:)`)
	trailingObjPattern  = regexp.MustCompile(`,\s*}`)
	trailingListPattern = regexp.MustCompile(`,\s*]`)
)

// Repair returns input unchanged when it already parses as JSON. Otherwise
// it applies one deterministic rewrite pass, in order: strip comments, quote
// bare object keys, normalize single quotes to double quotes, drop trailing
// commas, and lower Python-style literals. If the result still does not
// parse, Repair fails with MalformedResponseError; there is no second pass
// and no shape guessing.
func Repair(input string) (string, error) {
	if json.Valid([]byte(input)) {
		return input, nil
	}

	repaired := commentPattern.ReplaceAllString(input, "")
	repaired = bareKeyPattern.ReplaceAllString(repaired, `$1"$2"$3`)
	repaired = strings.ReplaceAll(repaired, "'", `"`)
	repaired = trailingObjPattern.ReplaceAllString(repaired, "}")
	repaired = trailingListPattern.ReplaceAllString(repaired, "]")
	repaired = strings.ReplaceAll(repaired, "True", "true")
	repaired = strings.ReplaceAll(repaired, "False", "false")
	repaired = strings.ReplaceAll(repaired, "None", "null")

	if !json.Valid([]byte(repaired)) {
		return "", &MalformedResponseError{Message: "response is not valid JSON after repair"}
	}
	return repaired, nil
}
