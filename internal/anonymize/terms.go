// Package anonymize strips personally-identifying and bias-sensitive content
// from resume text before any automated judgment is made.
package anonymize

// RedactionToken is the fixed placeholder substituted for identified
// personal or bias-sensitive spans. It must never re-match any of the
// patterns below, which is what makes redaction idempotent.
const RedactionToken = "[REDACTED]"

// biasSensitiveTerms are replaced wherever they appear as whole words,
// case-insensitively.
var biasSensitiveTerms = []string{
	// gender markers
	"he/him", "she/her", "they/them",
	// age indicators
	"years old", "age:", "DOB:", "date of birth",
	// marital status
	"married", "single", "divorced", "widowed",
	// nationality markers
	"citizenship", "nationality",
	// protected characteristics
	"race", "ethnicity", "religion", "sexual orientation", "disability status",
}
