package anonymize

import (
	"regexp"
	"strings"
	"unicode"

	prose "github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// Anonymizer extracts identity data from resume text and redacts it.
// Redaction is substitution-only: every identified span is replaced with
// RedactionToken, nothing is deleted outright.
type Anonymizer struct {
	log          *zap.Logger
	biasPatterns []*regexp.Regexp
}

// NewAnonymizer creates an Anonymizer with the fixed bias-sensitive term list
func NewAnonymizer(log *zap.Logger) *Anonymizer {
	patterns := make([]*regexp.Regexp, 0, len(biasSensitiveTerms))
	for _, term := range biasSensitiveTerms {
		patterns = append(patterns, wholeWordPattern(term))
	}
	return &Anonymizer{log: logger.NopIfNil(log), biasPatterns: patterns}
}

// wholeWordPattern builds a case-insensitive pattern for term anchored at
// word boundaries. Boundaries are only applied next to word characters, so
// terms like "age:" still match.
func wholeWordPattern(term string) *regexp.Regexp {
	expr := regexp.QuoteMeta(term)
	runes := []rune(term)
	if isWordRune(runes[0]) {
		expr = `\b` + expr
	}
	if isWordRune(runes[len(runes)-1]) {
		expr += `\b`
	}
	return regexp.MustCompile(`(?i)` + expr)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Identify extracts the candidate's name, email, and phone number from
// resume text. Each field is best-effort: the first match wins and a field
// nothing matched stays nil. Identify never fails; an NLP failure only
// disables name extraction.
func (a *Anonymizer) Identify(text string) types.Identity {
	var identity types.Identity

	if name := a.extractName(text); name != "" {
		identity.Name = &name
	}
	if email := emailPattern.FindString(text); email != "" {
		identity.Email = &email
	}
	if phone := strings.TrimSpace(phonePattern.FindString(text)); phone != "" {
		identity.Phone = &phone
	}

	a.log.Debug("identity extraction finished",
		zap.Bool("name", identity.Name != nil),
		zap.Bool("email", identity.Email != nil),
		zap.Bool("phone", identity.Phone != nil))
	return identity
}

// extractName looks for two consecutive proper-noun tokens, falling back to
// the first PERSON named entity.
func (a *Anonymizer) extractName(text string) string {
	doc, err := prose.NewDocument(text)
	if err != nil {
		a.log.Warn("nlp document build failed, skipping name extraction", zap.Error(err))
		return ""
	}

	tokens := doc.Tokens()
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Tag == "NNP" && tokens[i+1].Tag == "NNP" {
			return tokens[i].Text + " " + tokens[i+1].Text
		}
	}

	for _, ent := range doc.Entities() {
		if ent.Label == "PERSON" {
			return ent.Text
		}
	}
	return ""
}

// Redact replaces every occurrence of the extracted identity fields, every
// bias-sensitive term, and every PERSON entity span with RedactionToken.
// Redact never fails: if the NLP pass breaks, the pattern-substituted text
// is returned and a warning is logged. Running Redact on its own output is
// a no-op because the token matches none of the patterns.
func (a *Anonymizer) Redact(text string, identity types.Identity) string {
	working := text

	for _, field := range []*string{identity.Name, identity.Email, identity.Phone} {
		if field == nil || *field == "" {
			continue
		}
		pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(*field))
		working = pattern.ReplaceAllString(working, RedactionToken)
	}

	for _, pattern := range a.biasPatterns {
		working = pattern.ReplaceAllString(working, RedactionToken)
	}

	working = a.redactPersonEntities(working)

	a.log.Debug("redaction finished",
		zap.Int("chars_in", len(text)),
		zap.Int("chars_out", len(working)))
	return working
}

// redactPersonEntities substitutes spans the NER model tags as PERSON.
// Entity spans already replaced by the token are not re-tagged, keeping the
// pass idempotent.
func (a *Anonymizer) redactPersonEntities(text string) string {
	doc, err := prose.NewDocument(text)
	if err != nil {
		a.log.Warn("nlp document build failed, keeping pattern-substituted text", zap.Error(err))
		return text
	}

	working := text
	for _, ent := range doc.Entities() {
		if ent.Label != "PERSON" || strings.TrimSpace(ent.Text) == "" {
			continue
		}
		working = strings.ReplaceAll(working, ent.Text, RedactionToken)
	}
	return working
}
