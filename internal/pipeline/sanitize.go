package pipeline

import (
	"regexp"
	"strings"
)

var (
	labelPrefixRe = regexp.MustCompile(`(?i)^(expression|result|answer)\s*[:=]\s*`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
	strayCharRe   = regexp.MustCompile(`[^0-9.+\-*/()\s]`)
	charsetRe     = regexp.MustCompile(`^[0-9.+\-*/()\s]*$`)
	digitRe       = regexp.MustCompile(`[0-9]`)
	operatorRe    = regexp.MustCompile(`[+\-*/]`)
	doubleOpRe    = regexp.MustCompile(`[+\-*/]{2}`)
)

// normalizeTranscript cleans up raw model output: trims, drops a leading
// "expression:" / "result:" / "answer:" label if the model added one, and
// collapses whitespace runs.
func normalizeTranscript(s string) string {
	s = strings.TrimSpace(s)
	s = labelPrefixRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// looksLikeExpression requires at least one digit and one operator.
func looksLikeExpression(s string) bool {
	return digitRe.MatchString(s) && operatorRe.MatchString(s)
}

// Sanitize strips every character outside the expression charset
// [0-9.+\-*/()\s]. Guards against stray transcription artifacts such as "="
// signs or letters. Idempotent.
func Sanitize(s string) string {
	return strings.TrimSpace(strayCharRe.ReplaceAllString(s, ""))
}
