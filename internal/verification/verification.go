package verification

import "strings"

// Normalize prepares a free-text answer for comparison: lower-case plus
// leading/trailing whitespace trim. Idempotent, so it is safe to apply
// both when the owner stores the answer and when a requester submits one.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Evaluate reports whether a submitted answer matches the stored answer.
// correctNormalized must already be in Normalize form.
func Evaluate(submitted, correctNormalized string) bool {
	return Normalize(submitted) == correctNormalized
}
