// Package scoring defines the points rule applied to attendance rows.
package scoring

import "strings"

// Points awarded per rule branch.
const (
	injuredPoints  = 0.5
	presencePoints = 1.0
	winnerBonus    = 1.0

	// halfInjuredToken is an alternate injury marker used by the sheet.
	halfInjuredToken = "0.5"
)

// truthyTokens is the fixed set of values the sheet uses for "yes".
var truthyTokens = map[string]struct{}{
	"1":    {},
	"ja":   {},
	"true": {},
	"y":    {},
	"yes":  {},
}

// Truthy reports whether a raw flag value counts as "yes".
// Matching is trimmed and case-insensitive; anything outside the token
// set, including the empty string, is falsy.
func Truthy(v string) bool {
	_, ok := truthyTokens[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Injured reports whether a raw injury value marks the row as injured.
// Besides the truthy tokens the sheet uses the literal "0.5".
func Injured(v string) bool {
	if Truthy(v) {
		return true
	}
	return strings.ToLower(strings.TrimSpace(v)) == halfInjuredToken
}

// Points computes the score for one row. Precedence, first match wins:
// injured -> 0.5 regardless of the other flags; present -> 1, plus 1
// if also winner; otherwise 0.
func Points(present, winner, injured string) float64 {
	if Injured(injured) {
		return injuredPoints
	}
	if Truthy(present) {
		pts := presencePoints
		if Truthy(winner) {
			pts += winnerBonus
		}
		return pts
	}
	return 0
}
