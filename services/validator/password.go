package validator

import (
	"strings"
	"unicode/utf8"
)

// Rule is one password criterion worth a point.
type Rule int

const (
	RuleLength Rule = iota
	RuleUppercase
	RuleLowercase
	RuleDigit
	RuleSymbol
)

// MaxScore is the score of a password meeting every rule.
const MaxScore = 5

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

var ruleMessages = map[Rule]string{
	RuleLength:    "Password must be at least 8 characters long",
	RuleUppercase: "Password must contain at least one uppercase letter",
	RuleLowercase: "Password must contain at least one lowercase letter",
	RuleDigit:     "Password must contain at least one number",
	RuleSymbol:    "Password must contain at least one special character",
}

// Message is the hint shown while the rule is unmet.
func (r Rule) Message() string {
	return ruleMessages[r]
}

// Strength is a password score with the rules it missed.
type Strength struct {
	Score  int
	Failed []Rule
}

// Band is the display label for the score.
func (s Strength) Band() string {
	switch {
	case s.Score <= 2:
		return "Weak"
	case s.Score == 3:
		return "Fair"
	case s.Score == 4:
		return "Good"
	default:
		return "Strong"
	}
}

// Passes reports whether r was satisfied.
func (s Strength) Passes(r Rule) bool {
	for _, f := range s.Failed {
		if f == r {
			return false
		}
	}
	return true
}

// PasswordStrength scores p from 0 to MaxScore.
func PasswordStrength(p string) Strength {
	var upper, lower, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	checks := []struct {
		rule Rule
		ok   bool
	}{
		{RuleLength, utf8.RuneCountInString(p) >= 8},
		{RuleUppercase, upper},
		{RuleLowercase, lower},
		{RuleDigit, digit},
		{RuleSymbol, symbol},
	}

	var s Strength
	for _, c := range checks {
		if c.ok {
			s.Score++
		} else {
			s.Failed = append(s.Failed, c.rule)
		}
	}
	return s
}
