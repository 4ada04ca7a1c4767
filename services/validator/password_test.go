package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength_Scenarios(t *testing.T) {
	tests := []struct {
		password string
		score    int
		band     string
		failed   []Rule
	}{
		{"", 0, "Weak", []Rule{RuleLength, RuleUppercase, RuleLowercase, RuleDigit, RuleSymbol}},
		{"abc", 1, "Weak", []Rule{RuleLength, RuleUppercase, RuleDigit, RuleSymbol}},
		{"abc12345", 3, "Fair", []Rule{RuleUppercase, RuleSymbol}},
		{"Abc12345", 4, "Good", []Rule{RuleSymbol}},
		{"Abc123!@", 5, "Strong", nil},
		{`a"b:c{d}`, 3, "Fair", []Rule{RuleUppercase, RuleDigit}},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			s := PasswordStrength(tt.password)
			assert.Equal(t, tt.score, s.Score)
			assert.Equal(t, tt.band, s.Band())
			assert.Equal(t, tt.failed, s.Failed)
		})
	}
}

func TestPasswordStrength_SymbolSet(t *testing.T) {
	for _, r := range passwordSymbols {
		assert.True(t, PasswordStrength(string(r)).Passes(RuleSymbol), "symbol %q", r)
	}
	for _, r := range "-_+=~`[];'/\\ " {
		assert.False(t, PasswordStrength(string(r)).Passes(RuleSymbol), "non-symbol %q", r)
	}
}

func TestPasswordStrength_Deterministic(t *testing.T) {
	for _, p := range []string{"", "abc", "Abc123!@", "пароль123"} {
		assert.Equal(t, PasswordStrength(p), PasswordStrength(p))
	}
}

// Adding a character from a class the password lacks never lowers the score.
func TestPasswordStrength_Monotonic(t *testing.T) {
	seeds := []string{"", "a", "A", "1", "!", "abcdefg", "ABCDEFGH", "abc12345", "Abc123!@", "🌾🌾"}
	additions := []string{"A", "a", "7", "#", "xxxxxxxx"}

	for _, seed := range seeds {
		base := PasswordStrength(seed).Score
		for _, add := range additions {
			for _, candidate := range []string{seed + add, add + seed} {
				assert.GreaterOrEqual(t, PasswordStrength(candidate).Score, base,
					"%q -> %q", seed, candidate)
			}
		}
	}
}

func TestPasswordStrength_GateBoundary(t *testing.T) {
	assert.GreaterOrEqual(t, PasswordStrength("abc12345").Score, MinStepScore)
	assert.Less(t, PasswordStrength("abc").Score, MinStepScore)
}

func TestRuleMessage(t *testing.T) {
	assert.Equal(t, "Password must contain at least one uppercase letter", RuleUppercase.Message())
}
