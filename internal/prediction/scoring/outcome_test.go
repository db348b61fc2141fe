package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOutcome(t *testing.T) {
	tests := []struct {
		name     string
		local    int
		visitor  int
		expected Outcome
	}{
		{name: "local win", local: 3, visitor: 1, expected: OutcomeLocalWin},
		{name: "visitor win", local: 0, visitor: 2, expected: OutcomeVisitorWin},
		{name: "goalless tie", local: 0, visitor: 0, expected: OutcomeTie},
		{name: "scoring tie", local: 2, visitor: 2, expected: OutcomeTie},
		{name: "one goal margin", local: 1, visitor: 0, expected: OutcomeLocalWin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveOutcome(tt.local, tt.visitor))
		})
	}
}

func TestResolveOutcome_AllSmallPairs(t *testing.T) {
	for a := 0; a <= 9; a++ {
		for b := 0; b <= 9; b++ {
			got := ResolveOutcome(a, b)
			assert.Equal(t, a > b, got == OutcomeLocalWin, "pair %d-%d", a, b)
			assert.Equal(t, a < b, got == OutcomeVisitorWin, "pair %d-%d", a, b)
			assert.Equal(t, a == b, got == OutcomeTie, "pair %d-%d", a, b)
		}
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "local_win", OutcomeLocalWin.String())
	assert.Equal(t, "visitor_win", OutcomeVisitorWin.String())
	assert.Equal(t, "tie", OutcomeTie.String())
}
