package langid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModelScore(t *testing.T) {
	m := NewModel("deu", MapTable{"de": 100, "zero": 0})

	testcases := []struct {
		name       string
		tokens     []string
		logProb    float64
		confidence float64
	}{
		{name: "all known", tokens: []string{"de", "de"}, logProb: 2 * math.Log(100), confidence: 1},
		{name: "unknown", tokens: []string{"xx"}, logProb: OOVScore, confidence: 0},
		{name: "mixed", tokens: []string{"de", "xx"}, logProb: math.Log(100) + OOVScore, confidence: 0.5},
		{name: "zero frequency is unknown", tokens: []string{"zero"}, logProb: OOVScore, confidence: 0},
		{name: "empty", tokens: nil, logProb: EmptyScore, confidence: 0},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			logProb, confidence := m.Score(tc.tokens)
			require.InDelta(t, tc.logProb, logProb, 1e-9)
			require.InDelta(t, tc.confidence, confidence, 1e-9)
		})
	}
}

func TestModelScoreConstants(t *testing.T) {
	require.EqualValues(t, -50, OOVScore)
	require.EqualValues(t, -999999, EmptyScore)
}
