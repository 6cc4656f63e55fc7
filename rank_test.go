package langid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func languages(results []ScoreResult) []string {
	langs := make([]string, 0, len(results))
	for _, r := range results {
		langs = append(langs, r.Language)
	}
	return langs
}

func TestRankOrder(t *testing.T) {
	models := []*Model{
		NewModel("eng", MapTable{"the": 10}),
		NewModel("nld", MapTable{"the": 1000, "de": 500}),
		NewModel("fra", MapTable{}),
	}
	results := Rank([]string{"the"}, models)
	require.Len(t, results, 3, "every model must be ranked")
	require.Equal(t, []string{"nld", "eng", "fra"}, languages(results))
	require.InDelta(t, math.Log(1000), results[0].LogProb, 1e-9)
	require.EqualValues(t, OOVScore, results[2].LogProb)
	require.EqualValues(t, 0, results[2].Confidence)
}

func TestRankStable(t *testing.T) {
	models := []*Model{
		NewModel("b", MapTable{"x": 10}),
		NewModel("a", MapTable{"x": 10}),
		NewModel("c", MapTable{"x": 100}),
		NewModel("d", MapTable{"x": 10}),
	}
	results := Rank([]string{"x"}, models)
	require.Equal(t, []string{"c", "b", "a", "d"}, languages(results))

	// all out of vocabulary keeps registration order
	results = Rank([]string{"unknown"}, models)
	require.Equal(t, []string{"b", "a", "c", "d"}, languages(results))
}

func TestRankEmptyTokens(t *testing.T) {
	results := Rank(nil, []*Model{NewModel("eng", MapTable{"the": 10})})
	require.Equal(t, []ScoreResult{{Language: "eng", LogProb: EmptyScore, Confidence: 0}}, results)
}
