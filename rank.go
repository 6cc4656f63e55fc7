package langid

import "sort"

// ScoreResult is the score of one text unit against one model
type ScoreResult struct {
	Language   string
	LogProb    float64
	Confidence float64
}

// Rank scores tokens against every model and returns one result per model
// sorted by descending log probability. Ties keep registration order.
func Rank(tokens []string, models []*Model) []ScoreResult {
	results := make([]ScoreResult, 0, len(models))
	for _, m := range models {
		logProb, confidence := m.Score(tokens)
		results = append(results, ScoreResult{Language: m.Lang, LogProb: logProb, Confidence: confidence})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].LogProb > results[j].LogProb
	})
	return results
}
