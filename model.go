package langid

import "math"

const (
	// OOVScore is added to the log score for every token missing from a model
	OOVScore = -50.0
	// EmptyScore is the log score of an empty token sequence
	EmptyScore = -999999.0
)

// Table is a read only frequency lookup of a single language.
// Implementations encode the token to their internal representation,
// a token that cannot be encoded or has no entry is reported as not found.
type Table interface {
	Frequency(token string) (float64, bool)
}

// Model is the frequency table of one language
type Model struct {
	Lang  string
	Table Table
}

// NewModel returns a model for lang backed by table
func NewModel(lang string, table Table) *Model {
	return &Model{Lang: lang, Table: table}
}

// Score returns the unigram log likelihood of tokens under the model and
// the fraction of tokens that were found in the model.
//
// Raw scores are not normalized for length and must not be compared across
// inputs of different size, confidence is the length independent measure.
func (m *Model) Score(tokens []string) (logProb float64, confidence float64) {
	if len(tokens) == 0 {
		return EmptyScore, 0
	}
	covered := 0
	for _, token := range tokens {
		freq, ok := m.Table.Frequency(token)
		if !ok || freq <= 0 {
			logProb += OOVScore
			continue
		}
		logProb += math.Log(freq)
		covered++
	}
	return logProb, float64(covered) / float64(len(tokens))
}

// MapTable is an in memory Table
type MapTable map[string]float64

// Frequency implements Table
func (m MapTable) Frequency(token string) (float64, bool) {
	v, ok := m[token]
	return v, ok
}
