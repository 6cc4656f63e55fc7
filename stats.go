package langid

import (
	"sort"
	"strconv"
	"strings"
)

// DominantShare is the minimum share the most frequent language needs
// to be published as the language of a whole input
const DominantShare = 0.66

// Stats counts the top ranked language of every unit of a single input
type Stats struct {
	counts map[string]int
	order  []string // first seen order, used to break ties
	total  int
}

// NewStats returns empty stats
func NewStats() *Stats {
	return &Stats{counts: map[string]int{}}
}

// Add counts one unit for lang
func (s *Stats) Add(lang string) {
	if _, ok := s.counts[lang]; !ok {
		s.order = append(s.order, lang)
	}
	s.counts[lang]++
	s.total++
}

// Total returns the number of counted units
func (s *Stats) Total() int {
	return s.total
}

// Count returns the number of units counted for lang
func (s *Stats) Count(lang string) int {
	return s.counts[lang]
}

// LanguageShare is the share of units of a language
type LanguageShare struct {
	Language string
	Count    int
	Share    float64
}

// Shares returns all languages sorted by descending count
func (s *Stats) Shares() []LanguageShare {
	shares := make([]LanguageShare, 0, len(s.order))
	for _, lang := range s.order {
		count := s.counts[lang]
		shares = append(shares, LanguageShare{Language: lang, Count: count, Share: float64(count) / float64(s.total)})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	return shares
}

// Dominant returns the most frequent language and its share,
// or an empty code when nothing was counted
func (s *Stats) Dominant() (string, float64) {
	shares := s.Shares()
	if len(shares) == 0 {
		return "", 0
	}
	return shares[0].Language, shares[0].Share
}

// Published returns the dominant language if its share reaches DominantShare
func (s *Stats) Published() (string, bool) {
	lang, share := s.Dominant()
	if lang == "" || share < DominantShare {
		return "", false
	}
	return lang, true
}

// String formats stats as the `#DOCUMENT:` summary line (without newline)
func (s *Stats) String() string {
	var sb strings.Builder
	sb.WriteString("#DOCUMENT:\t")
	for _, share := range s.Shares() {
		sb.WriteString(share.Language)
		sb.WriteString("\t")
		sb.WriteString(FormatNumber(share.Share))
		sb.WriteString("\t")
	}
	return sb.String()
}

// FormatNumber formats v with 6 significant digits
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
