package langid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fill(counts ...interface{}) *Stats {
	s := NewStats()
	for i := 0; i < len(counts); i += 2 {
		for n := 0; n < counts[i+1].(int); n++ {
			s.Add(counts[i].(string))
		}
	}
	return s
}

func TestStatsDominant(t *testing.T) {
	s := fill("en", 7, "fr", 3)
	lang, share := s.Dominant()
	require.Equal(t, "en", lang)
	require.InDelta(t, 0.7, share, 1e-9)
	published, ok := s.Published()
	require.True(t, ok)
	require.Equal(t, "en", published)
	require.Equal(t, 10, s.Total())
	require.Equal(t, 3, s.Count("fr"))
}

func TestStatsBelowShare(t *testing.T) {
	s := fill("en", 6, "fr", 4)
	lang, share := s.Dominant()
	require.Equal(t, "en", lang)
	require.InDelta(t, 0.6, share, 1e-9)
	_, ok := s.Published()
	require.False(t, ok, "60/40 split must not publish a language")
}

func TestStatsBoundaryShare(t *testing.T) {
	// 66 of 100 is exactly the publication share
	s := fill("nld", 66, "eng", 34)
	lang, ok := s.Published()
	require.True(t, ok)
	require.Equal(t, "nld", lang)

	// 2 of 3 is above it
	s = fill("nld", 2, "eng", 1)
	_, ok = s.Published()
	require.True(t, ok)
}

func TestStatsEmpty(t *testing.T) {
	s := NewStats()
	lang, share := s.Dominant()
	require.Equal(t, "", lang)
	require.Zero(t, share)
	_, ok := s.Published()
	require.False(t, ok)
	require.Equal(t, "#DOCUMENT:\t", s.String())
}

func TestStatsTieKeepsFirstSeen(t *testing.T) {
	s := NewStats()
	for _, lang := range []string{"fr", "en", "en", "fr"} {
		s.Add(lang)
	}
	lang, _ := s.Dominant()
	require.Equal(t, "fr", lang)
}

func TestStatsString(t *testing.T) {
	s := fill("fr", 3, "en", 7)
	require.Equal(t, "#DOCUMENT:\ten\t0.7\tfr\t0.3\t", s.String())
}
