package langid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.Nil(t, GenerateSample(path))

	cfg, err := NewConfig(path)
	require.Nil(t, err)
	require.Equal(t, []string{"eng", "nld", "fra", "deu"}, cfg.Languages)
	require.Equal(t, "nld", cfg.Subcodes["dum"])
	require.NotNil(t, cfg.Confidence)
	require.Equal(t, DefaultThreshold, *cfg.Confidence)
	require.Empty(t, cfg.Fallback)
}

func TestConfigWithoutConfidence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.Nil(t, os.WriteFile(path, []byte("languages: [nld]\nfallback: und\n"), 0644))

	cfg, err := NewConfig(path)
	require.Nil(t, err)
	require.Equal(t, "und", cfg.Fallback)
	require.Nil(t, cfg.Confidence)
}

func TestConfigMissing(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
