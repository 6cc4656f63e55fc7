package langid

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is a reusable annotation profile
type Config struct {
	// Languages restricts the models that are loaded
	Languages []string `yaml:"languages"`
	// Subcodes maps variant codes to their main language
	Subcodes SubcodeMap `yaml:"subcodes"`
	// Fallback language for units below the confidence threshold
	Fallback string `yaml:"fallback"`
	// Confidence threshold, nil keeps the default
	Confidence *float64 `yaml:"confidence"`
}

// NewConfig reads config from file
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err = yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GenerateSample creates a sample yaml profile
func GenerateSample(filePath string) error {
	threshold := DefaultThreshold
	cfg := Config{
		Languages:  []string{"eng", "nld", "fra", "deu"},
		Subcodes:   SubcodeMap{"dum": "nld", "nld-vnn": "nld"},
		Confidence: &threshold,
	}
	bin, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}
