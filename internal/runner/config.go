package runner

import (
	"path/filepath"
	"strconv"

	"github.com/projectdiscovery/langid"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
)

// applyProfile fills options from a langid profile.
// Values given on the command line take precedence over the profile.
func (o *Options) applyProfile(path string) error {
	if !fileutil.FileExists(path) {
		return errorutil.NewWithTag("langid", "profile %v does not exist", path)
	}
	cfg, err := langid.NewConfig(path)
	if err != nil {
		return errorutil.NewWithTag("langid", "failed to read profile %v got %v", path, err)
	}
	if len(o.Langs) == 0 && len(cfg.Languages) > 0 {
		o.Langs = cfg.Languages
	}
	if o.Fallback == "" {
		o.Fallback = cfg.Fallback
	}
	if cfg.Confidence != nil && o.Confidence == "" {
		o.Confidence = strconv.FormatFloat(*cfg.Confidence, 'f', -1, 64)
	}
	if len(cfg.Subcodes) > 0 {
		if o.subcodes == nil {
			o.subcodes = langid.SubcodeMap{}
		}
		o.subcodes.Merge(cfg.Subcodes)
	}
	return nil
}

// generateProfile writes a sample profile to path, an existing file is kept
func generateProfile(path string) error {
	if fileutil.FileExists(path) {
		return errorutil.NewWithTag("langid", "profile %v already exists", path)
	}
	if dir := filepath.Dir(path); !fileutil.FolderExists(dir) {
		if err := fileutil.CreateFolder(dir); err != nil {
			return errorutil.NewWithTag("langid", "failed to create %v got %v", dir, err)
		}
	}
	if err := langid.GenerateSample(path); err != nil {
		return errorutil.NewWithTag("langid", "failed to write profile %v got %v", path, err)
	}
	return nil
}
