// Package model finds and loads per language frequency models.
package model

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
)

// Format of a model file
type Format int

const (
	// FormatText is a `token count` per line frequency list
	FormatText Format = iota
	// FormatGzip is a gzip compressed FormatText file
	FormatGzip
	// FormatClass is a msgpack class model
	FormatClass
)

// model file extensions, longest first
var extensions = []struct {
	suffix string
	format Format
}{
	{".freq.gz", FormatGzip},
	{".freq", FormatText},
	{".model", FormatClass},
}

func (f Format) String() string {
	switch f {
	case FormatGzip:
		return "gzip"
	case FormatClass:
		return "class"
	default:
		return "text"
	}
}

// File is a model file found on disk
type File struct {
	Lang   string
	Path   string
	Format Format
}

// Discover returns all model files directly inside dir sorted by name.
// The language code of a file is its name up to the first dot.
// When langs is not empty only those languages are returned.
func Discover(dir string, langs []string) ([]File, error) {
	if !fileutil.FolderExists(dir) {
		return nil, errorutil.NewWithTag("langid", "no data files found in '%v'", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errorutil.NewWithTag("langid", "no data files found in '%v': %v", dir, err)
	}
	allowed := map[string]struct{}{}
	for _, lang := range langs {
		allowed[lang] = struct{}{}
	}
	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		format, ok := formatOf(name)
		if !ok {
			continue
		}
		lang := strings.SplitN(name, ".", 2)[0]
		if lang == "" {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[lang]; !ok {
				continue
			}
		}
		files = append(files, File{Lang: lang, Path: filepath.Join(dir, name), Format: format})
	}
	if len(files) == 0 {
		return nil, errorutil.NewWithTag("langid", "no data files found in '%v'", dir)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func formatOf(name string) (Format, bool) {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext.suffix) && len(name) > len(ext.suffix) {
			return ext.format, true
		}
	}
	return 0, false
}
