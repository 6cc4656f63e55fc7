package model

import (
	"context"
	"io"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/langid"
	errorutil "github.com/projectdiscovery/utils/errors"
	"github.com/redis/go-redis/v9"
)

// Options of model loading
type Options struct {
	// Langs restricts loading to these languages (all if empty)
	Langs []string
	// DiskTables keeps every frequency list in a disk backed store
	DiskTables bool
}

// Set is a group of loaded models sharing a lifetime
type Set struct {
	Models  []*langid.Model
	closers []io.Closer
}

// Close releases all backends of the set
func (s *Set) Close() {
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			gologger.Warning().Msgf("failed to close model backend got %v", err)
		}
	}
	s.closers = nil
}

// Languages returns the language codes of the set in registration order
func (s *Set) Languages() []string {
	langs := make([]string, 0, len(s.Models))
	for _, m := range s.Models {
		langs = append(langs, m.Lang)
	}
	return langs
}

// Load reads a single model file
func Load(file File, opts *Options) (*langid.Model, io.Closer, error) {
	switch file.Format {
	case FormatClass:
		cm, err := loadClass(file.Path)
		if err != nil {
			return nil, nil, err
		}
		if cm.Lang != "" && cm.Lang != file.Lang {
			gologger.Warning().Msgf("model %v declares language %v, using %v from its file name", file.Path, cm.Lang, file.Lang)
		}
		return langid.NewModel(file.Lang, cm), nil, nil
	case FormatGzip:
		backend, err := loadGzip(file.Path, opts.DiskTables)
		if err != nil {
			return nil, nil, err
		}
		return langid.NewModel(file.Lang, backend), backend, nil
	default:
		backend, err := loadText(file.Path, opts.DiskTables)
		if err != nil {
			return nil, nil, err
		}
		return langid.NewModel(file.Lang, backend), backend, nil
	}
}

// LoadDir discovers and loads all models in dir
func LoadDir(dir string, opts *Options) (*Set, error) {
	files, err := Discover(dir, opts.Langs)
	if err != nil {
		return nil, err
	}
	set := &Set{}
	for _, file := range files {
		m, closer, err := Load(file, opts)
		if err != nil {
			set.Close()
			return nil, errorutil.NewWithTag("langid", "failed to load model %v got %v", file.Path, err)
		}
		if closer != nil {
			set.closers = append(set.closers, closer)
		}
		gologger.Verbose().Msgf("loaded %v model for %v from %v", file.Format, file.Lang, file.Path)
		set.Models = append(set.Models, m)
	}
	return set, nil
}

// LoadRedis returns the models of opts.Langs stored in redis.
// Languages without a table are skipped with a warning.
func LoadRedis(ctx context.Context, client redis.Cmdable, opts *Options) (*Set, error) {
	if len(opts.Langs) == 0 {
		return nil, errorutil.NewWithTag("langid", "redis models require an explicit list of languages")
	}
	set := &Set{}
	for _, lang := range opts.Langs {
		table := NewRedisTable(client, lang)
		size, err := table.Len(ctx)
		if err != nil {
			return nil, errorutil.NewWithTag("langid", "failed to query redis model %v got %v", lang, err)
		}
		if size == 0 {
			gologger.Warning().Msgf("no redis model found for %v, skipping", lang)
			continue
		}
		gologger.Verbose().Msgf("using redis model for %v (%v entries)", lang, size)
		set.Models = append(set.Models, langid.NewModel(lang, table))
	}
	if len(set.Models) == 0 {
		return nil, errorutil.NewWithTag("langid", "no redis models found for %v", opts.Langs)
	}
	return set, nil
}
