package model

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"

	"github.com/projectdiscovery/langid/internal/store"
)

// loadText maps a frequency list read only into memory and fills a backend with it
func loadText(path string, forceDisk bool) (store.Backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return store.NewMapBackend(0), nil
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer data.Unmap()
	return fillBackend(data, forceDisk)
}

// loadGzip decompresses a gzip frequency list and fills a backend with it
func loadGzip(path string, forceDisk bool) (store.Backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return fillBackend(data, forceDisk)
}

func fillBackend(data []byte, forceDisk bool) (store.Backend, error) {
	backend, err := store.New(bytes.Count(data, []byte{'\n'})+1, forceDisk)
	if err != nil {
		return nil, err
	}
	err = ParseCounts(bytes.NewReader(data), func(token string, count float64) error {
		return backend.Upsert(token, count)
	})
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return backend, nil
}

// ParseCounts reads `token count` lines from r and calls fn for every entry.
// Blank lines, lines with less than two fields and lines with a non numeric
// count are skipped.
func ParseCounts(r io.Reader, fn func(token string, count float64) error) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		count, err := strconv.ParseFloat(parts[len(parts)-1], 64)
		if err != nil || count <= 0 {
			continue
		}
		// n-gram entries keep their words joined by a single space
		token := strings.Join(parts[:len(parts)-1], " ")
		if err := fn(token, count); err != nil {
			return err
		}
	}
	return s.Err()
}

// ReadCounts returns all token counts of a model file
func ReadCounts(file File) (map[string]float64, error) {
	if file.Format == FormatClass {
		cm, err := loadClass(file.Path)
		if err != nil {
			return nil, err
		}
		counts := make(map[string]float64, len(cm.Classes))
		for token := range cm.Classes {
			if v, ok := cm.Frequency(token); ok && v > 0 {
				counts[token] = v
			}
		}
		return counts, nil
	}
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if file.Format == FormatGzip {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	counts := map[string]float64{}
	err = ParseCounts(r, func(token string, count float64) error {
		counts[token] = count
		return nil
	})
	return counts, err
}
