// Package store holds the key value backends of loaded frequency tables.
package store

import "github.com/projectdiscovery/gologger"

// MaxInMemoryEntries is the largest table kept in a go map (default : 5M entries)
var MaxInMemoryEntries = 5_000_000

// Backend is a writable frequency table
type Backend interface {
	// Upsert add/update token frequency
	Upsert(token string, freq float64) error
	// Frequency returns the frequency of token
	Frequency(token string) (float64, bool)
	// Len returns the number of distinct tokens
	Len() int
	// Close releases resources held by the backend
	Close() error
}

// New returns a backend suited for a table of about entries tokens.
// forceDisk selects the disk backed store regardless of size.
func New(entries int, forceDisk bool) (Backend, error) {
	if !forceDisk && entries <= MaxInMemoryEntries {
		return NewMapBackend(entries), nil
	}
	gologger.Verbose().Msgf("using disk backed store for %v entries", entries)
	return NewHybridBackend()
}
