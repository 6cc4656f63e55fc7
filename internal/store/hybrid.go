package store

import (
	"encoding/binary"
	"math"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hmap/store/hybrid"
)

// HybridBackend keeps a frequency table in a disk backed hmap,
// used for tables that are too large to keep in memory
type HybridBackend struct {
	storage *hybrid.HybridMap
	count   int
}

func NewHybridBackend() (*HybridBackend, error) {
	db, err := hybrid.New(hybrid.DefaultDiskOptions)
	if err != nil {
		return nil, err
	}
	return &HybridBackend{storage: db}, nil
}

func (h *HybridBackend) Upsert(token string, freq float64) error {
	if _, ok := h.storage.Get(token); !ok {
		h.count++
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(freq))
	return h.storage.Set(token, buf[:])
}

func (h *HybridBackend) Frequency(token string) (float64, bool) {
	v, ok := h.storage.Get(token)
	if !ok || len(v) != 8 {
		return 0, false
	}
	return math.Float64frombits(binary.BigEndian.Uint64(v)), true
}

func (h *HybridBackend) Len() int {
	return h.count
}

func (h *HybridBackend) Close() error {
	if err := h.storage.Close(); err != nil {
		gologger.Error().Msgf("store: hybrid: got %v while closing", err)
		return err
	}
	return nil
}
