package model

import (
	"io"
	"os"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// ClassModel is a frequency model split in a class encoder, mapping every
// known token to a numeric class, and a table of class frequencies.
// A token without a class cannot be encoded and is out of vocabulary.
type ClassModel struct {
	Lang    string            `msgpack:"lang"`
	Classes map[string]uint32 `msgpack:"classes"`
	Counts  map[uint32]uint64 `msgpack:"counts"`
}

// NewClassModel builds a class model from token counts,
// classes are assigned in token order starting at 1
func NewClassModel(lang string, counts map[string]uint64) *ClassModel {
	tokens := make([]string, 0, len(counts))
	for token := range counts {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	cm := &ClassModel{
		Lang:    lang,
		Classes: make(map[string]uint32, len(tokens)),
		Counts:  make(map[uint32]uint64, len(tokens)),
	}
	for i, token := range tokens {
		class := uint32(i + 1)
		cm.Classes[token] = class
		cm.Counts[class] = counts[token]
	}
	return cm
}

// Encode returns the class of token
func (c *ClassModel) Encode(token string) (uint32, bool) {
	class, ok := c.Classes[token]
	return class, ok
}

// Frequency implements langid.Table
func (c *ClassModel) Frequency(token string) (float64, bool) {
	class, ok := c.Encode(token)
	if !ok {
		return 0, false
	}
	count, ok := c.Counts[class]
	if !ok {
		return 0, false
	}
	return float64(count), true
}

// Save encodes the model as msgpack
func (c *ClassModel) Save(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(c)
}

// ReadClassModel decodes a msgpack class model
func ReadClassModel(r io.Reader) (*ClassModel, error) {
	var cm ClassModel
	if err := msgpack.NewDecoder(r).Decode(&cm); err != nil {
		return nil, err
	}
	if cm.Classes == nil {
		cm.Classes = map[string]uint32{}
	}
	if cm.Counts == nil {
		cm.Counts = map[uint32]uint64{}
	}
	return &cm, nil
}

func loadClass(path string) (*ClassModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadClassModel(f)
}
