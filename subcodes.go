package langid

import (
	"os"
	"strings"

	errorutil "github.com/projectdiscovery/utils/errors"
	"gopkg.in/yaml.v3"
)

// SubcodeMap maps a fine grained language or variant code to its main language
type SubcodeMap map[string]string

// ParseSubcodes parses a comma separated list of `code:main` tuples
// ex: `dum:nld,nld-vnn:nld`
func ParseSubcodes(value string) (SubcodeMap, error) {
	subcodes := SubcodeMap{}
	if strings.TrimSpace(value) == "" {
		return subcodes, nil
	}
	for _, part := range strings.Split(value, ",") {
		fields := strings.Split(part, ":")
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			return nil, errorutil.NewWithTag("langid", "invalid tuple in subcodes: '%v'", part)
		}
		subcodes[fields[0]] = fields[1]
	}
	return subcodes, nil
}

// LoadSubcodes reads a yaml mapping of `code: main` entries
func LoadSubcodes(filePath string) (SubcodeMap, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	subcodes := SubcodeMap{}
	if err := yaml.Unmarshal(bin, &subcodes); err != nil {
		return nil, errorutil.NewWithTag("langid", "invalid subcodes file %v: %v", filePath, err)
	}
	for k, v := range subcodes {
		if k == "" || v == "" {
			return nil, errorutil.NewWithTag("langid", "invalid tuple in subcodes file %v: '%v:%v'", filePath, k, v)
		}
	}
	return subcodes, nil
}

// Resolve returns the canonical code of code and the variant it was mapped from.
// Unmapped codes are returned unchanged as both canonical and variant.
func (s SubcodeMap) Resolve(code string) (canonical string, variant string) {
	if main, ok := s[code]; ok {
		return main, code
	}
	return code, code
}

// Merge adds all tuples of other, entries of other win
func (s SubcodeMap) Merge(other SubcodeMap) {
	for k, v := range other {
		s[k] = v
	}
}
