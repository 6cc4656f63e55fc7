package langid

// Punctuation is a set of single byte delimiters used to split text into tokens
type Punctuation [256]bool

// NewPunctuation returns a delimiter set made of the given characters.
// Only ASCII characters are supported, anything else is ignored.
func NewPunctuation(chars string) Punctuation {
	var p Punctuation
	for i := 0; i < len(chars); i++ {
		if chars[i] < 0x80 {
			p[chars[i]] = true
		}
	}
	return p
}

const (
	basePunctChars     = " .,:;@/\\'\"()[]{}"
	extendedPunctChars = basePunctChars + "_?!#%"
)

var (
	// BasePunctuation splits on whitespace, brackets, quotes and the usual separators
	BasePunctuation = NewPunctuation(basePunctChars)
	// ExtendedPunctuation additionally splits on `_ ? ! # %`
	ExtendedPunctuation = NewPunctuation(extendedPunctChars)
)

// IsDelimiter reports whether c splits tokens
func (p *Punctuation) IsDelimiter(c byte) bool {
	return p[c]
}

// Tokenize splits text into maximal runs of non delimiter characters.
// Consecutive delimiters never produce empty tokens.
//
// Example:
//
//	Tokenize("hello, world!", &BasePunctuation)     → ["hello", "world!"]
//	Tokenize("hello, world!", &ExtendedPunctuation) → ["hello", "world"]
func Tokenize(text string, punct *Punctuation) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(text); i++ {
		// delimiters are ASCII so a multibyte rune is never split here
		if punct.IsDelimiter(text[i]) {
			if start >= 0 {
				tokens = append(tokens, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return tokens
}
