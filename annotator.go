package langid

import (
	"bufio"
	"io"
	"strings"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// maxLineSize is the longest plain text line that can be scored
const maxLineSize = 16 * 1024 * 1024

// Unit is one text bearing segment of a document
type Unit interface {
	// ID identifies the unit in diagnostics
	ID() string
	// Text returns the text of the unit, false if the unit has none
	Text() (string, bool)
	// Annotate attaches a language label to the unit
	Annotate(d Decision) error
}

// Document is an input made of ordered text units
type Document interface {
	Units() []Unit
	// SetLanguage records the language of the whole document
	SetLanguage(code string)
}

// Options of the annotator
type Options struct {
	// Models to score against, in registration order
	Models []*Model
	// Policy used to turn rankings into labels
	Policy Policy
	// Subcodes maps variant codes to their main language
	Subcodes SubcodeMap
	// Format of plain text result lines (DefaultFormat if empty)
	Format string
	// Debug prints the score of every model for every unit
	Debug bool
}

// Annotator identifies the language of text units and annotates them
type Annotator struct {
	Options *Options
}

// New creates and returns a new annotator instance from options
func New(opts *Options) (*Annotator, error) {
	if len(opts.Models) == 0 {
		return nil, errorutil.NewWithTag("langid", "no language models provided")
	}
	if opts.Policy.Punctuation == nil {
		opts.Policy.Punctuation = &ExtendedPunctuation
	}
	if opts.Subcodes == nil {
		opts.Subcodes = SubcodeMap{}
	}
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, errorutil.NewWithTag("langid", "invalid format: %v", err)
	}
	return &Annotator{Options: opts}, nil
}

// Identify ranks text against all models. text is expected to be trimmed.
func (a *Annotator) Identify(text string) []ScoreResult {
	if !a.Options.Policy.CaseSensitive {
		text = Fold(text)
	}
	tokens := Tokenize(text, a.Options.Policy.Punctuation)
	return Rank(tokens, a.Options.Models)
}

// Summary of an annotated document
type Summary struct {
	// Units is the number of units that had text and were scored
	Units int
	// Annotated is the number of units that received at least one label
	Annotated int
	Stats     *Stats
	// Language is the published document language, empty if none
	Language string
}

// AnnotateDocument scores every unit of doc in order, attaches the decided
// labels and publishes the dominant language of the document
func (a *Annotator) AnnotateDocument(doc Document) *Summary {
	summary := &Summary{Stats: NewStats()}
	for _, unit := range doc.Units() {
		text, ok := unit.Text()
		if !ok {
			gologger.Debug().Msgf("unit %v has no text, skipping", unit.ID())
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		ranked := a.Identify(text)
		summary.Units++
		best, _ := a.Options.Subcodes.Resolve(ranked[0].Language)
		summary.Stats.Add(best)

		decisions := Decide(ranked, a.Options.Policy, a.Options.Subcodes)
		annotated := false
		for _, d := range decisions {
			if err := unit.Annotate(d); err != nil {
				gologger.Warning().Msgf("could not annotate unit %v got %v", unit.ID(), err)
				break
			}
			annotated = true
		}
		if annotated {
			summary.Annotated++
		}
		if a.Options.Debug {
			gologger.Debug().Msgf("%v\t%v\t%v\t%v", ranked[0].Language, FormatNumber(ranked[0].LogProb), FormatNumber(ranked[0].Confidence), text)
			gologger.Debug().Msgf("%v", formatRanking(ranked))
		}
	}
	if lang, ok := summary.Stats.Published(); ok {
		summary.Language = lang
		doc.SetLanguage(lang)
	}
	return summary
}

// AnnotateLines scores every line of r as a unit and writes one result line
// per input line to w. Empty lines are echoed, followed by the summary line.
func (a *Annotator) AnnotateLines(r io.Reader, w io.Writer) (*Stats, error) {
	stats := NewStats()
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if _, err := bw.WriteString("\n"); err != nil {
				return stats, err
			}
			continue
		}
		ranked := a.Identify(line)
		stats.Add(ranked[0].Language)
		if _, err := bw.WriteString(FormatResult(a.Options.Format, ranked[0], line) + "\n"); err != nil {
			return stats, err
		}
		if a.Options.Debug {
			if _, err := bw.WriteString(formatRanking(ranked) + "\n"); err != nil {
				return stats, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, errorutil.NewWithTag("langid", "failed to read lines got %v", err)
	}
	if _, err := bw.WriteString(stats.String() + "\n"); err != nil {
		return stats, err
	}
	return stats, bw.Flush()
}

// formatRanking lists every model score of a ranking on one line
func formatRanking(ranked []ScoreResult) string {
	var sb strings.Builder
	for _, result := range ranked {
		sb.WriteString(result.Language)
		sb.WriteString("\t")
		sb.WriteString(FormatNumber(result.LogProb))
		sb.WriteString("\t")
		sb.WriteString(FormatNumber(result.Confidence))
		sb.WriteString("\t")
	}
	return sb.String()
}
