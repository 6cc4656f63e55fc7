package langid

import (
	"fmt"
	"io"

	"github.com/projectdiscovery/fasttemplate"
)

const (
	// ParenthesisOpen marker - begin of a placeholder
	ParenthesisOpen = "{{"
	// ParenthesisClose marker - end of a placeholder
	ParenthesisClose = "}}"
)

// DefaultFormat is the plain text result line: language, log probability,
// confidence and the original line separated by tabs
const DefaultFormat = "{{lang}}\t{{logprob}}\t{{confidence}}\t{{text}}"

// Replace replaces placeholders in template with values on the fly.
func Replace(template string, values map[string]interface{}) string {
	valuesMap := make(map[string]interface{}, len(values))
	for k, v := range values {
		valuesMap[k] = fmt.Sprint(v)
	}
	return fasttemplate.ExecuteStringStd(template, ParenthesisOpen, ParenthesisClose, valuesMap)
}

// ValidateFormat checks that template only uses known placeholders
func ValidateFormat(template string) error {
	tpl, err := fasttemplate.NewTemplate(template, ParenthesisOpen, ParenthesisClose)
	if err != nil {
		return err
	}
	var unknown error
	tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		switch tag {
		case "lang", "logprob", "confidence", "text":
		default:
			unknown = fmt.Errorf("unknown placeholder `{{%v}}` in format", tag)
		}
		return 0, nil
	})
	return unknown
}

// FormatResult renders a ranked result line for the original text
func FormatResult(template string, result ScoreResult, text string) string {
	return Replace(template, map[string]interface{}{
		"lang":       result.Language,
		"logprob":    FormatNumber(result.LogProb),
		"confidence": FormatNumber(result.Confidence),
		"text":       text,
	})
}
