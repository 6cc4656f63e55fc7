package langid

// DefaultThreshold is the default confidence threshold
const DefaultThreshold = 0.5

// Policy decides which labels are emitted for a ranked list
type Policy struct {
	// Threshold the best result must exceed (strictly) to be emitted
	Threshold float64
	// Fallback language used when the best result is below threshold.
	// It is used verbatim and never mapped through subcodes
	Fallback string
	// EmitAll emits every ranked language, the first one as primary
	EmitAll bool
	// CaseSensitive disables lowercasing of unit text before tokenization
	CaseSensitive bool
	// VariantOnAlternatives records the variant code on alternative labels too
	VariantOnAlternatives bool
	// Punctuation used to tokenize unit text
	Punctuation *Punctuation
}

// DefaultPolicy returns the policy used when nothing is configured
func DefaultPolicy() Policy {
	return Policy{
		Threshold:             DefaultThreshold,
		VariantOnAlternatives: true,
		Punctuation:           &ExtendedPunctuation,
	}
}

// Decision is a language label to attach to a text unit
type Decision struct {
	// Code is the canonical language code
	Code string
	// Variant is the fine grained code Code was mapped from (empty if unmapped)
	Variant    string
	Confidence float64
	// Primary is false for alternative labels
	Primary bool
}

// Decide returns the labels to emit for ranked, which must be sorted.
// An empty result leaves the unit unannotated.
func Decide(ranked []ScoreResult, policy Policy, subcodes SubcodeMap) []Decision {
	if len(ranked) == 0 {
		return nil
	}
	best := ranked[0]
	switch {
	case policy.EmitAll:
		decisions := make([]Decision, 0, len(ranked))
		for i, result := range ranked {
			d := newDecision(result, subcodes, i == 0)
			if !d.Primary && !policy.VariantOnAlternatives {
				d.Variant = ""
			}
			decisions = append(decisions, d)
		}
		return decisions
	case best.Confidence > policy.Threshold:
		return []Decision{newDecision(best, subcodes, true)}
	case policy.Fallback != "":
		return []Decision{{Code: policy.Fallback, Confidence: 0, Primary: true}}
	}
	return nil
}

func newDecision(result ScoreResult, subcodes SubcodeMap, primary bool) Decision {
	canonical, variant := subcodes.Resolve(result.Language)
	d := Decision{Code: canonical, Confidence: result.Confidence, Primary: primary}
	if variant != canonical {
		d.Variant = variant
	}
	return d
}
