package capture

// Confidence weights. These are a behavioral contract tuned against observed
// dialect usage, not knobs: callers threshold on the resulting score and the
// segmenter's 0.3 cutoff assumes exactly these contributions.
const (
	amountWeight    = 0.4
	categoryWeight  = 0.3
	intentWeight    = 0.2
	titleWeight     = 0.1
	negativePenalty = 0.5

	// inheritBump is added by the segmenter when a follow-on segment
	// inherits the previous segment's category.
	inheritBump = 0.1

	// weakSegmentThreshold drops low-confidence segments from multi
	// transaction parses.
	weakSegmentThreshold = 0.3
)

type signals struct {
	hasAmount        bool
	category         string
	hasIntent        bool
	titleInformative bool
	hasNegative      bool
}

// scoreConfidence combines the partial signals into a score clamped to [0,1].
// The negative-marker penalty applies unconditionally; it suppresses texts
// that mention money without describing an actual transaction.
func scoreConfidence(sig signals) float64 {
	score := 0.0
	if sig.hasAmount {
		score += amountWeight
	}
	if sig.category != CategoryOther {
		score += categoryWeight
	}
	if sig.hasIntent {
		score += intentWeight
	}
	if sig.titleInformative {
		score += titleWeight
	}
	if sig.hasNegative {
		score -= negativePenalty
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
