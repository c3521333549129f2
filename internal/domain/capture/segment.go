package capture

import (
	"math"
	"strings"
)

// Hard segment boundaries: the conjunction و as its own token, the sequencing
// words ثم and (و)بعدين, and sentence punctuation.
var boundaryWords = map[string]struct{}{
	"و":      {},
	"ثم":     {},
	"بعدين":  {},
	"وبعدين": {},
}

func isBoundaryPunct(r rune) bool {
	switch r {
	case ',', '،', ';', '؛', '.', '\n':
		return true
	}
	return false
}

// segmenter splits a longer utterance into per-transaction segments. و is
// usually written as a prefix of the next word ("قهوة بثلاثة وتكسي بالفين"),
// so a و-prefixed token also starts a new segment — unless the token itself
// is a lexicon word (ونص, ورقة, واحد, وقود, وصلني, …), in which case the و
// belongs to the word. That protected set is derived from the lexicon.
type segmenter struct {
	protected map[string]struct{}
}

func newSegmenter(lex *Lexicon) *segmenter {
	protected := map[string]struct{}{
		// Fraction connectors attach to the amount, never split.
		"ونص": {}, "ونصف": {}, "وربع": {},
		// Slang scale words happen to start with و.
		"ورقة": {}, "ورقه": {},
	}
	for _, w := range lex.allWords() {
		if strings.HasPrefix(w, "و") {
			protected[w] = struct{}{}
		}
	}
	return &segmenter{protected: protected}
}

func (s *segmenter) split(text string) []string {
	var segs []string
	var cur []string

	flush := func() {
		if len(cur) > 0 {
			segs = append(segs, strings.Join(cur, " "))
			cur = cur[:0]
		}
	}

	for _, chunk := range strings.FieldsFunc(text, isBoundaryPunct) {
		for _, tok := range strings.Fields(chunk) {
			if _, ok := boundaryWords[tok]; ok {
				flush()
				continue
			}
			if rest, ok := strings.CutPrefix(tok, "و"); ok {
				if _, keep := s.protected[tok]; !keep {
					flush()
					if rest != "" {
						cur = append(cur, rest)
					}
					continue
				}
			}
			cur = append(cur, tok)
		}
		flush()
	}
	flush()
	return segs
}

// ParseAll parses a multi-transaction utterance, returning one result per
// detected transaction in input order. The last resolved category and type
// carry over to follow-on segments that state only an amount ("قهوة بثلاثة
// وتكسي بالفين" names the category once). Segments without an amount, and
// weak low-confidence segments, are silently dropped.
func (p *Parser) ParseAll(text string) []ParsedTransaction {
	segs := p.segments.split(strings.TrimSpace(text))
	results := make([]ParsedTransaction, 0, len(segs))

	lastCategory := CategoryOther
	lastType := TypeExpense

	for _, seg := range segs {
		r := p.Parse(seg)
		if !r.HasAmount {
			continue
		}
		if r.Category == CategoryOther && lastCategory != CategoryOther {
			r.Category = lastCategory
			r.Type = lastType
			r.Confidence = math.Min(1, r.Confidence+inheritBump)
		}
		if r.Confidence <= weakSegmentThreshold {
			continue
		}
		results = append(results, r)
		lastCategory = r.Category
		lastType = r.Type
	}
	return results
}
