package capture

import (
	"strconv"
	"strings"
)

// NormalizeDigits replaces every Arabic-Indic digit (٠-٩) and extended
// Arabic-Indic digit (۰-۹, common on Iraqi phone keyboards) with its ASCII
// equivalent. All other characters pass through unchanged.
func NormalizeDigits(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		}
		return r
	}, text)
}

// rewriteNumeralWords replaces dialect number words with ASCII digits so the
// amount pattern sees "تكسي ب5" instead of "تكسي بخمسة". Words may carry the
// prepositions ب or بال ("بخمسة", "بالفين"); the bare word is tried first so
// "الفين" (the dual, 2000) is never mistaken for "ال" + "فين".
func (l *Lexicon) rewriteNumeralWords(text string) string {
	fields := strings.Fields(text)
	changed := false
	for i, tok := range fields {
		if v, ok := l.lookupNumeral(tok); ok {
			fields[i] = strconv.Itoa(v)
			changed = true
		}
	}
	if !changed {
		return text
	}
	return strings.Join(fields, " ")
}

func (l *Lexicon) lookupNumeral(tok string) (int, bool) {
	candidates := []string{tok}
	if rest, ok := strings.CutPrefix(tok, "بال"); ok && rest != "" {
		candidates = append(candidates, "ال"+rest, rest)
	} else if rest, ok := strings.CutPrefix(tok, "ب"); ok && rest != "" {
		candidates = append(candidates, rest)
	} else if rest, ok := strings.CutPrefix(tok, "ال"); ok && rest != "" {
		candidates = append(candidates, rest)
	}
	for _, c := range candidates {
		if v, ok := l.NumeralWords[c]; ok {
			return v, true
		}
	}
	return 0, false
}
