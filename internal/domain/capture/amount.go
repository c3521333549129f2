package capture

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts people actually say. Iraqi daily speech states amounts in thousands
// of dinars, so "خمسة" (five) means 5,000 IQD and a bare "نص" (half) is the
// 500-dinar note. The slang scale words ورقة (a hundred-dollar note) and دفتر
// (a bundle of them) carry fixed IQD approximations, not a live exchange rate.
var (
	defaultNoteValue   = decimal.NewFromInt(150_000)
	defaultBundleValue = decimal.NewFromInt(15_000_000)

	thousandUnit = decimal.NewFromInt(1_000)
	millionUnit  = decimal.NewFromInt(1_000_000)
	literalUnit  = decimal.NewFromInt(1)

	half    = decimal.New(5, -1)  // 0.5
	quarter = decimal.New(25, -2) // 0.25
)

// Standalone fraction idiom: a lone ربع or نص with nothing else is the
// short-form daily-spend amount, not a fraction of zero.
var (
	bareQuarterAmount = decimal.NewFromInt(250)
	bareHalfAmount    = decimal.NewFromInt(500)
)

// numberAmountRe captures a decimal number (either . or , as separator), an
// optional scale word right after it, and an optional trailing "and a
// half/quarter" connector. scaleOnlyRe handles scale words with no leading
// number ("مليون ونص" means one million and a half).
var (
	numberAmountRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(آلاف|الاف|ألف|الف|ملايين|مليون|ورقة|ورقه|دفتر|k|m)?\s*(?:و\s*(نصف|نص|ربع))?`)
	scaleOnlyRe    = regexp.MustCompile(`(آلاف|الاف|ألف|الف|ملايين|مليون|ورقة|ورقه|دفتر)\s*(?:و\s*(نصف|نص|ربع))?`)
)

// amountExtractor turns normalized, lower-cased dialect text into a numeric
// amount in whole dinars.
type amountExtractor struct {
	lex         *Lexicon
	noteValue   decimal.Decimal
	bundleValue decimal.Decimal
}

func newAmountExtractor(lex *Lexicon, noteValue, bundleValue decimal.Decimal) *amountExtractor {
	return &amountExtractor{lex: lex, noteValue: noteValue, bundleValue: bundleValue}
}

// Extract returns the best-guess amount and whether one was found at all.
// The input must already be trimmed, digit-normalized and lower-cased.
func (e *amountExtractor) Extract(text string) (decimal.Decimal, bool) {
	switch text {
	case "ربع":
		return bareQuarterAmount, true
	case "نص", "نصف":
		return bareHalfAmount, true
	}

	rewritten := e.lex.rewriteNumeralWords(text)

	var numStr, scaleWord, fracWord string
	if m := numberAmountRe.FindStringSubmatch(rewritten); m != nil {
		numStr, scaleWord, fracWord = m[1], m[2], m[3]
	} else if m := scaleOnlyRe.FindStringSubmatch(rewritten); m != nil {
		numStr, scaleWord, fracWord = "1", m[1], m[2]
	} else {
		return decimal.Zero, false
	}

	n, err := decimal.NewFromString(strings.Replace(numStr, ",", ".", 1))
	if err != nil {
		return decimal.Zero, false
	}

	unit := e.scaleUnit(scaleWord, n)
	amount := n.Mul(unit)

	// Fractions add half/quarter of the scale unit, not of the final amount:
	// "مليون ونص" is 1,000,000 + 500,000.
	switch fracWord {
	case "نص", "نصف":
		amount = amount.Add(unit.Mul(half))
	case "ربع":
		amount = amount.Add(unit.Mul(quarter))
	}

	return amount, true
}

// scaleUnit resolves the multiplier for the captured number. With no explicit
// scale word, a number strictly between 0 and 1000 is taken to mean thousands
// (the dominant colloquial convention); 1000 and above are literal.
func (e *amountExtractor) scaleUnit(scaleWord string, n decimal.Decimal) decimal.Decimal {
	switch scaleWord {
	case "الف", "ألف", "الاف", "آلاف", "k":
		return thousandUnit
	case "مليون", "ملايين", "m":
		return millionUnit
	case "ورقة", "ورقه":
		return e.noteValue
	case "دفتر":
		return e.bundleValue
	}
	if n.IsPositive() && n.LessThan(thousandUnit) {
		return thousandUnit
	}
	return literalUnit
}
