package capture

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ParsedTransaction is the structured best-effort guess for one utterance.
// Instances are created fresh per parse and have no persisted identity; the
// caller decides whether to turn one into a real expense/income record.
type ParsedTransaction struct {
	Amount     decimal.Decimal // whole dinars; zero when HasAmount is false
	HasAmount  bool
	Category   string // always a valid display-name key, "other" fallback
	Type       TransactionType
	Title      string // never empty
	Confidence float64 // in [0,1]
	RawText    string // original trimmed input
}

// Parser is the single-utterance parsing pipeline. It is pure and
// synchronous: no I/O, no shared mutable state, safe for concurrent use.
type Parser struct {
	lex      *Lexicon
	amounts  *amountExtractor
	classes  *classifier
	titles   *titleRefiner
	segments *segmenter
}

// Option configures a Parser.
type Option func(*parserOptions)

type parserOptions struct {
	lexicon     *Lexicon
	noteValue   decimal.Decimal
	bundleValue decimal.Decimal
}

// WithLexicon replaces the built-in dialect lexicon.
func WithLexicon(lex *Lexicon) Option {
	return func(o *parserOptions) { o.lexicon = lex }
}

// WithDenominations overrides the fixed IQD values of the slang scale words
// ورقة and دفتر. The defaults approximate a $100 note and a bundle of them
// and drift with the exchange rate.
func WithDenominations(noteIQD, bundleIQD int64) Option {
	return func(o *parserOptions) {
		o.noteValue = decimal.NewFromInt(noteIQD)
		o.bundleValue = decimal.NewFromInt(bundleIQD)
	}
}

// NewParser builds a parser from the default lexicon and options.
func NewParser(opts ...Option) *Parser {
	o := &parserOptions{
		lexicon:     DefaultLexicon(),
		noteValue:   defaultNoteValue,
		bundleValue: defaultBundleValue,
	}
	for _, opt := range opts {
		opt(o)
	}
	lex := o.lexicon
	return &Parser{
		lex:      lex,
		amounts:  newAmountExtractor(lex, o.noteValue, o.bundleValue),
		classes:  newClassifier(lex),
		titles:   newTitleRefiner(lex),
		segments: newSegmenter(lex),
	}
}

// Lexicon returns the lexicon the parser was built with.
func (p *Parser) Lexicon() *Lexicon {
	return p.lex
}

// Parse runs the single-transaction pipeline: numeral normalization, amount
// extraction, direction and category classification, title refinement and
// confidence scoring. It never fails; missing information surfaces as
// HasAmount=false, category "other" or a low confidence.
func (p *Parser) Parse(text string) ParsedTransaction {
	raw := strings.TrimSpace(text)
	normalized := NormalizeDigits(raw)
	lower := strings.ToLower(normalized)

	amount, hasAmount := p.amounts.Extract(lower)

	hasExpense, hasIncome := p.classes.Intents(lower)
	typ := ResolveType(hasExpense, hasIncome)
	category := p.classes.Category(lower, typ)

	title := p.titles.Refine(normalized, category)

	confidence := scoreConfidence(signals{
		hasAmount:        hasAmount,
		category:         category,
		hasIntent:        hasExpense || hasIncome,
		titleInformative: utf8.RuneCountInString(title) > 3 && title != p.lex.DisplayName(category),
		hasNegative:      p.classes.HasNegativeMarker(lower),
	})

	return ParsedTransaction{
		Amount:     amount,
		HasAmount:  hasAmount,
		Category:   category,
		Type:       typ,
		Title:      title,
		Confidence: confidence,
		RawText:    raw,
	}
}

var defaultParser = NewParser()

// ParseTransactionText parses one utterance with the default parser.
func ParseTransactionText(text string) ParsedTransaction {
	return defaultParser.Parse(text)
}

// ParseMultipleTransactions splits an utterance into segments and parses
// each, in input order, with the default parser.
func ParseMultipleTransactions(text string) []ParsedTransaction {
	return defaultParser.ParseAll(text)
}
