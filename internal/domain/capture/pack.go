package capture

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// KeywordPackRow is one row of a CSV keyword pack. Packs let operators extend
// the dialect keyword tables without a rebuild, e.g. to add a new ride-hail
// brand name under transport.
type KeywordPackRow struct {
	Keyword  string `csv:"keyword"`
	Category string `csv:"category"`
	Kind     string `csv:"kind"` // "expense" or "income"
}

// LoadKeywordPack reads a keyword pack CSV from disk.
func LoadKeywordPack(path string) ([]KeywordPackRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyword pack: %w", err)
	}
	defer f.Close()

	var rows []KeywordPackRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse keyword pack: %w", err)
	}
	return rows, nil
}

// WithPack returns a copy of the lexicon extended by the pack rows. Rows must
// reference existing categories of the stated kind; category order (and with
// it first-match-wins resolution) is unchanged, new keywords append to the
// end of their category's list.
func (l *Lexicon) WithPack(rows []KeywordPackRow) (*Lexicon, error) {
	extended := l.Clone()
	for i, row := range rows {
		if row.Keyword == "" {
			return nil, fmt.Errorf("keyword pack row %d: empty keyword", i+1)
		}

		var table []CategoryKeywords
		switch TransactionType(row.Kind) {
		case TypeExpense:
			table = extended.ExpenseCategories
		case TypeIncome:
			table = extended.IncomeCategories
		default:
			return nil, fmt.Errorf("keyword pack row %d: unknown kind %q", i+1, row.Kind)
		}

		found := false
		for j := range table {
			if table[j].Key == row.Category {
				table[j].Keywords = append(table[j].Keywords, row.Keyword)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("keyword pack row %d: unknown category %q", i+1, row.Category)
		}
	}
	return extended, nil
}
