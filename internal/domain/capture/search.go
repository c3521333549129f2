package capture

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
)

// KeywordDocument is one indexed lexicon keyword.
type KeywordDocument struct {
	ID          string `json:"id"`
	Keyword     string `json:"keyword"`
	Category    string `json:"category"`
	DisplayName string `json:"display_name"`
	Kind        string `json:"kind"` // "expense" or "income"
}

// KeywordHit is a search hit with its relevance score.
type KeywordHit struct {
	Document KeywordDocument
	Score    float64
}

// KeywordIndex is an in-memory Bleve full-text index over the lexicon,
// backing the category-picker autocomplete on the confirm screen.
type KeywordIndex struct {
	index   bleve.Index
	indexMu sync.RWMutex
}

// NewKeywordIndex builds an in-memory index from the lexicon.
func NewKeywordIndex(lex *Lexicon) (*KeywordIndex, error) {
	index, err := bleve.NewMemOnly(buildKeywordMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword index: %w", err)
	}
	ki := &KeywordIndex{index: index}
	if err := ki.Reindex(lex); err != nil {
		_ = index.Close()
		return nil, err
	}
	return ki, nil
}

func buildKeywordMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = simple.Name

	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("keyword", textFieldMapping)
	docMapping.AddFieldMappingsAt("display_name", textFieldMapping)
	docMapping.AddFieldMappingsAt("category", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("kind", keywordFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = simple.Name
	return indexMapping
}

// Reindex replaces the index contents with the given lexicon's keywords.
// Called after a keyword pack reload.
func (ki *KeywordIndex) Reindex(lex *Lexicon) error {
	ki.indexMu.Lock()
	defer ki.indexMu.Unlock()

	batch := ki.index.NewBatch()
	indexTable := func(kind string, cats []CategoryKeywords) error {
		for _, cat := range cats {
			for i, kw := range cat.Keywords {
				doc := KeywordDocument{
					ID:          fmt.Sprintf("%s_%s_%d", kind, cat.Key, i),
					Keyword:     kw,
					Category:    cat.Key,
					DisplayName: lex.DisplayName(cat.Key),
					Kind:        kind,
				}
				if err := batch.Index(doc.ID, doc); err != nil {
					return fmt.Errorf("failed to index keyword %q: %w", kw, err)
				}
			}
		}
		return nil
	}

	if err := indexTable(string(TypeExpense), lex.ExpenseCategories); err != nil {
		return err
	}
	if err := indexTable(string(TypeIncome), lex.IncomeCategories); err != nil {
		return err
	}
	if err := ki.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch index: %w", err)
	}
	return nil
}

// Search performs a match query over keywords and display names with typo
// tolerance of one edit.
func (ki *KeywordIndex) Search(query string, limit int) ([]KeywordHit, error) {
	ki.indexMu.RLock()
	defer ki.indexMu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetFuzziness(1)

	searchRequest := bleve.NewSearchRequest(matchQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}

	searchResults, err := ki.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}
	return convertKeywordHits(searchResults), nil
}

// SearchPrefix performs an autocomplete-style prefix search.
func (ki *KeywordIndex) SearchPrefix(prefix string, limit int) ([]KeywordHit, error) {
	ki.indexMu.RLock()
	defer ki.indexMu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	prefixQuery := bleve.NewPrefixQuery(prefix)
	searchRequest := bleve.NewSearchRequest(prefixQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}

	searchResults, err := ki.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("keyword prefix search failed: %w", err)
	}
	return convertKeywordHits(searchResults), nil
}

func convertKeywordHits(searchResults *bleve.SearchResult) []KeywordHit {
	hits := make([]KeywordHit, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		doc := KeywordDocument{ID: hit.ID}
		if v, ok := hit.Fields["keyword"].(string); ok {
			doc.Keyword = v
		}
		if v, ok := hit.Fields["category"].(string); ok {
			doc.Category = v
		}
		if v, ok := hit.Fields["display_name"].(string); ok {
			doc.DisplayName = v
		}
		if v, ok := hit.Fields["kind"].(string); ok {
			doc.Kind = v
		}
		hits = append(hits, KeywordHit{Document: doc, Score: hit.Score})
	}
	return hits
}

// DocumentCount returns the number of indexed keywords.
func (ki *KeywordIndex) DocumentCount() (uint64, error) {
	ki.indexMu.RLock()
	defer ki.indexMu.RUnlock()
	return ki.index.DocCount()
}

// Close releases the index.
func (ki *KeywordIndex) Close() error {
	ki.indexMu.Lock()
	defer ki.indexMu.Unlock()
	if ki.index != nil {
		return ki.index.Close()
	}
	return nil
}
