package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CategoryInfo pairs a category key with its display label for the app's
// category picker. The keys round-trip with the persistence layer's category
// enumeration.
type CategoryInfo struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

// Service is the application-facing facade over the parser: parsing,
// suggestions, keyword search and keyword-pack reloads. The parser itself is
// immutable; a reload builds a new one and swaps it under the mutex.
type Service struct {
	mu       sync.RWMutex
	parser   *Parser
	index    *KeywordIndex
	packPath string

	logger *slog.Logger
	tracer trace.Tracer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithKeywordPack points the service at a CSV keyword pack that extends the
// built-in lexicon; ReloadPack re-reads it.
func WithKeywordPack(path string) ServiceOption {
	return func(s *Service) { s.packPath = path }
}

// NewService builds the capture service. When a keyword pack is configured
// it is loaded eagerly; a broken pack fails startup rather than silently
// serving the bare lexicon.
func NewService(logger *slog.Logger, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		logger: logger,
		tracer: otel.Tracer("capture"),
	}
	for _, opt := range opts {
		opt(s)
	}

	lex := DefaultLexicon()
	if s.packPath != "" {
		rows, err := LoadKeywordPack(s.packPath)
		if err != nil {
			return nil, err
		}
		lex, err = lex.WithPack(rows)
		if err != nil {
			return nil, err
		}
		logger.Info("keyword pack loaded",
			slog.String("path", s.packPath),
			slog.Int("rows", len(rows)),
		)
	}

	s.parser = NewParser(WithLexicon(lex))

	index, err := NewKeywordIndex(lex)
	if err != nil {
		return nil, fmt.Errorf("failed to build keyword index: %w", err)
	}
	s.index = index

	return s, nil
}

func (s *Service) currentParser() *Parser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parser
}

// Parse parses a single utterance.
func (s *Service) Parse(ctx context.Context, text string) ParsedTransaction {
	_, span := s.tracer.Start(ctx, "capture.Parse")
	defer span.End()

	result := s.currentParser().Parse(text)

	span.SetAttributes(
		attribute.Bool("capture.has_amount", result.HasAmount),
		attribute.String("capture.category", result.Category),
		attribute.Float64("capture.confidence", result.Confidence),
	)
	s.logger.Debug("parsed capture text",
		slog.String("category", result.Category),
		slog.String("type", string(result.Type)),
		slog.Bool("has_amount", result.HasAmount),
		slog.Float64("confidence", result.Confidence),
	)
	return result
}

// ParseBatch parses a multi-transaction utterance.
func (s *Service) ParseBatch(ctx context.Context, text string) []ParsedTransaction {
	_, span := s.tracer.Start(ctx, "capture.ParseBatch")
	defer span.End()

	results := s.currentParser().ParseAll(text)
	span.SetAttributes(attribute.Int("capture.segments", len(results)))
	return results
}

// Suggest returns fuzzy category suggestions for the given direction.
func (s *Service) Suggest(ctx context.Context, text string, t TransactionType, limit int) []CategorySuggestion {
	_, span := s.tracer.Start(ctx, "capture.Suggest")
	defer span.End()
	return s.currentParser().SuggestCategories(text, t, limit)
}

// SearchKeywords runs the autocomplete search over the lexicon index.
func (s *Service) SearchKeywords(ctx context.Context, query string, limit int) ([]KeywordHit, error) {
	_, span := s.tracer.Start(ctx, "capture.SearchKeywords")
	defer span.End()
	return s.index.Search(query, limit)
}

// Categories lists the category keys and labels for one direction, in
// declaration order, with the "other" fallback appended.
func (s *Service) Categories(t TransactionType) []CategoryInfo {
	lex := s.currentParser().Lexicon()
	cats := lex.CategoriesFor(t)
	infos := make([]CategoryInfo, 0, len(cats)+1)
	for _, cat := range cats {
		infos = append(infos, CategoryInfo{Key: cat.Key, DisplayName: lex.DisplayName(cat.Key)})
	}
	infos = append(infos, CategoryInfo{Key: CategoryOther, DisplayName: lex.DisplayName(CategoryOther)})
	return infos
}

// ReloadPack re-reads the configured keyword pack and swaps in a new parser
// and search index. No-op when no pack is configured.
func (s *Service) ReloadPack(ctx context.Context) error {
	if s.packPath == "" {
		return nil
	}

	_, span := s.tracer.Start(ctx, "capture.ReloadPack")
	defer span.End()

	rows, err := LoadKeywordPack(s.packPath)
	if err != nil {
		return err
	}
	lex, err := DefaultLexicon().WithPack(rows)
	if err != nil {
		return err
	}

	parser := NewParser(WithLexicon(lex))

	s.mu.Lock()
	s.parser = parser
	s.mu.Unlock()

	if err := s.index.Reindex(lex); err != nil {
		return err
	}

	s.logger.Info("keyword pack reloaded",
		slog.String("path", s.packPath),
		slog.Int("rows", len(rows)),
	)
	return nil
}

// Close releases the search index.
func (s *Service) Close() error {
	return s.index.Close()
}
