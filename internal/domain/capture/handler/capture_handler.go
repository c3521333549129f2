// Package handler implements the JSON HTTP handlers for the capture API.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/dananeer/dananeer-api/internal/domain/capture"
	"github.com/dananeer/dananeer-api/pkg/metrics"
	"github.com/dananeer/dananeer-api/pkg/money"
)

// maxTextRunes bounds the accepted utterance length; dictated text from the
// keyboard mic rarely exceeds a sentence or two.
const maxTextRunes = 500

const defaultSuggestionLimit = 3

// CaptureHandler serves the Quick Capture endpoints.
type CaptureHandler struct {
	svc    *capture.Service
	logger *slog.Logger
}

// NewCaptureHandler constructs a new handler.
func NewCaptureHandler(svc *capture.Service, logger *slog.Logger) *CaptureHandler {
	return &CaptureHandler{svc: svc, logger: logger}
}

// RegisterRoutes attaches the capture routes to the mux.
func (h *CaptureHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/capture/parse", h.ParseText)
	mux.HandleFunc("POST /v1/capture/parse/batch", h.ParseBatch)
	mux.HandleFunc("GET /v1/categories", h.ListCategories)
	mux.HandleFunc("GET /v1/categories/search", h.SearchKeywords)
}

type parseRequest struct {
	Text string `json:"text"`
}

type suggestionResponse struct {
	Category    string `json:"category"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

type parsedTransactionResponse struct {
	Amount        *string              `json:"amount,omitempty"`
	AmountDisplay *string              `json:"amount_display,omitempty"`
	Category      string               `json:"category"`
	CategoryName  string               `json:"category_name"`
	Type          string               `json:"type"`
	Title         string               `json:"title"`
	Confidence    float64              `json:"confidence"`
	Suggestions   []suggestionResponse `json:"suggestions,omitempty"`
}

type parseBatchResponse struct {
	Transactions []parsedTransactionResponse `json:"transactions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ParseText parses a single utterance and returns the structured guess with
// fuzzy category suggestions for the confirm screen.
func (h *CaptureHandler) ParseText(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.ParseDuration.WithLabelValues("parse").Observe(time.Since(start).Seconds())
	}()

	text, ok := h.decodeParseRequest(w, r, "parse")
	if !ok {
		return
	}

	result := h.svc.Parse(r.Context(), text)
	suggestions := h.svc.Suggest(r.Context(), text, result.Type, defaultSuggestionLimit)

	metrics.ParseRequests.WithLabelValues("parse", "ok").Inc()
	metrics.ParseConfidence.Observe(result.Confidence)

	writeJSON(w, http.StatusOK, h.toResponse(result, suggestions))
}

// ParseBatch parses a multi-transaction utterance.
func (h *CaptureHandler) ParseBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.ParseDuration.WithLabelValues("parse_batch").Observe(time.Since(start).Seconds())
	}()

	text, ok := h.decodeParseRequest(w, r, "parse_batch")
	if !ok {
		return
	}

	results := h.svc.ParseBatch(r.Context(), text)

	metrics.ParseRequests.WithLabelValues("parse_batch", "ok").Inc()
	resp := parseBatchResponse{Transactions: make([]parsedTransactionResponse, 0, len(results))}
	for _, result := range results {
		metrics.ParseConfidence.Observe(result.Confidence)
		resp.Transactions = append(resp.Transactions, h.toResponse(result, nil))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListCategories returns the category keys and labels for a direction. The
// keys round-trip with the app's category enumeration.
func (h *CaptureHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	typ := capture.TypeExpense
	switch r.URL.Query().Get("type") {
	case "", string(capture.TypeExpense):
	case string(capture.TypeIncome):
		typ = capture.TypeIncome
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "type must be expense or income"})
		return
	}

	writeJSON(w, http.StatusOK, map[string][]capture.CategoryInfo{
		"categories": h.svc.Categories(typ),
	})
}

// SearchKeywords serves the category-picker autocomplete.
func (h *CaptureHandler) SearchKeywords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "q is required"})
		return
	}

	hits, err := h.svc.SearchKeywords(r.Context(), query, 10)
	if err != nil {
		h.logger.Error("keyword search failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "search failed"})
		return
	}

	type hitResponse struct {
		Keyword     string  `json:"keyword"`
		Category    string  `json:"category"`
		DisplayName string  `json:"display_name"`
		Kind        string  `json:"kind"`
		Score       float64 `json:"score"`
	}
	resp := make([]hitResponse, 0, len(hits))
	for _, hit := range hits {
		resp = append(resp, hitResponse{
			Keyword:     hit.Document.Keyword,
			Category:    hit.Document.Category,
			DisplayName: hit.Document.DisplayName,
			Kind:        hit.Document.Kind,
			Score:       hit.Score,
		})
	}
	writeJSON(w, http.StatusOK, map[string][]hitResponse{"results": resp})
}

func (h *CaptureHandler) decodeParseRequest(w http.ResponseWriter, r *http.Request, endpoint string) (string, bool) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ParseRequests.WithLabelValues(endpoint, "bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return "", false
	}
	if req.Text == "" {
		metrics.ParseRequests.WithLabelValues(endpoint, "bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return "", false
	}
	if utf8.RuneCountInString(req.Text) > maxTextRunes {
		metrics.ParseRequests.WithLabelValues(endpoint, "bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is too long"})
		return "", false
	}
	return req.Text, true
}

func (h *CaptureHandler) toResponse(result capture.ParsedTransaction, suggestions []capture.CategorySuggestion) parsedTransactionResponse {
	lex := capture.DefaultLexicon()
	resp := parsedTransactionResponse{
		Category:     result.Category,
		CategoryName: lex.DisplayName(result.Category),
		Type:         string(result.Type),
		Title:        result.Title,
		Confidence:   result.Confidence,
	}
	if result.HasAmount {
		amount := result.Amount.String()
		display := money.FromDinars(result.Amount).Display()
		resp.Amount = &amount
		resp.AmountDisplay = &display
	}
	for _, s := range suggestions {
		resp.Suggestions = append(resp.Suggestions, suggestionResponse{
			Category:    s.Category,
			DisplayName: s.DisplayName,
			Score:       s.Score,
		})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
