package capture

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := NewService(logger, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestService_Parse(t *testing.T) {
	svc := newTestService(t)

	result := svc.Parse(context.Background(), "تكسي بخمسة")
	assert.True(t, result.HasAmount)
	assert.Equal(t, "transport", result.Category)
}

func TestService_ParseBatch(t *testing.T) {
	svc := newTestService(t)

	results := svc.ParseBatch(context.Background(), "قهوة بثلاثة وتكسي بالفين")
	require.Len(t, results, 2)
	assert.Equal(t, "food", results[0].Category)
	assert.Equal(t, "transport", results[1].Category)
}

func TestService_Categories(t *testing.T) {
	svc := newTestService(t)

	t.Run("expense list ends with other", func(t *testing.T) {
		cats := svc.Categories(TypeExpense)
		require.NotEmpty(t, cats)
		assert.Equal(t, "food", cats[0].Key)
		assert.Equal(t, CategoryOther, cats[len(cats)-1].Key)
	})

	t.Run("income list", func(t *testing.T) {
		cats := svc.Categories(TypeIncome)
		require.NotEmpty(t, cats)
		assert.Equal(t, "salary", cats[0].Key)
		for _, c := range cats {
			assert.NotEmpty(t, c.DisplayName)
		}
	})
}

func TestService_SearchKeywords(t *testing.T) {
	svc := newTestService(t)

	hits, err := svc.SearchKeywords(context.Background(), "تكسي", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "transport", hits[0].Document.Category)
}

func TestService_KeywordPack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("keyword,category,kind\nكريم,transport,expense\n"), 0o644))

	svc := newTestService(t, WithKeywordPack(path))

	t.Run("pack keywords classify", func(t *testing.T) {
		result := svc.Parse(context.Background(), "كريم ب5")
		assert.Equal(t, "transport", result.Category)
	})

	t.Run("reload picks up new rows", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path,
			[]byte("keyword,category,kind\nكريم,transport,expense\nبلايستيشن,entertainment,expense\n"), 0o644))

		require.NoError(t, svc.ReloadPack(context.Background()))

		result := svc.Parse(context.Background(), "بلايستيشن ب10")
		assert.Equal(t, "entertainment", result.Category)
	})

	t.Run("broken pack fails reload but keeps serving", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path,
			[]byte("keyword,category,kind\nx,crypto,expense\n"), 0o644))

		assert.Error(t, svc.ReloadPack(context.Background()))

		result := svc.Parse(context.Background(), "كريم ب5")
		assert.Equal(t, "transport", result.Category)
	})
}

func TestNewService_BrokenPackFailsStartup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("keyword,category,kind\nx,crypto,expense\n"), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := NewService(logger, WithKeywordPack(path))
	assert.Error(t, err)
}

func TestService_ReloadWithoutPackIsNoop(t *testing.T) {
	svc := newTestService(t)
	assert.NoError(t, svc.ReloadPack(context.Background()))
}
