package search

import (
	"encoding/json"
	"testing"

	"github.com/glossary/backend/internal/domain/catalog"
	infraconfig "github.com/glossary/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeiliTermIndex_RequiresHost(t *testing.T) {
	_, err := NewMeiliTermIndex(infraconfig.SearchConfig{}, nil)
	assert.Error(t, err)
}

func TestToTermDoc(t *testing.T) {
	term, err := catalog.NewTerm("Attention", "Weighted aggregation over a sequence.")
	require.NoError(t, err)
	term.ShortDefinition = "Focus mechanism"
	term.ViewCount = 42

	t.Run("without category", func(t *testing.T) {
		doc := toTermDoc(term)
		assert.Equal(t, term.ID.String(), doc.ID)
		assert.Equal(t, "Attention", doc.Name)
		assert.Equal(t, "Focus mechanism", doc.ShortDefinition)
		assert.Equal(t, int64(42), doc.ViewCount)
		assert.Empty(t, doc.CategoryID)
	})

	t.Run("with category", func(t *testing.T) {
		categoryID := uuid.New()
		term.CategoryID = &categoryID
		doc := toTermDoc(term)
		assert.Equal(t, categoryID.String(), doc.CategoryID)
	})
}

func TestDecodeHitIDs(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	t.Run("preserves relevance order", func(t *testing.T) {
		raw, err := json.Marshal(map[string]interface{}{
			"hits": []map[string]string{
				{"id": first.String()},
				{"id": second.String()},
			},
		})
		require.NoError(t, err)

		ids, err := decodeHitIDs(raw)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first, second}, ids)
	})

	t.Run("skips non-uuid documents", func(t *testing.T) {
		raw := []byte(`{"hits":[{"id":"not-a-uuid"},{"id":"` + first.String() + `"}]}`)
		ids, err := decodeHitIDs(raw)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first}, ids)
	})

	t.Run("empty response", func(t *testing.T) {
		ids, err := decodeHitIDs([]byte(`{"hits":[]}`))
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("malformed response", func(t *testing.T) {
		_, err := decodeHitIDs([]byte(`not json`))
		assert.Error(t, err)
	})
}
