package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore runs the same checks against any Store implementation.
func testStore(t *testing.T, store Store) {
	cats, err := store.Categories()
	require.NoError(t, err)
	assert.Empty(t, cats)

	require.NoError(t, store.AddCategory("spam"))
	require.NoError(t, store.AddCategory("ham"))
	require.NoError(t, store.AddCategory("spam"))

	cats, err = store.Categories()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"spam": 0, "ham": 0}, cats)

	err = store.AddDocument("none", []string{"blah"})
	assert.Equal(t, ErrCategoryDoesNotExist("none"), err)

	require.NoError(t, store.AddDocument("spam", []string{"this", "spam", "what", "spam"}))
	require.NoError(t, store.AddDocument("spam", []string{"it's", "spam"}))
	require.NoError(t, store.AddDocument("ham", []string{"what", "now"}))

	cats, err = store.Categories()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"spam": 2, "ham": 1}, cats)

	counts, err := store.TokenCounts([]string{"spam", "ham"}, []string{"spam", "what", "it's", "unknown"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"spam": 3, "what": 1, "it's": 1, "unknown": 0}, counts["spam"])
	assert.Equal(t, map[string]int64{"spam": 0, "what": 1, "it's": 0, "unknown": 0}, counts["ham"])

	counts, err = store.TokenCounts(nil, []string{"now"})
	require.NoError(t, err)
	assert.Len(t, counts, 2)
	assert.Equal(t, int64(1), counts["ham"]["now"])

	_, err = store.TokenCounts([]string{"eggs"}, []string{"now"})
	assert.Equal(t, ErrCategoryDoesNotExist("eggs"), err)

	totals, err := store.WordTotals()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"spam": 6, "ham": 2}, totals)

	vocab, err := store.VocabularySize()
	require.NoError(t, err)
	assert.Equal(t, int64(5), vocab)

	require.NoError(t, store.Reset())
	cats, err = store.Categories()
	require.NoError(t, err)
	assert.Empty(t, cats)
	vocab, err = store.VocabularySize()
	require.NoError(t, err)
	assert.Equal(t, int64(0), vocab)
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore())
}
