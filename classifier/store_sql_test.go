//go:build sqlite3
// +build sqlite3

package classifier

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLStore(t *testing.T) {
	store, err := NewSQLStore(openMemoryDB(t))
	require.NoError(t, err)
	testStore(t, store)
}

func TestSQLStoreReopen(t *testing.T) {
	db := openMemoryDB(t)
	store, err := NewSQLStore(db)
	require.NoError(t, err)
	require.NoError(t, store.AddCategory("spam"))
	require.NoError(t, store.AddDocument("spam", []string{"o'reilly"}))

	store, err = NewSQLStore(db)
	require.NoError(t, err)
	counts, err := store.TokenCounts([]string{"spam"}, []string{"o'reilly"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["spam"]["o'reilly"])
}

func TestSQLStoreClassifier(t *testing.T) {
	sqlStore, err := NewSQLStore(openMemoryDB(t))
	require.NoError(t, err)
	bcSQL, err := NewBayesianClassifier(sqlStore, PunctuationTokenizer)
	require.NoError(t, err)
	fitExample(t, bcSQL)

	bcLocal := newTestClassifier(t)
	fitExample(t, bcLocal)

	assert.Equal(t, bcLocal.VocabularySize(), bcSQL.VocabularySize())
	for _, text := range []string{"free prize now", "are you free", "nothing known here"} {
		tokens := tokenize(t, text)[0]
		s1, h1, err := bcLocal.Scores(tokens)
		require.NoError(t, err)
		s2, h2, err := bcSQL.Scores(tokens)
		require.NoError(t, err)
		assert.InDelta(t, s1, s2, 1e-12, text)
		assert.InDelta(t, h1, h2, 1e-12, text)
	}
}
