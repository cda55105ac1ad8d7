package context

import (
	"strings"
	"testing"
	"unicode/utf8"

	"doc-chat-be/pkg/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreWith(t *testing.T, docs map[string]string) (*docstore.Store, map[string]string) {
	t.Helper()
	s := docstore.NewStore()
	ids := make(map[string]string, len(docs))
	for name, content := range docs {
		id, err := s.Ingest([]byte(content), name, "text/plain")
		require.NoError(t, err)
		ids[name] = id
	}
	return s, ids
}

func TestBuildSingleDocument(t *testing.T) {
	s, ids := newStoreWith(t, map[string]string{"a.txt": "hello docs"})

	got := Build([]string{ids["a.txt"]}, s, DefaultMaxChars)

	assert.Equal(t, "--- BEGIN DOCUMENT: a.txt ---\nhello docs\n--- END DOCUMENT: a.txt ---\n", got)
}

func TestBuildJoinsInSelectionOrder(t *testing.T) {
	s, ids := newStoreWith(t, map[string]string{
		"a.txt": "alpha",
		"b.txt": "beta",
	})

	got := Build([]string{ids["b.txt"], ids["a.txt"]}, s, DefaultMaxChars)

	posB := strings.Index(got, "BEGIN DOCUMENT: b.txt")
	posA := strings.Index(got, "BEGIN DOCUMENT: a.txt")
	require.GreaterOrEqual(t, posB, 0)
	require.GreaterOrEqual(t, posA, 0)
	assert.Less(t, posB, posA)
}

func TestBuildSkipsStaleSelections(t *testing.T) {
	s, ids := newStoreWith(t, map[string]string{"a.txt": "hello docs"})

	withStale := Build([]string{ids["a.txt"], "deadbeef0000"}, s, DefaultMaxChars)
	without := Build([]string{ids["a.txt"]}, s, DefaultMaxChars)

	assert.Equal(t, without, withStale)
}

func TestBuildEmptySelection(t *testing.T) {
	s, _ := newStoreWith(t, map[string]string{"a.txt": "hello docs"})

	assert.Equal(t, "", Build(nil, s, DefaultMaxChars))
	assert.Equal(t, "", Build([]string{}, s, DefaultMaxChars))
}

func TestTruncate(t *testing.T) {
	const maxChars = 1000
	marker := truncationMarker

	t.Run("under budget unchanged", func(t *testing.T) {
		text := strings.Repeat("x", maxChars)
		assert.Equal(t, text, Truncate(text, maxChars))
	})

	t.Run("over budget keeps head and tail", func(t *testing.T) {
		head := strings.Repeat("h", 600)
		middle := strings.Repeat("m", 2000)
		tail := strings.Repeat("t", 200)
		text := head + middle + tail

		got := Truncate(text, maxChars)

		assert.Equal(t, 800+len(marker), len(got))
		assert.True(t, strings.HasPrefix(got, text[:600]))
		assert.True(t, strings.HasSuffix(got, text[len(text)-200:]))
		assert.Contains(t, got, "...[truncated to fit model context]...")
	})

	t.Run("multi-byte text at budget unchanged", func(t *testing.T) {
		// 1000 characters but 2000 bytes; the budget counts characters
		text := strings.Repeat("é", maxChars)
		assert.Equal(t, text, Truncate(text, maxChars))
	})

	t.Run("multi-byte text over budget cut on rune boundaries", func(t *testing.T) {
		text := strings.Repeat("é", 1500)

		got := Truncate(text, maxChars)

		require.True(t, utf8.ValidString(got))
		assert.Equal(t, 800+utf8.RuneCountInString(marker), utf8.RuneCountInString(got))
		assert.True(t, strings.HasPrefix(got, strings.Repeat("é", 600)+marker))
		assert.True(t, strings.HasSuffix(got, marker+strings.Repeat("é", 200)))
	})
}
