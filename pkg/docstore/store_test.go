package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocID(t *testing.T) {
	tests := []struct {
		name      string
		nameA     string
		contentA  string
		nameB     string
		contentB  string
		wantEqual bool
	}{
		{
			name:      "identical name and content",
			nameA:     "a.txt", contentA: "hello docs",
			nameB: "a.txt", contentB: "hello docs",
			wantEqual: true,
		},
		{
			name:      "same name and length, different content (intentional weak dedup)",
			nameA:     "a.txt", contentA: "aaaaaaaaaa",
			nameB: "a.txt", contentB: "bbbbbbbbbb",
			wantEqual: true,
		},
		{
			name:      "different name",
			nameA:     "a.txt", contentA: "hello docs",
			nameB: "b.txt", contentB: "hello docs",
			wantEqual: false,
		},
		{
			name:      "different length",
			nameA:     "a.txt", contentA: "hello docs",
			nameB: "a.txt", contentB: "hello docs!",
			wantEqual: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idA := DocID(tt.nameA, tt.contentA)
			idB := DocID(tt.nameB, tt.contentB)
			assert.Len(t, idA, 12)
			if tt.wantEqual {
				assert.Equal(t, idA, idB)
			} else {
				assert.NotEqual(t, idA, idB)
			}
		})
	}
}

func TestIngest(t *testing.T) {
	s := NewStore()

	id, err := s.Ingest([]byte("hello docs"), "a.txt", "text/plain")
	require.NoError(t, err)

	doc, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "a.txt", doc.Name)
	assert.Equal(t, "hello docs", doc.Content)
}

func TestIngestIdempotent(t *testing.T) {
	s := NewStore()

	id1, err := s.Ingest([]byte("hello docs"), "a.txt", "text/plain")
	require.NoError(t, err)
	id2, err := s.Ingest([]byte("hello docs"), "a.txt", "text/plain")
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, s.Len())
}

func TestIngestRejectsWhitespaceOnly(t *testing.T) {
	s := NewStore()

	_, err := s.Ingest([]byte("   \n\t  "), "blank.txt", "text/plain")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Contains(t, err.Error(), "blank.txt")
	assert.Equal(t, 0, s.Len())
}

func TestListKeepsInsertionOrder(t *testing.T) {
	s := NewStore()

	idA, err := s.Ingest([]byte("first"), "a.txt", "text/plain")
	require.NoError(t, err)
	idB, err := s.Ingest([]byte("second"), "b.txt", "text/plain")
	require.NoError(t, err)
	idC, err := s.Ingest([]byte("third"), "c.txt", "text/plain")
	require.NoError(t, err)

	// Re-ingesting must not move a document
	_, err = s.Ingest([]byte("first"), "a.txt", "text/plain")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		entries := s.List()
		require.Len(t, entries, 3)
		assert.Equal(t, []string{idA, idB, idC}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
	}
}
