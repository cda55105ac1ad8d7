package memory

import (
	"testing"
	"time"

	"doc-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveGetDelete(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Hour)
	sess := store.NewSession("s1")

	repo.Save(sess)

	got, found := repo.Get("s1")
	require.True(t, found)
	assert.Same(t, sess, got)

	repo.Delete("s1")
	_, found = repo.Get("s1")
	assert.False(t, found)
}

func TestGetUnknown(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Hour)

	_, found := repo.Get("nope")
	assert.False(t, found)
}

func TestIdleSessionExpires(t *testing.T) {
	repo := NewSessionRepository(20*time.Millisecond, time.Hour)
	repo.Save(store.NewSession("s1"))

	time.Sleep(40 * time.Millisecond)

	_, found := repo.Get("s1")
	assert.False(t, found)
}
