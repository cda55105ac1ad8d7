package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionSeedsGreeting(t *testing.T) {
	sess := NewSession("s1")

	turns := sess.Transcript()
	require.Len(t, turns, 1)
	assert.Equal(t, RoleAssistant, turns[0].Role)
	assert.Equal(t, Greeting, turns[0].Content)
	assert.Equal(t, StateIdle, sess.State())
}

func TestIngestEnablesChat(t *testing.T) {
	sess := NewSession("s1")

	prev, ok := sess.BeginAnswer()
	assert.False(t, ok)
	assert.Equal(t, StateIdle, prev)

	id, err := sess.Ingest([]byte("hello docs"), "a.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, StateReady, sess.State())

	// First sight defaults to included
	assert.Equal(t, []string{id}, sess.SelectedDocIDs())
}

func TestToggle(t *testing.T) {
	sess := NewSession("s1")
	id, err := sess.Ingest([]byte("hello docs"), "a.txt", "text/plain")
	require.NoError(t, err)

	assert.True(t, sess.Toggle(id, false))
	assert.Empty(t, sess.SelectedDocIDs())

	assert.True(t, sess.Toggle(id, true))
	assert.Equal(t, []string{id}, sess.SelectedDocIDs())

	assert.False(t, sess.Toggle("deadbeef0000", false))
}

func TestAnswerStateMachine(t *testing.T) {
	sess := NewSession("s1")
	_, err := sess.Ingest([]byte("hello docs"), "a.txt", "text/plain")
	require.NoError(t, err)

	prev, ok := sess.BeginAnswer()
	require.True(t, ok)
	assert.Equal(t, StateReady, prev)
	assert.Equal(t, StateAnswering, sess.State())

	// Second ask while answering is rejected
	prev, ok = sess.BeginAnswer()
	assert.False(t, ok)
	assert.Equal(t, StateAnswering, prev)

	sess.EndAnswer()
	assert.Equal(t, StateReady, sess.State())

	_, ok = sess.BeginAnswer()
	assert.True(t, ok)
}

func TestTranscriptAppendOnly(t *testing.T) {
	sess := NewSession("s1")

	sess.AppendTurn(Turn{Role: RoleUser, Content: "question", DocIDs: []string{"abc"}})
	sess.AppendTurn(Turn{Role: RoleAssistant, Content: "answer"})

	turns := sess.Transcript()
	require.Len(t, turns, 3)
	assert.Equal(t, "question", turns[1].Content)
	assert.Equal(t, []string{"abc"}, turns[1].DocIDs)
	assert.Equal(t, "answer", turns[2].Content)
	assert.Empty(t, turns[2].DocIDs)

	// Mutating the copy must not touch session state
	turns[1].Content = "mutated"
	assert.Equal(t, "question", sess.Transcript()[1].Content)
}
