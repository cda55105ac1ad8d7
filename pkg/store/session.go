// Package store defines the in-memory session state: the uploaded document
// set, per-document toggles, and the append-only conversation transcript.
package store

import (
	"sync"

	"doc-chat-be/pkg/docstore"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// Session states: no documents yet / chat enabled / question in flight
	StateIdle      = "IDLE"
	StateReady     = "READY"
	StateAnswering = "ANSWERING"
)

// Greeting seeds every new transcript.
const Greeting = "Ask something about the article"

// Turn is one transcript message. DocIDs is set on user turns only and
// records which documents were toggled on when the question was asked.
// Turns are immutable once appended.
type Turn struct {
	Role    string
	Content string
	DocIDs  []string
}

// Session is the state container for one chat session. All mutation goes
// through its methods; the mutex guards against concurrent requests for the
// same session (the model is one in-flight ask at a time).
type Session struct {
	ID string

	mu       sync.Mutex
	state    string
	turns    []Turn
	docs     *docstore.Store
	included map[string]bool
}

func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		state:    StateIdle,
		turns:    []Turn{{Role: RoleAssistant, Content: Greeting}},
		docs:     docstore.NewStore(),
		included: make(map[string]bool),
	}
}

// Ingest adds an uploaded file to the session's document store. A document
// seen for the first time defaults to included.
func (s *Session) Ingest(data []byte, fileName, mimeHint string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.docs.Ingest(data, fileName, mimeHint)
	if err != nil {
		return "", err
	}
	if _, seen := s.included[id]; !seen {
		s.included[id] = true
	}
	if s.state == StateIdle {
		s.state = StateReady
	}
	return id, nil
}

// Toggle flips a document's inclusion flag. Returns false for unknown ids.
func (s *Session) Toggle(docID string, included bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs.Get(docID); !ok {
		return false
	}
	s.included[docID] = included
	return true
}

// Documents lists the session's documents in upload order together with
// their inclusion flags.
func (s *Session) Documents() ([]docstore.Entry, map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.docs.List()
	flags := make(map[string]bool, len(entries))
	for _, e := range entries {
		flags[e.ID] = s.included[e.ID]
	}
	return entries, flags
}

// SelectedDocIDs snapshots the ids currently toggled on, in upload order.
func (s *Session) SelectedDocIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var selected []string
	for _, e := range s.docs.List() {
		if s.included[e.ID] {
			selected = append(selected, e.ID)
		}
	}
	return selected
}

// Docs exposes the document store for context assembly and name lookups.
func (s *Session) Docs() *docstore.Store {
	return s.docs
}

// Transcript returns a copy of the turns so far.
func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// AppendTurn adds a turn to the transcript. Turns are never reordered or
// deleted within a session.
func (s *Session) AppendTurn(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeginAnswer transitions Ready -> Answering. On failure it reports the
// state that blocked the transition: Idle (no documents yet) or Answering
// (an ask already in flight).
func (s *Session) BeginAnswer() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return s.state, false
	}
	s.state = StateAnswering
	return StateReady, true
}

// EndAnswer transitions back to Ready on completion or failure.
func (s *Session) EndAnswer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateAnswering {
		s.state = StateReady
	}
}
