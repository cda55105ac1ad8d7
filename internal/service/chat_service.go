package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/memory"
	"doc-chat-be/internal/websocket"
	"doc-chat-be/pkg/docstore"
	"doc-chat-be/pkg/extract"
	"doc-chat-be/pkg/llm"
	ragcontext "doc-chat-be/pkg/rag/context"
	"doc-chat-be/pkg/rag/prompt"
	"doc-chat-be/pkg/store"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrNoDocuments      = errors.New("no documents uploaded yet")
	ErrBusy             = errors.New("a question is already being answered")
)

// Notice kinds surfaced to the requester
const (
	NoticeExtractionError = "extraction_error"
	NoticeEmptyContent    = "empty_content"
	NoticeNoSelection     = "no_selection"
	NoticeStreamError     = "stream_error"
)

// StreamNotifier delivers live events to the session's connected clients.
type StreamNotifier interface {
	Send(sessionID string, event websocket.Event)
	CloseSession(sessionID string)
}

// IChatService defines the chat service interface
type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
	UploadDocuments(ctx context.Context, sessionID string, files []dto.UploadedFile) (*dto.UploadResponse, error)
	ListDocuments(ctx context.Context, sessionID string) ([]*dto.DocumentResponse, error)
	ToggleDocument(ctx context.Context, sessionID, docID string, included bool) error
	GetChatHistory(ctx context.Context, sessionID string) ([]*dto.ChatHistoryResponse, error)
	Ask(ctx context.Context, sessionID string, request *dto.AskRequest) (*dto.AskResponse, error)
}

// chatService is the conversation manager: it owns all mutation of session
// state and drives the ask flow end to end.
type chatService struct {
	sessionRepo *memory.SessionRepository
	llmProvider llm.LLMProvider
	notifier    StreamNotifier
	logger      logger.ILogger
	maxChars    int
}

func NewChatService(
	sessionRepo *memory.SessionRepository,
	llmProvider llm.LLMProvider,
	notifier StreamNotifier,
	log logger.ILogger,
	contextMaxChars int,
) IChatService {
	if contextMaxChars <= 0 {
		contextMaxChars = ragcontext.DefaultMaxChars
	}
	return &chatService{
		sessionRepo: sessionRepo,
		llmProvider: llmProvider,
		notifier:    notifier,
		logger:      log,
		maxChars:    contextMaxChars,
	}
}

// CreateSession creates a new chat session seeded with the greeting turn
func (cs *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	id := uuid.New()
	sess := store.NewSession(id.String())
	cs.sessionRepo.Save(sess)

	cs.logger.Info("ChatService", "Session created", map[string]interface{}{"session_id": id.String()})

	return &dto.CreateSessionResponse{Id: id}, nil
}

// DeleteSession removes a chat session and disconnects its stream clients
func (cs *chatService) DeleteSession(ctx context.Context, sessionID string) error {
	if _, found := cs.sessionRepo.Get(sessionID); !found {
		return ErrSessionNotFound
	}
	cs.sessionRepo.Delete(sessionID)
	cs.notifier.CloseSession(sessionID)
	return nil
}

// UploadDocuments ingests each uploaded file. Extraction failures and
// whitespace-only files become per-file notices; they never abort the batch.
func (cs *chatService) UploadDocuments(ctx context.Context, sessionID string, files []dto.UploadedFile) (*dto.UploadResponse, error) {
	sess, found := cs.sessionRepo.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}

	response := &dto.UploadResponse{}
	for _, file := range files {
		result := dto.UploadFileResult{FileName: file.Name}

		docID, err := sess.Ingest(file.Data, file.Name, file.MimeType)
		switch {
		case errors.Is(err, docstore.ErrEmptyContent):
			result.Notice = &dto.NoticeDTO{
				Kind:    NoticeEmptyContent,
				Message: fmt.Sprintf("Could not extract text from %s (skipping).", file.Name),
			}
		case errors.Is(err, extract.ErrExtraction):
			result.Notice = &dto.NoticeDTO{
				Kind:    NoticeExtractionError,
				Message: fmt.Sprintf("Could not extract text from %s (skipping).", file.Name),
			}
		case err != nil:
			return nil, err
		default:
			result.DocId = docID
			result.Ingested = true
		}

		if result.Notice != nil {
			cs.logger.Warn("ChatService", "Upload skipped", map[string]interface{}{
				"session_id": sessionID,
				"file_name":  file.Name,
				"kind":       result.Notice.Kind,
			})
			cs.notifier.Send(sessionID, websocket.Event{Type: "notice", Data: result.Notice})
		}

		response.Files = append(response.Files, result)
	}

	response.DocumentCount = sess.Docs().Len()
	return response, nil
}

// ListDocuments returns the session's documents in upload order
func (cs *chatService) ListDocuments(ctx context.Context, sessionID string) ([]*dto.DocumentResponse, error) {
	sess, found := cs.sessionRepo.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}

	entries, flags := sess.Documents()
	response := make([]*dto.DocumentResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, &dto.DocumentResponse{
			Id:       e.ID,
			Name:     e.Document.Name,
			Included: flags[e.ID],
		})
	}
	return response, nil
}

// ToggleDocument flips a document's inclusion flag
func (cs *chatService) ToggleDocument(ctx context.Context, sessionID, docID string, included bool) error {
	sess, found := cs.sessionRepo.Get(sessionID)
	if !found {
		return ErrSessionNotFound
	}
	if !sess.Toggle(docID, included) {
		return ErrDocumentNotFound
	}
	return nil
}

// GetChatHistory returns the transcript; user turns carry the display names
// of the documents used (ids of since-removed documents are dropped).
func (cs *chatService) GetChatHistory(ctx context.Context, sessionID string) ([]*dto.ChatHistoryResponse, error) {
	sess, found := cs.sessionRepo.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}

	turns := sess.Transcript()
	response := make([]*dto.ChatHistoryResponse, 0, len(turns))
	for _, turn := range turns {
		entry := &dto.ChatHistoryResponse{
			Role: turn.Role,
			Chat: turn.Content,
		}
		for _, docID := range turn.DocIDs {
			if doc, ok := sess.Docs().Get(docID); ok {
				entry.UsedDocuments = append(entry.UsedDocuments, doc.Name)
			}
		}
		response = append(response, entry)
	}
	return response, nil
}

// Ask appends the user turn, builds the grounded prompt, streams the model
// response to the session's clients and commits the assistant turn. A
// mid-stream failure commits the partial text instead of discarding it.
func (cs *chatService) Ask(ctx context.Context, sessionID string, request *dto.AskRequest) (*dto.AskResponse, error) {
	sess, found := cs.sessionRepo.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}

	prev, ok := sess.BeginAnswer()
	if !ok {
		if prev == store.StateAnswering {
			return nil, ErrBusy
		}
		return nil, ErrNoDocuments
	}
	defer sess.EndAnswer()

	var notices []dto.NoticeDTO
	selected := sess.SelectedDocIDs()
	if len(selected) == 0 {
		notices = append(notices, dto.NoticeDTO{
			Kind:    NoticeNoSelection,
			Message: "You didn't select any documents. I'll answer without document context.",
		})
		cs.notifier.Send(sessionID, websocket.Event{Type: "notice", Data: notices[len(notices)-1]})
	}

	var usedNames []string
	for _, id := range selected {
		if doc, docOk := sess.Docs().Get(id); docOk {
			usedNames = append(usedNames, doc.Name)
		}
	}

	// The user turn records the selection made at ask time; it stays in the
	// transcript even if the answer later fails.
	sess.AppendTurn(store.Turn{Role: store.RoleUser, Content: request.Chat, DocIDs: selected})

	combined := ragcontext.Build(selected, sess.Docs(), cs.maxChars)
	systemMsg := prompt.NewSystemBuilder(combined).Build()

	turns := sess.Transcript()
	messages := make([]llm.Message, 0, len(turns)+1)
	messages = append(messages, llm.Message{Role: "system", Content: systemMsg})
	for _, turn := range turns {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	reply, streamNotice := cs.consumeStream(ctx, sessionID, messages)
	if streamNotice != nil {
		notices = append(notices, *streamNotice)
		cs.notifier.Send(sessionID, websocket.Event{Type: "notice", Data: *streamNotice})
	}

	sess.AppendTurn(store.Turn{Role: store.RoleAssistant, Content: reply})
	cs.notifier.Send(sessionID, websocket.Event{Type: "chat_done", Data: map[string]string{"chat": reply}})

	return &dto.AskResponse{
		Reply:         reply,
		UsedDocuments: usedNames,
		Notices:       notices,
	}, nil
}

// consumeStream drains the model stream, forwarding each fragment as it
// arrives. On transport failure the text accumulated so far is returned
// together with a transient-failure notice.
func (cs *chatService) consumeStream(ctx context.Context, sessionID string, messages []llm.Message) (string, *dto.NoticeDTO) {
	transientNotice := &dto.NoticeDTO{
		Kind:    NoticeStreamError,
		Message: "The answer stream was interrupted; showing what was received.",
	}

	stream, err := cs.llmProvider.ChatStream(ctx, messages)
	if err != nil {
		cs.logger.Error("ChatService", "Stream open failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return "", transientNotice
	}
	defer stream.Close()

	var acc strings.Builder
	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			return acc.String(), nil
		}
		if err != nil {
			cs.logger.Error("ChatService", "Stream failed mid-flight", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
				"received":   acc.Len(),
			})
			return acc.String(), transientNotice
		}

		acc.WriteString(fragment)
		cs.notifier.Send(sessionID, websocket.Event{Type: "chat_fragment", Data: map[string]string{"text": fragment}})
	}
}
