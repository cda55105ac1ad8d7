package dto

import (
	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

// UploadedFile carries one upload from the presentation layer: raw bytes
// plus the filename and MIME hint the browser supplied.
type UploadedFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// NoticeDTO is a non-fatal warning surfaced to the requester. Kinds:
// "extraction_error", "empty_content", "no_selection", "stream_error".
type NoticeDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type UploadFileResult struct {
	FileName string     `json:"file_name"`
	DocId    string     `json:"doc_id,omitempty"`
	Ingested bool       `json:"ingested"`
	Notice   *NoticeDTO `json:"notice,omitempty"`
}

type UploadResponse struct {
	Files         []UploadFileResult `json:"files"`
	DocumentCount int                `json:"document_count"`
}

type DocumentResponse struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

type ToggleDocumentRequest struct {
	Included *bool `json:"included" validate:"required"`
}

type ChatHistoryResponse struct {
	Role          string   `json:"role"`
	Chat          string   `json:"chat"`
	UsedDocuments []string `json:"used_documents,omitempty"` // display names, user turns only
}

type AskRequest struct {
	Chat string `json:"chat" validate:"required"`
}

type AskResponse struct {
	Reply         string      `json:"reply"`
	UsedDocuments []string    `json:"used_documents,omitempty"`
	Notices       []NoticeDTO `json:"notices,omitempty"`
}
