// Package prompt builds the system instruction sent ahead of the transcript.
package prompt

import (
	"strings"
)

// SystemBuilder renders the grounding directive plus the assembled document
// context into a single system message.
type SystemBuilder struct {
	context string
}

func NewSystemBuilder(context string) *SystemBuilder {
	return &SystemBuilder{context: context}
}

// Build creates the system instruction. The directive holds even when the
// context is empty: the model must say when the uploaded files don't carry
// the answer rather than invent one.
func (b *SystemBuilder) Build() string {
	var prompt strings.Builder

	b.writeDirective(&prompt)
	b.writeDocuments(&prompt)

	return strings.TrimSpace(prompt.String())
}

func (b *SystemBuilder) writeDirective(prompt *strings.Builder) {
	prompt.WriteString("You are a helpful assistant that answers questions strictly based on the provided documents when they are present.\n")
	prompt.WriteString("If the answer is not found in the documents, say you don't have enough info from the uploaded files.\n")
}

func (b *SystemBuilder) writeDocuments(prompt *strings.Builder) {
	prompt.WriteString("Here are the documents (may be truncated):\n")
	prompt.WriteString(b.context)
}
