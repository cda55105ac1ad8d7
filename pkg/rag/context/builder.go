// Package context assembles the grounding context injected before the model
// answers: the selected documents concatenated as delimited blocks, fitted
// to a character budget.
package context

import (
	"fmt"
	"strings"

	"doc-chat-be/pkg/docstore"
)

// DefaultMaxChars is the default context character budget.
const DefaultMaxChars = 120000

const truncationMarker = "\n\n...[truncated to fit model context]...\n\n"

// Build renders each selected document, in the order given, as a delimited
// block and joins them. Ids no longer present in the store are skipped
// silently (stale toggles referencing a removed document). An empty
// selection yields an empty string.
func Build(selected []string, store *docstore.Store, maxChars int) string {
	var parts []string
	for _, id := range selected {
		doc, ok := store.Get(id)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf(
			"--- BEGIN DOCUMENT: %s ---\n%s\n--- END DOCUMENT: %s ---\n",
			doc.Name, doc.Content, doc.Name,
		))
	}

	return Truncate(strings.Join(parts, "\n"), maxChars)
}

// Truncate fits text into maxChars by keeping the head (60% of the budget)
// and tail (20%) with a marker between them. Beginnings carry definitions
// and setup, endings carry conclusions; middles are the cheapest to drop.
// The budget counts characters, not bytes, so multi-byte text gets the same
// window and cuts never split a rune.
func Truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	head := runes[:int(float64(maxChars)*0.6)]
	tail := runes[len(runes)-int(float64(maxChars)*0.2):]
	return string(head) + truncationMarker + string(tail)
}
