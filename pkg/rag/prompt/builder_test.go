package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWithContext(t *testing.T) {
	context := "--- BEGIN DOCUMENT: a.txt ---\nhello docs\n--- END DOCUMENT: a.txt ---\n"

	got := NewSystemBuilder(context).Build()

	assert.Contains(t, got, "strictly based on the provided documents")
	assert.Contains(t, got, "don't have enough info from the uploaded files")
	assert.Contains(t, got, context[:strings.LastIndex(context, "\n")])
}

func TestBuildWithEmptyContext(t *testing.T) {
	got := NewSystemBuilder("").Build()

	// Directive still present so the model refuses to invent content
	assert.Contains(t, got, "strictly based on the provided documents")
	assert.True(t, strings.HasSuffix(got, "Here are the documents (may be truncated):"))
}
