// Package extract converts uploaded file bytes into normalized plain text.
// Each supported type has an ordered chain of strategies; the first success
// wins. The text chain ends in a lossy-but-total decode, so only PDFs can
// genuinely fail extraction.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrExtraction wraps the underlying cause when every applicable strategy
// for the detected type has failed.
var ErrExtraction = errors.New("unable to extract text")

type strategy func(data []byte) (string, error)

// Extract detects the file type from the filename suffix and MIME hint and
// routes the bytes through the matching strategy chain. The result is
// trimmed of leading/trailing whitespace.
func Extract(data []byte, fileName, mimeHint string) (string, error) {
	var chain []strategy

	suffix := strings.ToLower(filepath.Ext(fileName))
	isPDF := suffix == ".pdf" || mimeHint == "application/pdf"
	isText := suffix == ".txt" || suffix == ".text" || strings.HasPrefix(mimeHint, "text/")

	switch {
	case isPDF:
		chain = []strategy{extractPDF}
	case isText:
		chain = []strategy{extractText}
	default:
		// Unknown type: guess text first, PDF as a last resort
		chain = []strategy{extractText, extractPDF}
	}

	var lastErr error
	for _, s := range chain {
		text, err := s(data)
		if err == nil {
			return strings.TrimSpace(text), nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("%w from %s: %v", ErrExtraction, fileName, lastErr)
}
