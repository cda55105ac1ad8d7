package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	dslipak "github.com/dslipak/pdf"
	ledongthuc "github.com/ledongthuc/pdf"
)

// extractPDF tries whole-document extraction first, then a page-by-page
// fallback for files the primary reader rejects. Both libraries panic on
// some malformed inputs, so each attempt runs recovered.
func extractPDF(data []byte) (string, error) {
	text, err := pdfPlainText(data)
	if err != nil {
		text, err = pdfPageText(data)
	}
	if err != nil {
		return "", err
	}

	// Normalize line endings
	return strings.ReplaceAll(text, "\r", ""), nil
}

func pdfPlainText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("copy pdf text: %w", err)
	}

	return buf.String(), nil
}

func pdfPageText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf fallback panic: %v", r)
		}
	}()

	reader, err := dslipak.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf fallback: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document
			continue
		}
		pages = append(pages, pageText)
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("pdf fallback: no extractable pages")
	}

	return strings.Join(pages, "\n"), nil
}
