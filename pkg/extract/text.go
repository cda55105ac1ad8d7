package extract

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// extractText decodes bytes with no encoding hint: strict UTF-8 first, then
// Latin-1 as a permissive fallback. Latin-1 maps every byte to a rune, so
// this strategy cannot fail.
func extractText(data []byte) (string, error) {
	return DecodeText(data, ""), nil
}

// DecodeText decodes raw bytes into a string. If encoding names a charset
// (IANA name, e.g. "windows-1251"), it is tried first; a failed lookup or
// decode falls through to the UTF-8/Latin-1 chain.
func DecodeText(data []byte, encoding string) string {
	if encoding != "" {
		if enc, err := ianaindex.IANA.Encoding(encoding); err == nil && enc != nil {
			if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
				return string(decoded)
			}
		}
	}

	if utf8.Valid(data) {
		return string(data)
	}

	// Guaranteed-success fallback for odd encodings
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// ISO 8859-1 decodes any byte sequence; this path is unreachable
		return string(data)
	}
	return string(decoded)
}
