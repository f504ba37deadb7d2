package fs

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"lexis/internal/port"
)

// TextReader reads documents as UTF-8. A UTF-8 or UTF-16 byte order mark
// selects the decoding and is stripped; files without one are read as UTF-8.
// Markdown files are reduced to their prose.
type TextReader struct{}

var _ port.FileReader = TextReader{}

func NewTextReader() TextReader {
	return TextReader{}
}

func (TextReader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	if IsMarkdown(path) {
		return PlainText([]byte(text)), nil
	}
	return text, nil
}

// Decode converts raw file bytes to a UTF-8 string.
func Decode(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), decoder))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
