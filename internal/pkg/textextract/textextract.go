// Package textextract turns uploaded brand documents (PDF, DOCX, TXT) into plain text.
package textextract

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"unicode/utf8"
)

// Kind is a supported document format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindTXT  Kind = "txt"
)

const (
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePDF  = "application/pdf"
)

var ErrUnsupported = errors.New("unsupported file type, expected PDF, DOCX or TXT")

// Detect resolves the document kind from magic bytes, falling back to the
// declared content type and file extension.
func Detect(name, contentType string, data []byte) (Kind, error) {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return KindPDF, nil
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return KindDOCX, nil
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	ext := strings.ToLower(path.Ext(name))
	switch {
	case ct == mimePDF || ext == ".pdf":
		return KindPDF, nil
	case ct == mimeDOCX || ext == ".docx":
		return KindDOCX, nil
	case ct == "text/plain" || ext == ".txt" || ext == ".md":
		return KindTXT, nil
	}
	if ct == "" || ct == "application/octet-stream" {
		if utf8.Valid(data) && strings.HasPrefix(http.DetectContentType(data), "text/") {
			return KindTXT, nil
		}
	}
	return "", ErrUnsupported
}

// Extract returns the plain text of data.
func Extract(kind Kind, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch kind {
	case KindPDF:
		text, err = extractPDF(data)
	case KindDOCX:
		text, err = extractDOCX(data)
	case KindTXT:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("text file is not valid UTF-8")
		}
		text = string(data)
	default:
		return "", ErrUnsupported
	}
	if err != nil {
		return "", err
	}
	text = normalizeText(text)
	if text == "" {
		return "", fmt.Errorf("no text extracted from %s", kind)
	}
	return text, nil
}

// Truncate keeps the first limit characters (runes) of text.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit])
}

// normalizeText collapses runs of blank lines and trailing spaces.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
