// Package extraction defines the collaborator boundary for turning uploaded
// resume files into raw text. Binary formats (PDF, DOCX) are handled by an
// external service; this package ships the plain-text implementation and the
// contract everything else depends on.
package extraction

import (
	"context"
	"strings"
	"unicode/utf8"

	"skill-ready/internal/pkg/apperr"
)

type Extractor interface {
	// Extract returns the raw text of a resume payload. Empty or unreadable
	// content fails with an apperr.KindExtraction error so callers can tell
	// "we couldn't read your resume" apart from "no skills found".
	Extract(ctx context.Context, fileName string, content []byte) (string, error)
}

type PlainText struct{}

func NewPlainText() PlainText {
	return PlainText{}
}

func (PlainText) Extract(_ context.Context, fileName string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", apperr.Extraction("empty resume content", nil)
	}
	if !utf8.Valid(content) {
		return "", apperr.Extraction("resume content is not valid text: "+fileName, nil)
	}
	text := strings.TrimSpace(string(content))
	if text == "" {
		return "", apperr.Extraction("resume content is blank", nil)
	}
	return text, nil
}
