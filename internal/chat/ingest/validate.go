package ingest

import (
	"fmt"
	"mime"
	"regexp"
	"strings"

	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/gabriel-vasile/mimetype"
)

var pageMarker = regexp.MustCompile(`--- Page \d+ ---`)

const (
	ReasonWrongType = "Please upload a valid PDF file"
	ReasonEmptyText = "Could not extract text from this PDF. The file might be image-based or corrupted."
)

// ValidateUpload runs the checks that need no parsing: declared type, sniffed
// type and size.
func ValidateUpload(contentType string, data []byte, maxBytes int64) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != config.PDFContentType {
		return &chatModel.ValidationError{Reason: ReasonWrongType}
	}

	if !mimetype.Detect(data).Is(config.PDFContentType) {
		return &chatModel.ValidationError{Reason: ReasonWrongType}
	}

	if int64(len(data)) > maxBytes {
		return TooLarge(maxBytes)
	}
	return nil
}

// ValidateText rejects documents with no extractable text, which is what an
// image-only PDF produces. Page markers alone do not count as text.
func ValidateText(text string) error {
	if strings.TrimSpace(pageMarker.ReplaceAllString(text, "")) == "" {
		return &chatModel.ValidationError{Reason: ReasonEmptyText}
	}
	return nil
}

func sizeReason(maxBytes int64) string {
	return fmt.Sprintf("File size must be less than %dMB", maxBytes>>20)
}

// TooLarge is the rejection for an upload over maxBytes.
func TooLarge(maxBytes int64) error {
	return &chatModel.ValidationError{Reason: sizeReason(maxBytes)}
}

// IsTooLarge tells a size rejection apart from the other validation errors.
func IsTooLarge(err error, maxBytes int64) bool {
	v, ok := err.(*chatModel.ValidationError)
	return ok && v.Reason == sizeReason(maxBytes)
}
