package ingest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/akolanti/pdfchat/internal/adapter/utils"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/domain/commonModels"
	"github.com/akolanti/pdfchat/internal/metrics"
	"github.com/akolanti/pdfchat/pkg/logger_i"
)

var logger = logger_i.NewLogger("Document Ingestion")

// whitespace as the browser regexp engine sees it: ASCII, vertical tab,
// unicode separators and the BOM
var (
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	blankLines    = regexp.MustCompile(`\n[\s\v\p{Z}\x{FEFF}]*\n`)
)

type pdfInfo struct {
	Title        string
	Author       string
	Subject      string
	Creator      string
	CreationDate string
}

// Extraction is the normalised text of a PDF plus what the trailer says
// about it.
type Extraction struct {
	Text     string
	NumPages int
	meta     pdfInfo
}

// Info applies the display fallbacks: the title falls back to the file name
// and a missing author reads "Unknown".
func (e Extraction) Info(name string) commonModels.DocumentInfo {
	info := commonModels.DocumentInfo{
		NumPages:     e.NumPages,
		Title:        e.meta.Title,
		Author:       e.meta.Author,
		Subject:      e.meta.Subject,
		Creator:      e.meta.Creator,
		CreationDate: e.meta.CreationDate,
		TextLength:   len([]rune(e.Text)),
	}
	if info.Title == "" {
		info.Title = name
	}
	if info.Author == "" {
		info.Author = "Unknown"
	}
	return info
}

// Extract reads every page of data in order. Any page failure fails the
// whole document.
func Extract(data []byte) (Extraction, error) {
	r, err := openPDF(data)
	if err != nil {
		logger.Error("failed opening of pdf file", "error", err)
		return Extraction{}, &chatModel.ExtractionError{Err: err}
	}

	pages, err := extractPages(r)
	if err != nil {
		return Extraction{}, err
	}

	return Extraction{
		Text:     assemble(pages),
		NumPages: len(pages),
		meta:     readInfo(r),
	}, nil
}

func assemble(pages []rawPage) string {
	var sb strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&sb, "\n\n--- Page %d ---\n%s", p.Number, p.Content)
	}
	return normalize(sb.String())
}

func normalize(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Ingest validates an upload, extracts it and returns the immutable
// document a session is opened on.
func Ingest(ctx context.Context, name, contentType string, data []byte, maxBytes int64) (commonModels.Document, error) {
	log := logger.WithTrace(ctx).With("doc_name", name)
	log.Debug("Processing document", "bytes", len(data), "contentType", contentType)

	if err := ValidateUpload(contentType, data, maxBytes); err != nil {
		log.Warn("upload rejected", "reason", err)
		metrics.CountIngest("rejected")
		return commonModels.Document{}, err
	}

	start := time.Now()
	extraction, err := Extract(data)
	metrics.CaptureExecutionMetrics("pdf_extract", time.Since(start))
	if err != nil {
		log.Error("Error extracting document content", "error", err)
		metrics.CountIngest("extraction_failed")
		return commonModels.Document{}, err
	}

	if err = ValidateText(extraction.Text); err != nil {
		log.Warn("upload rejected", "reason", err)
		metrics.CountIngest("rejected")
		return commonModels.Document{}, err
	}

	doc := commonModels.Document{
		Id:          utils.GetNewUUID(),
		Name:        name,
		RawBytes:    data,
		Text:        extraction.Text,
		Info:        extraction.Info(name),
		UploadedAt:  time.Now().UTC(),
		ContentType: commonModels.PDF,
	}
	log.Info("Successfully extracted document", "characters", doc.Info.TextLength, "pages", doc.Info.NumPages)
	metrics.CountIngest("ok")
	return doc, nil
}
