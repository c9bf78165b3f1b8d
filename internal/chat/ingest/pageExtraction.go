package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/dslipak/pdf"
)

type rawPage struct {
	Number  int
	Content string
}

var errPageTimeout = errors.New("timeout")

// pageText and pageTimeout are swapped in tests.
var (
	pageText    = func(p pdf.Page) (string, error) { return p.GetPlainText(nil) }
	pageTimeout = config.PageExtractTimeout
)

// openPDF wraps NewReader, which panics on some malformed inputs.
func openPDF(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

func extractPages(r *pdf.Reader) ([]rawPage, error) {
	numPages := r.NumPage()
	logger.Debug("extractPages", "number of pages", numPages)

	pages := make([]rawPage, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, rawPage{Number: i})
			continue
		}

		content, err := protectExtract(page, pageTimeout)
		if err != nil {
			logger.Error("Error parsing page content", "page", i, "error", err)
			return nil, &chatModel.ExtractionError{Page: i, Err: err}
		}

		pages = append(pages, rawPage{
			Number:  i,
			Content: joinRuns(content),
		})
	}
	return pages, nil
}

// joinRuns joins the page's text lines with single spaces.
func joinRuns(content string) string {
	return strings.Join(strings.Split(content, "\n"), " ")
}

func protectExtract(page pdf.Page, timeout time.Duration) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)
	getText := pageText

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				resChan <- result{"", fmt.Errorf("page parser panic: %v", rec)}
			}
		}()
		content, err := getText(page)
		resChan <- result{content, err}
	}()

	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(timeout):
		logger.Error("pageExtract", "timeout", timeout)
		return "", errPageTimeout
	}
}

// readInfo reads the trailer Info dictionary. Missing keys stay empty.
func readInfo(r *pdf.Reader) (info pdfInfo) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("could not read document info", "error", rec)
			info = pdfInfo{}
		}
	}()
	dict := r.Trailer().Key("Info")
	if dict.IsNull() {
		return info
	}
	return pdfInfo{
		Title:        dict.Key("Title").Text(),
		Author:       dict.Key("Author").Text(),
		Subject:      dict.Key("Subject").Text(),
		Creator:      dict.Key("Creator").Text(),
		CreationDate: dict.Key("CreationDate").Text(),
	}
}
