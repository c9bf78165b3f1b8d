package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/akolanti/pdfchat/internal/adapter"
	"github.com/akolanti/pdfchat/internal/chat/ingest"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
)

const (
	// room for the multipart framing around the file itself
	multipartOverhead = 1 << 20
	multipartMemory   = 32 << 20

	msgExtractionFailed = "Failed to process PDF. Please try again."
	msgBadUpload        = "Could not retrieve file"
)

var errBadUpload = errors.New(msgBadUpload)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "err", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func traceFrom(ctx context.Context) string {
	trace, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return trace
}

func validateContext(ctx context.Context) bool {
	if handlerInstance == nil {
		logRH.Error("job handler is not initialised")
		return false
	}
	if ctx.Err() != nil {
		logRH.WithTrace(ctx).Warn("context error", "err", ctx.Err())
		return false
	}
	return true
}

// readUpload pulls the "document" part out of a multipart body. At most
// maxBytes+1 bytes of the file are read so an oversized upload is still
// recognised as one.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (data []byte, name string, contentType string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err = r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", "", ingest.TooLarge(maxBytes)
		}
		return nil, "", "", errBadUpload
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		return nil, "", "", errBadUpload
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, "", "", errBadUpload
	}

	name = strings.TrimSpace(r.FormValue("document_name"))
	if name == "" {
		name = header.Filename
	}
	return data, name, header.Header.Get("Content-Type"), nil
}

func writeIngestError(w http.ResponseWriter, err error, maxBytes int64) {
	var validationErr *chatModel.ValidationError
	var extractionErr *chatModel.ExtractionError
	switch {
	case errors.As(err, &validationErr):
		code := http.StatusBadRequest
		if ingest.IsTooLarge(validationErr, maxBytes) {
			code = http.StatusRequestEntityTooLarge
		}
		WriteErrorResponse(w, code, "", validationErr.Reason)
	case errors.As(err, &extractionErr):
		WriteErrorResponse(w, http.StatusUnprocessableEntity, "", msgExtractionFailed)
	default:
		WriteErrorResponse(w, http.StatusBadRequest, "", msgBadUpload)
	}
}

func writeSessionError(w http.ResponseWriter, sessionId string, err error) {
	switch {
	case errors.Is(err, chatModel.ErrSessionNotFound):
		WriteErrorResponse(w, http.StatusNotFound, sessionId, "Session not found")
	case errors.Is(err, chatModel.ErrEmptyMessage):
		WriteErrorResponse(w, http.StatusBadRequest, sessionId, "Message is empty")
	case errors.Is(err, chatModel.ErrRequestInFlight):
		WriteErrorResponse(w, http.StatusConflict, sessionId, "A request is already in progress for this session")
	default:
		logRH.Error("session operation failed", "sessionId", sessionId, "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, sessionId, "Internal Server Error")
	}
}
