package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/akolanti/pdfchat/internal/adapter"
	"github.com/akolanti/pdfchat/internal/adapter/utils"
	"github.com/akolanti/pdfchat/internal/api"
	"github.com/akolanti/pdfchat/internal/chat/ingest"
	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/chat/prompt"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

// PostDocumentHandler godoc
// @Summary      Upload a PDF and open a chat session
// @Description  Extracts the text of the PDF, opens a session on it and queues the automatic analysis. Poll the returned status url for the summary.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        document       formData  file    true   "The PDF to chat with"
// @Param        document_name  formData  string  false  "Display name, defaults to the file name"
// @Param        X-Provider-Key header    string  false  "Provider API key, the prefix picks the backend"
// @Success      202  {object}  api.UploadResponse  "Session opened, analysis queued"
// @Failure      400  {object}  api.JobResponse     "Not a PDF, no extractable text or a malformed form"
// @Failure      413  {object}  api.JobResponse     "File too large"
// @Failure      422  {object}  api.JobResponse     "The PDF could not be parsed"
// @Router       /documents [post]
func PostDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}
	h := handlerInstance
	ctx := r.Context()

	data, name, contentType, err := readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		logRH.WithTrace(ctx).Warn("Bad upload", "err", err)
		writeIngestError(w, err, h.maxUploadBytes)
		return
	}

	doc, err := ingest.Ingest(ctx, name, contentType, data, h.maxUploadBytes)
	if err != nil {
		writeIngestError(w, err, h.maxUploadBytes)
		return
	}

	turn, err := h.conversations.Open(ctx, doc)
	if err != nil {
		writeSessionError(w, "", err)
		return
	}
	jobId := h.dispatch(ctx, turn, h.credential(r))
	writeJsonResponse(w, http.StatusAccepted, adapter.ToUploadResponse(doc, turn.SessionId, jobId))
}

// GetSessionHandler godoc
// @Summary      Get a session
// @Description  Returns the document metadata, the loading flags and the full conversation log.
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  api.SessionResponse
// @Failure      404  {object}  api.JobResponse  "Session not found"
// @Router       /sessions/{id} [get]
func GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	snapshot, err := handlerInstance.conversations.Snapshot(r.Context(), id)
	if err != nil {
		writeSessionError(w, id, err)
		return
	}
	doc, err := handlerInstance.conversations.Document(id)
	if err != nil {
		writeSessionError(w, id, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(snapshot, doc))
}

// GetMessagesHandler godoc
// @Summary      List the conversation log
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {array}   api.MessageResponse
// @Failure      404  {object}  api.JobResponse  "Session not found"
// @Router       /sessions/{id}/messages [get]
func GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	snapshot, err := handlerInstance.conversations.Snapshot(r.Context(), id)
	if err != nil {
		writeSessionError(w, id, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToMessageResponses(snapshot.Messages))
}

// GetDocumentHandler godoc
// @Summary      Download the uploaded PDF
// @Description  Serves the original bytes for an inline viewer.
// @Tags         Sessions
// @Produce      application/pdf
// @Param        id   path      string  true  "Session ID"
// @Success      200  {file}    file
// @Failure      404  {object}  api.JobResponse  "Session not found"
// @Router       /sessions/{id}/document [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	doc, err := handlerInstance.conversations.Document(id)
	if err != nil {
		writeSessionError(w, id, err)
		return
	}
	w.Header().Set("Content-Type", config.PDFContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Name))
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(doc.RawBytes); err != nil {
		logRH.WithTrace(r.Context()).Error("Error writing document", "sessionId", id, "err", err)
	}
}

// PostMessageHandler godoc
// @Summary      Ask a question about the document
// @Description  Appends the question to the log and queues the answer. Only one request per session may be in flight.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id              path    string           true   "Session ID"
// @Param        request         body    api.ChatRequest  true   "The question"
// @Param        X-Provider-Key  header  string           false  "Provider API key, the prefix picks the backend"
// @Success      202  {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400  {object}  api.JobResponse      "Empty or malformed message"
// @Failure      404  {object}  api.JobResponse      "Session not found"
// @Failure      409  {object}  api.JobResponse      "A request is already in flight"
// @Router       /sessions/{id}/messages [post]
func PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")

	var requestData api.ChatRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the message handler reader", "err", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.WithTrace(r.Context()).Warn("Bad message request", "err", err)
		WriteErrorResponse(w, http.StatusBadRequest, id, "Bad Request")
		return
	}

	turn, err := handlerInstance.conversations.Submit(r.Context(), id, requestData.Message)
	if err != nil {
		writeSessionError(w, id, err)
		return
	}
	jobId := handlerInstance.dispatch(r.Context(), turn, handlerInstance.credential(r))
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(jobId))
}

// PostClearHandler godoc
// @Summary      Clear the conversation
// @Description  Drops the log and anything in flight, then re-analyses the cached document text.
// @Tags         Sessions
// @Produce      json
// @Param        id              path    string  true   "Session ID"
// @Param        X-Provider-Key  header  string  false  "Provider API key, the prefix picks the backend"
// @Success      202  {object}  api.InitJobResponse  "Analysis queued"
// @Failure      404  {object}  api.JobResponse      "Session not found"
// @Router       /sessions/{id}/clear [post]
func PostClearHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	turn, err := handlerInstance.conversations.Clear(r.Context(), id)
	if err != nil {
		writeSessionError(w, id, err)
		return
	}
	jobId := handlerInstance.dispatch(r.Context(), turn, handlerInstance.credential(r))
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(jobId))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, traceFrom(r.Context()))

	logRH.Debug("Get Status Request", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// GetProvidersHandler godoc
// @Summary      List providers and suggested questions
// @Description  Shows which backend the supplied key would reach, or demo when there is none.
// @Tags         Info
// @Produce      json
// @Param        X-Provider-Key  header  string  false  "Provider API key"
// @Success      200  {object}  api.ProvidersResponse
// @Router       /providers [get]
func GetProvidersHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	res := adapter.ToProvidersResponse(llm.Catalog(), prompt.SuggestedQuestions(), handlerInstance.credential(r))
	writeJsonResponse(w, http.StatusOK, res)
}

// HealthHandler godoc
// @Summary      Liveness check
// @Tags         Info
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	storage := ""
	if handlerInstance != nil {
		storage = handlerInstance.storage
	}
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok", Storage: storage})
}
