package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akolanti/pdfchat/internal/adapter/utils"
	"github.com/akolanti/pdfchat/internal/handlers"
	"github.com/akolanti/pdfchat/internal/metrics"
	"github.com/akolanti/pdfchat/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var PostDocumentHandler = Wrap(handlers.PostDocumentHandler)
var PostMessageHandler = Wrap(handlers.PostMessageHandler)
var PostClearHandler = Wrap(handlers.PostClearHandler)

var GetSessionHandler = Wrap(handlers.GetSessionHandler)
var GetMessagesHandler = Wrap(handlers.GetMessagesHandler)
var GetDocumentHandler = Wrap(handlers.GetDocumentHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)
var GetProvidersHandler = Wrap(handlers.GetProvidersHandler)

// Wrap adds the trace id, request logging and the request counter.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := metrics.NewStatusRecorder(w) //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
		} else {
			next(rec, re.req)
		}

		route := utils.GetChiRoutePattern(re.req)
		metrics.HttpRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.Status)).Inc() //metrics
		re.logger.Info("Request served", "method", r.Method, "route", route, "status", rec.Status, "duration", time.Since(start))
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Debug("New request received")
	return injectTrace(re)
}
