package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/pdfchat/internal/adapter/utils"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/handlers"
	"github.com/akolanti/pdfchat/internal/middleware"
	"github.com/akolanti/pdfchat/pkg/logger_i"
)

var (
	server     *http.Server
	_logger    = logger_i.NewLogger("Server")
	routesOnce sync.Once
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

// Routes registers the API on the shared router.
func Routes() http.Handler {
	r := utils.GetRouter()
	routesOnce.Do(func() {
		r.Router.Get("/health", handlers.HealthHandler)
		r.Router.Get("/providers", middleware.GetProvidersHandler)

		r.Router.Post("/documents", middleware.PostDocumentHandler)
		r.Router.Get("/sessions/{id}", middleware.GetSessionHandler)
		r.Router.Get("/sessions/{id}/messages", middleware.GetMessagesHandler)
		r.Router.Post("/sessions/{id}/messages", middleware.PostMessageHandler)
		r.Router.Get("/sessions/{id}/document", middleware.GetDocumentHandler)
		r.Router.Post("/sessions/{id}/clear", middleware.PostClearHandler)

		r.Router.Get("/status/{id}", middleware.GetStatusHandler)
	})
	return r.Router
}

func CreateServer(listenAddr string) {
	server = &http.Server{
		Addr:         listenAddr,
		Handler:      Routes(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		if server != nil {
			server.SetKeepAlivesEnabled(false)
			if err := server.Shutdown(ctx); err != nil {
				_logger.Error("Could not shutdown gracefully", "err", err)
			}
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
	case <-ctx.Done():
		_logger.Error("Force shut down")
	}
	close(shutdownParams.StopExecution)
}
