package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
	"github.com/akolanti/pdfchat/internal/handlers"
	"github.com/akolanti/pdfchat/internal/job"
	"github.com/akolanti/pdfchat/internal/server"
	"github.com/akolanti/pdfchat/internal/worker"
	"github.com/akolanti/pdfchat/pkg/logger_i"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCMD(v *viper.Viper, cfgPath *string) *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(v, *cfgPath)
			if err != nil {
				return err
			}
			return runServer(settings)
		},
	}
	serve.Flags().String("listen-addr", config.ServerListenAddr, "server listen address")
	serve.Flags().String("redis-addr", config.RedisAddr, "redis address")
	serve.Flags().Bool("redis", true, "use redis for jobs and conversations")
	_ = v.BindPFlag("server.listen_addr", serve.Flags().Lookup("listen-addr"))
	_ = v.BindPFlag("redis.addr", serve.Flags().Lookup("redis-addr"))
	_ = v.BindPFlag("redis.enabled", serve.Flags().Lookup("redis"))
	return serve
}

func runServer(settings config.Settings) error {
	logger := logger_i.NewLogger("main")

	//init buffered job channel
	jobChannel := make(chan jobModel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel := make(chan bool)
	var workerWaitGroup sync.WaitGroup

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	jobStore, messageStore, storage, err := openStores(serviceContext, settings.Redis, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting job service", "storage", storage)
	service := job.InitJobService(job.ServiceConfig{
		JobChannel:        jobChannel,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	})
	manager := newManager(settings, messageStore)
	go manager.RunJanitor(serviceContext, config.SessionSweepInterval)

	if settings.Providers.DefaultKey == "" {
		logger.Warn("No default provider key, requests without X-Provider-Key get the demo response")
	}

	handlers.InitJobHandler(handlers.HandlerConfig{
		JobService:     service,
		Conversations:  manager,
		DefaultKey:     settings.Providers.DefaultKey,
		MaxUploadBytes: settings.Server.MaxUploadBytes,
		Storage:        storage,
	})

	//init worker pool
	worker.InitServices(service, manager)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	go server.ShutDownHandler(server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	})
	go server.CreateServer(settings.Server.ListenAddr)

	<-stopExecution
	logger.Info("Server stopped")
	return nil
}
