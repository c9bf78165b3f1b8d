package main

import (
	"context"
	"fmt"
	"os"

	"github.com/akolanti/pdfchat/internal/chat"
	"github.com/akolanti/pdfchat/internal/chat/conversation"
	"github.com/akolanti/pdfchat/internal/chat/prompt"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/customHttpClient"
	"github.com/akolanti/pdfchat/internal/data/store"
	"github.com/akolanti/pdfchat/internal/domain/jobModel"
	"github.com/akolanti/pdfchat/pkg/logger_i"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var cfgPath string

	root := &cobra.Command{
		Use:          "pdfchat",
		Short:        "Chat with a PDF through free LLM providers",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (yaml, json or toml)")

	root.AddCommand(serveCMD(v, &cfgPath), askCMD(v, &cfgPath))
	return root
}

// loadSettings reads the config file and environment, then installs the
// logger for the chosen mode.
func loadSettings(v *viper.Viper, cfgPath string) (config.Settings, error) {
	settings, err := config.Load(v, cfgPath)
	if err != nil {
		return settings, fmt.Errorf("loading settings: %w", err)
	}
	logger_i.Init(settings.Log.Production, settings.Log.Level)
	return settings, nil
}

// openStores prefers redis and falls back to the in-memory stores when it is
// disabled or offline.
func openStores(ctx context.Context, settings config.RedisSettings, logger *logger_i.Logger) (jobModel.JobStore, jobModel.MessageStore, string, error) {
	if !settings.Enabled {
		logger.Info("Redis disabled, using in-memory stores")
		return store.InitInMemoryJobStore(), store.InitMessageStore(), "memory", nil
	}

	jobStore := store.GetRedisJobStore(ctx, settings)
	messageStore := store.GetRedisMessageStore(ctx, settings)
	if jobStore != nil && messageStore != nil {
		return jobStore, messageStore, "redis", nil
	}

	if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
		return nil, nil, "", fmt.Errorf("redis stores are offline at %s", settings.Addr)
	}
	logger.Error("Redis stores are offline, falling back to in-memory stores")
	return store.InitInMemoryJobStore(), store.InitMessageStore(), "memory", nil
}

func newManager(settings config.Settings, messages jobModel.MessageStore) *conversation.Manager {
	factory := chat.NewProviderFactory(settings.Providers, customHttpClient.GetClient())
	return conversation.NewManager(
		messages,
		chat.NewOrchestrator(factory),
		prompt.NewBuilder(settings.Prompt),
		settings.Prompt.HistoryWindow,
	)
}
