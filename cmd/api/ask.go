package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akolanti/pdfchat/internal/adapter/utils"
	"github.com/akolanti/pdfchat/internal/chat/conversation"
	"github.com/akolanti/pdfchat/internal/chat/ingest"
	"github.com/akolanti/pdfchat/internal/chat/prompt"
	"github.com/akolanti/pdfchat/internal/config"
	"github.com/akolanti/pdfchat/internal/data/store"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/job"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type askOptions struct {
	file      string
	key       string
	questions []string
}

func askCMD(v *viper.Viper, cfgPath *string) *cobra.Command {
	var opts askOptions
	ask := &cobra.Command{
		Use:   "ask",
		Short: "Analyse a PDF and answer questions about it without a server",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(v, *cfgPath)
			if err != nil {
				return err
			}
			if opts.key == "" {
				opts.key = settings.Providers.DefaultKey
			}
			return runAsk(cmd.Context(), cmd.OutOrStdout(), settings, opts)
		},
	}
	ask.Flags().StringVarP(&opts.file, "file", "f", "", "PDF to chat with")
	ask.Flags().StringVarP(&opts.key, "key", "k", "", "provider API key, the prefix picks the backend")
	ask.Flags().StringArrayVarP(&opts.questions, "question", "q", nil, "question to ask, repeatable")
	_ = ask.MarkFlagRequired("file")
	return ask
}

// runAsk plays the same turns the server queues, one after the other.
func runAsk(ctx context.Context, out io.Writer, settings config.Settings, opts askOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, config.TRACE_ID_KEY, utils.GetNewUUID())

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.file, err)
	}
	doc, err := ingest.Ingest(ctx, filepath.Base(opts.file), config.PDFContentType, data, settings.Server.MaxUploadBytes)
	if err != nil {
		return err
	}

	manager := newManager(settings, store.InitMessageStore())
	cred := chatModel.Credential{Key: opts.key}

	turn, err := manager.Open(ctx, doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "📄 %s: %d pages, %d characters\n\n", doc.Name, doc.Info.NumPages, doc.Info.TextLength)
	fmt.Fprintln(out, runTurn(ctx, manager, turn, cred))

	if len(opts.questions) == 0 {
		fmt.Fprintln(out, "\nTry asking:")
		for _, q := range prompt.SuggestedQuestions() {
			fmt.Fprintf(out, "  - %s\n", q)
		}
		return nil
	}

	for _, q := range opts.questions {
		turn, err = manager.Submit(ctx, turn.SessionId, q)
		if err != nil {
			return fmt.Errorf("question %q: %w", q, err)
		}
		fmt.Fprintf(out, "\n❓ %s\n\n%s\n", strings.TrimSpace(q), runTurn(ctx, manager, turn, cred))
	}
	return nil
}

func runTurn(ctx context.Context, manager conversation.Service, turn conversation.Turn, cred chatModel.Credential) string {
	turnCtx, cancel := context.WithTimeout(ctx, config.JobTimeout)
	defer cancel()
	result := manager.Execute(turnCtx, job.NewTurnJob(turn, "", cred))
	if result.Error.Message != "" {
		return result.Error.Message
	}
	return result.JobPayload.Answer
}
