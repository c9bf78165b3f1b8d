package adapter

import (
	"github.com/akolanti/pdfchat/internal/api"
	"github.com/akolanti/pdfchat/internal/chat/conversation"
	"github.com/akolanti/pdfchat/internal/chat/llm"
	"github.com/akolanti/pdfchat/internal/domain/chatModel"
	"github.com/akolanti/pdfchat/internal/domain/commonModels"
)

const DemoProvider = "demo"

func ToDocumentResponse(doc commonModels.Document) api.DocumentResponse {
	return api.DocumentResponse{
		Id:           doc.Id,
		Name:         doc.Name,
		NumPages:     doc.Info.NumPages,
		Title:        doc.Info.Title,
		Author:       doc.Info.Author,
		Subject:      doc.Info.Subject,
		Creator:      doc.Info.Creator,
		CreationDate: doc.Info.CreationDate,
		TextLength:   doc.Info.TextLength,
		UploadedAt:   doc.UploadedAt,
	}
}

func ToUploadResponse(doc commonModels.Document, sessionId, jobId string) api.UploadResponse {
	return api.UploadResponse{
		SessionId: sessionId,
		Job:       ToInitJobResponse(jobId),
		Document:  ToDocumentResponse(doc),
	}
}

func ToMessageResponses(messages []chatModel.Message) []api.MessageResponse {
	out := make([]api.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, api.MessageResponse{
			Id:        m.Id,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

func ToSessionResponse(snapshot conversation.Snapshot, doc commonModels.Document) api.SessionResponse {
	return api.SessionResponse{
		SessionId:   snapshot.SessionId,
		Document:    ToDocumentResponse(doc),
		Phase:       string(snapshot.Phase),
		IsLoading:   snapshot.IsLoading,
		IsAnalyzing: snapshot.IsAnalyzing,
		Messages:    ToMessageResponses(snapshot.Messages),
	}
}

// ToProvidersResponse reports which backend cred would reach, or demo.
func ToProvidersResponse(catalog []llm.ProviderInfo, suggested []string, cred chatModel.Credential) api.ProvidersResponse {
	active := DemoProvider
	if !cred.IsEmpty() {
		active = string(cred.Provider())
	}
	providers := make([]api.ProviderResponse, 0, len(catalog))
	for _, p := range catalog {
		providers = append(providers, api.ProviderResponse{
			Id:          string(p.Id),
			Name:        p.Name,
			Description: p.Description,
			KeyFormat:   p.KeyFormat,
			URL:         p.URL,
			Recommended: p.Recommended,
		})
	}
	return api.ProvidersResponse{
		Active:             active,
		Providers:          providers,
		SuggestedQuestions: suggested,
	}
}
