package chatModel

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type Message struct {
	Id        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ProviderKind string

const (
	Groq        ProviderKind = "groq"
	HuggingFace ProviderKind = "huggingface"
	Cohere      ProviderKind = "cohere"
	Together    ProviderKind = "together"
)

// Credential is whatever key the caller supplied for this request. It is
// never persisted.
type Credential struct {
	Key string
}

func (c Credential) IsEmpty() bool {
	return strings.TrimSpace(c.Key) == ""
}

// Provider is inferred from the key prefix only. Unknown shapes go to Groq.
func (c Credential) Provider() ProviderKind {
	return InferProvider(c.Key)
}

func InferProvider(key string) ProviderKind {
	switch {
	case strings.HasPrefix(key, "gsk_"):
		return Groq
	case strings.HasPrefix(key, "hf_"):
		return HuggingFace
	case strings.HasPrefix(key, "co-"):
		return Cohere
	default:
		return Groq
	}
}

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseAnalyzing Phase = "analyzing"
	PhaseAnswering Phase = "answering"
)
