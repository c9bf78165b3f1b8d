package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	SessionId string            `json:"session_id" example:"4f1c2b9e-3d55-4f0e-9a39-0c7f3b2d1e11"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type TurnResponse struct {
	Kind      string `json:"kind" example:"Question"`
	Question  string `json:"question,omitempty" example:"What are the main points?"`
	Answer    string `json:"answer"`
	MessageId string `json:"message_id" example:"8d2a1c0e-5b7f-4a51-9c3e-2f6d0b1a7e44"`
}

type Result struct {
	Status       string        `json:"status" example:"COMPLETE"`
	Step         string        `json:"step,omitempty" example:"Complete"`
	TurnResponse *TurnResponse `json:"turn,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type DocumentResponse struct {
	Id           string    `json:"id"`
	Name         string    `json:"doc_name" example:"report.pdf"`
	NumPages     int       `json:"num_pages" example:"12"`
	Title        string    `json:"title"`
	Author       string    `json:"author" example:"Unknown"`
	Subject      string    `json:"subject,omitempty"`
	Creator      string    `json:"creator,omitempty"`
	CreationDate string    `json:"creation_date,omitempty"`
	TextLength   int       `json:"text_length" example:"18250"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type UploadResponse struct {
	SessionId string           `json:"session_id"`
	Job       InitJobResponse  `json:"job"`
	Document  DocumentResponse `json:"document"`
}

type MessageResponse struct {
	Id        string    `json:"id"`
	Role      string    `json:"role" example:"assistant"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionResponse struct {
	SessionId   string            `json:"session_id"`
	Document    DocumentResponse  `json:"document"`
	Phase       string            `json:"phase" example:"idle"`
	IsLoading   bool              `json:"is_loading"`
	IsAnalyzing bool              `json:"is_analyzing"`
	Messages    []MessageResponse `json:"messages"`
}

type ProviderResponse struct {
	Id          string `json:"id" example:"groq"`
	Name        string `json:"name" example:"Groq"`
	Description string `json:"description" example:"Free & Fast Llama models"`
	KeyFormat   string `json:"key_format" example:"gsk_..."`
	URL         string `json:"url"`
	Recommended bool   `json:"recommended"`
}

type ProvidersResponse struct {
	Active             string             `json:"active" example:"demo"`
	Providers          []ProviderResponse `json:"providers"`
	SuggestedQuestions []string           `json:"suggested_questions"`
}

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"redis"`
}

// requests---------------------

type ChatRequest struct {
	Message string `json:"message" validate:"required" example:"What are the key findings?"`
}
