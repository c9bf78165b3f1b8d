package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	LOG_LEVEL_DEV  = slog.LevelDebug
	TRACE_ID_KEY   = "traceId"

	//if redis init fails, it falls back to the in-memory stores
	FALLBACK_REDIS_TO_INTERNALSTORE = true

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//one conversational turn, fallback included
	JobTimeout = 60 * time.Second

	//serverTimeouts
	ReadTimeout            = 15 * time.Second
	WriteTimeout           = 15 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//uploads
	MaxUploadBytes     int64 = 10 << 20 //10mb
	PDFContentType           = "application/pdf"
	PageExtractTimeout       = 10 * time.Second

	//prompts - hard prefix cuts, counted in characters
	AnalysisCharLimit = 12000
	QuestionCharLimit = 8000
	HistoryWindow     = 5

	//providers
	ProviderHTTPTimeout = 90 * time.Second

	GroqBaseURL       = "https://api.groq.com/openai/v1/"
	GroqModel         = "llama3-70b-8192"
	TogetherBaseURL   = "https://api.together.xyz/v1/"
	TogetherModel     = "meta-llama/Llama-2-7b-chat-hf"
	HuggingFaceURL    = "https://api-inference.huggingface.co/models/"
	HuggingFaceModel  = "microsoft/DialoGPT-large"
	CohereChatURL     = "https://api.cohere.ai/v1/chat"
	CohereModel       = "command-light"
	ModelTemperature  = 0.7
	ProviderKeyHeader = "X-Provider-Key"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore     = 0
	RedisMessageStore = 1

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisMessageStoreTTL = 2 * time.Hour
	RedisPingTimeout     = 3 * time.Second

	//sessions live as long as their conversation log
	SessionTTL           = RedisMessageStoreTTL
	SessionSweepInterval = 10 * time.Minute
)
