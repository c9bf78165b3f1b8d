package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "PDFCHAT"

// Settings are the values a deployment may override. Defaults come from the
// constants in environmentVariables.go.
type Settings struct {
	Server    ServerSettings   `mapstructure:"server"`
	Prompt    PromptSettings   `mapstructure:"prompt"`
	Providers ProviderSettings `mapstructure:"providers"`
	Redis     RedisSettings    `mapstructure:"redis"`
	Log       LogSettings      `mapstructure:"log"`
}

type ServerSettings struct {
	ListenAddr     string `mapstructure:"listen_addr"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

type PromptSettings struct {
	AnalysisCharLimit int `mapstructure:"analysis_char_limit"`
	QuestionCharLimit int `mapstructure:"question_char_limit"`
	HistoryWindow     int `mapstructure:"history_window"`
}

// ProviderSettings holds the provider endpoints. DefaultKey is the credential
// used when a request does not carry its own; empty means demo mode.
type ProviderSettings struct {
	DefaultKey       string `mapstructure:"default_key"`
	GroqBaseURL      string `mapstructure:"groq_base_url"`
	GroqModel        string `mapstructure:"groq_model"`
	TogetherBaseURL  string `mapstructure:"together_base_url"`
	TogetherModel    string `mapstructure:"together_model"`
	HuggingFaceURL   string `mapstructure:"huggingface_url"`
	HuggingFaceModel string `mapstructure:"huggingface_model"`
	CohereChatURL    string `mapstructure:"cohere_chat_url"`
	CohereModel      string `mapstructure:"cohere_model"`
}

type RedisSettings struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
}

type LogSettings struct {
	Production bool   `mapstructure:"production"`
	Level      string `mapstructure:"level"`
}

// NewViper returns a viper instance with every default registered, so that
// PDFCHAT_* environment variables are picked up by Unmarshal.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.listen_addr", ServerListenAddr)
	v.SetDefault("server.max_upload_bytes", MaxUploadBytes)

	v.SetDefault("prompt.analysis_char_limit", AnalysisCharLimit)
	v.SetDefault("prompt.question_char_limit", QuestionCharLimit)
	v.SetDefault("prompt.history_window", HistoryWindow)

	v.SetDefault("providers.default_key", "")
	v.SetDefault("providers.groq_base_url", GroqBaseURL)
	v.SetDefault("providers.groq_model", GroqModel)
	v.SetDefault("providers.together_base_url", TogetherBaseURL)
	v.SetDefault("providers.together_model", TogetherModel)
	v.SetDefault("providers.huggingface_url", HuggingFaceURL)
	v.SetDefault("providers.huggingface_model", HuggingFaceModel)
	v.SetDefault("providers.cohere_chat_url", CohereChatURL)
	v.SetDefault("providers.cohere_model", CohereModel)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", RedisAddr)
	v.SetDefault("redis.password", "")

	v.SetDefault("log.production", IS_PROD)
	v.SetDefault("log.level", "")
	return v
}

// Load reads an optional config file and the environment into Settings.
func Load(v *viper.Viper, configFile string) (Settings, error) {
	var s Settings
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return s, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decoding settings: %w", err)
	}
	return s, s.Validate()
}

// Default is Load without a config file or environment.
func Default() Settings {
	s, _ := Load(NewViper(), "")
	return s
}

func (s Settings) Validate() error {
	if s.Prompt.AnalysisCharLimit <= 0 {
		return fmt.Errorf("prompt.analysis_char_limit must be > 0")
	}
	if s.Prompt.QuestionCharLimit <= 0 {
		return fmt.Errorf("prompt.question_char_limit must be > 0")
	}
	if s.Prompt.HistoryWindow < 0 {
		return fmt.Errorf("prompt.history_window cannot be negative")
	}
	if s.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be > 0")
	}
	return nil
}
