package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance. An empty configFile searches the
// default locations.
func New(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/news-credibility/")
		v.AddConfigPath("$HOME/.news-credibility")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("NEWS_CHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Analysis defaults
	v.SetDefault("analysis.min_length", 10)
	v.SetDefault("analysis.max_classifier_chars", 512)

	// Classifier candidates, tried in order
	v.SetDefault("classifier.probe_text", "Scientists publish peer reviewed study on climate trends.")
	v.SetDefault("classifier.candidates", []map[string]interface{}{
		{
			"name":          "fake-news",
			"provider":      "huggingface",
			"model":         "mrm8488/distilbert-base-uncased-finetuned-fake-news",
			"labels_preset": "fake-news",
			"probe":         true,
		},
		{
			"name":          "sentiment-fallback",
			"provider":      "huggingface",
			"model":         "distilbert-base-uncased-finetuned-sst-2-english",
			"labels_preset": "sentiment",
			"probe":         true,
		},
	})

	// Hugging Face defaults
	v.SetDefault("huggingface.api_key", "")
	v.SetDefault("huggingface.base_url", "https://api-inference.huggingface.co/models")
	v.SetDefault("huggingface.timeout", "30s")
	v.SetDefault("huggingface.wait_for_model", true)

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.max_tokens", 300)
	v.SetDefault("openai.temperature", 0.0)
	v.SetDefault("openai.timeout", "30s")

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.max_tokens", 300)
	v.SetDefault("gemini.temperature", 0.0)
	v.SetDefault("gemini.timeout", "30s")

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.max_tokens", 300)
	v.SetDefault("bedrock.temperature", 0.0)
	v.SetDefault("bedrock.timeout", "30s")

	// Voyage defaults
	v.SetDefault("voyage.api_key", "")
	v.SetDefault("voyage.dimensions", 0)

	// Retrieval defaults
	v.SetDefault("retrieval.enabled", true)
	v.SetDefault("retrieval.top_k", 3)

	// Embedder defaults
	v.SetDefault("embedder.provider", "huggingface")
	v.SetDefault("embedder.model", "sentence-transformers/all-MiniLM-L6-v2")
	v.SetDefault("embedder.timeout", "30s")

	// Vector index defaults
	v.SetDefault("index.type", "memory")
	v.SetDefault("index.snapshot_path", "./data/news_index.yaml")
	v.SetDefault("index.sqlite_path", "./data/news_index.db")
	v.SetDefault("index.mysql_dsn", "user:password@tcp(localhost:3306)/news_index")
	v.SetDefault("index.table", "news_embeddings")
	v.SetDefault("index.qdrant.url", "http://localhost:6333")
	v.SetDefault("index.qdrant.api_key", "")
	v.SetDefault("index.qdrant.collection", "fake_news")
	v.SetDefault("index.qdrant.timeout", "15s")
	v.SetDefault("index.pinecone.api_key", "")
	v.SetDefault("index.pinecone.host", "")
	v.SetDefault("index.pinecone.namespace", "")

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	// Server defaults
	v.SetDefault("server.listen_address", "127.0.0.1:7860")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.mode", "release")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(c.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
