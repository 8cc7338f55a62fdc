package config

import (
	"fmt"
	"time"
)

// AnalysisConfig represents the limits applied by the analysis engine
type AnalysisConfig struct {
	MinLength          int
	MaxClassifierChars int
	TopK               int
}

// LabelRule maps one classifier label to a category name.
// Kept as a list because viper lower-cases map keys.
type LabelRule struct {
	Label    string `mapstructure:"label"`
	Category string `mapstructure:"category"`
}

// ClassifierCandidate is one entry of the ordered classifier fallback list
type ClassifierCandidate struct {
	Name         string        `mapstructure:"name"`
	Provider     string        `mapstructure:"provider"`
	Model        string        `mapstructure:"model"`
	Labels       []LabelRule   `mapstructure:"labels"`
	LabelsPreset string        `mapstructure:"labels_preset"`
	Probe        bool          `mapstructure:"probe"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// LabelTable returns the explicit label rules as a label -> category table
func (c ClassifierCandidate) LabelTable() map[string]string {
	if len(c.Labels) == 0 {
		return nil
	}
	table := make(map[string]string, len(c.Labels))
	for _, r := range c.Labels {
		table[r.Label] = r.Category
	}
	return table
}

// HuggingFaceConfig represents the configuration for the Hugging Face Inference API
type HuggingFaceConfig struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	WaitForModel bool
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// VoyageConfig represents the configuration for Voyage AI embeddings
type VoyageConfig struct {
	APIKey     string
	Dimensions int
}

// RetrievalConfig toggles the similar-pattern lookup
type RetrievalConfig struct {
	Enabled bool
	TopK    int
}

// EmbedderConfig selects the embedding provider used for similarity lookups
type EmbedderConfig struct {
	Provider string
	Model    string
	Timeout  time.Duration
}

// QdrantConfig contains connection details for a Qdrant collection
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// PineconeConfig contains connection details for a Pinecone index
type PineconeConfig struct {
	APIKey    string
	Host      string
	Namespace string
}

// IndexConfig selects and configures the pre-built vector index
type IndexConfig struct {
	Type         string
	SnapshotPath string
	SQLitePath   string
	MySQLDSN     string
	Table        string
	Qdrant       QdrantConfig
	Pinecone     PineconeConfig
}

// RedisConfig contains connection details for the redis cache
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// CacheConfig configures the classification result cache
type CacheConfig struct {
	Enabled          bool
	Type             string
	TTL              time.Duration
	CleanupFrequency time.Duration
	Redis            RedisConfig
}

// ServerConfig configures the HTTP frontend
type ServerConfig struct {
	ListenAddress string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	Mode          string
}

// GetAnalysis returns the analysis configuration
func (c *Config) GetAnalysis() AnalysisConfig {
	return AnalysisConfig{
		MinLength:          c.GetInt("analysis.min_length"),
		MaxClassifierChars: c.GetInt("analysis.max_classifier_chars"),
		TopK:               c.GetInt("retrieval.top_k"),
	}
}

// GetClassifierCandidates returns the ordered list of classifier candidates
func (c *Config) GetClassifierCandidates() ([]ClassifierCandidate, error) {
	var candidates []ClassifierCandidate
	if err := c.v.UnmarshalKey("classifier.candidates", &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode classifier candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no classifier candidates configured")
	}
	for i := range candidates {
		if candidates[i].Name == "" {
			candidates[i].Name = fmt.Sprintf("%s:%s", candidates[i].Provider, candidates[i].Model)
		}
	}
	return candidates, nil
}

// GetHuggingFace returns the Hugging Face configuration
func (c *Config) GetHuggingFace() HuggingFaceConfig {
	return HuggingFaceConfig{
		APIKey:       c.GetString("huggingface.api_key"),
		BaseURL:      c.GetString("huggingface.base_url"),
		Timeout:      c.durationOr("huggingface.timeout", 30*time.Second),
		WaitForModel: c.GetBool("huggingface.wait_for_model"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		Timeout:     c.durationOr("openai.timeout", 30*time.Second),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		Timeout:     c.durationOr("gemini.timeout", 30*time.Second),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		Timeout:     c.durationOr("bedrock.timeout", 30*time.Second),
	}
}

// GetVoyage returns the Voyage configuration
func (c *Config) GetVoyage() VoyageConfig {
	return VoyageConfig{
		APIKey:     c.GetString("voyage.api_key"),
		Dimensions: c.GetInt("voyage.dimensions"),
	}
}

// GetRetrieval returns the retrieval configuration
func (c *Config) GetRetrieval() RetrievalConfig {
	return RetrievalConfig{
		Enabled: c.GetBool("retrieval.enabled"),
		TopK:    c.GetInt("retrieval.top_k"),
	}
}

// GetEmbedder returns the embedder configuration
func (c *Config) GetEmbedder() EmbedderConfig {
	return EmbedderConfig{
		Provider: c.GetString("embedder.provider"),
		Model:    c.GetString("embedder.model"),
		Timeout:  c.durationOr("embedder.timeout", 30*time.Second),
	}
}

// GetIndex returns the vector index configuration
func (c *Config) GetIndex() IndexConfig {
	return IndexConfig{
		Type:         c.GetString("index.type"),
		SnapshotPath: c.GetString("index.snapshot_path"),
		SQLitePath:   c.GetString("index.sqlite_path"),
		MySQLDSN:     c.GetString("index.mysql_dsn"),
		Table:        c.GetString("index.table"),
		Qdrant: QdrantConfig{
			URL:        c.GetString("index.qdrant.url"),
			APIKey:     c.GetString("index.qdrant.api_key"),
			Collection: c.GetString("index.qdrant.collection"),
			Timeout:    c.durationOr("index.qdrant.timeout", 15*time.Second),
		},
		Pinecone: PineconeConfig{
			APIKey:    c.GetString("index.pinecone.api_key"),
			Host:      c.GetString("index.pinecone.host"),
			Namespace: c.GetString("index.pinecone.namespace"),
		},
	}
}

// GetCache returns the cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil {
		return CacheConfig{}, err
	}
	cleanup, err := c.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return CacheConfig{}, err
	}
	return CacheConfig{
		Enabled:          c.GetBool("cache.enabled"),
		Type:             c.GetString("cache.type"),
		TTL:              ttl,
		CleanupFrequency: cleanup,
		Redis: RedisConfig{
			Address:  c.GetString("cache.redis.address"),
			Password: c.GetString("cache.redis.password"),
			DB:       c.GetInt("cache.redis.db"),
		},
	}, nil
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
		ReadTimeout:   c.durationOr("server.read_timeout", 30*time.Second),
		WriteTimeout:  c.durationOr("server.write_timeout", 60*time.Second),
		Mode:          c.GetString("server.mode"),
	}
}

// durationOr parses a duration key, falling back when it is unset or invalid
func (c *Config) durationOr(key string, fallback time.Duration) time.Duration {
	d, err := c.GetDuration(key)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
