// Configuration of the speed camera assistant.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/natexcvi/speedcam-llm/cameras"
	"github.com/natexcvi/speedcam-llm/engines"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Provider         string        `json:"provider" yaml:"provider"`
	Model            string        `json:"model" yaml:"model"`
	Temperature      float32       `json:"temperature" yaml:"temperature"`
	APIKey           string        `json:"-" yaml:"api_key"`
	CameraAPIBaseURL string        `json:"camera_api_base_url" yaml:"camera_api_base_url"`
	CameraAPITimeout time.Duration `json:"camera_api_timeout" yaml:"camera_api_timeout"`
	ListenAddress    string        `json:"listen_address" yaml:"listen_address"`
	LogLevel         string        `json:"log_level" yaml:"log_level"`
	JSONLogs         bool          `json:"json_logs" yaml:"json_logs"`
}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Provider:         ProviderGemini,
		Temperature:      0.7,
		CameraAPIBaseURL: cameras.DefaultBaseURL,
		CameraAPITimeout: cameras.DefaultTimeout,
		ListenAddress:    ":5000",
		LogLevel:         "info",
	}
}

// LoadFromYAML overrides the fields present in the file.
func (c *Config) LoadFromYAML(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	return nil
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are skipped and variables that are already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		err := godotenv.Load(path)
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("no env file at %s", path)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from the environment. The API key variable
// depends on the provider.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Provider, "LLM_PROVIDER")
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	setFromEnv(&c.Model, "LLM_MODEL")
	switch c.Provider {
	case ProviderGemini:
		setFromEnv(&c.APIKey, "GEMINI_API_KEY")
	case ProviderOpenAI:
		setFromEnv(&c.APIKey, "OPENAI_API_KEY")
	}
	setFromEnv(&c.CameraAPIBaseURL, "SPEED_CAMERA_API_BASE_URL")
	setFromEnv(&c.ListenAddress, "LISTEN_ADDRESS")
	setFromEnv(&c.LogLevel, "LOG_LEVEL")
}

func setFromEnv(field *string, name string) {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		*field = value
	}
}

// ResolvedModel is the configured model or the provider's default.
func (c *Config) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderOpenAI {
		return engines.DefaultOpenAIModel
	}
	return engines.DefaultGeminiModel
}

func (c *Config) APIKeyVariable() string {
	if c.Provider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

func (c *Config) Validate() error {
	var result *multierror.Error
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
		if c.APIKey == "" {
			result = multierror.Append(result, fmt.Errorf("%s not found, set it in the environment or a .env file", c.APIKeyVariable()))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown provider %q, expected %q or %q", c.Provider, ProviderGemini, ProviderOpenAI))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		result = multierror.Append(result, fmt.Errorf("temperature %v out of range [0, 2]", c.Temperature))
	}
	if u, err := url.ParseRequestURI(c.CameraAPIBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("invalid camera API base URL %q", c.CameraAPIBaseURL))
	}
	if c.CameraAPITimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("camera API timeout must be positive, got %s", c.CameraAPITimeout))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
