package main

import (
	"context"
	"fmt"
	"os"

	"github.com/natexcvi/speedcam-llm/agents"
	"github.com/natexcvi/speedcam-llm/cameras"
	"github.com/natexcvi/speedcam-llm/config"
	"github.com/natexcvi/speedcam-llm/engines"
	"github.com/natexcvi/speedcam-llm/prebuilt"
	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envFile    string
	provider   string
	model      string
	cameraAPI  string
	logLevel   string
	jsonLogs   bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "speedcam",
	Short: "Ask a language model about speed cameras.",
	Long: `Ask a language model about speed cameras.
The model answers from the speed camera API by calling
get_cameras_by_zipcode or search_cameras_by_street.
The API key is read from GEMINI_API_KEY (or OPENAI_API_KEY
with --provider openai), from the environment or a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		configureLogging(cfg)
		return nil
	},
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	c := config.NewConfig()
	if configPath != "" {
		if err := c.LoadFromYAML(configPath); err != nil {
			return nil, err
		}
	}
	c.ApplyEnv()
	flags := cmd.Flags()
	if flags.Changed("provider") {
		c.Provider = provider
		// the key variable follows the provider
		c.APIKey = os.Getenv(c.APIKeyVariable())
	}
	if flags.Changed("model") {
		c.Model = model
	}
	if flags.Changed("camera-api") {
		c.CameraAPIBaseURL = cameraAPI
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("json-logs") {
		c.JSONLogs = jsonLogs
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func configureLogging(c *config.Config) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.JSONLogs {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

// newEngine builds the configured engine. The returned func releases it.
func newEngine(ctx context.Context, c *config.Config) (engines.LLMWithFunctionCalls, func(), error) {
	switch c.Provider {
	case config.ProviderOpenAI:
		engine := engines.NewGPTEngineWithConfig(openai.DefaultConfig(c.APIKey), c.ResolvedModel(), c.Temperature)
		return engine, func() {}, nil
	default:
		engine, err := engines.NewGeminiEngine(ctx, c.APIKey, c.ResolvedModel(), c.Temperature)
		if err != nil {
			return nil, nil, err
		}
		return engine, func() {
			if err := engine.Close(); err != nil {
				log.Debugf("failed to close gemini client: %v", err)
			}
		}, nil
	}
}

func newAssistant(ctx context.Context, c *config.Config) (*agents.ConversationAgent, func(), error) {
	engine, release, err := newEngine(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	finder := cameras.NewClient(cameras.ClientConfig{
		BaseURL: c.CameraAPIBaseURL,
		Timeout: c.CameraAPITimeout,
	})
	assistant, err := prebuilt.NewSpeedCameraAssistant(engine, finder)
	if err != nil {
		release()
		return nil, nil, err
	}
	log.Debugf("using %s model %s against %s", c.Provider, c.ResolvedModel(), c.CameraAPIBaseURL)
	return assistant, release, nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&envFile, "env-file", ".env", "path to a .env file")
	flags.StringVar(&provider, "provider", config.ProviderGemini, "language model provider (gemini or openai)")
	flags.StringVar(&model, "model", "", "model name (defaults to the provider's default)")
	flags.StringVar(&cameraAPI, "camera-api", cameras.DefaultBaseURL, "speed camera API base URL")
	flags.StringVar(&logLevel, "log-level", "info", "log level")
	flags.BoolVar(&jsonLogs, "json-logs", false, "log in JSON")
}

func main() {
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(evalCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
