package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the tooling configuration: where data lives and how to reach
// the AI service. User preferences (theme, images) are a separate persisted
// record in the settings package.
type Config struct {
	Gemini   GeminiConfig   `yaml:"gemini" mapstructure:"gemini"`
	Defaults DefaultsConfig `yaml:"defaults" mapstructure:"defaults"`
}

// GeminiConfig points at the AI service.
type GeminiConfig struct {
	APIBase    string `yaml:"api_base,omitempty" mapstructure:"api_base"`
	Model      string `yaml:"model,omitempty" mapstructure:"model"`
	ImageModel string `yaml:"image_model,omitempty" mapstructure:"image_model"`
	KeyEnv     string `yaml:"key_env,omitempty" mapstructure:"key_env"`
	// Key is resolved from the environment, never stored in the file.
	Key string `yaml:"-" mapstructure:"-"`
}

// DefaultsConfig holds local paths.
type DefaultsConfig struct {
	DataDir string `yaml:"data_dir,omitempty" mapstructure:"data_dir"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lumina", "config.yml")
}

// Load reads the config from disk and env. Returns a usable config even when
// no file exists yet.
func Load() (*Config, error) {
	// A .env in the working directory is honored for the API key.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("gemini.api_base", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.image_model", "imagen-4.0-generate-001")
	v.SetDefault("gemini.key_env", "GEMINI_API_KEY")
	v.SetDefault("defaults.data_dir", defaultDataDir())

	v.SetEnvPrefix("LUMINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("LUMINA_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine — defaults cover everything.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	keyEnv := cfg.Gemini.KeyEnv
	if keyEnv == "" {
		keyEnv = "GEMINI_API_KEY"
	}
	cfg.Gemini.Key = os.Getenv(keyEnv)
	if cfg.Gemini.Key == "" {
		cfg.Gemini.Key = os.Getenv("LUMINA_GEMINI_API_KEY")
	}

	cfg.Defaults.DataDir = ExpandHome(cfg.Defaults.DataDir)

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// LibraryPath returns where the library snapshot lives.
func (c *Config) LibraryPath() string {
	return filepath.Join(c.Defaults.DataDir, "library.yml")
}

// HighlightsPath returns where the highlight snapshot lives.
func (c *Config) HighlightsPath() string {
	return filepath.Join(c.Defaults.DataDir, "highlights.yml")
}

// SettingsPath returns where the settings record lives.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Defaults.DataDir, "settings.yml")
}

// CoversDir returns where cached cover images live.
func (c *Config) CoversDir() string {
	return filepath.Join(c.Defaults.DataDir, "covers")
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "lumina")
}
