package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Addr            string        // HTTP listen address
	DatabaseURL     string        // empty = in-memory stores
	AssistBaseURL   string        // AI service base URL
	AssistAPIKey    string        // bearer token for the AI service
	AssistTimeout   time.Duration // per-request timeout for AI calls
	ExtractMaxTasks int           // upper bound on candidates per extraction
}

// Load reads configuration from config.yaml (working directory or
// ~/.config/focusdash), with FOCUSDASH_* environment variables taking
// precedence. A missing config file is not an error; defaults apply.
func Load() (Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "focusdash"))
	}

	viper.SetDefault("addr", ":8080")
	viper.SetDefault("database_url", "")
	viper.SetDefault("assist_base_url", "http://localhost:8090")
	viper.SetDefault("assist_api_key", "")
	viper.SetDefault("assist_timeout", "30s")
	viper.SetDefault("extract_max_tasks", 10)

	viper.SetEnvPrefix("FOCUSDASH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		Addr:            viper.GetString("addr"),
		DatabaseURL:     viper.GetString("database_url"),
		AssistBaseURL:   viper.GetString("assist_base_url"),
		AssistAPIKey:    viper.GetString("assist_api_key"),
		AssistTimeout:   viper.GetDuration("assist_timeout"),
		ExtractMaxTasks: viper.GetInt("extract_max_tasks"),
	}, nil
}
