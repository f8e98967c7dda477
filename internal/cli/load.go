package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/veridict/veridict/internal/model"
)

// loadConfig builds the effective configuration: defaults, then the YAML
// config file if one was found, then environment variables.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// API key comes from the environment only, never from config files.
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")

	if addr := viper.GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if base := viper.GetString("openai_base_url"); base != "" {
		cfg.OpenAI.BaseURL = base
	}

	return cfg, nil
}
