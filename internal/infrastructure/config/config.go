package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/okralabs/okra/internal/domain/policy"
)

// Config is the process configuration, populated from the environment.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"okra"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"9090"`

	// PolicyFile points at the YAML parameter set; when the file is absent
	// the built-in defaults apply.
	PolicyFile  string `env:"POLICY_FILE" envDefault:"config/policy.yaml"`
	EventSource string `env:"EVENT_SOURCE" envDefault:"https://okra.ocn.ai/v1"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"okra.quotes.v1"`
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c Config) GRPCAddr() string { return fmt.Sprintf(":%d", c.GRPCPort) }

func (c Config) HTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }

// LoadPolicy reads the policy parameter file at path. A missing file falls
// back to the built-in defaults; a present but malformed or inconsistent
// file is a fatal configuration error. The file may be partial: absent keys
// keep their defaults.
func LoadPolicy(path string) (*policy.Parameters, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return policy.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read policy file %s: %w", path, err)
	}

	params, err := parsePolicy(raw)
	if err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("validate policy file %s: %w", path, err)
	}
	return params, nil
}

// parsePolicy decodes YAML by way of JSON so the decimal fields unmarshal
// through their JSON codecs; yaml.v3 has no notion of text unmarshalers.
func parsePolicy(raw []byte) (*policy.Parameters, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	bridged, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	params := policy.Default()
	if err := json.Unmarshal(bridged, params); err != nil {
		return nil, err
	}
	return params, nil
}
