package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"gopkg.in/yaml.v3"

	"github.com/vendq/vendq/api"
	"github.com/vendq/vendq/dataset"
	"github.com/vendq/vendq/storage"
)

type Config struct {
	Logger  LoggerConfig  `yaml:"logger"`
	API     api.Config    `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Dataset DatasetConfig `yaml:"dataset"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Type   string `yaml:"type"`
	Output string `yaml:"output"`
}

type StorageConfig struct {
	Type   string `yaml:"type"`
	Config any    `yaml:"config"`
}

type DatasetConfig struct {
	Path      string          `yaml:"path"`
	Processor ProcessorConfig `yaml:"processor"`
}

type ProcessorConfig struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Config any    `yaml:"config"`
}

// Services holds everything the server binary needs, built from the raw
// config file.
type Services struct {
	API         api.Config
	Vendors     *storage.VendorStore
	Processor   dataset.Processor
	DatasetPath string
}

func (cfg Config) Parse() (*Services, *slog.Logger, error) {
	logger, err := parseLoggerConfig(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create logger: %w", err)
	}

	vendors, err := parseStorageConfig(cfg.Storage)
	if err != nil {
		return nil, logger, fmt.Errorf("cannot create storage: %w", err)
	}

	p, err := parseProcessorConfig(cfg.Dataset.Processor)
	if err != nil {
		return nil, logger, fmt.Errorf("cannot create processor `%s`: %w", cfg.Dataset.Processor.Name, err)
	}

	if cfg.Dataset.Path == "" {
		return nil, logger, fmt.Errorf("dataset path is required")
	}

	return &Services{
		API:         cfg.API,
		Vendors:     vendors,
		Processor:   p,
		DatasetPath: cfg.Dataset.Path,
	}, logger, nil
}

func parseLoggerConfig(cfg LoggerConfig) (*slog.Logger, error) {
	var logger *slog.Logger
	var handler slog.Handler

	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	w := os.Stdout
	switch cfg.Type {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case "colored-text":
		handler = tint.NewHandler(w, &tint.Options{Level: level, AddSource: true})
	default:
		return nil, fmt.Errorf("invalid log type: %s", cfg.Type)
	}

	logger = slog.New(handler)

	return logger, nil
}

func parseStorageConfig(cfg StorageConfig) (*storage.VendorStore, error) {
	switch cfg.Type {
	case "clickhouse":
		var clickHouseConfig storage.ClickHouseConfig

		if err := remarshal(cfg.Config, &clickHouseConfig); err != nil {
			return nil, fmt.Errorf("cannot parse clickhouse storage config: %w", err)
		}

		s, err := storage.NewVendorStore(clickHouseConfig)
		if err != nil {
			return nil, fmt.Errorf("cannot create clickhouse storage: %w", err)
		}

		return s, nil

	default:
		return nil, fmt.Errorf("invalid storage type: %s", cfg.Type)
	}
}

func parseProcessorConfig(cfg ProcessorConfig) (dataset.Processor, error) {
	switch cfg.Type {
	case "json":
		var jsonConfig dataset.JSONProcessorConfig
		if err := remarshal(cfg.Config, &jsonConfig); err != nil {
			return nil, fmt.Errorf("cannot create json processor: %w", err)
		}

		jsonConfig.Name = cfg.Name

		p, err := dataset.NewJSONProcessor(jsonConfig)
		if err != nil {
			return nil, fmt.Errorf("cannot create json processor: %w", err)
		}

		return p, nil

	case "lua":
		var luaConfig dataset.LuaProcessorConfig
		if err := remarshal(cfg.Config, &luaConfig); err != nil {
			return nil, fmt.Errorf("cannot create lua processor: %w", err)
		}

		luaConfig.Name = cfg.Name

		p, err := dataset.NewLuaProcessor(luaConfig)
		if err != nil {
			return nil, fmt.Errorf("cannot create lua processor: %w", err)
		}

		return p, nil

	default:
		return nil, fmt.Errorf("invalid processor type: %s", cfg.Type)
	}
}

// remarshal takes an input value, marshals it to YAML, and then unmarshals it into a new value of the same type.
// This is useful for converting generic interfaces (like map[string]any) into concrete struct types.
// The output parameter must be a pointer to the target type.
func remarshal(input any, output any) error {
	yamlBytes, err := yaml.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal to YAML: %w", err)
	}

	if err := yaml.Unmarshal(yamlBytes, output); err != nil {
		return fmt.Errorf("failed to unmarshal from YAML: %w", err)
	}

	return nil
}
