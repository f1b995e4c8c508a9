package support

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

const envPrefix = "COUNTER"

// Duration accepts values such as "1s" or "250ms" in YAML and environment
// variables.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	return d.Decode(s)
}

func (d *Duration) Decode(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", value)
	}

	*d = Duration(parsed)
	return nil
}

type Telemetry struct {
	Exporter string            `yaml:"exporter"`
	Endpoint string            `yaml:"endpoint"`
	Headers  map[string]string `yaml:"headers"`
}

type Config struct {
	Port         int       `yaml:"port"`
	Host         string    `yaml:"host"`
	PollInterval Duration  `yaml:"poll_interval" split_words:"true"`
	LogLevel     string    `yaml:"log_level" split_words:"true"`
	LogFormat    string    `yaml:"log_format" split_words:"true"`
	Telemetry    Telemetry `yaml:"telemetry"`
}

func DefaultConfig() Config {
	return Config{
		Port:         3000,
		Host:         "http://localhost:3000",
		PollInterval: Duration(time.Second),
		LogLevel:     "info",
		LogFormat:    "json",
		Telemetry: Telemetry{
			Exporter: ExporterNone,
		},
	}
}

// LoadConfig applies the YAML file at path, when given, over the defaults and
// then applies COUNTER_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "failed to read config")
		}
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to read environment")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Host == "" {
		return errors.New("host is not set")
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("invalid poll interval %s", cfg.PollInterval)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	switch cfg.Telemetry.Exporter {
	case ExporterNone, ExporterConsole, ExporterJaeger:
	case ExporterOTLP:
		if cfg.Telemetry.Endpoint == "" {
			return errors.New("otlp exporter requires an endpoint")
		}
	default:
		return fmt.Errorf("unknown telemetry exporter %q", cfg.Telemetry.Exporter)
	}

	return nil
}

func (cfg Config) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
}
