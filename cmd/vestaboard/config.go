package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	envAPIKey       = "VESTABOARD_API_KEY"
	envAPISecret    = "VESTABOARD_API_SECRET"
	envSubscription = "VESTABOARD_SUBSCRIPTION"
	envConfig       = "VESTABOARD_CONFIG"
)

// fileConfig is the optional YAML credentials file:
//
//	api_key: ...
//	api_secret: ...
//	subscription: 123456a1-...
type fileConfig struct {
	APIKey       string `yaml:"api_key"`
	APISecret    string `yaml:"api_secret"`
	Subscription string `yaml:"subscription"`
	BaseURL      string `yaml:"base_url"`
}

// settings are the resolved connection parameters. Flags win over the
// environment, which wins over the config file.
type settings struct {
	configPath   string
	apiKey       string
	apiSecret    string
	subscription string
	baseURL      string
	logLevel     string
	logFile      string
}

func (s *settings) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&s.configPath, "config", "", "YAML config file (default $"+envConfig+" or <user config dir>/vestaboard/config.yaml)")
	flagSet.StringVar(&s.apiKey, "api-key", "", "API key; or set "+envAPIKey)
	flagSet.StringVar(&s.apiSecret, "api-secret", "", "API secret; or set "+envAPISecret)
	flagSet.StringVar(&s.subscription, "subscription", "", "subscription ID; or set "+envSubscription+" (default: first subscription)")
	flagSet.StringVar(&s.baseURL, "base-url", "", "API host override")
	flagSet.StringVar(&s.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flagSet.StringVar(&s.logFile, "log-file", "", "also write JSON log records to this file")
}

// resolve fills unset fields from lookupEnv and the config file.
func (s *settings) resolve(lookupEnv func(string) (string, bool)) error {
	path, explicit := s.configPath, s.configPath != ""
	if !explicit {
		if v, ok := lookupEnv(envConfig); ok && strings.TrimSpace(v) != "" {
			path, explicit = v, true
		} else if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "vestaboard", "config.yaml")
		}
	}
	var file fileConfig
	if path != "" {
		loaded, err := loadConfig(path)
		switch {
		case err == nil:
			file = loaded
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return err
		}
	}

	pick := func(flag *string, env, fromFile string) {
		if strings.TrimSpace(*flag) != "" {
			return
		}
		if v, ok := lookupEnv(env); ok && strings.TrimSpace(v) != "" {
			*flag = v
			return
		}
		*flag = fromFile
	}
	pick(&s.apiKey, envAPIKey, file.APIKey)
	pick(&s.apiSecret, envAPISecret, file.APISecret)
	pick(&s.subscription, envSubscription, file.Subscription)
	if strings.TrimSpace(s.baseURL) == "" {
		s.baseURL = file.BaseURL
	}
	return nil
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// newLogger writes text records to stderr and, with logFile set, JSON records to
// that file as well. The returned closer releases the file.
func newLogger(stderr io.Writer, level, logFile string) (*slog.Logger, func() error, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	handlers := []slog.Handler{slog.NewTextHandler(stderr, opts)}
	closer := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closer = f.Close
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
