package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configType      = "toml"
	envPrefix       = "TAP"
	configFileMode  = 0o600
	configDirMode   = 0o700
	configDir       = ".config/tap"
	configFile      = "config.toml"
	diagnosticsDir  = ".local/state/tap"
	diagnosticsFile = "diagnostics.log"
	tempFilePattern = ".config-*.toml.tmp"

	BaseURLKey          = "base_url"
	PollIntervalKey     = "poll_interval"
	RequestTimeoutKey   = "request_timeout"
	TypewriterDelayKey  = "typewriter_delay"
	DiagnosticsPathKey  = "diagnostics.path"
	DiagnosticsLevelKey = "diagnostics.level"

	DefaultBaseURL          = "http://localhost:8000"
	DefaultPollInterval     = 2 * time.Second
	DefaultRequestTimeout   = 10 * time.Second
	DefaultTypewriterDelay  = 30 * time.Millisecond
	DefaultDiagnosticsLevel = "info"
)

var ErrConfigExists = errors.New("config file already exists")

type Config struct {
	BaseURL         string
	PollInterval    time.Duration
	RequestTimeout  time.Duration
	TypewriterDelay time.Duration
	Diagnostics     DiagnosticsConfig
}

type DiagnosticsConfig struct {
	Path  string
	Level string
}

// Store layers defaults, the config file and TAP_* environment variables
// through one viper instance. Flags bound by the caller win over all three.
type Store struct {
	cfg  *viper.Viper
	path string
}

func NewStore(cfg *viper.Viper, path string) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	if path == "" {
		path = filepath.Join(homeDir, configDir, configFile)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	cfg.SetConfigFile(path)
	cfg.SetConfigType(configType)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	defaults := DefaultConfig(homeDir)
	cfg.SetDefault(BaseURLKey, defaults.BaseURL)
	cfg.SetDefault(PollIntervalKey, defaults.PollInterval.String())
	cfg.SetDefault(RequestTimeoutKey, defaults.RequestTimeout.String())
	cfg.SetDefault(TypewriterDelayKey, defaults.TypewriterDelay.String())
	cfg.SetDefault(DiagnosticsPathKey, defaults.Diagnostics.Path)
	cfg.SetDefault(DiagnosticsLevelKey, defaults.Diagnostics.Level)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Store{cfg: cfg, path: filepath.Clean(path)}, nil
}

func DefaultConfig(homeDir string) Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		PollInterval:    DefaultPollInterval,
		RequestTimeout:  DefaultRequestTimeout,
		TypewriterDelay: DefaultTypewriterDelay,
		Diagnostics: DiagnosticsConfig{
			Path:  filepath.Join(homeDir, diagnosticsDir, diagnosticsFile),
			Level: DefaultDiagnosticsLevel,
		},
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Viper() *viper.Viper {
	return s.cfg
}

// Load returns the effective configuration after validation.
func (s *Store) Load() (Config, error) {
	config := Config{
		BaseURL:         strings.TrimSpace(s.cfg.GetString(BaseURLKey)),
		PollInterval:    s.cfg.GetDuration(PollIntervalKey),
		RequestTimeout:  s.cfg.GetDuration(RequestTimeoutKey),
		TypewriterDelay: s.cfg.GetDuration(TypewriterDelayKey),
		Diagnostics: DiagnosticsConfig{
			Path:  strings.TrimSpace(s.cfg.GetString(DiagnosticsPathKey)),
			Level: strings.ToLower(strings.TrimSpace(s.cfg.GetString(DiagnosticsLevelKey))),
		},
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", BaseURLKey, c.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid %s %q: scheme must be http or https", BaseURLKey, c.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid %s %q: missing host", BaseURLKey, c.BaseURL)
	}

	durations := []struct {
		key   string
		value time.Duration
	}{
		{PollIntervalKey, c.PollInterval},
		{RequestTimeoutKey, c.RequestTimeout},
		{TypewriterDelayKey, c.TypewriterDelay},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("invalid %s: must be a positive duration", d.key)
		}
	}

	switch c.Diagnostics.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid %s %q", DiagnosticsLevelKey, c.Diagnostics.Level)
	}

	return nil
}

// Encode renders the configuration in the file format.
func Encode(config Config) ([]byte, error) {
	data, err := toml.Marshal(toSchema(config))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Write stores the configuration atomically. An existing file is only
// replaced when force is set.
func (s *Store) Write(config Config, force bool) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if !force {
		if _, err := os.Stat(s.path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, s.path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	data, err := Encode(config)
	if err != nil {
		return err
	}

	return writeAtomic(s.path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	cleanup = false

	return nil
}
