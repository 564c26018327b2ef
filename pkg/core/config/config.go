package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	mdwlog "github.com/msto63/vmel/foundation/core/log"
)

// EnvConfigPath names the environment variable that points to the config file
const EnvConfigPath = "VMEL_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Journal JournalConfig `toml:"journal" yaml:"journal"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`

	// path of the file the config was loaded from, empty for defaults
	source string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	DataDir     string `toml:"data_dir" yaml:"data_dir"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
}

// EngineConfig holds the script engine settings
type EngineConfig struct {
	ErrorCapacity   int    `toml:"error_capacity" yaml:"error_capacity"`
	MaxSourceLength int    `toml:"max_source_length" yaml:"max_source_length"`
	MaxDepth        int    `toml:"max_depth" yaml:"max_depth"`
	StrictCoercion  bool   `toml:"strict_coercion" yaml:"strict_coercion"`
	Locale          string `toml:"locale" yaml:"locale"`
	LocalesDir      string `toml:"locales_dir" yaml:"locales_dir"`
}

// ServerConfig holds the HTTP gateway and gRPC evaluator settings
type ServerConfig struct {
	Host             string   `toml:"host" yaml:"host"`
	HTTPPort         int      `toml:"http_port" yaml:"http_port"`
	GRPCPort         int      `toml:"grpc_port" yaml:"grpc_port"`
	ReadTimeout      Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout     Duration `toml:"write_timeout" yaml:"write_timeout"`
	RunTimeout       Duration `toml:"run_timeout" yaml:"run_timeout"`
	ShutdownTimeout  Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	EnableReflection bool     `toml:"enable_reflection" yaml:"enable_reflection"`
	TokenCacheSize   int      `toml:"token_cache_size" yaml:"token_cache_size"`
	TokenCacheTTL    Duration `toml:"token_cache_ttl" yaml:"token_cache_ttl"`
}

// JournalConfig holds the run journal settings
type JournalConfig struct {
	Enabled   bool     `toml:"enabled" yaml:"enabled"`
	Path      string   `toml:"path" yaml:"path"`
	Retention Duration `toml:"retention" yaml:"retention"`
}

// REPLConfig holds interactive mode settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistorySize int    `toml:"history_size" yaml:"history_size"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
	ShowTimings bool   `toml:"show_timings" yaml:"show_timings"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file. The format follows
// the file extension; anything but .yaml and .yml is read as TOML.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, mdwerror.Newf("config file not found: %s", path).
			WithCode(mdwerror.CodeMissingConfig).
			WithOperation("config.Load")
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in paths
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.source = path
	return &cfg, nil
}

// LoadFromEnv loads configuration from the VMEL_CONFIG environment variable
// or the first default location that exists. Without any file the defaults
// are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths lists the locations searched by LoadFromEnv in order
func DefaultPaths() []string {
	paths := []string{
		"./configs/vmel.toml",
		"./vmel.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "vmel", "config.toml"))
	}
	return paths
}

// Source returns the file the configuration was loaded from
func (c *Config) Source() string {
	return c.source
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "vmel"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Engine
	if c.Engine.ErrorCapacity == 0 {
		c.Engine.ErrorCapacity = 20
	}
	if c.Engine.MaxSourceLength == 0 {
		c.Engine.MaxSourceLength = 1 << 20
	}
	if c.Engine.MaxDepth == 0 {
		c.Engine.MaxDepth = 128
	}
	if c.Engine.Locale == "" {
		c.Engine.Locale = "en"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8480
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9480
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 30 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
	if c.Server.RunTimeout.Duration == 0 {
		c.Server.RunTimeout.Duration = 10 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
	if c.Server.TokenCacheSize == 0 {
		c.Server.TokenCacheSize = 256
	}
	if c.Server.TokenCacheTTL.Duration == 0 {
		c.Server.TokenCacheTTL.Duration = 10 * time.Minute
	}

	// Journal
	if c.Journal.Path == "" {
		c.Journal.Path = filepath.Join(c.General.DataDir, "journal.db")
	}
	if c.Journal.Retention.Duration == 0 {
		c.Journal.Retention.Duration = 30 * 24 * time.Hour
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "vmel> "
	}
	if c.REPL.HistorySize == 0 {
		c.REPL.HistorySize = 100
	}
	if c.REPL.HistoryFile == "" {
		c.REPL.HistoryFile = filepath.Join(c.General.DataDir, "repl_history")
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Engine.LocalesDir = os.ExpandEnv(c.Engine.LocalesDir)
	c.Journal.Path = os.ExpandEnv(c.Journal.Path)
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}

// Validate checks value ranges and names
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return mdwerror.Newf(format, args...).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate")
	}

	if c.Engine.ErrorCapacity < 0 {
		return invalid("engine.error_capacity must not be negative, got %d", c.Engine.ErrorCapacity)
	}
	if c.Engine.MaxSourceLength < 0 {
		return invalid("engine.max_source_length must not be negative, got %d", c.Engine.MaxSourceLength)
	}
	if c.Engine.MaxDepth < 0 {
		return invalid("engine.max_depth must not be negative, got %d", c.Engine.MaxDepth)
	}
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level %q is not a log level", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format %q is not a log format", c.General.LogFormat)
	}
	for name, port := range map[string]int{"server.http_port": c.Server.HTTPPort, "server.grpc_port": c.Server.GRPCPort} {
		if port < 0 || port > 65535 {
			return invalid("%s %d is out of range", name, port)
		}
	}
	if c.Server.TokenCacheSize < 0 {
		return invalid("server.token_cache_size must not be negative, got %d", c.Server.TokenCacheSize)
	}
	if c.REPL.HistorySize < 0 {
		return invalid("repl.history_size must not be negative, got %d", c.REPL.HistorySize)
	}
	return nil
}

// HTTPAddress returns the listen address of the HTTP gateway
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// GRPCAddress returns the listen address of the gRPC evaluator
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
}
