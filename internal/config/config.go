package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

// Built-in defaults for settings that can also come from the config file.
const (
	DefaultNASAAPIKey  = "DEMO_KEY"
	DefaultNASABaseURL = "https://api.nasa.gov/neo/rest/v1"
	DefaultOverpassURL = "https://overpass-api.de/api/interpreter"
)

// Config holds all service settings.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// NASA NeoWs feed.
	NASAAPIKey         string
	NASABaseURL        string
	NASAConnectTimeout time.Duration
	NASAFetchTimeout   time.Duration
	NEOCacheTTL        time.Duration

	// Overpass API.
	OverpassURL     string
	OverpassTimeout time.Duration
}

// Options are the command-line flags; each also reads an environment variable.
// NASA and Overpass endpoints carry no go-flags default so a config file value
// can fill them when neither flag nor env is set.
type Options struct {
	ConfigFile string `short:"c" long:"config"          env:"CONFIG_FILE"          description:"Path to an optional YAML configuration file"`
	HTTPAddr   string `short:"a" long:"http-addr"       env:"HTTP_ADDR"            description:"HTTP listen address" default:":8080"`
	LogLevel   string `long:"log-level"                 env:"LOG_LEVEL"            description:"Log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	LogFormat  string `long:"log-format"                env:"LOG_FORMAT"           description:"Log format" choice:"json" choice:"text" default:"json"`
	CORSOrigin string `long:"cors-origin"               env:"CORS_ORIGINS"         description:"Comma-separated allowed CORS origins" default:"*"`

	NASAAPIKey         string        `long:"nasa-api-key"     env:"NASA_API_KEY"         description:"NASA API key (default DEMO_KEY)"`
	NASABaseURL        string        `long:"nasa-base-url"    env:"NASA_API_BASE_URL"    description:"NeoWs base URL"`
	NASAConnectTimeout time.Duration `long:"nasa-timeout"     env:"NASA_CONNECT_TIMEOUT" description:"NeoWs connect timeout" default:"10s"`
	NASAFetchTimeout   time.Duration `long:"nasa-fetch-timeout" env:"NASA_FETCH_TIMEOUT" description:"Upper bound on one NeoWs feed fetch" default:"30s"`
	NEOCacheTTL        time.Duration `long:"neo-cache-ttl"    env:"NEO_CACHE_TTL"        description:"NEO feed cache TTL" default:"1h"`

	OverpassURL     string        `long:"overpass-url"     env:"OVERPASS_URL"     description:"Overpass interpreter URL"`
	OverpassTimeout time.Duration `long:"overpass-timeout" env:"OVERPASS_TIMEOUT" description:"Overpass request timeout" default:"30s"`
}

// fileConfig mirrors the dotted property names (nasa.api.key, nasa.api.baseUrl,
// overpass.url) as nested YAML.
type fileConfig struct {
	NASA struct {
		API struct {
			Key     string `yaml:"key"`
			BaseURL string `yaml:"baseUrl"`
		} `yaml:"api"`
	} `yaml:"nasa"`
	Overpass struct {
		URL string `yaml:"url"`
	} `yaml:"overpass"`
}

// Load parses args (without the program name) and the environment, merges an
// optional YAML config file, and validates the result. Flag and env values
// take precedence over the file, which takes precedence over defaults.
func Load(args []string) (*Config, error) {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	var file fileConfig
	if opts.ConfigFile != "" {
		file, err = readFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		HTTPAddr:        opts.HTTPAddr,
		LogLevel:        opts.LogLevel,
		LogFormat:       opts.LogFormat,
		ShutdownTimeout: shutdownTimeout,
		CORSOrigins:     splitList(opts.CORSOrigin),

		NASAAPIKey:         firstNonEmpty(opts.NASAAPIKey, file.NASA.API.Key, DefaultNASAAPIKey),
		NASABaseURL:        strings.TrimRight(firstNonEmpty(opts.NASABaseURL, file.NASA.API.BaseURL, DefaultNASABaseURL), "/"),
		NASAConnectTimeout: opts.NASAConnectTimeout,
		NASAFetchTimeout:   opts.NASAFetchTimeout,
		NEOCacheTTL:        opts.NEOCacheTTL,

		OverpassURL:     firstNonEmpty(opts.OverpassURL, file.Overpass.URL, DefaultOverpassURL),
		OverpassTimeout: opts.OverpassTimeout,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.NASAConnectTimeout <= 0 {
		return errors.New("invalid NASA_CONNECT_TIMEOUT: must be positive")
	}
	if c.NASAFetchTimeout <= 0 {
		return errors.New("invalid NASA_FETCH_TIMEOUT: must be positive")
	}
	if c.NEOCacheTTL <= 0 {
		return errors.New("invalid NEO_CACHE_TTL: must be positive")
	}
	if c.OverpassTimeout <= 0 {
		return errors.New("invalid OVERPASS_TIMEOUT: must be positive")
	}
	if err := validateURL(c.NASABaseURL); err != nil {
		return fmt.Errorf("invalid nasa.api.baseUrl: %w", err)
	}
	if err := validateURL(c.OverpassURL); err != nil {
		return fmt.Errorf("invalid overpass.url: %w", err)
	}
	if len(c.CORSOrigins) == 0 {
		return errors.New("CORS_ORIGINS must name at least one origin")
	}
	return nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be an absolute http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
