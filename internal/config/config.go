package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/August26/proxystatus-go/internal/model"
	"github.com/August26/proxystatus-go/internal/parser"
)

// EnvPrefix namespaces every variable, e.g. PROXYSTATUS_TIMEOUT_MS.
const EnvPrefix = "PROXYSTATUS"

// env holds the defaults that command-line flags may override.
type env struct {
	DefaultType   string `envconfig:"DEFAULT_TYPE" default:"http"`
	TimeoutMs     int    `envconfig:"TIMEOUT_MS" default:"10000"`
	HostTimeoutMs int    `envconfig:"HOST_TIMEOUT_MS" default:"5000"`
	Concurrency   int    `envconfig:"CONCURRENCY" default:"20"`
	Retries       int    `envconfig:"RETRIES" default:"1"`
	ReferenceURL  string `envconfig:"REFERENCE_URL" default:"http://www.google.com/"`
	GeoIPPath     string `envconfig:"GEOIP_PATH"`
	Format        string `envconfig:"FORMAT" default:"json"`
	Resolve       bool   `envconfig:"RESOLVE" default:"true"`
	Verbose       bool   `envconfig:"VERBOSE" default:"false"`
}

// Load builds the default configuration from the environment. Variables
// from dotenv files (".env" when none are given) are applied first without
// overriding the real environment; missing files are ignored.
func Load(dotenvFiles ...string) (model.Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return model.Config{}, fmt.Errorf("loading dotenv: %w", err)
	}

	var e env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return model.Config{}, fmt.Errorf("processing environment: %w", err)
	}

	kind, err := parser.KindFromScheme(e.DefaultType)
	if err != nil {
		return model.Config{}, fmt.Errorf("%s_DEFAULT_TYPE: %w", EnvPrefix, err)
	}

	return model.Config{
		DefaultKind:      kind,
		ContentTimeoutMs: e.TimeoutMs,
		HostTimeoutMs:    e.HostTimeoutMs,
		Concurrency:      e.Concurrency,
		Retries:          e.Retries,
		ReferenceURL:     e.ReferenceURL,
		GeoIPPath:        e.GeoIPPath,
		OutputFormat:     e.Format,
		ResolveHosts:     e.Resolve,
		Verbose:          e.Verbose,
	}, nil
}

// Normalize clamps values the CLI cannot work with.
func Normalize(cfg model.Config) (model.Config, error) {
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.ContentTimeoutMs <= 0 {
		return cfg, fmt.Errorf("timeout must be positive, got %dms", cfg.ContentTimeoutMs)
	}
	if cfg.HostTimeoutMs <= 0 {
		return cfg, fmt.Errorf("host timeout must be positive, got %dms", cfg.HostTimeoutMs)
	}
	switch cfg.OutputFormat {
	case "json", "csv":
	default:
		return cfg, fmt.Errorf("unsupported format: %s", cfg.OutputFormat)
	}
	return cfg, nil
}
