package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the application configuration, loadable from environment
// variables (ORDERS_ prefix), flags, or YAML config files.
type Config struct {
	DataDir   string `default:"data" usage:"Directory holding customers.json, products.json and orders.json" flag:"data-dir"`
	LogLevel  string `default:"info" usage:"Log level (debug, info, warn, error)" flag:"log-level"`
	LogFormat string `default:"console" usage:"Log encoding (console or json)" flag:"log-format"`
}

// LoadConfig loads configuration from defaults, YAML config files,
// environment variables and the given command-line arguments. It returns the
// arguments left after flag parsing.
func LoadConfig(args []string) (*Config, []string, error) {
	if args == nil {
		args = []string{}
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ORDERS",
		Args:      args,
		Files:     []string{"config.yaml", "/etc/order-entry/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, loader.Flags().Args(), nil
}

// Validate rejects configurations the application cannot start with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data directory is required: set ORDERS_DATA_DIR or --data-dir")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return errors.Errorf("unsupported log format %q", c.LogFormat)
	}
	return nil
}
