package qgrover

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Output modes selectable with --output.
const (
	OutputHistogram = "histogram"
	OutputMemory    = "memory"
	OutputQASM      = "qasm"
)

// Config holds the run settings for the command line tool.
type Config struct {
	Shots  int
	Seed   uint64 // 0 draws a fresh seed per run
	Output string
	Dump   bool
}

// NewConfig returns 100 shots, a random seed and histogram output.
func NewConfig() *Config {
	return &Config{
		Shots:  DefaultShots,
		Output: OutputHistogram,
	}
}

// Flags registers the command line surface on fs, defaults taken from NewConfig.
func Flags(fs *pflag.FlagSet) {
	def := NewConfig()
	fs.Int("shots", def.Shots, "number of simulated shots")
	fs.Uint64("seed", def.Seed, "sampler seed, 0 for a random one")
	fs.String("output", def.Output, "one of histogram, memory, qasm")
	fs.Bool("dump", def.Dump, "dump the assembled circuit before running it")
	fs.String("config", "", "optional config file")
}

/*
LoadConfig resolves the configuration from, lowest to highest precedence,
NewConfig defaults, an optional config file, QGROVER_* environment variables
and flags already parsed on fs. fs may be nil.
*/
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	def := NewConfig()
	v := viper.New()

	v.SetDefault("shots", def.Shots)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("output", def.Output)
	v.SetDefault("dump", def.Dump)

	v.SetEnvPrefix("qgrover")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Shots:  v.GetInt("shots"),
		Seed:   v.GetUint64("seed"),
		Output: strings.ToLower(v.GetString("output")),
		Dump:   v.GetBool("dump"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects non-positive shot counts and unknown output modes.
func (c *Config) Validate() error {
	if c.Shots <= 0 {
		return fmt.Errorf("%w: shots must be positive, got %d", ErrInvalidConfig, c.Shots)
	}

	switch c.Output {
	case OutputHistogram, OutputMemory, OutputQASM:
	default:
		return fmt.Errorf("%w: unknown output %q", ErrInvalidConfig, c.Output)
	}
	return nil
}
