package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pancakescope/internal/price"
)

// ErrRPCRequired is returned when no RPC endpoint is configured anywhere.
var ErrRPCRequired = errors.New("rpc url is required: pass --rpc <url> or set SOLANA_RPC_URL")

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL string
	// RPCFromFlag reports that the endpoint came from --rpc on this invocation.
	RPCFromFlag bool

	Cached   bool
	Force    bool
	StateDir string
	Path     string

	Over     *float64
	Under    *float64
	PriceURL string

	BatchDelay    time.Duration
	VolumeDelay   time.Duration
	VolumeTimeout time.Duration
	MaxRetries    int
	RetryDelay    time.Duration

	PGDSN     string
	LogLevel  string
	LogFormat string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PANCAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("rpc", "PANCAKE_RPC", "SOLANA_RPC_URL"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	v.SetDefault("state-dir", ".")
	v.SetDefault("price-url", price.DefaultBaseURL)
	v.SetDefault("batch-delay", 100*time.Millisecond)
	v.SetDefault("volume-delay", time.Second)
	v.SetDefault("volume-timeout", 10*time.Second)
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-delay", 500*time.Millisecond)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "console")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:        strings.TrimSpace(v.GetString("rpc")),
		RPCFromFlag:   flagChanged(flags, "rpc"),
		Cached:        v.GetBool("cached"),
		Force:         v.GetBool("force"),
		StateDir:      v.GetString("state-dir"),
		Path:          v.GetString("path"),
		PriceURL:      v.GetString("price-url"),
		BatchDelay:    v.GetDuration("batch-delay"),
		VolumeDelay:   v.GetDuration("volume-delay"),
		VolumeTimeout: v.GetDuration("volume-timeout"),
		MaxRetries:    v.GetInt("max-retries"),
		RetryDelay:    v.GetDuration("retry-delay"),
		PGDSN:         v.GetString("pg-dsn"),
		LogLevel:      v.GetString("log-level"),
		LogFormat:     v.GetString("log-format"),
	}
	cfg.Over = optionalFloat(v, "over")
	cfg.Under = optionalFloat(v, "under")

	return cfg, nil
}

func optionalFloat(v *viper.Viper, key string) *float64 {
	if !v.IsSet(key) {
		return nil
	}
	val := v.GetFloat64(key)
	return &val
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	if flags == nil {
		return false
	}
	flag := flags.Lookup(name)
	return flag != nil && flag.Changed
}
