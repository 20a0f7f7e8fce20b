package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Tone     ToneConfig   `mapstructure:"tone"`
	Output   OutputConfig `mapstructure:"output"`
	Server   ServerConfig `mapstructure:"server"`
}

type ToneConfig struct {
	Format     string  `mapstructure:"format"`
	Duration   float64 `mapstructure:"duration"`
	Frequency  float64 `mapstructure:"frequency"`
	Amplitude  float64 `mapstructure:"amplitude"`
	SampleRate float64 `mapstructure:"sample_rate"`
	Channels   int     `mapstructure:"channels"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type ServerConfig struct {
	ListenAddr      string  `mapstructure:"listen_addr"`
	Workers         int     `mapstructure:"workers"`
	RequestTimeout  int     `mapstructure:"request_timeout"`
	ShutdownTimeout int     `mapstructure:"shutdown_timeout"`
	MaxDuration     float64 `mapstructure:"max_duration"`
	MaxSampleRate   float64 `mapstructure:"max_sample_rate"`
	MaxChannels     int     `mapstructure:"max_channels"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":   "log_level",
	"format":      "tone.format",
	"duration":    "tone.duration",
	"frequency":   "tone.frequency",
	"amplitude":   "tone.amplitude",
	"sample-rate": "tone.sample_rate",
	"channels":    "tone.channels",
	"out-dir":     "output.dir",

	"server-listen-addr":      "server.listen_addr",
	"server-workers":          "server.workers",
	"server-request-timeout":  "server.request_timeout",
	"server-shutdown-timeout": "server.shutdown_timeout",
	"server-max-duration":     "server.max_duration",
	"server-max-sample-rate":  "server.max_sample_rate",
	"server-max-channels":     "server.max_channels",
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Tone: ToneConfig{
			Format:     DefaultFormat,
			Duration:   2,
			Frequency:  440,
			Amplitude:  1,
			SampleRate: 44100,
			Channels:   1,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         2,
			RequestTimeout:  30,
			ShutdownTimeout: 30,
			MaxDuration:     60,
			MaxSampleRate:   192000,
			MaxChannels:     8,
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("format", defaults.Tone.Format, "Sample format ("+strings.Join(formatNames(), "|")+")")
	fs.Float64("duration", defaults.Tone.Duration, "Tone length in seconds")
	fs.Float64("frequency", defaults.Tone.Frequency, "Tone frequency in Hz")
	fs.Float64("amplitude", defaults.Tone.Amplitude, "Peak amplitude, |a| <= 1")
	fs.Float64("sample-rate", defaults.Tone.SampleRate, "Samples per second")
	fs.Int("channels", defaults.Tone.Channels, "Channel count; every channel carries the same tone")
	fs.String("out-dir", defaults.Output.Dir, "Directory for generated files")
}

// RegisterServerFlags adds the HTTP server flags used by serve and health.
func RegisterServerFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-workers", defaults.Server.Workers, "Max concurrent encodes (0 = unlimited)")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request encode deadline in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain period in seconds")
	fs.Float64("server-max-duration", defaults.Server.MaxDuration, "Longest tone a request may ask for, in seconds")
	fs.Float64("server-max-sample-rate", defaults.Server.MaxSampleRate, "Highest sample rate a request may ask for (0 = unlimited)")
	fs.Int("server-max-channels", defaults.Server.MaxChannels, "Highest channel count a request may ask for (0 = unlimited)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("WAVTONE")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("wavtone")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("tone.format", c.Tone.Format)
	v.SetDefault("tone.duration", c.Tone.Duration)
	v.SetDefault("tone.frequency", c.Tone.Frequency)
	v.SetDefault("tone.amplitude", c.Tone.Amplitude)
	v.SetDefault("tone.sample_rate", c.Tone.SampleRate)
	v.SetDefault("tone.channels", c.Tone.Channels)
	v.SetDefault("output.dir", c.Output.Dir)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("server.max_duration", c.Server.MaxDuration)
	v.SetDefault("server.max_sample_rate", c.Server.MaxSampleRate)
	v.SetDefault("server.max_channels", c.Server.MaxChannels)
}

// bindFlags binds each known flag present in fs to its nested key. Commands
// that don't register a flag leave the key to env, file and defaults.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}
