package dom

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config tunes the dispatcher and its logging.
type Config struct {
	LogLevel             string `toml:"log_level"`
	TraceDispatch        bool   `toml:"trace_dispatch"`
	ReportListenerErrors bool   `toml:"report_listener_errors"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:             "info",
		ReportListenerErrors: true,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config load failed (%s)", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config invalid (%s)", path)
	}
	return cfg, nil
}

func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config parse failed")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.LogLevel) == "" {
		return errors.New("log_level is required")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

// NewLogger returns a logrus logger at the configured level. Tracing forces
// debug so phase transitions are visible.
func (c Config) NewLogger() (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log_level")
	}
	if c.TraceDispatch && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}
	log := logrus.New()
	log.SetLevel(lvl)
	return log, nil
}
