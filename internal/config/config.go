// Package config builds the immutable pipegrep configuration from the command line and the environment.
package config

import (
	"strconv"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Usage is printed when the command line is invalid.
const Usage = "Usage: pipegrep <buffsize> <filesize> <uid> <gid> <string>"

// Disabled turns off a size, owner or group filter.
const Disabled = -1

// MaxBufferSize bounds the queue capacity, every queue allocates its slots upfront.
const MaxBufferSize = 1 << 20

var ErrUsage = errors.New("invalid arguments")

// Env holds the settings read from PIPEGREP_* environment variables.
type Env struct {
	Dir        string `envconfig:"DIR" default:"."`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"error"`
	LogDev     bool   `envconfig:"LOG_DEV" default:"false"`
	Measure    bool   `envconfig:"MEASURE" default:"false"`
	DrawOutput string `envconfig:"DRAW"`
}

// Config is the full run configuration. It is not modified once loaded.
type Config struct {
	BufferSize    int
	SizeThreshold int64
	OwnerID       int64
	GroupID       int64
	Pattern       string

	Env
}

// Load reads the environment and parses args, the command line without the program name.
func Load(args []string) (*Config, error) {
	cfg, err := Parse(args)
	if err != nil {
		return nil, err
	}

	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	cfg.Env = env

	return cfg, nil
}

// LoadEnv reads the PIPEGREP_* environment variables.
func LoadEnv() (Env, error) {
	var env Env

	err := envconfig.Process("pipegrep", &env)
	if err != nil {
		return Env{}, errors.Wrap(err, "unable to load environment")
	}

	return env, nil
}

// Parse validates the positional arguments <buffsize> <filesize> <uid> <gid> <string>.
// Arguments after the fifth are ignored.
func Parse(args []string) (*Config, error) {
	if len(args) < 5 {
		return nil, errors.Wrapf(ErrUsage, "expected 5 arguments, got %d", len(args))
	}

	bufferSize, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, errors.Wrapf(ErrUsage, "buffsize %q is not an integer", args[0])
	}

	if bufferSize <= 0 || bufferSize > MaxBufferSize {
		return nil, errors.Wrapf(ErrUsage, "buffsize must be between 1 and %d, got %d", MaxBufferSize, bufferSize)
	}

	cfg := &Config{
		BufferSize: bufferSize,
		Pattern:    args[4],
		Env:        Env{Dir: ".", LogLevel: "error"},
	}

	for _, field := range []struct {
		name  string
		value string
		dst   *int64
	}{
		{name: "filesize", value: args[1], dst: &cfg.SizeThreshold},
		{name: "uid", value: args[2], dst: &cfg.OwnerID},
		{name: "gid", value: args[3], dst: &cfg.GroupID},
	} {
		v, err := strconv.ParseInt(field.value, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrUsage, "%s %q is not an integer", field.name, field.value)
		}

		if v < Disabled {
			return nil, errors.Wrapf(ErrUsage, "%s must be %d or greater, got %d", field.name, Disabled, v)
		}

		*field.dst = v
	}

	if cfg.Pattern == "" {
		return nil, errors.Wrap(ErrUsage, "search string must not be empty")
	}

	return cfg, nil
}
