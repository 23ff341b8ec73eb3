// Package config loads the settings shared by the rttmlabel commands.
//
// Settings come from, in increasing precedence: built-in defaults, an
// optional YAML file, and RTTMLABEL_* environment variables. Command line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"sigs.k8s.io/yaml"

	invopopjsonschema "github.com/invopop/jsonschema"

	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/log"
	"github.com/macropower/rttmlabel/pkg/pathutil"
	"github.com/macropower/rttmlabel/pkg/session"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "RTTMLABEL_"

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrReadConfig    = errors.New("read config")
)

// Config holds the client settings.
type Config struct {
	// Server is the base URL of the annotation backend.
	Server string `env:"SERVER" json:"server,omitempty" jsonschema:"format=uri"`
	// UserAgent is sent with every backend request.
	UserAgent string `env:"USER_AGENT" json:"user_agent,omitempty"`
	// OS forces the path style of folder inputs. Empty means the local OS.
	OS string `env:"OS" json:"os,omitempty"`
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" json:"log_level,omitempty"`
	// LogFormat is one of text, logfmt, json.
	LogFormat string `env:"LOG_FORMAT" json:"log_format,omitempty" jsonschema:"enum=text,enum=logfmt,enum=json"`
	// Defaults are the directories restored by a reset.
	Defaults Directories `envPrefix:"DEFAULT_" json:"defaults"`
	// Timeout bounds every backend request.
	Timeout Duration `env:"TIMEOUT" json:"timeout,omitempty"`
}

// Directories is a pair of RTTM and audio directories.
type Directories struct {
	RTTM  string `env:"RTTM_DIR" json:"rttm_dir,omitempty"`
	Audio string `env:"AUDIO_DIR" json:"audio_dir,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server:    labelapi.DefaultServer,
		Timeout:   Duration(labelapi.DefaultTimeout),
		LogLevel:  "warn",
		LogFormat: string(log.FormatText),
		Defaults: Directories{
			RTTM:  "rttm",
			Audio: "audio",
		},
	}
}

// Load reads the YAML file at path, if any, over the defaults and then
// applies environment overrides. A missing file is only an error when path
// was set explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
		}

		err = cfg.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadConfig, path, err)
		}
	}

	err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return nil, fmt.Errorf("%w: parse env: %w", ErrReadConfig, err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Decode merges YAML data into c. Unknown keys are rejected.
func (c *Config) Decode(data []byte) error {
	err := yaml.UnmarshalStrict(data, c)
	if err != nil {
		return fmt.Errorf("unmarshal yaml: %w", err)
	}

	return nil
}

// Encode renders c as YAML.
func (c *Config) Encode() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return out, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var merr error

	if c.Server == "" {
		merr = multierror.Append(merr, errors.New("server must be set"))
	} else if _, err := labelapi.NewClient(c.Server); err != nil {
		merr = multierror.Append(merr, err)
	}

	if c.Timeout < 0 {
		merr = multierror.Append(merr, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}

	switch strings.ToLower(c.OS) {
	case "", "windows", "win", "win32", "posix", "unix", "linux", "darwin", "macos":
	default:
		merr = multierror.Append(merr, fmt.Errorf("unknown os %q", c.OS))
	}

	if _, err := log.GetLevel(c.LogLevel); err != nil {
		merr = multierror.Append(merr, err)
	}

	if _, err := log.GetFormat(c.LogFormat); err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, merr)
	}

	return nil
}

// Paths returns the path helper for the configured OS.
func (c *Config) Paths() *pathutil.Paths {
	if c.OS == "" {
		return pathutil.New(nil)
	}

	return pathutil.New(pathutil.StaticHost(pathutil.HostForOS(c.OS)))
}

// DefaultDirs returns the reset directories as a [session.Dirs].
func (c *Config) DefaultDirs() session.Dirs {
	return session.Dirs{RTTM: c.Defaults.RTTM, Audio: c.Defaults.Audio}
}

// Client creates a backend client from the settings.
func (c *Config) Client(opts ...labelapi.Option) (*labelapi.Client, error) {
	base := []labelapi.Option{labelapi.WithTimeout(time.Duration(c.Timeout))}
	if c.UserAgent != "" {
		base = append(base, labelapi.WithUserAgent(c.UserAgent))
	}

	client, err := labelapi.NewClient(c.Server, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return client, nil
}

// Schema returns the JSON schema of the config file.
func Schema() ([]byte, error) {
	r := &invopopjsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	s := r.ReflectFromType(reflect.TypeOf(Config{}))
	s.Title = "rttmlabel config"

	out, err := s.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal json schema: %w", err)
	}

	return out, nil
}
