package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rttmlabel/pkg/config"
	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/session"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content string
		err     error
		check   func(t *testing.T, c *config.Config)
	}{
		"defaults": {
			content: "",
			check: func(t *testing.T, c *config.Config) {
				t.Helper()
				assert.Equal(t, labelapi.DefaultServer, c.Server)
				assert.Equal(t, config.Duration(labelapi.DefaultTimeout), c.Timeout)
				assert.Equal(t, session.Dirs{RTTM: "rttm", Audio: "audio"}, c.DefaultDirs())
			},
		},
		"overrides": {
			content: `
server: http://labels.example:8080
timeout: 5s
os: windows
defaults:
  rttm_dir: /srv/rttm
`,
			check: func(t *testing.T, c *config.Config) {
				t.Helper()
				assert.Equal(t, "http://labels.example:8080", c.Server)
				assert.Equal(t, config.Duration(5*time.Second), c.Timeout)
				assert.True(t, c.Paths().IsWindows())
				assert.Equal(t, session.Dirs{RTTM: "/srv/rttm", Audio: "audio"}, c.DefaultDirs())
			},
		},
		"unknown key": {
			content: "servr: http://x\n",
			err:     config.ErrReadConfig,
		},
		"bad duration": {
			content: "timeout: soon\n",
			err:     config.ErrReadConfig,
		},
		"invalid values": {
			content: "server: not a url\nos: beos\nlog_format: xml\n",
			err:     config.ErrInvalidConfig,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := config.Load(writeConfig(t, tc.content))
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			tc.check(t, c)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, config.ErrReadConfig)
}

//nolint:paralleltest // Sets environment variables.
func TestLoad_Env(t *testing.T) {
	t.Setenv("RTTMLABEL_SERVER", "http://env.example:5000")
	t.Setenv("RTTMLABEL_TIMEOUT", "2m")
	t.Setenv("RTTMLABEL_DEFAULT_AUDIO_DIR", "/env/audio")

	c, err := config.Load(writeConfig(t, "server: http://file.example\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://env.example:5000", c.Server)
	assert.Equal(t, config.Duration(2*time.Minute), c.Timeout)
	assert.Equal(t, "/env/audio", c.Defaults.Audio)
	assert.Equal(t, "rttm", c.Defaults.RTTM)
}

func TestConfig_Encode(t *testing.T) {
	t.Parallel()

	out, err := config.Default().Encode()
	require.NoError(t, err)
	assert.Contains(t, string(out), "timeout: 30s")

	c := &config.Config{}
	require.NoError(t, c.Decode(out))
	assert.Equal(t, config.Default(), c)
}

func TestConfig_Client(t *testing.T) {
	t.Parallel()

	c := config.Default()
	c.Server = "http://127.0.0.1:9999/api/"

	client, err := c.Client()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999/api", client.BaseURL())
}

func TestSchema(t *testing.T) {
	t.Parallel()

	out, err := config.Schema()
	require.NoError(t, err)

	var schema struct {
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(out, &schema))

	assert.Equal(t, "string", schema.Properties["server"].Type)
	assert.Equal(t, "string", schema.Properties["timeout"].Type)
	assert.Equal(t, "object", schema.Properties["defaults"].Type)
}
