package config

import (
	"fmt"
	"time"

	invopopjsonschema "github.com/invopop/jsonschema"
)

// Duration is a [time.Duration] written as a string such as "30s".
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}

	*d = Duration(v)

	return nil
}

// JSONSchema describes Duration as a string.
func (Duration) JSONSchema() *invopopjsonschema.Schema {
	return &invopopjsonschema.Schema{
		Type:     "string",
		Examples: []any{"30s", "1m"},
	}
}
