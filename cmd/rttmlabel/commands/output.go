package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	outputText outputFormat = "text"
	outputYAML outputFormat = "yaml"
	outputJSON outputFormat = "json"
)

func getOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case "", outputText:
		return outputText, nil
	case outputYAML, outputJSON:
		return f, nil
	}

	return "", fmt.Errorf("%w: output: unknown format %q", ErrInvalidArgument, s)
}

// printResult writes v in the selected structured format. Text output is
// produced by text, which is only called for [outputText].
func printResult(w io.Writer, format string, v any, text func(io.Writer) error) error {
	f, err := getOutputFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		err = enc.Encode(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		err = enc.Close()
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err = enc.Encode(v)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

	default:
		return text(w)
	}

	return nil
}
