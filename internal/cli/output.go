package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/opencode-ai/vibeui/internal/service"
)

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool {
	return jsonOutput
}

// WriteOutput writes v as indented JSON.
func WriteOutput(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeEnvelope prints a facade result. Error envelopes are printed the same
// way and turned into ErrReported so the process exits non-zero.
func writeEnvelope(out io.Writer, env service.Envelope) error {
	if _, err := fmt.Fprintln(out, env.Text); err != nil {
		return err
	}
	if env.IsError {
		return ErrReported
	}
	return nil
}
