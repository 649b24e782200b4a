// Command vibeui serves and renders design themes.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/opencode-ai/vibeui/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
