package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/handiism/record-catalog/internal/config"
	"github.com/handiism/record-catalog/internal/tui"
)

// configEnv overrides the settings file location.
const configEnv = "RECORD_CATALOG_CONFIG"

func main() {
	path := strings.TrimSpace(os.Getenv(configEnv))
	if path == "" {
		path = config.DefaultPath()
	}

	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
