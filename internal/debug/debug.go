package debug

import (
	"log"
	"os"
)

// enabled can be baked in with -ldflags "-X .../internal/debug.enabled=true".
var enabled = ""

// Enabled reports whether the debug channel is active. It is resolved once
// at startup; the SLIDESMITH_DEBUG environment variable overrides the
// build-time value.
var Enabled = false

func init() {
	if enabled == "true" || os.Getenv("SLIDESMITH_DEBUG") == "1" {
		Enabled = true
		log.Printf("[DEBUG] debug channel enabled")
	}
}

// Log prints a debug message when the channel is active. Unlike logger.Debug
// this bypasses the configured log level entirely; it is for tracing engine
// internals during development.
func Log(format string, args ...any) {
	if Enabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}
