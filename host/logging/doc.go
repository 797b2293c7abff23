// Package logging provides structured logging with per-module log levels.
//
// Initialize once at startup, then fetch a logger per module:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"device": "debug",
//		},
//	})
//
//	logger := logging.GetLogger("device")
//	logger.Info("Connected", "port", "/dev/ttyACM0")
//
// Logs go to stderr so command output on stdout stays clean.
//
// Example TOML configuration:
//
//	[logging]
//	level = "warn"
//	format = "json"
//	device = "debug"  # level for the "device" module
package logging
