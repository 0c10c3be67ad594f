// Package logger builds the structured zap logger used by the graph-copier command.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// The debug level selects zap's development configuration (ISO8601 timestamps,
// caller information); every other level selects the production configuration.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("merge finished", zap.Int("attributes", n))
package logger
