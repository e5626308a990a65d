// Package logger builds configured log/slog loggers for the relay.
// It supports JSON output for production and text output for development,
// with settings loadable from the environment via pkg/config.
//
// Loggers are constructed once at startup and injected into components;
// nothing in this module logs through a package-level default.
package logger
