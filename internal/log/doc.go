// Package log provides simple leveled logging for keepalived.
//
// This package implements a lightweight logging system with colored output
// and support for different log levels: DEBUG, INFO, WARN, and ERROR.
// It provides global logging functions that can be used throughout the
// application, including the configuration parse pass, which routes every
// directive diagnostic through this package.
//
// # Log Levels
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages
//   - WARN: Warning messages for rejected or adjusted configuration values
//   - ERROR: Error messages for failures and exceptions
//
// # Example Usage
//
// Basic logging:
//
//	log.Infof("Starting configuration pass")
//	log.Warnf("Invalid value '%s' for global smtp_alert specified", value)
//	log.Errorf("Failed to read %s: %v", path, err)
//
// Enabling verbose mode for debug output:
//
//	log.SetVerbose(true)
//	log.Debugf("Installed %d global keywords", n)
//
// Fatal errors that exit the application:
//
//	if err != nil {
//	    log.Fatalf("Critical error: %v", err) // Exits with code 1
//	}
//
// The package uses global state for simplicity. Output destinations can be
// overridden with SetOutput, which tests use to capture messages.
package log
