// Package logging provides a minimal leveled logger over the standard
// library log package.
//
// The level is read from the environment at startup: DEBUG=true enables
// debug output, otherwise LOG_LEVEL (debug, info, warn, error) is used,
// defaulting to info. SetLevel allows tests to override the level at
// runtime.
package logging
