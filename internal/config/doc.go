// Package config loads runtime configuration from the environment, with an
// optional .env file.
//
// The core packages hold no process-wide state: configuration is read here
// once and passed down as values. Command-line flags override anything
// loaded from the environment.
package config
