// Package config loads typed configuration from environment variables.
//
// Configuration structs declare their variables with github.com/caarlos0/env
// tags and live next to the package they configure (email.Config,
// httpserver.Config, inquiry.Config, contact.Config). The binary composes them
// and calls Load or MustLoad once at startup. A .env file is honoured for
// local development.
package config
