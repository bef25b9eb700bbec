// Package httpserver runs the service's HTTP listener with graceful shutdown.
//
// New takes an env-tagged Config (HTTP_ADDR, HTTP_*_TIMEOUT) and options for
// logging and lifecycle hooks. Run blocks until the context is cancelled or
// SIGINT/SIGTERM arrives, then calls http.Server.Shutdown bounded by
// HTTP_SHUTDOWN_TIMEOUT so that submissions already sending email can finish.
// Failures are wrapped with ErrStart or ErrShutdown.
//
// HealthCheckHandler provides a plain-text liveness or readiness endpoint.
package httpserver
