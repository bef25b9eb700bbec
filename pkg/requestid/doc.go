// Package requestid attaches a correlation id to every inbound request.
//
// Middleware reuses a well-formed X-Request-ID header from the client or
// generates a UUID, stores it in the request context and echoes it in the
// response. LoggerExtractor plugs into logger.WithContextExtractors so every
// record logged while serving the request carries the id, including the
// processor's per-recipient send logs.
package requestid
