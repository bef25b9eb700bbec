// Package logger builds *slog.Logger values for the inquiry service.
//
// New takes functional options selecting format, level, static attributes and
// ContextExtractor callbacks. Extractors run on every record, which is how the
// request id of an HTTP request ends up on every line logged while handling it:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "inquiry"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor),
//	)
//	log.InfoContext(ctx, "email sent",
//	    logger.SubmissionID(id),
//	    logger.Recipient(addr),
//	    logger.Attachments(3),
//	)
//
// Attribute helpers keep key names consistent across packages. Error returns an
// empty attribute for a nil error, so it can be passed unconditionally.
package logger
