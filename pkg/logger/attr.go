package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". Nil errors yield an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// SubmissionID records the submission identifier under "submission_id".
func SubmissionID(id string) slog.Attr {
	return slog.String("submission_id", id)
}

// Recipient records an outbound email address under "recipient".
func Recipient(addr string) slog.Attr {
	return slog.String("recipient", addr)
}

// Attachments records the number of attachments under "attachments".
func Attachments(n int) slog.Attr {
	return slog.Int("attachments", n)
}

// Transport records the mail transport name under "transport".
func Transport(name string) slog.Attr {
	return slog.String("transport", name)
}

// ErrorKind records a machine-readable failure category under "error_kind".
func ErrorKind(kind string) slog.Attr {
	return slog.String("error_kind", kind)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
