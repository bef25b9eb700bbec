package inquiry

import (
	"errors"
	"fmt"
)

// Kind is a stable, machine-readable failure category.
type Kind string

const (
	KindValidation       Kind = "validation_error"
	KindAttachmentDecode Kind = "attachment_decode_error"
	KindTransport        Kind = "transport_error"
	KindInternal         Kind = "internal_error"
)

var (
	ErrValidation       = errors.New("invalid submission")
	ErrAttachmentDecode = errors.New("invalid image attachment")
	ErrTransport        = errors.New("failed to send email")
	ErrInternal         = errors.New("failed to process submission")
)

var kindSentinels = map[Kind]error{
	KindValidation:       ErrValidation,
	KindAttachmentDecode: ErrAttachmentDecode,
	KindTransport:        ErrTransport,
	KindInternal:         ErrInternal,
}

// Error is the single failure result of Processor.Process.
type Error struct {
	Kind Kind
	Err  error
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf("%w: %w", kindSentinels[kind], err)}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
