package contact

import "errors"

var (
	ErrInvalidPayload  = errors.New("request body is not a valid submission")
	ErrPayloadTooLarge = errors.New("request body too large")
	ErrRateLimited     = errors.New("too many submissions, please try again later")
)

// Error codes returned in addition to the inquiry kinds.
const (
	CodeInvalidPayload  = "invalid_payload"
	CodePayloadTooLarge = "payload_too_large"
	CodeRateLimited     = "rate_limited"
)
