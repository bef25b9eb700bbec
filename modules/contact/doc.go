// Package contact exposes the contact form endpoint, POST /api/send-email.
//
// The body is the form's JSON submission. It is size-limited, checked against
// an embedded JSON schema, decoded into inquiry.Submission and handed to the
// processor. Replies are {"success":true} or
// {"success":false,"code":...,"message":...,"details":...} with status 400
// for malformed payloads, 413 for oversized ones, 422 for validation and
// image decode errors, 429 when the client's rate limit is spent and 500 when
// sending fails.
package contact
