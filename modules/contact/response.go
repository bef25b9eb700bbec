package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hadis/inquiry/svc/inquiry"
)

// Response is the JSON body of every /api/send-email reply.
type Response struct {
	Success bool              `json:"success"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// errorResponse maps a processing error to its status and body.
func errorResponse(err error) (int, Response) {
	body := Response{Message: err.Error()}

	switch {
	case errors.Is(err, ErrPayloadTooLarge):
		body.Code = CodePayloadTooLarge
		return http.StatusRequestEntityTooLarge, body
	case errors.Is(err, ErrInvalidPayload):
		body.Code = CodeInvalidPayload
		return http.StatusBadRequest, body
	}

	kind := inquiry.KindOf(err)
	body.Code = string(kind)
	switch kind {
	case inquiry.KindValidation:
		body.Details = inquiry.ValidationErrors(err)
		return http.StatusUnprocessableEntity, body
	case inquiry.KindAttachmentDecode:
		return http.StatusUnprocessableEntity, body
	default:
		return http.StatusInternalServerError, body
	}
}
