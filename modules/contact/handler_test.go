package contact_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hadis/inquiry/modules/contact"
	"github.com/hadis/inquiry/pkg/email"
	"github.com/hadis/inquiry/pkg/ratelimiter"
	"github.com/hadis/inquiry/svc/inquiry"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, s inquiry.Submission) error {
	return m.Called(ctx, s).Error(0)
}

func newServer(proc contact.Processor, cfg contact.Config) http.Handler {
	r := chi.NewRouter()
	r.Mount("/api", contact.NewHandler(proc, cfg).Router())
	return r
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, contact.Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/send-email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp contact.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	return rec, resp
}

const tanakaJSON = `{
	"name": "田中",
	"email": "tanaka@example.com",
	"phone": "",
	"city": "tokyo",
	"product_info": "新宿区",
	"productsList": [
		{"product_details": "マキタ 電動ドリル", "product_condition": "good", "images": ["data:image/png;base64,iVBORw0KGgo=", null]}
	],
	"extra": "ignored"
}`

func TestSendEmail_Success(t *testing.T) {
	t.Parallel()

	proc := &mockProcessor{}
	proc.On("Process", mock.Anything, mock.MatchedBy(func(s inquiry.Submission) bool {
		return s.Name == "田中" &&
			s.Email == "tanaka@example.com" &&
			s.City == "tokyo" &&
			s.Municipality == "新宿区" &&
			len(s.Products) == 1 &&
			s.Products[0].Condition == "good" &&
			len(s.Products[0].Images) == 2 &&
			s.Products[0].Images[1] == nil
	})).Return(nil).Once()

	rec, resp := post(t, newServer(proc, contact.Config{}), tanakaJSON)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Code)
	proc.AssertExpectations(t)
}

func TestSendEmail_ProcessorErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "attachment decode",
			err:     &inquiry.Error{Kind: inquiry.KindAttachmentDecode, Err: errors.Join(inquiry.ErrAttachmentDecode, errors.New("product 1 image 1: not a data URI"))},
			status:  http.StatusUnprocessableEntity,
			code:    "attachment_decode_error",
			message: "product 1 image 1",
		},
		{
			name:    "transport",
			err:     &inquiry.Error{Kind: inquiry.KindTransport, Err: errors.Join(inquiry.ErrTransport, email.ErrFailedToSendEmail, errors.New("535 authentication failed"))},
			status:  http.StatusInternalServerError,
			code:    "transport_error",
			message: "535 authentication failed",
		},
		{
			name:    "foreign error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    "internal_error",
			message: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			proc := &mockProcessor{}
			proc.On("Process", mock.Anything, mock.Anything).Return(tt.err).Once()

			rec, resp := post(t, newServer(proc, contact.Config{}), tanakaJSON)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Code)
			assert.Contains(t, resp.Message, tt.message)
		})
	}
}

// The real processor validates; this checks the details reach the client.
func TestSendEmail_ValidationDetails(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	proc, err := inquiry.NewProcessor(sender, inquiry.Config{OperatorEmail: "info@mac-hadis.com"})
	require.NoError(t, err)

	rec, resp := post(t, newServer(proc, contact.Config{}), `{"name":"田中","email":"tanaka","productsList":[]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", resp.Code)
	assert.Contains(t, resp.Details, "email")
	assert.Contains(t, resp.Details, "productsList")
	assert.Zero(t, sender.calls)
}

func TestSendEmail_InvalidPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "name=田中"},
		{name: "empty", body: ""},
		{name: "array", body: `[]`},
		{name: "email not string", body: `{"email": 42, "productsList": []}`},
		{name: "products not array", body: `{"email": "a@example.com", "productsList": {}}`},
		{name: "image not string", body: `{"email": "a@example.com", "productsList": [{"images": [1]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			proc := &mockProcessor{}
			rec, resp := post(t, newServer(proc, contact.Config{}), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, contact.CodeInvalidPayload, resp.Code)
			proc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
		})
	}
}

func TestSendEmail_SchemaDetails(t *testing.T) {
	t.Parallel()

	rec, resp := post(t, newServer(&mockProcessor{}, contact.Config{}), `{"email": 42}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Details, "email")
}

func TestSendEmail_TooLarge(t *testing.T) {
	t.Parallel()

	proc := &mockProcessor{}
	rec, resp := post(t, newServer(proc, contact.Config{MaxBodyBytes: 64}), tanakaJSON)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, contact.CodePayloadTooLarge, resp.Code)
	proc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestSendEmail_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newServer(&mockProcessor{}, contact.Config{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/send-email", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type recordingSender struct {
	calls int
}

func (r *recordingSender) SendEmail(context.Context, email.SendEmailParams) error {
	r.calls++
	return nil
}

func TestSendEmail_RateLimited(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithIdleTTL(0))
	t.Cleanup(store.Close)
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	proc := &mockProcessor{}
	proc.On("Process", mock.Anything, mock.Anything).Return(nil).Once()

	r := chi.NewRouter()
	r.Mount("/api", contact.NewHandler(proc, contact.Config{}, contact.WithRateLimit(bucket)).Router())

	rec, resp := post(t, r, tanakaJSON)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, resp = post(t, r, tanakaJSON)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, contact.CodeRateLimited, resp.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	proc.AssertNumberOfCalls(t, "Process", 1)
}
