package contact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hadis/inquiry/pkg/logger"
	"github.com/hadis/inquiry/pkg/ratelimiter"
	"github.com/hadis/inquiry/svc/inquiry"
)

type Config struct {
	MaxBodyBytes int64 `env:"CONTACT_MAX_BODY_BYTES" envDefault:"26214400"`
}

// Processor handles one decoded submission.
type Processor interface {
	Process(ctx context.Context, s inquiry.Submission) error
}

// Option configures a Handler.
type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithRateLimit throttles submissions per client with b.
func WithRateLimit(b *ratelimiter.Bucket) Option {
	return func(h *Handler) { h.limiter = b }
}

// Handler serves the contact form endpoint.
type Handler struct {
	proc    Processor
	cfg     Config
	log     *slog.Logger
	limiter *ratelimiter.Bucket
}

func NewHandler(proc Processor, cfg Config, opts ...Option) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 25 << 20
	}
	h := &Handler{proc: proc, cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(logger.Component("contact"))
	return h
}

// Router mounts the endpoint at /send-email. The caller mounts the router
// under /api:
//
//	r := chi.NewRouter()
//	r.Mount("/api", contact.NewHandler(proc, cfg).Router())
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	if h.limiter != nil {
		r.Use(ratelimiter.Middleware(h.limiter,
			ratelimiter.WithDeniedHandler(http.HandlerFunc(h.rateLimited)),
			ratelimiter.WithLogger(h.log),
		))
	}
	r.Post("/send-email", h.SendEmail)
	return r
}

// SendEmail decodes the posted submission and runs it through the processor.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, details, err := h.decode(w, r)
	if err == nil {
		err = h.proc.Process(ctx, s)
	}
	if err != nil {
		status, body := errorResponse(err)
		if details != nil {
			body.Details = details
		}
		if status >= http.StatusInternalServerError {
			h.log.ErrorContext(ctx, "contact submission failed", slog.Int("status", status), logger.Error(err))
		} else {
			h.log.InfoContext(ctx, "contact submission rejected", slog.Int("status", status), logger.ErrorKind(body.Code), logger.Error(err))
		}
		h.write(ctx, w, status, body)
		return
	}

	h.write(ctx, w, http.StatusOK, Response{Success: true})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (inquiry.Submission, map[string]string, error) {
	var s inquiry.Submission

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return s, nil, ErrPayloadTooLarge
		}
		return s, nil, errors.Join(ErrInvalidPayload, err)
	}

	if details, err := checkShape(body); err != nil {
		return s, details, err
	}
	if err := json.Unmarshal(body, &s); err != nil {
		return s, nil, errors.Join(ErrInvalidPayload, err)
	}
	return s, nil, nil
}

func (h *Handler) rateLimited(w http.ResponseWriter, r *http.Request) {
	h.write(r.Context(), w, http.StatusTooManyRequests, Response{
		Code:    CodeRateLimited,
		Message: ErrRateLimited.Error(),
	})
}

func (h *Handler) write(ctx context.Context, w http.ResponseWriter, status int, body Response) {
	if err := writeJSON(w, status, body); err != nil {
		h.log.WarnContext(ctx, "failed to write response", logger.Error(err))
	}
}
