// Command inquiry serves the contact form backend: it accepts quote requests
// on POST /api/send-email and emails them to the company mailbox and the
// customer.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hadis/inquiry/modules/contact"
	"github.com/hadis/inquiry/pkg/config"
	"github.com/hadis/inquiry/pkg/email"
	"github.com/hadis/inquiry/pkg/httpserver"
	"github.com/hadis/inquiry/pkg/logger"
	"github.com/hadis/inquiry/pkg/metrics"
	"github.com/hadis/inquiry/pkg/ratelimiter"
	"github.com/hadis/inquiry/pkg/requestid"
	"github.com/hadis/inquiry/svc/inquiry"
)

type appConfig struct {
	Log     logger.Config
	HTTP    httpserver.Config
	Mail    email.Config
	Inquiry inquiry.Config
	Contact contact.Config
	Limit   ratelimiter.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("inquiry stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts, err := cfg.Log.Options()
	if err != nil {
		return err
	}
	log := logger.New(append(logOpts, logger.WithContextExtractors(requestid.LoggerExtractor))...)
	logger.SetAsDefault(log)

	sender, err := email.New(ctx, cfg.Mail)
	if err != nil {
		return err
	}
	log.Info("mail transport ready", logger.Transport(cfg.Mail.Transport))

	proc, err := inquiry.NewProcessor(sender, cfg.Inquiry, inquiry.WithLogger(log))
	if err != nil {
		return err
	}

	contactOpts := []contact.Option{contact.WithLogger(log)}
	if cfg.Limit.Enabled {
		store := ratelimiter.NewMemoryStore()
		defer store.Close()
		bucket, err := ratelimiter.NewBucket(store, cfg.Limit)
		if err != nil {
			return err
		}
		contactOpts = append(contactOpts, contact.WithRateLimit(bucket))
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		requestid.Middleware,
		httpserver.AccessLog(log),
		middleware.Recoverer,
	)
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Mount("/api", contact.NewHandler(proc, cfg.Contact, contactOpts...).Router())

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
