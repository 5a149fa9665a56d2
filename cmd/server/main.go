package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/aserowy/htmx-playground/handler"
	"github.com/aserowy/htmx-playground/modules/entries"
	"github.com/aserowy/htmx-playground/modules/feed"
	"github.com/aserowy/htmx-playground/modules/web"
	"github.com/aserowy/htmx-playground/pkg/broadcast"
	"github.com/aserowy/htmx-playground/pkg/clientip"
	"github.com/aserowy/htmx-playground/pkg/config"
	"github.com/aserowy/htmx-playground/pkg/httpserver"
	"github.com/aserowy/htmx-playground/pkg/logger"
	"github.com/aserowy/htmx-playground/pkg/metrics"
	"github.com/aserowy/htmx-playground/pkg/notifications"
	"github.com/aserowy/htmx-playground/pkg/requestid"
)

type appConfig struct {
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("failed to load env file: %v", err)
	}

	var (
		appCfg     appConfig
		logCfg     logger.Config
		srvCfg     httpserver.Config
		hubCfg     broadcast.Config
		feedCfg    feed.Config
		entriesCfg entries.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&logCfg)
	config.MustLoad(&srvCfg)
	config.MustLoad(&hubCfg)
	config.MustLoad(&feedCfg)
	config.MustLoad(&entriesCfg)

	lg, closer, err := logger.NewFromConfig(logCfg, logger.WithContextExtractors(
		requestid.LoggerExtractor(),
		clientip.LoggerExtractor(),
	))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = closer.Close() }()
	logger.SetAsDefault(lg)

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		lg.Debug(fmt.Sprintf(format, args...))
	})); err != nil {
		lg.Warn("failed to set maxprocs", logger.Error(err))
	}

	reg := metrics.NewRegistry()
	hubMetrics := metrics.NewBroadcastMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)

	hub := broadcast.NewHubFromConfig[notifications.Notification](hubCfg, broadcast.WithMetrics(hubMetrics))
	notifier := notifications.NewNotifier(hub, notifications.WithNotifierLogger(lg))

	entryService := entries.NewService(entriesCfg, entries.NewDemoRepository(), notifier, entries.WithLogger(lg))
	errorHandler := handler.NewErrorHandler(lg, web.ErrorViews())

	stream := feed.NewHandler(hub, feed.NewRenderer(web.Notification), feedCfg,
		feed.WithLogger(lg),
		feed.WithHeartbeatObserver(hubMetrics),
		feed.WithErrorHandler(errorHandler),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: appCfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}),
		httpMetrics.Middleware,
	)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(lg, func(context.Context) error {
		if hub.Closed() {
			return broadcast.ErrHubClosed{}
		}
		return nil
	}))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(reg))

	r.Mount("/", web.Router(web.RouterOptions{
		Entries:       entries.NewHandler(entryService, web.EntryViews(), errorHandler),
		Notifications: stream,
		ErrorHandler:  errorHandler,
	}))

	srv := httpserver.NewFromConfig(srvCfg,
		httpserver.WithLogger(lg),
		httpserver.WithShutdownHook(func() { _ = hub.Close() }),
	)

	if err := srv.Run(context.Background(), r); err != nil {
		lg.Error("http server failed", logger.Error(err))
		_ = closer.Close()
		os.Exit(1)
	}
}
