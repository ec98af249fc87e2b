package api

import (
	"TechAssist/internal/config"
	"TechAssist/internal/http-server/handlers/ai"
	"TechAssist/internal/http-server/handlers/catalog"
	"TechAssist/internal/http-server/handlers/errors"
	"TechAssist/internal/http-server/handlers/health"
	"TechAssist/internal/http-server/middleware/timeout"
	"TechAssist/internal/lib/sl"
	"TechAssist/internal/metrics"
	"TechAssist/internal/ws"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	ai.Core
	catalog.Core
}

// modelTimeoutSeconds bounds chat requests, which make two model calls
// with retries in between.
const modelTimeoutSeconds = 120

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware())
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/ai", func(r chi.Router) {
			r.Use(timeout.Timeout(modelTimeoutSeconds))
			r.Post("/chat", ai.Chat(log, handler))
			r.Get("/suggestions", ai.Suggestions(log, handler))
			r.Get("/history", ai.History(log, handler))
		})
		v1.Route("/catalog", func(r chi.Router) {
			r.Use(timeout.Timeout(5))
			r.Get("/categories", catalog.Categories(log, handler))
		})
	})

	router.Get("/health", health.Health())
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/ws/chat", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, log, w, r)
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
