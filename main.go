package main

import (
	"TechAssist/ai/gemini"
	"TechAssist/impl/core"
	"TechAssist/internal/config"
	repository "TechAssist/internal/database"
	"TechAssist/internal/http-server/api"
	"TechAssist/internal/lib/logger"
	"TechAssist/internal/lib/sl"
	"TechAssist/internal/metrics"
	"TechAssist/internal/service/analyzer"
	"TechAssist/internal/ws"
	"flag"
	"log/slog"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, conf.LogPath)

	lg.Info("starting techassist", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(conf, lg)
	handler.SetStageObserver(metrics.PipelineObserver{})

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
		return
	}
	handler.SetCatalog(db)
	handler.SetRepository(db)
	lg.With(
		slog.String("host", conf.Mongo.Host),
		slog.String("port", conf.Mongo.Port),
		slog.String("user", conf.Mongo.User),
		slog.String("database", conf.Mongo.Database),
	).Info("mongo client initialized")

	model := gemini.NewClient(conf, lg)
	model.SetRetryHook(metrics.ModelRetry)
	handler.SetModel(model)
	lg.With(
		sl.Secret("gemini_key", conf.Gemini.ApiKey),
		slog.String("model", conf.Gemini.Model),
	).Info("gemini client initialized")

	handler.SetAnalyzer(analyzer.New(lg))

	hub := ws.NewHub(lg)
	hub.SetResponder(handler)
	go hub.Run()

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
