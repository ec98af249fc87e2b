package ai

import (
	"TechAssist/internal/lib/api/response"
	"TechAssist/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Suggestions(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.ai")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("chat service not available")
			render.JSON(w, r, response.Error("chat service not available"))
			return
		}

		render.JSON(w, r, response.Ok(handler.Suggestions()))
	}
}
