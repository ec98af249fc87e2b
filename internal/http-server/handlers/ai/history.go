package ai

import (
	"TechAssist/internal/lib/api/response"
	"TechAssist/internal/lib/sl"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const defaultHistoryLimit = 50

func History(log *slog.Logger, handler Core) http.HandlerFunc {
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

		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("session is required"))
			return
		}

		limit := defaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		messages, err := handler.History(r.Context(), sessionID, limit)
		if err != nil {
			logger.Error("failed to load history", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to load history: %v", err)))
			return
		}

		logger.Debug("history loaded", slog.Int("count", len(messages)))
		render.JSON(w, r, response.Ok(messages))
	}
}
