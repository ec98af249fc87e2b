package catalog

import (
	"TechAssist/entity"
	"TechAssist/internal/lib/api/response"
	"TechAssist/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Core interface {
	Categories(ctx context.Context) ([]entity.CategorySummary, error)
}

func Categories(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.catalog")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("catalog service not available")
			render.JSON(w, r, response.Error("catalog service not available"))
			return
		}

		categories, err := handler.Categories(r.Context())
		if err != nil {
			logger.Error("failed to list categories", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list categories: %v", err)))
			return
		}

		logger.Debug("categories listed", slog.Int("count", len(categories)))
		render.JSON(w, r, response.Ok(categories))
	}
}
