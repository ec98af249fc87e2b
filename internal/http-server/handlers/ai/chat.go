package ai

import (
	"TechAssist/entity"
	"TechAssist/internal/lib/api/response"
	"TechAssist/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Chat answers one shopper question. The reply is the chat contract
// itself, not the usual envelope, the storefront widget consumes it as is.
func Chat(log *slog.Logger, handler Core) http.HandlerFunc {
	validate := validator.New()

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

		var req entity.ChatRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			logger.Error("failed to decode request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("question is required"))
			return
		}

		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		resp := handler.Chat(r.Context(), req)

		logger.Debug("question answered", slog.Bool("success", resp.Success))
		render.JSON(w, r, resp)
	}
}
