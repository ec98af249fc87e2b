package core

import (
	"TechAssist/entity"
	"TechAssist/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const askForQuestion = `Quý khách muốn tìm sản phẩm nào ạ? Quý khách có thể cho em biết loại sản phẩm và khoảng giá mong muốn nhé.`

// Chat runs one question through the full pipeline. It always returns a
// well-formed response, failures degrade the answer instead of surfacing.
func (c *Core) Chat(ctx context.Context, req entity.ChatRequest) entity.ChatResponse {
	logger := c.log.With(slog.String("session_id", req.SessionID))

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return entity.ChatResponse{
			Answer:          askForQuestion,
			RelatedProducts: []entity.ProductSuggestion{},
			Success:         false,
			ErrorMessage:    "empty question",
		}
	}

	res := c.resolve(ctx)
	query := c.analyzer.Analyze(question, res.categories)

	product, candidates, stage := c.selectProduct(ctx, query)
	answer, success := c.composeAnswer(ctx, query, product, res)

	logger.Info("question handled",
		slog.String("stage", stage),
		slog.Int("candidates", len(candidates)),
		slog.Bool("success", success),
	)

	response := entity.ChatResponse{
		Answer:          answer,
		RelatedProducts: []entity.ProductSuggestion{},
		Success:         success,
	}
	if product != nil {
		response.RelatedProducts = append(response.RelatedProducts, suggestionFor(*product))
	}

	c.saveMessage(ctx, req, response, product)
	return response
}

// History returns a session's stored exchanges, oldest first.
func (c *Core) History(ctx context.Context, sessionID string, limit int) ([]entity.ChatMessage, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("history storage not available")
	}
	return c.repo.ChatHistory(ctx, sessionID, limit)
}

// Categories exposes the catalog summary for the storefront widget.
func (c *Core) Categories(ctx context.Context) ([]entity.CategorySummary, error) {
	return c.catalog.CategorySummaries(ctx)
}

// saveMessage persists the exchange without blocking the reply path.
func (c *Core) saveMessage(ctx context.Context, req entity.ChatRequest, resp entity.ChatResponse, product *entity.Product) {
	if c.repo == nil {
		return
	}
	msg := entity.ChatMessage{
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Question:  req.Question,
		Answer:    resp.Answer,
		Success:   resp.Success,
		CreatedAt: time.Now(),
	}
	if product != nil {
		msg.ProductID = product.ID
	}
	if err := c.repo.SaveChatMessage(ctx, msg); err != nil {
		c.log.Warn("chat message not saved", sl.Err(err))
	}
}

func suggestionFor(p entity.Product) entity.ProductSuggestion {
	s := entity.ProductSuggestion{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImagePath,
		URL:      fmt.Sprintf("/product/%d", p.ID),
	}
	if p.HasPromotion() {
		s.PromotionPrice = p.PromotionPrice
	}
	return s
}
