package core

import (
	"TechAssist/entity"
	"TechAssist/internal/lib/sl"
	"context"
	"fmt"
	"strings"
	"time"
)

const composerSystemPrompt = `Bạn là nhân viên tư vấn thân thiện của cửa hàng linh kiện máy tính TechAssist.
Trả lời khách bằng tiếng Việt, ngắn gọn, lịch sự, tập trung vào sản phẩm được cung cấp.
Chỉ nói về sản phẩm trong phần THÔNG TIN SẢN PHẨM. Không bịa thông số, không bịa giá.
Nếu có giá khuyến mãi thì nêu cả giá gốc và giá khuyến mãi.
Kết thúc bằng một lời mời khách đặt hàng hoặc hỏi thêm.`

const apologyNoMatch = `Xin lỗi quý khách, hiện tại cửa hàng chưa tìm được sản phẩm phù hợp với yêu cầu của quý khách. Quý khách có thể mô tả rõ hơn về loại sản phẩm hoặc mức giá mong muốn để em tư vấn chính xác hơn ạ.`

const apologyComposeFailed = `Dạ em xin gửi quý khách sản phẩm phù hợp nhất bên dưới. Hiện hệ thống tư vấn đang bận, quý khách vui lòng xem thông tin chi tiết của sản phẩm hoặc liên hệ lại sau ít phút ạ.`

// composeAnswer turns the chosen product into a natural reply. The second
// model call is best effort: when it fails the shopper still gets the
// product with a canned line, never an error. The no-match apology is a
// complete answer in itself, not a failure.
func (c *Core) composeAnswer(ctx context.Context, query entity.Query, product *entity.Product, res *resolution) (string, bool) {
	if product == nil {
		return apologyNoMatch, true
	}

	// Breathing room between the two model calls of one request.
	if c.pause > 0 {
		select {
		case <-ctx.Done():
			return apologyComposeFailed, false
		case <-time.After(c.pause):
		}
	}

	prompt := composePrompt(query, product, c.guidance(ctx, query, res))
	answer, err := c.model.Generate(ctx, composerSystemPrompt, prompt)
	if err != nil {
		c.log.Warn("answer composition failed", sl.Err(err))
		return apologyComposeFailed, false
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return apologyComposeFailed, false
	}
	return answer, true
}

func composePrompt(query entity.Query, p *entity.Product, guidance string) string {
	var b strings.Builder
	b.WriteString("=== THÔNG TIN SẢN PHẨM ===\n")
	fmt.Fprintf(&b, "Tên: %s\n", p.Name)
	fmt.Fprintf(&b, "Danh mục: %s\n", p.Category)
	fmt.Fprintf(&b, "Giá: %dđ\n", p.Price)
	if p.HasPromotion() {
		fmt.Fprintf(&b, "Giá khuyến mãi: %dđ\n", p.PromotionPrice)
	}
	fmt.Fprintf(&b, "Tồn kho: %d\n", p.Stock)
	if p.Description != "" {
		fmt.Fprintf(&b, "Mô tả: %s\n", p.Description)
	}
	if guidance != "" {
		b.WriteString("\n=== GỢI Ý THÊM ===\n")
		b.WriteString(guidance)
	}
	b.WriteString("\nCÂU HỎI CỦA KHÁCH: ")
	b.WriteString(query.Raw)
	return b.String()
}

// guidance gives the model the shop's strongest categories plus a nudge
// matched to what the question was missing.
func (c *Core) guidance(ctx context.Context, query entity.Query, res *resolution) string {
	var b strings.Builder

	summaries := c.summaries(ctx, res)
	if len(summaries) > 10 {
		summaries = summaries[:10]
	}
	for _, s := range summaries {
		fmt.Fprintf(&b, "- %s: %d sản phẩm, giá từ %dđ đến %dđ\n", s.Name, s.Count, s.MinPrice, s.MaxPrice)
	}

	switch query.Form {
	case entity.FormNeedsCategory:
		b.WriteString("Khách chưa nói rõ loại sản phẩm, gợi ý khách chọn một danh mục ở trên.\n")
	case entity.FormNeedsPrice:
		b.WriteString("Khách chưa nói mức giá, có thể hỏi lại khoảng giá mong muốn.\n")
	case entity.FormUnknown:
		b.WriteString("Câu hỏi chưa rõ, mời khách mô tả loại sản phẩm và khoảng giá.\n")
	}
	return b.String()
}
