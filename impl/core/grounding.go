package core

import (
	"TechAssist/entity"
	"context"
	"fmt"
	"strings"
)

// groundingDump is the catalog slice handed to the model, plus the id set
// used to reject invented products.
type groundingDump struct {
	Text string
	IDs  map[int]bool
}

const selectionSystemPrompt = `Bạn là trợ lý bán hàng của một cửa hàng linh kiện máy tính.
Nhiệm vụ duy nhất của bạn là chọn sản phẩm phù hợp nhất với câu hỏi của khách từ danh sách được cung cấp.
Chỉ được chọn sản phẩm có trong danh sách. Không bịa sản phẩm, không bịa ID.
Trả lời đúng một dòng theo dạng: ProductID: <id>
Nếu phù hợp nhiều sản phẩm, liệt kê tối đa 5 ID cách nhau bằng dấu phẩy, ID phù hợp nhất đứng đầu.
Nếu không có sản phẩm nào phù hợp, trả lời đúng một từ: NONE`

func (c *Core) grounding(ctx context.Context) (*groundingDump, error) {
	products, err := c.catalog.GroundingProducts(ctx, c.conf.Selector.DumpLimit)
	if err != nil {
		return nil, fmt.Errorf("grounding products: %w", err)
	}

	ids := make(map[int]bool, len(products))
	var b strings.Builder
	for _, p := range products {
		ids[p.ID] = true
		fmt.Fprintf(&b, "ID: %d | Tên: %s | Giá: %dđ", p.ID, p.Name, p.Price)
		if p.HasPromotion() {
			fmt.Fprintf(&b, " | Khuyến mãi: %dđ", p.PromotionPrice)
		}
		fmt.Fprintf(&b, " | Danh mục: %s | Tồn kho: %d\n", p.Category, p.Stock)
	}

	return &groundingDump{Text: b.String(), IDs: ids}, nil
}

func selectionPrompt(query entity.Query, dump *groundingDump) string {
	var b strings.Builder
	b.WriteString("DANH SÁCH SẢN PHẨM:\n")
	b.WriteString(dump.Text)
	b.WriteString("\nCÂU HỎI CỦA KHÁCH: ")
	b.WriteString(query.Raw)
	if len(query.Filters.Keywords) > 0 {
		b.WriteString("\nTỪ KHÓA: ")
		b.WriteString(strings.Join(query.Filters.Keywords, ", "))
	}
	return b.String()
}
