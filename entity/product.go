package entity

// Product is the read model of one catalog item. Prices are whole VND.
type Product struct {
	ID             int    `json:"id" bson:"_id"`
	Name           string `json:"name" bson:"name"`
	Description    string `json:"description" bson:"description"`
	Price          int64  `json:"price" bson:"price"`
	PromotionPrice int64  `json:"promotion_price" bson:"promotion_price"`
	Category       string `json:"category" bson:"category"`
	Stock          int    `json:"stock" bson:"stock"`
	ImagePath      string `json:"image_path" bson:"image_path"`
	Active         bool   `json:"active" bson:"active"`
}

// HasPromotion reports whether the promotion price is set and actually lower
// than the base price. A zero or inflated promotion price is ignored.
func (p Product) HasPromotion() bool {
	return p.PromotionPrice > 0 && p.PromotionPrice < p.Price
}

// EffectivePrice is the price a customer pays right now.
func (p Product) EffectivePrice() int64 {
	if p.HasPromotion() {
		return p.PromotionPrice
	}
	return p.Price
}

// Candidate is a product under consideration at some pipeline stage,
// carrying its relevance to the question in [0,1].
type Candidate struct {
	Product   Product `json:"product"`
	Relevance float64 `json:"relevance"`
}

// CategorySummary aggregates one category for guidance copy and the
// catalog widget.
type CategorySummary struct {
	Name     string `json:"name" bson:"name"`
	Count    int    `json:"count" bson:"count"`
	MinPrice int64  `json:"min_price" bson:"min_price"`
	MaxPrice int64  `json:"max_price" bson:"max_price"`
	AvgPrice int64  `json:"avg_price" bson:"avg_price"`
}

// ProductSuggestion is the product card returned alongside a chat answer.
type ProductSuggestion struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	PromotionPrice int64  `json:"promotion_price,omitempty"`
	ImageURL       string `json:"image_url"`
	URL            string `json:"url"`
}
