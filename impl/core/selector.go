package core

import (
	"TechAssist/ai/gemini"
	"TechAssist/entity"
	"TechAssist/internal/lib/sl"
	"context"
	"log/slog"
	"strings"
)

// Pipeline stages, in fallthrough order.
const (
	stageGrounded  = "s0"
	stageHeuristic = "s1"
	stageTopPicks  = "s2"
	stageApology   = "s3"
)

const (
	highPricePenalty   = 20
	lowPricePenalty    = 10
	imageBonus         = 5
	discountScale      = 0.3
	stockDivisor       = 10
	fallbackPickLimit  = 5
	comboKeyword       = "combo"
	familyComboKeyword = "combo gia đình"
)

// selectProduct walks the stages until one yields candidates. It never
// returns an error: a dry run ends at the apology stage with no product.
func (c *Core) selectProduct(ctx context.Context, query entity.Query) (*entity.Product, []entity.Candidate, string) {
	if candidates := c.groundedSelect(ctx, query); len(candidates) > 0 {
		// The model's first-listed pick already encodes its preference,
		// no rescoring on top of it.
		c.stage(stageGrounded)
		chosen := candidates[0].Product
		return &chosen, candidates, stageGrounded
	}

	limit := query.Filters.RequestedCount
	if limit <= 0 {
		limit = fallbackPickLimit
	}

	if candidates := c.heuristicSelect(ctx, query, limit); len(candidates) > 0 {
		c.stage(stageHeuristic)
		return c.bestPick(candidates), candidates, stageHeuristic
	}

	candidates, err := c.catalog.TopByCategory(ctx, "", limit)
	if err != nil {
		c.log.Error("top picks fallback failed", sl.Err(err))
	}
	if len(candidates) > 0 {
		c.stage(stageTopPicks)
		return c.bestPick(candidates), candidates, stageTopPicks
	}

	c.stage(stageApology)
	return nil, nil, stageApology
}

// groundedSelect asks the model to pick ids out of a catalog dump, then
// strips everything the dump never contained.
func (c *Core) groundedSelect(ctx context.Context, query entity.Query) []entity.Candidate {
	dump, err := c.grounding(ctx)
	if err != nil {
		c.log.Warn("grounding dump unavailable", sl.Err(err))
		return nil
	}
	if len(dump.IDs) == 0 {
		return nil
	}

	answer, err := c.model.Generate(ctx, selectionSystemPrompt, selectionPrompt(query, dump))
	if err != nil {
		c.log.Warn("grounded selection failed", sl.Err(err))
		return nil
	}

	selection := gemini.ParseSelection(answer, c.conf.Selector.MaxSelection)
	if selection.Kind == gemini.SelectionNone {
		c.log.Debug("model declined to pick")
		return nil
	}

	ids := make([]int, 0, len(selection.IDs))
	for _, id := range selection.IDs {
		if dump.IDs[id] {
			ids = append(ids, id)
		}
	}
	if len(ids) < len(selection.IDs) {
		c.log.Warn("model named unknown products",
			slog.Int("dropped", len(selection.IDs)-len(ids)),
		)
	}
	if len(ids) == 0 {
		return nil
	}

	products, err := c.catalog.ByIDs(ctx, ids)
	if err != nil {
		c.log.Error("selected products lookup failed", sl.Err(err))
		return nil
	}
	products = c.validateKeywords(products, query.Filters.Keywords)

	// Relevance follows the model's listing order.
	candidates := make([]entity.Candidate, 0, len(products))
	for i, p := range products {
		relevance := 1.0 - 0.05*float64(i)
		candidates = append(candidates, entity.Candidate{Product: p, Relevance: relevance})
	}
	return candidates
}

// validateKeywords keeps products whose name touches the question keywords.
// When nothing matches the model's list survives whole, the model saw more
// context than the keyword split did.
func (c *Core) validateKeywords(products []entity.Product, keywords []string) []entity.Product {
	if len(keywords) == 0 || len(products) == 0 {
		return products
	}
	matched := make([]entity.Product, 0, len(products))
	for _, p := range products {
		name := strings.ToLower(p.Name)
		for _, kw := range keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				matched = append(matched, p)
				break
			}
		}
	}
	if len(matched) == 0 && c.conf.Selector.KeepUnmatched {
		return products
	}
	return matched
}

// heuristicSelect is the no-model path: structured filters first, direct
// keyword search as the last resort. The shopper's requested count caps how
// many picks any branch hands back.
func (c *Core) heuristicSelect(ctx context.Context, query entity.Query, limit int) []entity.Candidate {
	return trimPicks(c.heuristicCandidates(ctx, query, limit), limit)
}

func (c *Core) heuristicCandidates(ctx context.Context, query entity.Query, limit int) []entity.Candidate {
	f := query.Filters

	if !f.Special {
		if candidates := c.searchKeywords(ctx, f.Keywords); len(candidates) > 0 {
			return candidates
		}
	}

	switch f.Superlative {
	case entity.SuperlativeCheapest:
		if candidates := c.fromCatalog(c.catalog.Cheapest(ctx, f.Category)); len(candidates) > 0 {
			return candidates
		}
	case entity.SuperlativeExpensive:
		if candidates := c.fromCatalog(c.catalog.MostExpensive(ctx, f.Category)); len(candidates) > 0 {
			return candidates
		}
	}

	if f.PeopleCount >= 4 {
		if candidates := c.searchKeywords(ctx, []string{familyComboKeyword, comboKeyword}); len(candidates) > 0 {
			return candidates
		}
	} else if f.PeopleCount >= 2 {
		if candidates := c.searchKeywords(ctx, []string{comboKeyword}); len(candidates) > 0 {
			return candidates
		}
	}

	switch f.Price.Kind {
	case entity.PriceRange:
		if candidates := c.fromCatalog(c.catalog.InRange(ctx, f.Price.Min, f.Price.Max, f.Category)); len(candidates) > 0 {
			return candidates
		}
	case entity.PriceBelow:
		if candidates := c.fromCatalog(c.catalog.BelowPrice(ctx, f.Price.Max, f.Category)); len(candidates) > 0 {
			return candidates
		}
	case entity.PriceAbove:
		if candidates := c.fromCatalog(c.catalog.AbovePrice(ctx, f.Price.Min, f.Category)); len(candidates) > 0 {
			return candidates
		}
	}

	if f.Category != "" {
		if candidates := c.fromCatalog(c.catalog.TopByCategory(ctx, f.Category, limit)); len(candidates) > 0 {
			return candidates
		}
	}

	return c.searchKeywords(ctx, f.Keywords)
}

func (c *Core) searchKeywords(ctx context.Context, keywords []string) []entity.Candidate {
	for _, kw := range keywords {
		candidates, err := c.catalog.SearchByKeyword(ctx, kw)
		if err != nil {
			c.log.Error("keyword search failed", slog.String("keyword", kw), sl.Err(err))
			continue
		}
		if len(candidates) > 0 {
			return candidates
		}
	}
	return nil
}

func (c *Core) fromCatalog(candidates []entity.Candidate, err error) []entity.Candidate {
	if err != nil {
		c.log.Error("catalog query failed", sl.Err(err))
		return nil
	}
	return candidates
}

func trimPicks(candidates []entity.Candidate, limit int) []entity.Candidate {
	if limit > 0 && len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}

// bestPick scores candidates and returns the winner. Relevance dominates,
// promotion depth and stock break ties, implausible prices are punished,
// having a picture helps a little. Equal scores fall back to the lower id.
func (c *Core) bestPick(candidates []entity.Candidate) *entity.Product {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	bestScore := c.score(best)
	for _, cand := range candidates[1:] {
		score := c.score(cand)
		if score > bestScore || (score == bestScore && cand.Product.ID < best.Product.ID) {
			best = cand
			bestScore = score
		}
	}
	product := best.Product
	return &product
}

func (c *Core) score(cand entity.Candidate) float64 {
	s := c.conf.Selector
	p := cand.Product

	score := float64(s.RelevanceScale) * cand.Relevance

	if p.HasPromotion() {
		discount := float64(p.Price-p.PromotionPrice) / float64(p.Price) * 100
		bonus := discount * discountScale
		if bonus > float64(s.PromotionCap) {
			bonus = float64(s.PromotionCap)
		}
		score += float64(s.PromotionBase) + bonus
	}

	if p.Stock > 0 {
		bonus := float64(p.Stock / stockDivisor)
		if bonus > float64(s.StockCap) {
			bonus = float64(s.StockCap)
		}
		score += float64(s.StockBase) + bonus
	}

	if p.EffectivePrice() > s.HighPriceCut {
		score -= highPricePenalty
	}
	if p.EffectivePrice() < s.LowPriceCut {
		score -= lowPricePenalty
	}
	if p.ImagePath != "" {
		score += imageBonus
	}
	return score
}
