package repository

import (
	"TechAssist/entity"
	"sort"
	"strings"
)

// sortForGrounding orders products the way the model dump wants them:
// deepest stock first, promoted before plain on equal stock, then by id so
// the order is stable across calls.
func sortForGrounding(products []entity.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if a.Stock != b.Stock {
			return a.Stock > b.Stock
		}
		if a.HasPromotion() != b.HasPromotion() {
			return a.HasPromotion()
		}
		return a.ID < b.ID
	})
}

// sortForTopPicks orders a category shortlist the way the storefront leads
// with deals: promoted first, cheaper effective price next, id last.
func sortForTopPicks(products []entity.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if a.HasPromotion() != b.HasPromotion() {
			return a.HasPromotion()
		}
		pa, pb := a.EffectivePrice(), b.EffectivePrice()
		if pa != pb {
			return pa < pb
		}
		return a.ID < b.ID
	})
}

// orderByIDs reorders products to follow ids, dropping products whose id is
// absent and ids with no matching product.
func orderByIDs(products []entity.Product, ids []int) []entity.Product {
	byID := make(map[int]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// rankKeyword scores name matches against a keyword. An exact name is a
// perfect hit, a prefix beats a mid-name hit, shorter names win ties.
func rankKeyword(products []entity.Product, keyword string) []entity.Candidate {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	candidates := make([]entity.Candidate, 0, len(products))
	for _, p := range products {
		name := strings.ToLower(p.Name)
		idx := strings.Index(name, needle)
		if idx < 0 {
			continue
		}
		relevance := 0.9
		if name == needle {
			relevance = 1.0
		}
		candidates = append(candidates, entity.Candidate{Product: p, Relevance: relevance})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Relevance != b.Relevance {
			return a.Relevance > b.Relevance
		}
		an := strings.ToLower(a.Product.Name)
		bn := strings.ToLower(b.Product.Name)
		ai := strings.Index(an, needle)
		bi := strings.Index(bn, needle)
		if ai != bi {
			return ai < bi
		}
		if len(an) != len(bn) {
			return len(an) < len(bn)
		}
		return a.Product.ID < b.Product.ID
	})
	return candidates
}

// rankByProximity orders products by distance of their effective price to a
// target, nearest first. Equal distance prefers the cheaper product.
func rankByProximity(products []entity.Product, target int64) []entity.Candidate {
	sort.SliceStable(products, func(i, j int) bool {
		pi := products[i].EffectivePrice()
		pj := products[j].EffectivePrice()
		di := distance(pi, target)
		dj := distance(pj, target)
		if di != dj {
			return di < dj
		}
		if pi != pj {
			return pi < pj
		}
		return products[i].ID < products[j].ID
	})
	return asCandidates(products, 0.8)
}

// rankByEffectivePrice orders by what the customer pays, ascending or
// descending.
func rankByEffectivePrice(products []entity.Product, ascending bool) []entity.Candidate {
	sort.SliceStable(products, func(i, j int) bool {
		pi := products[i].EffectivePrice()
		pj := products[j].EffectivePrice()
		if pi != pj {
			if ascending {
				return pi < pj
			}
			return pi > pj
		}
		return products[i].ID < products[j].ID
	})
	return asCandidates(products, 0.8)
}

func capCandidates(candidates []entity.Candidate, limit int) []entity.Candidate {
	if limit > 0 && len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}

func asCandidates(products []entity.Product, relevance float64) []entity.Candidate {
	candidates := make([]entity.Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, entity.Candidate{Product: p, Relevance: relevance})
	}
	return candidates
}

func distance(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
