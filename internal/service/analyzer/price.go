package analyzer

import (
	"TechAssist/entity"
	"regexp"
	"strconv"
	"strings"
)

var (
	amountPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(triệu|trieu|tr|m|k|nghìn|nghin|ngàn|ngan)?\b`)
	rangePattern  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:triệu|trieu|tr|m)?\s*(?:đến|den|tới|toi|-|–)\s*(\d+(?:[.,]\d+)?)\s*(triệu|trieu|tr|m)\b`)
)

var belowWords = []string{"dưới", "duoi", "thấp hơn", "thap hon", "không quá", "khong qua", "tối đa", "toi da", "under", "below"}
var aboveWords = []string{"trên", "tren", "cao hơn", "cao hon", "hơn", "hon", "từ", "tu", "above", "over"}

// aroundSpread widens a single amount into a range, one fifth each way.
const aroundSpread = 5

// extractPrice reads the price constraint out of a normalized question.
// "4 đến 5 triệu" is a closed range, "dưới"/"trên" bound one side, and a
// bare amount is treated as "around" with a 20 percent spread.
func extractPrice(text string) entity.PriceFilter {
	if m := rangePattern.FindStringSubmatch(text); m != nil {
		unit := m[3]
		min := toVND(m[1], unit)
		max := toVND(m[2], unit)
		if min > 0 && max >= min {
			return entity.PriceFilter{Kind: entity.PriceRange, Min: min, Max: max}
		}
	}

	amount := firstAmount(text)
	if amount <= 0 {
		return entity.PriceFilter{Kind: entity.PriceNone}
	}

	if containsAny(text, belowWords) {
		return entity.PriceFilter{Kind: entity.PriceBelow, Max: amount}
	}
	if containsAny(text, aboveWords) {
		return entity.PriceFilter{Kind: entity.PriceAbove, Min: amount}
	}

	// "khoảng 5 triệu" and a bare "5 triệu" both mean near that figure.
	spread := amount / aroundSpread
	return entity.PriceFilter{Kind: entity.PriceRange, Min: amount - spread, Max: amount + spread}
}

// firstAmount finds the first money figure in the text. Unitless numbers
// under a thousand are ignored, they are counts, not prices.
func firstAmount(text string) int64 {
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		amount := toVND(m[1], m[2])
		if m[2] == "" && amount < 1000 {
			continue
		}
		if amount > 0 {
			return amount
		}
	}
	return 0
}

func toVND(number, unit string) int64 {
	value := parseDecimal(number)
	if value <= 0 {
		return 0
	}
	switch unit {
	case "triệu", "trieu", "tr", "m":
		return int64(value * 1_000_000)
	case "k", "nghìn", "nghin", "ngàn", "ngan":
		return int64(value * 1_000)
	default:
		return int64(value)
	}
}

// parseDecimal handles both "4,5" and "4.5". Thousand-separator dots in
// plain figures like "5.000.000" are stripped first.
func parseDecimal(s string) float64 {
	if strings.Count(s, ".") > 1 {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
