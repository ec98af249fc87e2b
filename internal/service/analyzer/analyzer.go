package analyzer

import (
	"TechAssist/entity"
	"TechAssist/internal/lib/sl"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// Analyzer turns a free-text shopper question into structured filters.
// It is deliberately regex-based: questions are short, Vietnamese, and the
// set of phrasings is small enough that rules beat a model here.
type Analyzer struct {
	log *slog.Logger
}

func New(logger *slog.Logger) *Analyzer {
	return &Analyzer{
		log: logger.With(sl.Module("analyzer")),
	}
}

var (
	countPattern  = regexp.MustCompile(`(?i)(\d+)\s*(?:sản phẩm|san pham|mẫu|mau|cái|cai|sp)\b`)
	peoplePattern = regexp.MustCompile(`(?i)(?:cho\s+)?(\d+)\s*(?:người|nguoi|thành viên|thanh vien)|(?:nhóm|nhom|gia đình|gia dinh)\s+(\d+)`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

var superlativeCheapest = []string{"rẻ nhất", "re nhat", "giá thấp nhất", "gia thap nhat", "cheapest"}
var superlativeExpensive = []string{"đắt nhất", "dat nhat", "cao cấp nhất", "cao nhất", "cao nhat", "mắc nhất", "mac nhat", "most expensive"}

// Analyze classifies one question against the known category names.
// categories should come straight from the catalog; matching prefers the
// longest category mentioned so "laptop gaming" beats "laptop".
func (a *Analyzer) Analyze(text string, categories []string) entity.Query {
	normalized := normalize(text)

	query := entity.Query{
		Raw:        text,
		Normalized: normalized,
	}
	if normalized == "" {
		query.Form = entity.FormInvalid
		return query
	}

	query.Filters.Price = extractPrice(normalized)
	query.Filters.Superlative = extractSuperlative(normalized)
	query.Filters.RequestedCount = extractCount(normalized)
	query.Filters.PeopleCount = extractPeople(normalized)
	query.Filters.Category = matchCategory(normalized, categories)
	query.Filters.Keywords = extractKeywords(normalized)

	query.Filters.Special = query.Filters.Price.Kind != entity.PriceNone ||
		query.Filters.Superlative != entity.SuperlativeNone ||
		query.Filters.PeopleCount > 0 ||
		strings.Contains(normalized, "combo")

	query.Form = classify(query.Filters)

	a.log.Debug("question analyzed",
		slog.String("form", string(query.Form)),
		slog.String("category", query.Filters.Category),
		slog.String("price_kind", string(query.Filters.Price.Kind)),
	)
	return query
}

func normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return spacePattern.ReplaceAllString(text, " ")
}

func extractSuperlative(text string) entity.Superlative {
	for _, phrase := range superlativeExpensive {
		if strings.Contains(text, phrase) {
			return entity.SuperlativeExpensive
		}
	}
	for _, phrase := range superlativeCheapest {
		if strings.Contains(text, phrase) {
			return entity.SuperlativeCheapest
		}
	}
	return entity.SuperlativeNone
}

// extractCount reads an explicit "N sản phẩm" request, clamped to [1,3].
func extractCount(text string) int {
	m := countPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n := atoiOrZero(m[1])
	if n < 1 {
		return 1
	}
	if n > 3 {
		return 3
	}
	return n
}

func extractPeople(text string) int {
	m := peoplePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	if n := atoiOrZero(m[1]); n > 0 {
		return n
	}
	return atoiOrZero(m[2])
}

// matchCategory finds the longest known category mentioned in the question.
func matchCategory(text string, categories []string) string {
	sorted := make([]string, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	for _, category := range sorted {
		if category == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(category)) {
			return category
		}
	}
	return ""
}

func classify(f entity.Filters) entity.QueryForm {
	hasPrice := f.Price.Kind != entity.PriceNone
	switch {
	case hasPrice && f.Category != "":
		return entity.FormCategoryPrice
	case hasPrice:
		return entity.FormNeedsCategory
	case f.Superlative != entity.SuperlativeNone && f.Category != "":
		return entity.FormCategoryPrice
	case f.Category != "":
		return entity.FormNeedsPrice
	case !f.Special && len(f.Keywords) > 0:
		return entity.FormNameOnly
	default:
		return entity.FormUnknown
	}
}
