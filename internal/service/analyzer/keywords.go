package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

// stopwords are filler tokens of shopper questions, Vietnamese with the
// usual diacritic-less typings plus a few English ones.
var stopwords = map[string]bool{
	"tôi": true, "toi": true, "mình": true, "minh": true, "em": true,
	"muốn": true, "muon": true, "cần": true, "can": true, "tìm": true, "tim": true,
	"mua": true, "xem": true, "cho": true, "một": true, "mot": true,
	"cái": true, "cai": true, "chiếc": true, "chiec": true,
	"sản": true, "san": true, "phẩm": true, "pham": true,
	"giá": true, "gia": true, "tiền": true, "tien": true,
	"có": true, "co": true, "không": true, "khong": true, "nào": true, "nao": true,
	"là": true, "la": true, "và": true, "va": true, "với": true, "voi": true,
	"được": true, "duoc": true, "nhé": true, "nhe": true, "ạ": true, "a": true,
	"shop": true, "bạn": true, "ban": true, "ơi": true, "oi": true,
	"the": true, "i": true, "want": true, "an": true, "to": true, "buy": true,
}

var tokenPattern = regexp.MustCompile(`[\p{L}\d]+`)

// extractKeywords drops stopwords and bare numbers from the question. When
// everything is a stopword, the three longest tokens are kept instead so a
// direct search always has something to chew on.
func extractKeywords(text string) []string {
	tokens := tokenPattern.FindAllString(text, -1)

	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if stopwords[tok] || isNumeric(tok) {
			continue
		}
		keywords = append(keywords, tok)
	}
	if len(keywords) > 0 {
		return keywords
	}

	fallback := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !isNumeric(tok) {
			fallback = append(fallback, tok)
		}
	}
	sort.SliceStable(fallback, func(i, j int) bool {
		return len(fallback[i]) > len(fallback[j])
	})
	if len(fallback) > 3 {
		fallback = fallback[:3]
	}
	return fallback
}

func isNumeric(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	}) == -1
}
