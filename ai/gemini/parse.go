package gemini

import (
	"regexp"
	"strconv"
	"strings"
)

type SelectionKind string

const (
	// SelectionExplicit means the model answered in the requested id format.
	SelectionExplicit SelectionKind = "explicit"
	// SelectionFreeform means ids had to be dug out of a prose answer.
	SelectionFreeform SelectionKind = "freeform"
	// SelectionNone means the model declined or named nothing usable.
	SelectionNone SelectionKind = "none"
)

// Selection is the parsed outcome of a grounded pick response.
type Selection struct {
	Kind SelectionKind
	IDs  []int
}

// defaultSelectionIDs is the id cap used when the caller passes none.
const defaultSelectionIDs = 5

var (
	productIDPrefix = regexp.MustCompile(`(?i)^\s*product\s*id\s*:\s*(.*)$`)
	bareNumberLine  = regexp.MustCompile(`^\d+$`)
	embeddedNumber  = regexp.MustCompile(`\d+`)
)

// ParseSelection interprets a model pick response line by line. A line that
// is exactly NONE is a refusal and wins over anything gathered so far. Every
// other line yields ids from a ProductID prefix, a bare number, or as a last
// resort the first number embedded in its prose. Ids keep response order,
// duplicates dropped, at most limit survive.
func ParseSelection(text string, limit int) Selection {
	if limit <= 0 {
		limit = defaultSelectionIDs
	}

	var (
		ids      []int
		explicit bool
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "NONE") {
			return Selection{Kind: SelectionNone}
		}
		if m := productIDPrefix.FindStringSubmatch(line); m != nil {
			ids = append(ids, extractInts(m[1])...)
			explicit = true
			continue
		}
		if bareNumberLine.MatchString(line) {
			if id, err := strconv.Atoi(line); err == nil {
				ids = append(ids, id)
				explicit = true
			}
			continue
		}
		// Prose line, salvage the first number it mentions.
		if m := embeddedNumber.FindString(line); m != "" {
			if id, err := strconv.Atoi(m); err == nil {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return Selection{Kind: SelectionNone}
	}

	kind := SelectionFreeform
	if explicit {
		kind = SelectionExplicit
	}
	return Selection{Kind: kind, IDs: dedupIDs(ids, limit)}
}

func extractInts(s string) []int {
	var ids []int
	for _, m := range embeddedNumber.FindAllString(s, -1) {
		if id, err := strconv.Atoi(m); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func dedupIDs(ids []int, limit int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		if len(out) == limit {
			break
		}
	}
	return out
}
