package entity

// QueryForm classifies which filters a question supplies. It only drives the
// guidance copy shown when nothing is found, never the matching itself.
type QueryForm string

const (
	FormCategoryPrice QueryForm = "category_price"
	FormNameOnly      QueryForm = "name_only"
	FormNeedsCategory QueryForm = "needs_category"
	FormNeedsPrice    QueryForm = "needs_price"
	FormInvalid       QueryForm = "invalid"
	FormUnknown       QueryForm = "unknown"
)

// PriceKind tags how a price filter bounds the search.
type PriceKind string

const (
	PriceNone  PriceKind = ""
	PriceBelow PriceKind = "below"
	PriceAbove PriceKind = "above"
	PriceRange PriceKind = "range"
)

// PriceFilter is a half-open or closed price constraint in VND.
// Below sets Max only, Above sets Min only, Range sets both.
type PriceFilter struct {
	Kind PriceKind `json:"kind"`
	Min  int64     `json:"min"`
	Max  int64     `json:"max"`
}

// Superlative marks a question asking for an extremum instead of a range.
type Superlative string

const (
	SuperlativeNone      Superlative = ""
	SuperlativeCheapest  Superlative = "cheapest"
	SuperlativeExpensive Superlative = "most_expensive"
)

// Filters is the structured interpretation of a free-text question.
type Filters struct {
	Price          PriceFilter `json:"price"`
	Category       string      `json:"category"`
	RequestedCount int         `json:"requested_count"` // clamped to [1,3], 0 = unset
	PeopleCount    int         `json:"people_count"`
	Superlative    Superlative `json:"superlative"`
	Keywords       []string    `json:"keywords"`
	// Special is set when the question carries price/combo/superlative
	// phrasing, which skips the direct keyword-search shortcut.
	Special bool `json:"special"`
}

// Query is one analyzed shopper question. Created per request, never stored.
type Query struct {
	Raw        string    `json:"raw"`
	Normalized string    `json:"normalized"`
	Filters    Filters   `json:"filters"`
	Form       QueryForm `json:"form"`
}
