package core

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"TechAssist/entity"
	"TechAssist/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	conf := &config.Config{}
	conf.Selector.DumpLimit = 500
	conf.Selector.MaxSelection = 5
	conf.Selector.RelevanceScale = 100
	conf.Selector.PromotionBase = 50
	conf.Selector.PromotionCap = 30
	conf.Selector.StockBase = 20
	conf.Selector.StockCap = 10
	conf.Selector.HighPriceCut = 50_000_000
	conf.Selector.LowPriceCut = 10_000
	conf.Selector.KeepUnmatched = true
	conf.Composer.PauseMs = 0
	return conf
}

type fakeCatalog struct {
	products  []entity.Product
	keyword   map[string][]entity.Candidate
	below     []entity.Candidate
	above     []entity.Candidate
	inRange   []entity.Candidate
	cheapest  []entity.Candidate
	topPicks  []entity.Candidate
	summaries []entity.CategorySummary

	lastCategory string
	lastLimit    int
}

func (f *fakeCatalog) GroundingProducts(context.Context, int) ([]entity.Product, error) {
	return f.products, nil
}

func (f *fakeCatalog) ByIDs(_ context.Context, ids []int) ([]entity.Product, error) {
	byID := make(map[int]entity.Product, len(f.products))
	for _, p := range f.products {
		byID[p.ID] = p
	}
	var out []entity.Product
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) SearchByKeyword(_ context.Context, keyword string) ([]entity.Candidate, error) {
	return f.keyword[keyword], nil
}

func (f *fakeCatalog) AbovePrice(_ context.Context, _ int64, category string) ([]entity.Candidate, error) {
	f.lastCategory = category
	return f.above, nil
}

func (f *fakeCatalog) BelowPrice(_ context.Context, _ int64, category string) ([]entity.Candidate, error) {
	f.lastCategory = category
	return f.below, nil
}

func (f *fakeCatalog) InRange(_ context.Context, _, _ int64, category string) ([]entity.Candidate, error) {
	f.lastCategory = category
	return f.inRange, nil
}

func (f *fakeCatalog) Cheapest(_ context.Context, category string) ([]entity.Candidate, error) {
	f.lastCategory = category
	return f.cheapest, nil
}

func (f *fakeCatalog) MostExpensive(_ context.Context, category string) ([]entity.Candidate, error) {
	f.lastCategory = category
	return nil, nil
}

func (f *fakeCatalog) TopByCategory(_ context.Context, category string, limit int) ([]entity.Candidate, error) {
	f.lastCategory = category
	f.lastLimit = limit
	return f.topPicks, nil
}

func (f *fakeCatalog) Categories(context.Context) ([]string, error) {
	var names []string
	for _, s := range f.summaries {
		names = append(names, s.Name)
	}
	return names, nil
}

func (f *fakeCatalog) CategorySummaries(context.Context) ([]entity.CategorySummary, error) {
	return f.summaries, nil
}

type fakeModel struct {
	responses []string
	err       error
	prompts   []string
}

func (f *fakeModel) Generate(_ context.Context, _, user string) (string, error) {
	f.prompts = append(f.prompts, user)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

type fakeAnalyzer struct {
	query entity.Query
}

func (f *fakeAnalyzer) Analyze(text string, _ []string) entity.Query {
	q := f.query
	q.Raw = text
	return q
}

type fakeRepo struct {
	saved []entity.ChatMessage
}

func (f *fakeRepo) SaveChatMessage(_ context.Context, msg entity.ChatMessage) error {
	f.saved = append(f.saved, msg)
	return nil
}

func (f *fakeRepo) ChatHistory(context.Context, string, int) ([]entity.ChatMessage, error) {
	return f.saved, nil
}

func newTestCore(catalog *fakeCatalog, model *fakeModel, query entity.Query) (*Core, *fakeRepo) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New(testConfig(), log)
	c.SetCatalog(catalog)
	c.SetModel(model)
	c.SetAnalyzer(&fakeAnalyzer{query: query})
	repo := &fakeRepo{}
	c.SetRepository(repo)
	return c, repo
}

func stocked(id int, name string, price int64) entity.Product {
	return entity.Product{ID: id, Name: name, Price: price, Stock: 10, Active: true, ImagePath: "/img.jpg"}
}

func TestSelectProduct_GroundedPick(t *testing.T) {
	catalog := &fakeCatalog{
		products: []entity.Product{
			stocked(1, "Chuột Logitech", 500_000),
			stocked(2, "Bàn phím AKKO", 1_200_000),
		},
	}
	model := &fakeModel{responses: []string{"ProductID: 2"}}
	c, _ := newTestCore(catalog, model, entity.Query{})

	product, candidates, stage := c.selectProduct(context.Background(), entity.Query{Raw: "bàn phím"})

	require.NotNil(t, product)
	assert.Equal(t, 2, product.ID)
	assert.Equal(t, stageGrounded, stage)
	assert.Len(t, candidates, 1)
}

func TestSelectProduct_HallucinatedIDFallsThrough(t *testing.T) {
	catalog := &fakeCatalog{
		products: []entity.Product{stocked(1, "Chuột Logitech", 500_000)},
		keyword: map[string][]entity.Candidate{
			"chuột": {{Product: stocked(1, "Chuột Logitech", 500_000), Relevance: 0.9}},
		},
	}
	model := &fakeModel{responses: []string{"ProductID: 99"}}
	query := entity.Query{Filters: entity.Filters{Keywords: []string{"chuột"}}}
	c, _ := newTestCore(catalog, model, query)

	product, _, stage := c.selectProduct(context.Background(), query)

	require.NotNil(t, product)
	assert.Equal(t, 1, product.ID)
	assert.Equal(t, stageHeuristic, stage)
}

func TestSelectProduct_ModelDeclinesUsesHeuristics(t *testing.T) {
	candidate := entity.Candidate{Product: stocked(3, "Màn hình LG", 4_900_000), Relevance: 0.8}
	catalog := &fakeCatalog{
		products: []entity.Product{stocked(3, "Màn hình LG", 4_900_000)},
		inRange:  []entity.Candidate{candidate},
	}
	model := &fakeModel{responses: []string{"NONE"}}
	query := entity.Query{
		Filters: entity.Filters{
			Price:    entity.PriceFilter{Kind: entity.PriceRange, Min: 4_000_000, Max: 6_000_000},
			Category: "Màn hình",
			Special:  true,
		},
	}
	c, _ := newTestCore(catalog, model, query)

	product, _, stage := c.selectProduct(context.Background(), query)

	require.NotNil(t, product)
	assert.Equal(t, 3, product.ID)
	assert.Equal(t, stageHeuristic, stage)
	assert.Equal(t, "Màn hình", catalog.lastCategory)
}

func TestSelectProduct_TopPicksFallback(t *testing.T) {
	catalog := &fakeCatalog{
		topPicks: []entity.Candidate{{Product: stocked(4, "SSD Samsung", 2_000_000), Relevance: 0.5}},
	}
	model := &fakeModel{responses: []string{"NONE"}}
	c, _ := newTestCore(catalog, model, entity.Query{})

	product, _, stage := c.selectProduct(context.Background(), entity.Query{})

	require.NotNil(t, product)
	assert.Equal(t, 4, product.ID)
	assert.Equal(t, stageTopPicks, stage)
}

func TestSelectProduct_EmptyCatalogEndsAtApology(t *testing.T) {
	c, _ := newTestCore(&fakeCatalog{}, &fakeModel{responses: []string{"NONE"}}, entity.Query{})

	product, candidates, stage := c.selectProduct(context.Background(), entity.Query{})

	assert.Nil(t, product)
	assert.Empty(t, candidates)
	assert.Equal(t, stageApology, stage)
}

func TestSelectProduct_DirectSearchBeforeModelFilters(t *testing.T) {
	hit := entity.Candidate{Product: stocked(7, "Logitech G102", 450_000), Relevance: 1.0}
	catalog := &fakeCatalog{
		keyword: map[string][]entity.Candidate{"g102": {hit}},
	}
	model := &fakeModel{responses: []string{"NONE"}}
	query := entity.Query{Filters: entity.Filters{Keywords: []string{"g102"}, Special: false}}
	c, _ := newTestCore(catalog, model, query)

	product, _, stage := c.selectProduct(context.Background(), query)

	require.NotNil(t, product)
	assert.Equal(t, 7, product.ID)
	assert.Equal(t, stageHeuristic, stage)
}

func TestSelectProduct_RequestedCountCapsHeuristicPicks(t *testing.T) {
	inRange := []entity.Candidate{
		{Product: stocked(1, "Màn hình LG 24", 4_500_000), Relevance: 0.8},
		{Product: stocked(2, "Màn hình Dell 24", 4_800_000), Relevance: 0.8},
		{Product: stocked(3, "Màn hình AOC 24", 5_100_000), Relevance: 0.8},
		{Product: stocked(4, "Màn hình Asus 24", 5_400_000), Relevance: 0.8},
	}
	catalog := &fakeCatalog{inRange: inRange}
	model := &fakeModel{responses: []string{"NONE"}}
	query := entity.Query{
		Filters: entity.Filters{
			Price:          entity.PriceFilter{Kind: entity.PriceRange, Min: 4_000_000, Max: 6_000_000},
			Category:       "Màn hình",
			RequestedCount: 2,
			Special:        true,
		},
	}
	c, _ := newTestCore(catalog, model, query)

	product, candidates, stage := c.selectProduct(context.Background(), query)

	require.NotNil(t, product)
	assert.Equal(t, stageHeuristic, stage)
	assert.Len(t, candidates, 2, "requested count limits the shortlist")
}

func TestSelectProduct_RequestedCountReachesTopPicks(t *testing.T) {
	catalog := &fakeCatalog{
		topPicks: []entity.Candidate{{Product: stocked(4, "SSD Samsung", 2_000_000), Relevance: 0.5}},
	}
	model := &fakeModel{responses: []string{"NONE"}}
	query := entity.Query{Filters: entity.Filters{RequestedCount: 2}}
	c, _ := newTestCore(catalog, model, query)

	_, _, stage := c.selectProduct(context.Background(), query)

	assert.Equal(t, stageTopPicks, stage)
	assert.Equal(t, 2, catalog.lastLimit)
}

func TestSelectProduct_DefaultPickLimit(t *testing.T) {
	catalog := &fakeCatalog{
		topPicks: []entity.Candidate{{Product: stocked(4, "SSD Samsung", 2_000_000), Relevance: 0.5}},
	}
	model := &fakeModel{responses: []string{"NONE"}}
	c, _ := newTestCore(catalog, model, entity.Query{})

	_, _, stage := c.selectProduct(context.Background(), entity.Query{})

	assert.Equal(t, stageTopPicks, stage)
	assert.Equal(t, fallbackPickLimit, catalog.lastLimit)
}

func TestBestPick_PromotionBreaksTie(t *testing.T) {
	plain := stocked(1, "a", 1_000_000)
	promoted := stocked(2, "b", 1_000_000)
	promoted.PromotionPrice = 700_000
	c, _ := newTestCore(&fakeCatalog{}, &fakeModel{}, entity.Query{})

	pick := c.bestPick([]entity.Candidate{
		{Product: plain, Relevance: 0.8},
		{Product: promoted, Relevance: 0.8},
	})

	require.NotNil(t, pick)
	assert.Equal(t, 2, pick.ID)
}

func TestBestPick_RelevanceDominates(t *testing.T) {
	relevant := stocked(1, "a", 1_000_000)
	promoted := stocked(2, "b", 1_000_000)
	promoted.PromotionPrice = 500_000
	c, _ := newTestCore(&fakeCatalog{}, &fakeModel{}, entity.Query{})

	pick := c.bestPick([]entity.Candidate{
		{Product: relevant, Relevance: 1.0},
		{Product: promoted, Relevance: 0.1},
	})

	require.NotNil(t, pick)
	assert.Equal(t, 1, pick.ID)
}

func TestBestPick_ImplausiblePricePunished(t *testing.T) {
	overpriced := stocked(1, "a", 60_000_000)
	sane := stocked(2, "b", 20_000_000)
	c, _ := newTestCore(&fakeCatalog{}, &fakeModel{}, entity.Query{})

	pick := c.bestPick([]entity.Candidate{
		{Product: overpriced, Relevance: 0.8},
		{Product: sane, Relevance: 0.8},
	})

	require.NotNil(t, pick)
	assert.Equal(t, 2, pick.ID)
}

func TestBestPick_EqualScoreLowerIDWins(t *testing.T) {
	a := stocked(5, "a", 1_000_000)
	b := stocked(3, "b", 1_000_000)
	c, _ := newTestCore(&fakeCatalog{}, &fakeModel{}, entity.Query{})

	pick := c.bestPick([]entity.Candidate{
		{Product: a, Relevance: 0.8},
		{Product: b, Relevance: 0.8},
	})

	require.NotNil(t, pick)
	assert.Equal(t, 3, pick.ID)
}

func TestValidateKeywords_KeepsModelListWhenNothingMatches(t *testing.T) {
	c, _ := newTestCore(&fakeCatalog{}, &fakeModel{}, entity.Query{})
	products := []entity.Product{stocked(1, "Ổ cứng WD", 2_000_000)}

	kept := c.validateKeywords(products, []string{"ssd"})

	assert.Equal(t, products, kept)
}

func TestValidateKeywords_FiltersToMatches(t *testing.T) {
	c, _ := newTestCore(&fakeCatalog{}, &fakeModel{}, entity.Query{})
	match := stocked(1, "SSD Samsung 1TB", 2_000_000)
	other := stocked(2, "RAM Kingston", 900_000)

	kept := c.validateKeywords([]entity.Product{match, other}, []string{"ssd"})

	require.Len(t, kept, 1)
	assert.Equal(t, 1, kept[0].ID)
}
