package core

import (
	"context"
	"errors"
	"testing"

	"TechAssist/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_AnswersWithOneProduct(t *testing.T) {
	catalog := &fakeCatalog{
		products: []entity.Product{
			stocked(1, "Chuột Logitech G102", 450_000),
			stocked(2, "Bàn phím AKKO", 1_200_000),
		},
		summaries: []entity.CategorySummary{{Name: "Chuột", Count: 10, MinPrice: 100_000, MaxPrice: 2_000_000}},
	}
	model := &fakeModel{responses: []string{
		"ProductID: 1",
		"Dạ, em gợi ý chuột Logitech G102 ạ.",
	}}
	c, repo := newTestCore(catalog, model, entity.Query{})

	resp := c.Chat(context.Background(), entity.ChatRequest{Question: "chuột gaming", SessionID: "s1"})

	assert.True(t, resp.Success)
	assert.Equal(t, "Dạ, em gợi ý chuột Logitech G102 ạ.", resp.Answer)
	require.Len(t, resp.RelatedProducts, 1)
	assert.Equal(t, 1, resp.RelatedProducts[0].ID)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "s1", repo.saved[0].SessionID)
	assert.Equal(t, 1, repo.saved[0].ProductID)
	assert.True(t, repo.saved[0].Success)
}

func TestChat_EmptyQuestion(t *testing.T) {
	c, repo := newTestCore(&fakeCatalog{}, &fakeModel{}, entity.Query{})

	resp := c.Chat(context.Background(), entity.ChatRequest{Question: "   "})

	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Answer)
	assert.NotEmpty(t, resp.ErrorMessage)
	assert.Empty(t, resp.RelatedProducts)
	assert.Empty(t, repo.saved)
}

func TestChat_NoMatchStillWellFormed(t *testing.T) {
	c, repo := newTestCore(&fakeCatalog{}, &fakeModel{responses: []string{"NONE"}}, entity.Query{})

	resp := c.Chat(context.Background(), entity.ChatRequest{Question: "máy giặt", SessionID: "s2"})

	assert.True(t, resp.Success, "a canned apology is still a complete answer")
	assert.Equal(t, apologyNoMatch, resp.Answer)
	assert.NotNil(t, resp.RelatedProducts)
	assert.Empty(t, resp.RelatedProducts)

	require.Len(t, repo.saved, 1)
	assert.Zero(t, repo.saved[0].ProductID)
}

func TestComposeAnswer_FailureKeepsCannedLine(t *testing.T) {
	model := &fakeModel{err: errors.New("model down")}
	c, _ := newTestCore(&fakeCatalog{}, model, entity.Query{})
	product := stocked(1, "Chuột Logitech", 450_000)

	answer, success := c.composeAnswer(context.Background(), entity.Query{Raw: "chuột"}, &product, &resolution{})

	assert.False(t, success)
	assert.Equal(t, apologyComposeFailed, answer)
}

func TestComposeAnswer_NilProduct(t *testing.T) {
	c, _ := newTestCore(&fakeCatalog{}, &fakeModel{}, entity.Query{})

	answer, success := c.composeAnswer(context.Background(), entity.Query{}, nil, &resolution{})

	assert.True(t, success)
	assert.Equal(t, apologyNoMatch, answer)
}

func TestSuggestions_ReturnsThreeFromPool(t *testing.T) {
	c, _ := newTestCore(&fakeCatalog{}, &fakeModel{}, entity.Query{})

	suggestions := c.Suggestions()

	require.Len(t, suggestions, 3)
	pool := make(map[string]bool, len(starterQuestions))
	for _, q := range starterQuestions {
		pool[q] = true
	}
	seen := make(map[string]bool)
	for _, s := range suggestions {
		assert.True(t, pool[s], "suggestion not from pool: %q", s)
		assert.False(t, seen[s], "duplicate suggestion: %q", s)
		seen[s] = true
	}
}

func TestSuggestionFor_Promotion(t *testing.T) {
	p := stocked(9, "SSD Samsung", 2_000_000)
	p.PromotionPrice = 1_500_000

	s := suggestionFor(p)

	assert.Equal(t, 9, s.ID)
	assert.Equal(t, int64(1_500_000), s.PromotionPrice)
	assert.Equal(t, "/product/9", s.URL)

	plain := suggestionFor(stocked(10, "RAM", 900_000))
	assert.Zero(t, plain.PromotionPrice)
}
