package repository

import (
	"TechAssist/entity"
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// searchLimit caps how many candidates a single catalog query hands back.
const searchLimit = 50

// availableFilter limits every catalog query to sellable products.
func availableFilter() bson.D {
	return bson.D{
		{Key: "active", Value: true},
		{Key: "stock", Value: bson.D{{Key: "$gt", Value: 0}}},
	}
}

func categoryFilter(base bson.D, category string) bson.D {
	if category == "" {
		return base
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(category), Options: "i"}
	return append(base, bson.E{Key: "category", Value: pattern})
}

func (m *MongoDB) findProducts(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]entity.Product, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, m.findError(err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("mongodb decode error: %w", err)
	}
	return products, nil
}

// GroundingProducts returns active in-stock products for the model dump,
// in-stock-heavy first, promoted before plain within equal stock.
func (m *MongoDB) GroundingProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	products, err := m.findProducts(ctx, availableFilter())
	if err != nil {
		return nil, err
	}
	sortForGrounding(products)
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

// ByIDs fetches products by id, preserving the order of ids. Unknown ids
// are skipped.
func (m *MongoDB) ByIDs(ctx context.Context, ids []int) ([]entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := append(availableFilter(), bson.E{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}})
	products, err := m.findProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return orderByIDs(products, ids), nil
}

// SearchByKeyword matches product names against a keyword and ranks the
// results by match quality.
func (m *MongoDB) SearchByKeyword(ctx context.Context, keyword string) ([]entity.Candidate, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	filter := append(availableFilter(), bson.E{Key: "name", Value: pattern})
	products, err := m.findProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return capCandidates(rankKeyword(products, keyword), searchLimit), nil
}

func (m *MongoDB) AbovePrice(ctx context.Context, min int64, category string) ([]entity.Candidate, error) {
	filter := categoryFilter(availableFilter(), category)
	filter = append(filter, bson.E{Key: "price", Value: bson.D{{Key: "$gt", Value: min}}})
	products, err := m.findProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return capCandidates(rankByProximity(products, min), searchLimit), nil
}

func (m *MongoDB) BelowPrice(ctx context.Context, max int64, category string) ([]entity.Candidate, error) {
	filter := categoryFilter(availableFilter(), category)
	filter = append(filter, bson.E{Key: "price", Value: bson.D{{Key: "$lt", Value: max}}})
	products, err := m.findProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return capCandidates(rankByProximity(products, max), searchLimit), nil
}

func (m *MongoDB) InRange(ctx context.Context, min, max int64, category string) ([]entity.Candidate, error) {
	filter := categoryFilter(availableFilter(), category)
	filter = append(filter, bson.E{Key: "price", Value: bson.D{{Key: "$gte", Value: min}, {Key: "$lte", Value: max}}})
	products, err := m.findProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return capCandidates(rankByProximity(products, (min+max)/2), searchLimit), nil
}

func (m *MongoDB) Cheapest(ctx context.Context, category string) ([]entity.Candidate, error) {
	filter := categoryFilter(availableFilter(), category)
	products, err := m.findProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return capCandidates(rankByEffectivePrice(products, true), searchLimit), nil
}

func (m *MongoDB) MostExpensive(ctx context.Context, category string) ([]entity.Candidate, error) {
	filter := categoryFilter(availableFilter(), category)
	products, err := m.findProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return capCandidates(rankByEffectivePrice(products, false), searchLimit), nil
}

// TopByCategory returns the leading products of a category, or of the whole
// catalog when category is empty, promoted deals first.
func (m *MongoDB) TopByCategory(ctx context.Context, category string, limit int) ([]entity.Candidate, error) {
	filter := categoryFilter(availableFilter(), category)
	products, err := m.findProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortForTopPicks(products)
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return asCandidates(products, 0.5), nil
}

// Categories lists distinct category names of sellable products.
func (m *MongoDB) Categories(ctx context.Context) ([]string, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	values, err := collection.Distinct(ctx, "category", availableFilter())
	if err != nil {
		return nil, m.findError(err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// CategorySummaries aggregates per-category counts and price spread for the
// guidance context handed to the model.
func (m *MongoDB) CategorySummaries(ctx context.Context) ([]entity.CategorySummary, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(productsCollection)
	pipeline := []bson.D{
		{{Key: "$match", Value: availableFilter()}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "minPrice", Value: bson.D{{Key: "$min", Value: "$price"}}},
			{Key: "maxPrice", Value: bson.D{{Key: "$max", Value: "$price"}}},
			{Key: "avgPrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongodb aggregate error: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name     string  `bson:"_id"`
		Count    int     `bson:"count"`
		MinPrice int64   `bson:"minPrice"`
		MaxPrice int64   `bson:"maxPrice"`
		AvgPrice float64 `bson:"avgPrice"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("mongodb decode error: %w", err)
	}

	summaries := make([]entity.CategorySummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, entity.CategorySummary{
			Name:     r.Name,
			Count:    r.Count,
			MinPrice: r.MinPrice,
			MaxPrice: r.MaxPrice,
			AvgPrice: int64(r.AvgPrice),
		})
	}
	return summaries, nil
}
