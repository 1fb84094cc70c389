package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/vitrine-app/vitrine-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const promotionCollection = "discounts"

// PromotionRepository reads active discount codes from MongoDB
type PromotionRepository struct {
	coll *mongo.Collection
}

// NewPromotionRepository creates a promotion repository
func NewPromotionRepository(client *Client) *PromotionRepository {
	return &PromotionRepository{
		coll: client.Database().Collection(promotionCollection),
	}
}

// ListActive returns promotions whose validity window contains now
func (r *PromotionRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	filter := bson.M{
		"active":     true,
		"start_date": bson.M{"$lte": now},
		"end_date":   bson.M{"$gte": now},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	defer cursor.Close(ctx)

	var promotions []domain.Promotion
	if err := cursor.All(ctx, &promotions); err != nil {
		return nil, fmt.Errorf("failed to decode promotions: %w", err)
	}

	return promotions, nil
}
