package mongo

import (
	"context"
	"fmt"

	"github.com/vitrine-app/vitrine-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const catalogCollection = "products"

// CatalogRepository reads published catalog items from MongoDB
type CatalogRepository struct {
	coll *mongo.Collection
}

// NewCatalogRepository creates a catalog repository
func NewCatalogRepository(client *Client) *CatalogRepository {
	return &CatalogRepository{
		coll: client.Database().Collection(catalogCollection),
	}
}

// ListPublished returns published+active items with derived availability.
// Stocked items report their stock count; event items report remaining
// capacity (max_attendees - current_attendees).
func (r *CatalogRepository) ListPublished(ctx context.Context) ([]domain.CatalogItem, error) {
	filter := bson.M{
		"published": true,
		"active":    true,
	}

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "title", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []domain.CatalogItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode catalog items: %w", err)
	}

	for i := range items {
		if items[i].Stock != nil {
			items[i].Availability = *items[i].Stock
		} else {
			remaining := items[i].MaxAttendees - items[i].CurrentAttendees
			if remaining < 0 {
				remaining = 0
			}
			items[i].Availability = remaining
		}
	}

	return items, nil
}
