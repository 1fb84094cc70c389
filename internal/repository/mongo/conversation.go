package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitrine-app/vitrine-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const conversationCollection = "conversations"

// conversationRecord is the persisted shape of a subject's window
type conversationRecord struct {
	SubjectID   string                    `bson:"_id"`
	Turns       []domain.ConversationTurn `bson:"turns"`
	LastUpdated time.Time                 `bson:"last_updated"`
}

// ConversationRepository persists bounded conversation windows in MongoDB
type ConversationRepository struct {
	coll *mongo.Collection
}

// NewConversationRepository creates a conversation repository
func NewConversationRepository(client *Client) *ConversationRepository {
	return &ConversationRepository{
		coll: client.Database().Collection(conversationCollection),
	}
}

// AppendTurn pushes a turn onto the subject's window and truncates to the
// last maxHistory entries in the same update, so storage never holds more
// than the window even under concurrent writers.
func (r *ConversationRepository) AppendTurn(ctx context.Context, subjectID string, turn domain.ConversationTurn, maxHistory int) error {
	update := bson.M{
		"$push": bson.M{
			"turns": bson.M{
				"$each":  bson.A{turn},
				"$slice": -maxHistory,
			},
		},
		"$set": bson.M{
			"last_updated": time.Now().UTC(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateByID(ctx, subjectID, update, opts); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}

	return nil
}

// GetTurns returns the stored window in chronological order
func (r *ConversationRepository) GetTurns(ctx context.Context, subjectID string) ([]domain.ConversationTurn, error) {
	var record conversationRecord
	err := r.coll.FindOne(ctx, bson.M{"_id": subjectID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []domain.ConversationTurn{}, nil
		}
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}

	return record.Turns, nil
}

// Delete removes the subject's conversation record
func (r *ConversationRepository) Delete(ctx context.Context, subjectID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": subjectID}); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
