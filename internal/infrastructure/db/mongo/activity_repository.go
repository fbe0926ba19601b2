package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

// ActivityRepository appends activity events to the activity_log collection.
type ActivityRepository struct {
	db *mongo.Database
}

func NewActivityRepository(db *mongo.Database) ports.ActivitySink {
	return &ActivityRepository{db: db}
}

// Insert persists one event.
func (r *ActivityRepository) Insert(ctx context.Context, event domain.ActivityEvent) error {
	event.At = event.At.UTC()
	if _, err := r.db.Collection(activityCollection).InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert activity %s: %w", event.Action, err)
	}
	return nil
}
