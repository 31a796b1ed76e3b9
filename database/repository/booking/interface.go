package bookingRepo

import (
	"context"

	"voicedesk/database"
	"voicedesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the persistence surface the voice bot needs for bookings.
// Multi-result queries return records newest-first.
type Repository interface {
	Create(ctx context.Context, draft models.BookingDraft, callSid string) (*models.Booking, error)
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByPhone(ctx context.Context, phone string) ([]models.Booking, error)
	FindByName(ctx context.Context, name string) ([]models.Booking, error)
	All(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a Repository backed by MongoDB.
func NewMongoBookingRepo() Repository {
	db := database.MongoClient.Database("voicedesk")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
