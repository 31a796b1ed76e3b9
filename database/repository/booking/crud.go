package bookingRepo

import (
	"context"
	"time"

	"voicedesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking assembled from the dialog draft.
func (r *mongoBookingRepo) Create(ctx context.Context, draft models.BookingDraft, callSid string) (*models.Booking, error) {
	now := time.Now()
	booking := models.Booking{
		ID:            draft.ID,
		Date:          draft.Date,
		Time:          draft.Time,
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		CallSid:       callSid,
		Status:        models.BookingStatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if booking.ID == "" {
		booking.ID = uuid.New().String()[:8]
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByID returns a booking by its ID, or nil when no record matches.
func (r *mongoBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepo) FindByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"customer_phone": phone})
}

func (r *mongoBookingRepo) FindByName(ctx context.Context, name string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"customer_name": name})
}

// All returns every booking, newest-first.
func (r *mongoBookingRepo) All(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus sets the status of an existing booking.
func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a booking by ID.
func (r *mongoBookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
