package models

import "time"

// Booking represents a persisted appointment record.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	Date          string    `bson:"date" json:"date"`
	Time          string    `bson:"time" json:"time"`
	CustomerName  string    `bson:"customer_name,omitempty" json:"customerName,omitempty"`
	CustomerPhone string    `bson:"customer_phone,omitempty" json:"customerPhone,omitempty"`
	CallSid       string    `bson:"call_sid" json:"callSid"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// BookingStatusConfirmed is the status assigned to freshly created bookings.
const BookingStatusConfirmed = "confirmed"
