package models

import "time"

// Booking is a scheduled pickup request.
type Booking struct {
	ID                  string           `bson:"id" json:"id"`
	UserID              string           `bson:"user_id" json:"user_id"`
	MaterialCategory    MaterialCategory `bson:"material_category" json:"material_category"`
	QuantityEstimation  string           `bson:"quantity_estimation" json:"quantity_estimation"`
	PickupAddressID     string           `bson:"pickup_address_id" json:"pickup_address_id"`
	PickupDate          string           `bson:"pickup_date" json:"pickup_date"` // YYYY-MM-DD
	TimeSlot            string           `bson:"time_slot" json:"time_slot"`
	SpecialInstructions *string          `bson:"special_instructions" json:"special_instructions"`
	Status              BookingStatus    `bson:"status" json:"status"`
	PaymentMethod       PaymentMethod    `bson:"payment_method" json:"payment_method"`
	EstimatedPrice      *float64         `bson:"estimated_price" json:"estimated_price"`
	FinalPrice          *float64         `bson:"final_price" json:"final_price"`
	AgentNotes          *string          `bson:"agent_notes" json:"agent_notes"`
	CreatedAt           time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time        `bson:"updated_at" json:"updated_at"`
}

// BookingPhoto is immutable once stored.
type BookingPhoto struct {
	ID        string    `bson:"id" json:"id"`
	BookingID string    `bson:"booking_id" json:"booking_id"`
	PhotoURL  string    `bson:"photo_url" json:"photo_url"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// CustomerSummary is the slice of a profile shown in the admin table.
type CustomerSummary struct {
	FullName *string `bson:"full_name" json:"full_name"`
	Phone    *string `bson:"phone" json:"phone"`
}

// BookingWithDetails is a booking joined with its address, owner and photos.
// Address is nil when the referenced address was deleted.
type BookingWithDetails struct {
	Booking  `bson:",inline"`
	Address  *Address         `bson:"address,omitempty" json:"addresses"`
	Customer *CustomerSummary `bson:"customer,omitempty" json:"profiles"`
	Photos   []BookingPhoto   `bson:"photos,omitempty" json:"booking_photos"`
}

// BookingUpdate carries the admin-editable fields; nil leaves a field untouched.
type BookingUpdate struct {
	Status         *BookingStatus `json:"status"`
	EstimatedPrice *float64       `json:"estimated_price"`
	FinalPrice     *float64       `json:"final_price"`
	AgentNotes     *string        `json:"agent_notes"`
}

func (u BookingUpdate) Empty() bool {
	return u.Status == nil && u.EstimatedPrice == nil && u.FinalPrice == nil && u.AgentNotes == nil
}
