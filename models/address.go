package models

import "time"

// Address is a saved pickup location owned by a user.
type Address struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Title       string    `bson:"title" json:"title"`
	AddressLine string    `bson:"address_line" json:"address_line"`
	Area        *string   `bson:"area" json:"area"`
	City        string    `bson:"city" json:"city"`
	PinCode     string    `bson:"pin_code" json:"pin_code"`
	IsDefault   bool      `bson:"is_default" json:"is_default"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// AddressInput is the editable part of an address.
type AddressInput struct {
	Title       string `json:"title"`
	AddressLine string `json:"address_line"`
	Area        string `json:"area"`
	City        string `json:"city"`
	PinCode     string `json:"pin_code"`
}
