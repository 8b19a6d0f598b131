package models

import "time"

const RoleAdmin = "admin"

type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Profile is keyed by the hosted-auth user id.
type Profile struct {
	ID                       string    `bson:"id" json:"id"`
	FullName                 *string   `bson:"full_name" json:"full_name"`
	Phone                    *string   `bson:"phone" json:"phone"`
	PinCode                  *string   `bson:"pin_code" json:"pin_code"`
	PreferredLanguage        Language  `bson:"preferred_language" json:"preferred_language"`
	PushNotificationsEnabled bool      `bson:"push_notifications_enabled" json:"push_notifications_enabled"`
	Location                 *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	Role                     string    `bson:"role,omitempty" json:"role,omitempty"`
	FCMToken                 string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt                time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt                time.Time `bson:"updated_at" json:"updated_at"`
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// DefaultProfile is what a user without a stored profile sees.
func DefaultProfile(userID string) Profile {
	return Profile{
		ID:                       userID,
		PreferredLanguage:        LanguageEnglish,
		PushNotificationsEnabled: true,
	}
}

type ProfileUpdateRequest struct {
	FullName                 *string   `json:"full_name"`
	Phone                    *string   `json:"phone"`
	PinCode                  *string   `json:"pin_code"`
	PreferredLanguage        *Language `json:"preferred_language"`
	PushNotificationsEnabled *bool     `json:"push_notifications_enabled"`
	Location                 *GeoPoint `json:"location"`
}
