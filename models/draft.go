package models

import "time"

const (
	FirstWizardStep = 1
	LastWizardStep  = 6
	MaxDraftPhotos  = 5
)

// DraftAddress is the address chosen on step 3. A non-empty ID refers to a saved address.
type DraftAddress struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	AddressLine string `json:"address_line"`
	Area        string `json:"area"`
	City        string `json:"city"`
	PinCode     string `json:"pin_code"`
}

// DraftPhoto points at staged bytes held next to the draft.
type DraftPhoto struct {
	Key         string `json:"key"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// BookingDraft is the in-progress wizard state.
type BookingDraft struct {
	ID                  string           `json:"id"`
	UserID              string           `json:"user_id"`
	Step                int              `json:"step"`
	MaterialCategory    MaterialCategory `json:"material_category"`
	QuantityEstimation  string           `json:"quantity_estimation"`
	Address             DraftAddress     `json:"address"`
	PickupDate          string           `json:"pickup_date"`
	TimeSlot            string           `json:"time_slot"`
	Photos              []DraftPhoto     `json:"photos"`
	SpecialInstructions string           `json:"special_instructions"`
	PaymentMethod       PaymentMethod    `json:"payment_method"`
	SubmissionID        string           `json:"submission_id,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// DraftChange is a partial edit; nil fields keep their current value.
type DraftChange struct {
	MaterialCategory    *MaterialCategory `json:"material_category"`
	QuantityEstimation  *string           `json:"quantity_estimation"`
	Address             *DraftAddress     `json:"address"`
	PickupDate          *string           `json:"pickup_date"`
	TimeSlot            *string           `json:"time_slot"`
	SpecialInstructions *string           `json:"special_instructions"`
	PaymentMethod       *PaymentMethod    `json:"payment_method"`
}
