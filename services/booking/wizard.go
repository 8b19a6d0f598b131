package booking

import (
	"fmt"
	"strings"
	"time"

	"scrapiz/models"
	"scrapiz/services/address"
)

// BookingWindowDays is how many days after today a pickup can be scheduled.
const BookingWindowDays = 7

// Wizard owns every transition of a BookingDraft. Drafts are values: each call returns the
// next draft and never touches the one passed in.
type Wizard struct {
	Now      func() time.Time
	Location *time.Location
}

func NewWizard(loc *time.Location) Wizard {
	if loc == nil {
		loc = time.UTC
	}
	return Wizard{Now: time.Now, Location: loc}
}

// Today is midnight of the current day in the wizard's location.
func (w Wizard) Today() time.Time {
	now := w.Now().In(w.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, w.Location)
}

// AvailableDates lists today and the following BookingWindowDays days.
func (w Wizard) AvailableDates() []string {
	today := w.Today()
	dates := make([]string, 0, BookingWindowDays+1)
	for i := 0; i <= BookingWindowDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i).Format(models.DateLayout))
	}
	return dates
}

func (w Wizard) NewDraft(id, userID string) models.BookingDraft {
	now := w.Now().UTC()
	return models.BookingDraft{
		ID:            id,
		UserID:        userID,
		Step:          models.FirstWizardStep,
		PaymentMethod: models.PaymentCash,
		Photos:        []models.DraftPhoto{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func clonePhotos(p []models.DraftPhoto) []models.DraftPhoto {
	out := make([]models.DraftPhoto, len(p))
	copy(out, p)
	return out
}

func (w Wizard) touch(d models.BookingDraft) models.BookingDraft {
	d.Photos = clonePhotos(d.Photos)
	d.UpdatedAt = w.Now().UTC()
	return d
}

// Apply merges a change into the draft. Enumerated fields are checked here; completeness is
// checked when leaving a step.
func (w Wizard) Apply(d models.BookingDraft, ch models.DraftChange) (models.BookingDraft, error) {
	if ch.MaterialCategory != nil && *ch.MaterialCategory != "" && !ch.MaterialCategory.Valid() {
		return d, fmt.Errorf("%w: material_category %q", ErrInvalidDraft, *ch.MaterialCategory)
	}
	if ch.PaymentMethod != nil && !ch.PaymentMethod.Valid() {
		return d, fmt.Errorf("%w: payment_method %q", ErrInvalidDraft, *ch.PaymentMethod)
	}
	if ch.TimeSlot != nil && *ch.TimeSlot != "" && !models.ValidTimeSlot(*ch.TimeSlot) {
		return d, fmt.Errorf("%w: time_slot %q", ErrInvalidDraft, *ch.TimeSlot)
	}
	if ch.PickupDate != nil && *ch.PickupDate != "" {
		if _, err := time.ParseInLocation(models.DateLayout, *ch.PickupDate, w.Location); err != nil {
			return d, fmt.Errorf("%w: pickup_date %q", ErrInvalidDraft, *ch.PickupDate)
		}
	}

	next := w.touch(d)
	if ch.MaterialCategory != nil {
		next.MaterialCategory = *ch.MaterialCategory
	}
	if ch.QuantityEstimation != nil {
		next.QuantityEstimation = *ch.QuantityEstimation
	}
	if ch.Address != nil {
		next.Address = *ch.Address
	}
	if ch.PickupDate != nil {
		next.PickupDate = *ch.PickupDate
	}
	if ch.TimeSlot != nil {
		next.TimeSlot = *ch.TimeSlot
	}
	if ch.SpecialInstructions != nil {
		next.SpecialInstructions = *ch.SpecialInstructions
	}
	if ch.PaymentMethod != nil {
		next.PaymentMethod = *ch.PaymentMethod
	}
	return next, nil
}

func incomplete(reason string) error {
	return fmt.Errorf("%w: %s", ErrStepIncomplete, reason)
}

// StepValid reports whether the draft satisfies the predicate of the given step.
func (w Wizard) StepValid(d models.BookingDraft, step int) error {
	switch step {
	case 1:
		if !d.MaterialCategory.Valid() {
			return incomplete("choose a material category")
		}
	case 2:
		if strings.TrimSpace(d.QuantityEstimation) == "" {
			return incomplete("describe the quantity")
		}
	case 3:
		if d.Address.ID != "" {
			return nil
		}
		in := models.AddressInput{
			Title:       d.Address.Title,
			AddressLine: d.Address.AddressLine,
			Area:        d.Address.Area,
			City:        d.Address.City,
			PinCode:     d.Address.PinCode,
		}
		if err := address.ValidateInput(in); err != nil {
			return incomplete(err.Error())
		}
	case 4:
		if d.PickupDate == "" || d.TimeSlot == "" {
			return incomplete("choose a pickup date and time slot")
		}
		date, err := time.ParseInLocation(models.DateLayout, d.PickupDate, w.Location)
		if err != nil {
			return incomplete("pickup date is malformed")
		}
		if date.Before(w.Today()) {
			return incomplete("pickup date is in the past")
		}
		if !models.ValidTimeSlot(d.TimeSlot) {
			return incomplete("time slot is not offered")
		}
	case 5:
		if len(d.Photos) > models.MaxDraftPhotos {
			return ErrTooManyPhotos
		}
		if !d.PaymentMethod.Valid() {
			return incomplete("choose a payment method")
		}
	case 6:
	default:
		return fmt.Errorf("%w: step %d does not exist", ErrInvalidDraft, step)
	}
	return nil
}

// Next advances one step when the current step is complete. The last step is a fixed point.
func (w Wizard) Next(d models.BookingDraft) (models.BookingDraft, error) {
	if err := w.StepValid(d, d.Step); err != nil {
		return d, err
	}
	next := w.touch(d)
	if next.Step < models.LastWizardStep {
		next.Step++
	}
	return next, nil
}

// Previous goes back one step without clearing anything. The first step is a fixed point.
func (w Wizard) Previous(d models.BookingDraft) models.BookingDraft {
	next := w.touch(d)
	if next.Step > models.FirstWizardStep {
		next.Step--
	}
	return next
}

func (w Wizard) AddPhoto(d models.BookingDraft, p models.DraftPhoto) (models.BookingDraft, error) {
	if len(d.Photos) >= models.MaxDraftPhotos {
		return d, ErrTooManyPhotos
	}
	next := w.touch(d)
	next.Photos = append(next.Photos, p)
	return next, nil
}

func (w Wizard) RemovePhoto(d models.BookingDraft, index int) (models.BookingDraft, models.DraftPhoto, error) {
	if index < 0 || index >= len(d.Photos) {
		return d, models.DraftPhoto{}, ErrPhotoNotFound
	}
	removed := d.Photos[index]
	next := w.touch(d)
	next.Photos = append(next.Photos[:index], next.Photos[index+1:]...)
	return next, removed, nil
}

// ValidateForSubmit checks every input step. It runs before any write.
func (w Wizard) ValidateForSubmit(d models.BookingDraft) error {
	for step := models.FirstWizardStep; step < models.LastWizardStep; step++ {
		if err := w.StepValid(d, step); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
	}
	return nil
}

// ToBooking maps a complete draft onto a scheduled booking at the given address.
func ToBooking(id string, d models.BookingDraft, addressID string) models.Booking {
	b := models.Booking{
		ID:                 id,
		UserID:             d.UserID,
		MaterialCategory:   d.MaterialCategory,
		QuantityEstimation: strings.TrimSpace(d.QuantityEstimation),
		PickupAddressID:    addressID,
		PickupDate:         d.PickupDate,
		TimeSlot:           d.TimeSlot,
		Status:             models.StatusScheduled,
		PaymentMethod:      d.PaymentMethod,
	}
	if s := strings.TrimSpace(d.SpecialInstructions); s != "" {
		b.SpecialInstructions = &s
	}
	return b
}
