package memoryRepo

import (
	"context"
	"sort"
	"time"

	"scrapiz/database"
	bookingRepo "scrapiz/database/repository/booking"
	"scrapiz/models"
)

// BookingRepo implements bookingRepo.BookingRepository and bookingRepo.SubmissionRepository.
type BookingRepo struct {
	s *Store
}

func matches(b models.Booking, f bookingRepo.BookingFilter) bool {
	if f.UserID != "" && b.UserID != f.UserID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.PickupDate != "" && b.PickupDate != f.PickupDate {
		return false
	}
	return true
}

func (r *BookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("bookings.Create"); err != nil {
		return err
	}

	now := r.s.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.s.bookings[booking.ID] = record[models.Booking]{seq: r.s.nextSeq(), value: *booking}
	return nil
}

// Put stores a booking verbatim, keeping its timestamps. Used to seed fixtures.
func (r *BookingRepo) Put(booking models.Booking) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bookings[booking.ID] = record[models.Booking]{seq: r.s.nextSeq(), value: booking}
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("bookings.GetByID"); err != nil {
		return nil, err
	}

	rec, ok := r.s.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	b := rec.value
	return &b, nil
}

// details must be called with the read lock held.
func (r *BookingRepo) details(b models.Booking) models.BookingWithDetails {
	out := models.BookingWithDetails{Booking: b}
	if rec, ok := r.s.addresses[b.PickupAddressID]; ok {
		a := rec.value
		out.Address = &a
	}
	if p, ok := r.s.profiles[b.UserID]; ok {
		out.Customer = &models.CustomerSummary{FullName: p.FullName, Phone: p.Phone}
	}

	var photos []record[models.BookingPhoto]
	for _, rec := range r.s.photos {
		if rec.value.BookingID == b.ID {
			photos = append(photos, rec)
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].seq < photos[j].seq })
	out.Photos = make([]models.BookingPhoto, 0, len(photos))
	for _, rec := range photos {
		out.Photos = append(out.Photos, rec.value)
	}
	return out
}

func (r *BookingRepo) GetDetails(_ context.Context, id string) (*models.BookingWithDetails, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("bookings.GetDetails"); err != nil {
		return nil, err
	}

	rec, ok := r.s.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	d := r.details(rec.value)
	return &d, nil
}

func (r *BookingRepo) ListDetailed(_ context.Context, filter bookingRepo.BookingFilter) ([]models.BookingWithDetails, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("bookings.ListDetailed"); err != nil {
		return nil, err
	}

	var recs []record[models.Booking]
	for _, rec := range r.s.bookings {
		if matches(rec.value, filter) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		return newestFirst(recs[i].value.CreatedAt, recs[j].value.CreatedAt, recs[i].seq, recs[j].seq)
	})

	out := make([]models.BookingWithDetails, 0, len(recs))
	for _, rec := range recs {
		out = append(out, r.details(rec.value))
	}
	return out, nil
}

func (r *BookingRepo) Update(_ context.Context, id string, update models.BookingUpdate) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("bookings.Update"); err != nil {
		return nil, err
	}

	rec, ok := r.s.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	b := rec.value
	if update.Status != nil {
		b.Status = *update.Status
	}
	if update.EstimatedPrice != nil {
		v := *update.EstimatedPrice
		b.EstimatedPrice = &v
	}
	if update.FinalPrice != nil {
		v := *update.FinalPrice
		b.FinalPrice = &v
	}
	if update.AgentNotes != nil {
		v := *update.AgentNotes
		b.AgentNotes = &v
	}
	b.UpdatedAt = r.s.Now()
	rec.value = b
	r.s.bookings[id] = rec
	return &b, nil
}

func (r *BookingRepo) Count(_ context.Context, filter bookingRepo.BookingFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("bookings.Count"); err != nil {
		return 0, err
	}

	var n int64
	for _, rec := range r.s.bookings {
		if matches(rec.value, filter) {
			n++
		}
	}
	return n, nil
}

func (r *BookingRepo) SumFinalPrice(_ context.Context, status models.BookingStatus, since time.Time) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("bookings.SumFinalPrice"); err != nil {
		return 0, err
	}

	var total float64
	for _, rec := range r.s.bookings {
		b := rec.value
		if b.Status != status || b.CreatedAt.Before(since) {
			continue
		}
		if b.FinalPrice != nil {
			total += *b.FinalPrice
		}
	}
	return total, nil
}

func (r *BookingRepo) AddPhoto(_ context.Context, photo *models.BookingPhoto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("booking_photos.AddPhoto"); err != nil {
		return err
	}

	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = r.s.Now()
	}
	r.s.photos[photo.ID] = record[models.BookingPhoto]{seq: r.s.nextSeq(), value: *photo}
	return nil
}

func (r *BookingRepo) CountPhotos(_ context.Context, bookingID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("booking_photos.CountPhotos"); err != nil {
		return 0, err
	}

	var n int64
	for _, rec := range r.s.photos {
		if rec.value.BookingID == bookingID {
			n++
		}
	}
	return n, nil
}

func (r *BookingRepo) CreateSubmission(_ context.Context, sub *models.BookingSubmission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("booking_submissions.CreateSubmission"); err != nil {
		return err
	}

	now := r.s.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	r.s.submissions[sub.ID] = *sub
	return nil
}

func (r *BookingRepo) GetSubmission(_ context.Context, id string) (*models.BookingSubmission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("booking_submissions.GetSubmission"); err != nil {
		return nil, err
	}

	sub, ok := r.s.submissions[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &sub, nil
}

func (r *BookingRepo) UpdateSubmission(_ context.Context, sub *models.BookingSubmission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("booking_submissions.UpdateSubmission"); err != nil {
		return err
	}

	if _, ok := r.s.submissions[sub.ID]; !ok {
		return database.ErrNotFound
	}
	sub.UpdatedAt = r.s.Now()
	r.s.submissions[sub.ID] = *sub
	return nil
}

func (r *BookingRepo) ListPending(_ context.Context, updatedBefore time.Time) ([]models.BookingSubmission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("booking_submissions.ListPending"); err != nil {
		return nil, err
	}

	out := []models.BookingSubmission{}
	for _, sub := range r.s.submissions {
		if sub.State == models.SubmissionPending && sub.UpdatedAt.Before(updatedBefore) {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}
