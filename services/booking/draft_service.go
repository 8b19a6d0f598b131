package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"scrapiz/models"
	"scrapiz/services/address"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxPhotoBytes caps a single staged photo.
const MaxPhotoBytes = 10 << 20

// DraftService is the server side of the booking wizard.
type DraftService struct {
	Wizard    Wizard
	Store     DraftStore
	Addresses address.AddressService
	Logger    *zap.Logger
}

func NewDraftService(w Wizard, store DraftStore, addresses address.AddressService, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{Wizard: w, Store: store, Addresses: addresses, Logger: logger}
}

func (s *DraftService) Create(ctx context.Context, userID string) (models.BookingDraft, error) {
	d := s.Wizard.NewDraft(uuid.New().String(), userID)
	if err := s.Store.Save(ctx, d); err != nil {
		return models.BookingDraft{}, err
	}
	return d, nil
}

func (s *DraftService) Get(ctx context.Context, userID, draftID string) (models.BookingDraft, error) {
	return s.Store.Get(ctx, userID, draftID)
}

// editable loads a draft that has not entered submission yet.
func (s *DraftService) editable(ctx context.Context, userID, draftID string) (models.BookingDraft, error) {
	d, err := s.Store.Get(ctx, userID, draftID)
	if err != nil {
		return d, err
	}
	if d.SubmissionID != "" {
		return d, ErrDraftLocked
	}
	return d, nil
}

func (s *DraftService) Update(ctx context.Context, userID, draftID string, ch models.DraftChange) (models.BookingDraft, error) {
	d, err := s.editable(ctx, userID, draftID)
	if err != nil {
		return d, err
	}

	// A saved address is copied from the user's own address book.
	if ch.Address != nil && ch.Address.ID != "" {
		saved, err := s.Addresses.Get(ctx, userID, ch.Address.ID)
		if errors.Is(err, address.ErrAddressNotFound) {
			return d, fmt.Errorf("%w: address %s", ErrInvalidDraft, ch.Address.ID)
		}
		if err != nil {
			return d, err
		}
		resolved := models.DraftAddress{
			ID:          saved.ID,
			Title:       saved.Title,
			AddressLine: saved.AddressLine,
			City:        saved.City,
			PinCode:     saved.PinCode,
		}
		if saved.Area != nil {
			resolved.Area = *saved.Area
		}
		ch.Address = &resolved
	}

	next, err := s.Wizard.Apply(d, ch)
	if err != nil {
		return d, err
	}
	if err := s.Store.Save(ctx, next); err != nil {
		return d, err
	}
	return next, nil
}

func (s *DraftService) Next(ctx context.Context, userID, draftID string) (models.BookingDraft, error) {
	d, err := s.Store.Get(ctx, userID, draftID)
	if err != nil {
		return d, err
	}
	next, err := s.Wizard.Next(d)
	if err != nil {
		return d, err
	}
	if err := s.Store.Save(ctx, next); err != nil {
		return d, err
	}
	return next, nil
}

func (s *DraftService) Previous(ctx context.Context, userID, draftID string) (models.BookingDraft, error) {
	d, err := s.Store.Get(ctx, userID, draftID)
	if err != nil {
		return d, err
	}
	next := s.Wizard.Previous(d)
	if err := s.Store.Save(ctx, next); err != nil {
		return d, err
	}
	return next, nil
}

// AddPhoto stages an image next to the draft.
func (s *DraftService) AddPhoto(ctx context.Context, userID, draftID, fileName string, data []byte) (models.BookingDraft, error) {
	d, err := s.editable(ctx, userID, draftID)
	if err != nil {
		return d, err
	}
	if len(data) == 0 {
		return d, fmt.Errorf("%w: empty file", ErrInvalidPhoto)
	}
	if len(data) > MaxPhotoBytes {
		return d, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidPhoto, MaxPhotoBytes)
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return d, fmt.Errorf("%w: %s is not an image", ErrInvalidPhoto, contentType)
	}

	photo := models.DraftPhoto{
		Key:         uuid.New().String(),
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
	}
	next, err := s.Wizard.AddPhoto(d, photo)
	if err != nil {
		return d, err
	}
	if err := s.Store.PutPhoto(ctx, draftID, photo.Key, data); err != nil {
		return d, err
	}
	if err := s.Store.Save(ctx, next); err != nil {
		return d, err
	}
	return next, nil
}

func (s *DraftService) RemovePhoto(ctx context.Context, userID, draftID string, index int) (models.BookingDraft, error) {
	d, err := s.editable(ctx, userID, draftID)
	if err != nil {
		return d, err
	}
	next, removed, err := s.Wizard.RemovePhoto(d, index)
	if err != nil {
		return d, err
	}
	if err := s.Store.Save(ctx, next); err != nil {
		return d, err
	}
	if err := s.Store.DeletePhoto(ctx, draftID, removed.Key); err != nil {
		s.Logger.Warn("Staged photo not removed", zap.String("draftID", draftID), zap.Error(err))
	}
	return next, nil
}

func (s *DraftService) Discard(ctx context.Context, userID, draftID string) error {
	return s.Store.Delete(ctx, userID, draftID)
}
