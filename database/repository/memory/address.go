package memoryRepo

import (
	"context"
	"sort"

	"scrapiz/database"
	"scrapiz/models"
)

// AddressRepo implements addressRepo.AddressRepository.
type AddressRepo struct {
	s *Store
}

func (r *AddressRepo) ListByUser(_ context.Context, userID string) ([]models.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("addresses.ListByUser"); err != nil {
		return nil, err
	}

	var recs []record[models.Address]
	for _, rec := range r.s.addresses {
		if rec.value.UserID == userID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		return newestFirst(recs[i].value.CreatedAt, recs[j].value.CreatedAt, recs[i].seq, recs[j].seq)
	})

	out := make([]models.Address, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.value)
	}
	return out, nil
}

func (r *AddressRepo) GetByID(_ context.Context, userID, id string) (*models.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("addresses.GetByID"); err != nil {
		return nil, err
	}

	rec, ok := r.s.addresses[id]
	if !ok || rec.value.UserID != userID {
		return nil, database.ErrNotFound
	}
	a := rec.value
	return &a, nil
}

func (r *AddressRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("addresses.CountByUser"); err != nil {
		return 0, err
	}

	var n int64
	for _, rec := range r.s.addresses {
		if rec.value.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *AddressRepo) Create(_ context.Context, address *models.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("addresses.Create"); err != nil {
		return err
	}

	now := r.s.Now()
	address.CreatedAt = now
	address.UpdatedAt = now
	r.s.addresses[address.ID] = record[models.Address]{seq: r.s.nextSeq(), value: *address}
	return nil
}

func (r *AddressRepo) Update(_ context.Context, address *models.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("addresses.Update"); err != nil {
		return err
	}

	rec, ok := r.s.addresses[address.ID]
	if !ok || rec.value.UserID != address.UserID {
		return database.ErrNotFound
	}
	stored := rec.value
	stored.Title = address.Title
	stored.AddressLine = address.AddressLine
	stored.Area = address.Area
	stored.City = address.City
	stored.PinCode = address.PinCode
	stored.UpdatedAt = r.s.Now()
	rec.value = stored
	r.s.addresses[address.ID] = rec
	*address = stored
	return nil
}

func (r *AddressRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("addresses.Delete"); err != nil {
		return err
	}

	rec, ok := r.s.addresses[id]
	if !ok || rec.value.UserID != userID {
		return database.ErrNotFound
	}
	delete(r.s.addresses, id)
	return nil
}

func (r *AddressRepo) UnsetDefaults(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("addresses.UnsetDefaults"); err != nil {
		return err
	}

	for id, rec := range r.s.addresses {
		if rec.value.UserID == userID && rec.value.IsDefault {
			rec.value.IsDefault = false
			r.s.addresses[id] = rec
		}
	}
	return nil
}

func (r *AddressRepo) MarkDefault(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("addresses.MarkDefault"); err != nil {
		return err
	}

	rec, ok := r.s.addresses[id]
	if !ok || rec.value.UserID != userID {
		return database.ErrNotFound
	}
	rec.value.IsDefault = true
	rec.value.UpdatedAt = r.s.Now()
	r.s.addresses[id] = rec
	return nil
}
