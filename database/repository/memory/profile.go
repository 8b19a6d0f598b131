package memoryRepo

import (
	"context"

	"scrapiz/database"
	"scrapiz/models"
)

// ProfileRepo implements profileRepo.ProfileRepository.
type ProfileRepo struct {
	s *Store
}

func (r *ProfileRepo) GetByID(_ context.Context, id string) (*models.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("profiles.GetByID"); err != nil {
		return nil, err
	}

	p, ok := r.s.profiles[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (r *ProfileRepo) Upsert(_ context.Context, profile *models.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("profiles.Upsert"); err != nil {
		return err
	}

	now := r.s.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.s.profiles[profile.ID] = *profile
	return nil
}

func (r *ProfileRepo) UpdateFCMToken(_ context.Context, id, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("profiles.UpdateFCMToken"); err != nil {
		return err
	}

	p, ok := r.s.profiles[id]
	if !ok {
		p = models.DefaultProfile(id)
		p.CreatedAt = r.s.Now()
	}
	p.FCMToken = token
	p.UpdatedAt = r.s.Now()
	r.s.profiles[id] = p
	return nil
}

func (r *ProfileRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fault("profiles.Count"); err != nil {
		return 0, err
	}
	return int64(len(r.s.profiles)), nil
}
