package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"scrapiz/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DraftStore holds in-progress drafts and their staged photo bytes.
type DraftStore interface {
	Save(ctx context.Context, d models.BookingDraft) error
	Get(ctx context.Context, userID, id string) (models.BookingDraft, error)
	// Delete removes the draft and every staged photo it references.
	Delete(ctx context.Context, userID, id string) error
	PutPhoto(ctx context.Context, draftID, key string, data []byte) error
	GetPhoto(ctx context.Context, draftID, key string) ([]byte, error)
	DeletePhoto(ctx context.Context, draftID, key string) error
	// Claim takes the submit lock of a draft. It fails with ErrSubmissionInProgress while
	// another holder has it. release must be called once the submit returns.
	Claim(ctx context.Context, draftID string) (release func(), err error)
}

const (
	draftPrefix      = "draft:"
	draftPhotoPrefix = "draft:photo:"
	draftClaimPrefix = "draft:claim:"

	// claimTTL bounds how long a crashed submit can hold a draft.
	claimTTL = 2 * time.Minute
)

func draftKey(userID, id string) string { return draftPrefix + userID + ":" + id }

func draftPhotoKey(draftID, key string) string { return draftPhotoPrefix + draftID + ":" + key }

func draftClaimKey(draftID string) string { return draftClaimPrefix + draftID }

// releaseClaim deletes the claim only while it still carries the holder's token.
var releaseClaim = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisDraftStore keeps drafts as JSON with a sliding TTL.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func (s *RedisDraftStore) Save(ctx context.Context, d models.BookingDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, draftKey(d.UserID, d.ID), data, s.ttl)
	for _, p := range d.Photos {
		pipe.Expire(ctx, draftPhotoKey(d.ID, p.Key), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save draft %s: %w", d.ID, err)
	}
	return nil
}

func (s *RedisDraftStore) Get(ctx context.Context, userID, id string) (models.BookingDraft, error) {
	data, err := s.client.Get(ctx, draftKey(userID, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.BookingDraft{}, ErrDraftNotFound
	}
	if err != nil {
		return models.BookingDraft{}, fmt.Errorf("failed to load draft %s: %w", id, err)
	}
	var d models.BookingDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return models.BookingDraft{}, fmt.Errorf("failed to unmarshal draft %s: %w", id, err)
	}
	return d, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, userID, id string) error {
	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	keys := []string{draftKey(userID, id)}
	for _, p := range d.Photos {
		keys = append(keys, draftPhotoKey(id, p.Key))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}
	return nil
}

func (s *RedisDraftStore) PutPhoto(ctx context.Context, draftID, key string, data []byte) error {
	if err := s.client.Set(ctx, draftPhotoKey(draftID, key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to stage photo: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) GetPhoto(ctx context.Context, draftID, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, draftPhotoKey(draftID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staged photo: %w", err)
	}
	return data, nil
}

func (s *RedisDraftStore) DeletePhoto(ctx context.Context, draftID, key string) error {
	if err := s.client.Del(ctx, draftPhotoKey(draftID, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete staged photo: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Claim(ctx context.Context, draftID string) (func(), error) {
	key := draftClaimKey(draftID)
	token := uuid.New().String()
	ok, err := s.client.SetNX(ctx, key, token, claimTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to claim draft %s: %w", draftID, err)
	}
	if !ok {
		return nil, ErrSubmissionInProgress
	}
	return func() {
		// the request context may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		releaseClaim.Run(ctx, s.client, []string{key}, token)
	}, nil
}

// MemoryDraftStore is the in-process DraftStore. Entries never expire.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]models.BookingDraft
	photos map[string][]byte
	claims map[string]bool
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{
		drafts: make(map[string]models.BookingDraft),
		photos: make(map[string][]byte),
		claims: make(map[string]bool),
	}
}

func (s *MemoryDraftStore) Save(_ context.Context, d models.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Photos = clonePhotos(d.Photos)
	s.drafts[draftKey(d.UserID, d.ID)] = d
	return nil
}

func (s *MemoryDraftStore) Get(_ context.Context, userID, id string) (models.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftKey(userID, id)]
	if !ok {
		return models.BookingDraft{}, ErrDraftNotFound
	}
	d.Photos = clonePhotos(d.Photos)
	return d, nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftKey(userID, id)]
	if !ok {
		return ErrDraftNotFound
	}
	for _, p := range d.Photos {
		delete(s.photos, draftPhotoKey(id, p.Key))
	}
	delete(s.drafts, draftKey(userID, id))
	return nil
}

func (s *MemoryDraftStore) PutPhoto(_ context.Context, draftID, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos[draftPhotoKey(draftID, key)] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryDraftStore) GetPhoto(_ context.Context, draftID, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.photos[draftPhotoKey(draftID, key)]
	if !ok {
		return nil, ErrPhotoNotFound
	}
	return data, nil
}

func (s *MemoryDraftStore) DeletePhoto(_ context.Context, draftID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.photos, draftPhotoKey(draftID, key))
	return nil
}

func (s *MemoryDraftStore) Claim(_ context.Context, draftID string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims[draftID] {
		return nil, ErrSubmissionInProgress
	}
	s.claims[draftID] = true
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.claims, draftID)
	}, nil
}
