package storage

import (
	"context"
	"fmt"
	"io"

	storage_go "github.com/supabase-community/storage-go"
	supa "github.com/supabase-community/supabase-go"
)

// SupabasePhotoStore writes into a public Supabase Storage bucket.
type SupabasePhotoStore struct {
	client *supa.Client
	bucket string
}

func NewSupabasePhotoStore(client *supa.Client, bucket string) *SupabasePhotoStore {
	return &SupabasePhotoStore{client: client, bucket: bucket}
}

func (s *SupabasePhotoStore) Upload(ctx context.Context, objectPath, contentType string, data io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	upsert := false
	opts := storage_go.FileOptions{Upsert: &upsert}
	if contentType != "" {
		opts.ContentType = &contentType
	}
	if _, err := s.client.Storage.UploadFile(s.bucket, objectPath, data, opts); err != nil {
		return "", fmt.Errorf("SupabasePhotoStore: failed to upload %s: %w", objectPath, err)
	}

	public := s.client.Storage.GetPublicUrl(s.bucket, objectPath)
	if public.SignedURL == "" {
		return "", fmt.Errorf("SupabasePhotoStore: no public URL for %s", objectPath)
	}
	return public.SignedURL, nil
}
