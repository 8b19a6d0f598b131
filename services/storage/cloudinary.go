package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryPhotoStore keeps photos as Cloudinary image assets.
type CloudinaryPhotoStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryPhotoStore(cld *cloudinary.Cloudinary, folder string) *CloudinaryPhotoStore {
	return &CloudinaryPhotoStore{cld: cld, folder: folder}
}

func (s *CloudinaryPhotoStore) Upload(ctx context.Context, objectPath, _ string, data io.Reader) (string, error) {
	publicID := strings.TrimSuffix(objectPath, path.Ext(objectPath))
	params := uploader.UploadParams{
		PublicID:     publicID,
		Folder:       s.folder,
		ResourceType: "image",
	}
	result, err := s.cld.Upload.Upload(ctx, data, params)
	if err != nil {
		return "", fmt.Errorf("CloudinaryPhotoStore: failed to upload %s: %w", objectPath, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryPhotoStore: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryPhotoStore: no URL returned for %s", objectPath)
	}
	return result.SecureURL, nil
}
