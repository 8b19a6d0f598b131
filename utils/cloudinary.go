package utils

import (
	"fmt"

	"scrapiz/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

// NewCloudinary initializes a Cloudinary client from AppConfig.
func NewCloudinary() (*cloudinary.Cloudinary, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("utils.NewCloudinary: failed to initialize Cloudinary: %w", err)
	}
	return cld, nil
}
