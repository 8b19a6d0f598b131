package utils

import (
	"fmt"

	"scrapiz/config"

	supa "github.com/supabase-community/supabase-go"
)

// NewSupabaseClient builds a service-role client for the photo bucket.
func NewSupabaseClient() (*supa.Client, error) {
	cfg := config.AppConfig
	if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
		return nil, fmt.Errorf("supabase credentials not set in configuration")
	}
	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return client, nil
}
