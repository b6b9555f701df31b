package config

import (
	"fmt"
	"os"

	supa "github.com/supabase-community/supabase-go"
)

// SupabaseConfig holds the connection settings for the hosted backend.
// Only the anon (least-privileged) key is ever configured here; gateway
// calls must never carry a service-role credential.
type SupabaseConfig struct {
	URL     string
	AnonKey string
}

// LoadSupabaseConfig reads the Supabase settings from environment variables.
func LoadSupabaseConfig() (SupabaseConfig, error) {
	cfg := SupabaseConfig{
		URL:     os.Getenv("SUPABASE_URL"),
		AnonKey: os.Getenv("SUPABASE_ANON_KEY"),
	}
	if cfg.URL == "" {
		return SupabaseConfig{}, fmt.Errorf("SUPABASE_URL must be set")
	}
	if cfg.AnonKey == "" {
		return SupabaseConfig{}, fmt.Errorf("SUPABASE_ANON_KEY must be set")
	}
	return cfg, nil
}

// NewSupabaseClient constructs the shared Supabase client from the given config.
// The client is immutable after construction and safe for concurrent use; it is
// passed explicitly to every access module rather than held as a package global.
func NewSupabaseClient(cfg SupabaseConfig) (*supa.Client, error) {
	client, err := supa.NewClient(cfg.URL, cfg.AnonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing supabase client: %w", err)
	}
	return client, nil
}
