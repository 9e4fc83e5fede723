package supabase

import (
	"fmt"

	"macro-outlook/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// Client wraps the Supabase client used for run auditing
type Client struct {
	client *supabase.Client
	url    string
	logger domain.Logger
}

// NewClient creates a Supabase client from the configured URL and service key
func NewClient(config domain.Config, logger domain.Logger) (*Client, error) {
	supabaseURL := config.GetSupabaseURL()
	supabaseKey := config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	logger.Info("Supabase client initialized successfully", "url", supabaseURL)
	return &Client{client: client, url: supabaseURL, logger: logger}, nil
}

// DB returns the underlying Supabase client
func (c *Client) DB() *supabase.Client {
	return c.client
}

// URL returns the project URL the client talks to
func (c *Client) URL() string {
	return c.url
}
