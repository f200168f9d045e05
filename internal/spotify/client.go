// Package spotify provides a wrapper around the Spotify Web API.
package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
	log *zap.Logger
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{api: api, log: log}
}

// NewWithCredentials authenticates with the client credentials flow. The
// resulting client can read public catalog data but nothing user specific.
func NewWithCredentials(ctx context.Context, clientID, clientSecret string, log *zap.Logger) (*Client, error) {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting client credentials token: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return New(spotify.New(httpClient), log), nil
}
