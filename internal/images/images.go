// Package images resolves a random stock image URL for a team from the
// public cat and dog image APIs. Callers are expected to treat failures as
// non-fatal: a post without an image is valid.
package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
)

// Default endpoints and client timeout. The timeout keeps Add from hanging
// on a slow collaborator; the request fails fast instead.
const (
	defaultCatURL  = "https://api.thecatapi.com/v1/images/search"
	defaultDogURL  = "https://dog.ceo/api/breeds/image/random"
	defaultTimeout = 5 * time.Second
)

// ErrNoImage means the provider answered but carried no usable URL.
var ErrNoImage = errors.New("no image in provider response")

// Provider resolves a random image URL for a team.
type Provider interface {
	RandomImage(ctx context.Context, team model.Team) (string, error)
}

// HTTPProvider implements Provider over the public image APIs.
type HTTPProvider struct {
	client    *http.Client
	catURL    string
	dogURL    string
	catAPIKey string
}

// Option applies a configuration option to the HTTPProvider.
type Option func(*HTTPProvider)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *HTTPProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// WithEndpoints overrides the cat and dog API URLs.
func WithEndpoints(catURL, dogURL string) Option {
	return func(p *HTTPProvider) {
		if catURL != "" {
			p.catURL = catURL
		}
		if dogURL != "" {
			p.dogURL = dogURL
		}
	}
}

// WithCatAPIKey sets the x-api-key header for the cat API.
func WithCatAPIKey(key string) Option {
	return func(p *HTTPProvider) {
		p.catAPIKey = key
	}
}

// NewHTTPProvider creates a provider with default endpoints.
func NewHTTPProvider(opts ...Option) *HTTPProvider {
	p := &HTTPProvider{
		client: &http.Client{Timeout: defaultTimeout},
		catURL: defaultCatURL,
		dogURL: defaultDogURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RandomImage fetches a random image URL for team. Network and decode
// failures are returned to the caller, which degrades them to a nil image.
func (p *HTTPProvider) RandomImage(ctx context.Context, team model.Team) (string, error) {
	if team == model.TeamCats {
		return p.randomCat(ctx)
	}
	return p.randomDog(ctx)
}

func (p *HTTPProvider) randomCat(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.catURL, nil)
	if err != nil {
		return "", fmt.Errorf("build cat request: %w", err)
	}
	if p.catAPIKey != "" {
		req.Header.Set("x-api-key", p.catAPIKey)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch cat image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cat api status %d", resp.StatusCode)
	}
	var payload []struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode cat response: %w", err)
	}
	if len(payload) == 0 || payload[0].URL == "" {
		return "", ErrNoImage
	}
	return payload[0].URL, nil
}

func (p *HTTPProvider) randomDog(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.dogURL, nil)
	if err != nil {
		return "", fmt.Errorf("build dog request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch dog image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dog api status %d", resp.StatusCode)
	}
	var payload struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode dog response: %w", err)
	}
	if payload.Message == "" {
		return "", ErrNoImage
	}
	return payload.Message, nil
}
