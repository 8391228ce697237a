// Package mirror is the REST client for the remote post backend. The wire
// format differs from the local model (singular team names, numeric ids,
// description instead of title/body); normalization happens here so the
// rest of the codebase only sees canonical posts.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
)

const defaultTimeout = 5 * time.Second

// Fallbacks for posts the backend returns without author or text.
const (
	fallbackAuthor = "Unknown"
	fallbackTitle  = "Untitled"
)

// Client talks to the remote post mirror.
type Client struct {
	base   string
	client *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// New creates a mirror client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// flexID tolerates the backend sending ids as numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("post id is neither string nor number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// wirePost is the backend's post shape.
type wirePost struct {
	ID          flexID  `json:"id"`
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Likes       int     `json:"likes"`
	ImageURL    *string `json:"imageUrl"`
	Team        string  `json:"team"`
	CreatedAt   string  `json:"createdAt"`
}

func (w wirePost) toModel(requested model.Team) model.Post {
	p := model.Post{
		ID:       string(w.ID),
		Team:     requested,
		Author:   w.Username,
		Title:    w.Description,
		Likes:    w.Likes,
		ImageURL: w.ImageURL,
	}
	if t, ok := model.ParseTeam(w.Team); ok {
		p.Team = t
	}
	if p.Author == "" {
		p.Author = fallbackAuthor
	}
	if p.Title == "" {
		p.Title = fallbackTitle
	}
	if ts, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
		p.CreatedAt = ts
	}
	return p
}

// wireTeam maps a canonical team to the backend's singular route segment.
func wireTeam(t model.Team) string {
	if t == model.TeamCats {
		return "cat"
	}
	return "dog"
}

// TeamPosts fetches the posts for one team. Entries are normalized to the
// local model at this boundary.
func (c *Client) TeamPosts(ctx context.Context, team model.Team) ([]model.Post, error) {
	url := fmt.Sprintf("%s/posts/team/%s", c.base, wireTeam(team))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build team posts request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch team posts: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("team posts status %d", resp.StatusCode)
	}
	var wire []wirePost
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode team posts: %w", err)
	}
	posts := make([]model.Post, len(wire))
	for i, w := range wire {
		posts[i] = w.toModel(team)
	}
	return posts, nil
}

// AllPosts fetches both team feeds and concatenates them, cats first.
func (c *Client) AllPosts(ctx context.Context) ([]model.Post, error) {
	cats, err := c.TeamPosts(ctx, model.TeamCats)
	if err != nil {
		return nil, err
	}
	dogs, err := c.TeamPosts(ctx, model.TeamDogs)
	if err != nil {
		return nil, err
	}
	return append(cats, dogs...), nil
}

// Like submits a like for the named post. The call carries no idempotency
// token, so a retried request can double-count; see the ledger's two-phase
// apply for how local state is reconciled.
func (c *Client) Like(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/posts/%s/like", c.base, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("build like request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit like: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("like status %d", resp.StatusCode)
	}
	return nil
}

// Create submits a new post to the backend.
func (c *Client) Create(ctx context.Context, p model.Post) error {
	payload := map[string]any{
		"username":    p.Author,
		"description": p.Title,
		"team":        wireTeam(p.Team),
	}
	if p.ImageURL != nil {
		payload["imageUrl"] = *p.ImageURL
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal create payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/posts", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("create status %d", resp.StatusCode)
	}
	return nil
}
