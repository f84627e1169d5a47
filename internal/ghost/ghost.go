package ghost

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mealmaster/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Post is a recipe post on a Ghost blog.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	HTML      string `json:"html"`
	URL       string `json:"url,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// PostsResponse is the top-level structure of the Ghost API response for posts.
type PostsResponse struct {
	Posts []Post `json:"posts"`
	Meta  struct {
		Pagination struct {
			Page  int  `json:"page"`
			Pages int  `json:"pages"`
			Next  *int `json:"next"`
		} `json:"pagination"`
	} `json:"meta"`
}

// Client reads recipe posts from Ghost and publishes clipped recipes to it.
type Client interface {
	FetchRecipes(ctx context.Context) ([]Post, error)
	CreatePost(ctx context.Context, title, html string, publish bool) (*Post, error)
}

type ghostClient struct {
	httpClient *http.Client
	baseURL    string
	contentKey string
	adminKey   string
}

// NewClient creates a new Ghost API client.
func NewClient(cfg *config.Config) Client {
	return &ghostClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.GhostURL, "/"),
		contentKey: cfg.GhostContentKey,
		adminKey:   cfg.GhostAdminKey,
	}
}

// FetchRecipes fetches every post from the Content API, following pagination.
func (c *ghostClient) FetchRecipes(ctx context.Context) ([]Post, error) {
	var posts []Post
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("key", c.contentKey)
		q.Set("formats", "html")
		q.Set("limit", "50")
		q.Set("page", fmt.Sprint(page))
		endpoint := fmt.Sprintf("%s/ghost/api/content/posts/?%s", c.baseURL, q.Encode())

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}

		var postsResponse PostsResponse
		err = decodeResponse(resp, http.StatusOK, &postsResponse)
		if err != nil {
			return nil, fmt.Errorf("content api error: %w", err)
		}

		posts = append(posts, postsResponse.Posts...)
		if postsResponse.Meta.Pagination.Next == nil {
			return posts, nil
		}
	}
}

// CreatePost creates a new post using the Admin API.
func (c *ghostClient) CreatePost(ctx context.Context, title, html string, publish bool) (*Post, error) {
	token, err := createAdminToken(c.adminKey, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create admin token: %w", err)
	}

	status := "draft"
	if publish {
		status = "published"
	}

	body, err := json.Marshal(map[string][]map[string]string{
		"posts": {{"title": title, "html": html, "status": status}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal post: %w", err)
	}

	endpoint := fmt.Sprintf("%s/ghost/api/admin/posts/?source=html", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Ghost "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	var response PostsResponse
	if err := decodeResponse(resp, http.StatusCreated, &response); err != nil {
		return nil, fmt.Errorf("admin api error: %w", err)
	}
	if len(response.Posts) == 0 {
		return nil, fmt.Errorf("no post returned from api")
	}
	return &response.Posts[0], nil
}

func decodeResponse(resp *http.Response, want int, v any) error {
	defer resp.Body.Close()
	if resp.StatusCode != want && resp.StatusCode != http.StatusOK {
		var errResp any
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return fmt.Errorf("status %d, body: %v", resp.StatusCode, errResp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// createAdminToken signs the short-lived JWT the Admin API expects. The key
// has the form "id:hexsecret".
func createAdminToken(adminKey string, now time.Time) (string, error) {
	id, secretHex, ok := strings.Cut(adminKey, ":")
	if !ok || id == "" || secretHex == "" {
		return "", fmt.Errorf("invalid admin key format: expected id:secret")
	}

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode secret hex: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
		"aud": "/admin/",
	})
	token.Header["kid"] = id

	return token.SignedString(secret)
}
