package ghost

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mealmaster/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func TestFetchRecipes(t *testing.T) {
	ctx := context.Background()

	t.Run("FollowsPagination", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("key") != "test_key" {
				t.Errorf("Expected key 'test_key', got '%s'", r.URL.Query().Get("key"))
			}

			w.WriteHeader(http.StatusOK)
			switch r.URL.Query().Get("page") {
			case "1":
				fmt.Fprintln(w, `{
					"posts": [{"id": "1", "title": "Recipe 1", "html": "<h1>Recipe 1</h1>"}],
					"meta": {"pagination": {"page": 1, "pages": 2, "next": 2}}
				}`)
			default:
				fmt.Fprintln(w, `{
					"posts": [{"id": "2", "title": "Recipe 2", "html": "<h1>Recipe 2</h1>"}],
					"meta": {"pagination": {"page": 2, "pages": 2, "next": null}}
				}`)
			}
		}))
		defer server.Close()

		client := NewClient(&config.Config{GhostURL: server.URL, GhostContentKey: "test_key"})

		posts, err := client.FetchRecipes(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(posts) != 2 || posts[1].Title != "Recipe 2" {
			t.Fatalf("Expected 2 posts, got %+v", posts)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(&config.Config{GhostURL: server.URL, GhostContentKey: "test_key"})

		_, err := client.FetchRecipes(ctx)
		if err == nil {
			t.Fatal("Expected an error for non-200 status code, got nil")
		}
	})
}

func TestCreatePost(t *testing.T) {
	secret := hex.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Ghost ") {
			t.Errorf("Expected Ghost authorization, got '%s'", auth)
		}
		_, err := jwt.Parse(strings.TrimPrefix(auth, "Ghost "), func(token *jwt.Token) (interface{}, error) {
			if token.Header["kid"] != "keyid" {
				t.Errorf("Expected kid 'keyid', got %v", token.Header["kid"])
			}
			key, err := hex.DecodeString(secret)
			return key, err
		}, jwt.WithAudience("/admin/"))
		if err != nil {
			t.Errorf("Invalid admin token: %v", err)
		}

		var body struct {
			Posts []map[string]string `json:"posts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if body.Posts[0]["status"] != "published" {
			t.Errorf("Expected published status, got '%s'", body.Posts[0]["status"])
		}

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"posts": [{"id": "99", "title": %q}]}`, body.Posts[0]["title"])
	}))
	defer server.Close()

	client := NewClient(&config.Config{GhostURL: server.URL, GhostAdminKey: "keyid:" + secret})

	post, err := client.CreatePost(context.Background(), "Pancakes", "<p>Mix</p>", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if post.ID != "99" || post.Title != "Pancakes" {
		t.Errorf("Unexpected post: %+v", post)
	}
}

func TestCreateAdminToken(t *testing.T) {
	now := time.Now()

	if _, err := createAdminToken("missing-separator", now); err == nil {
		t.Error("Expected an error for a key without a secret")
	}
	if _, err := createAdminToken("id:not-hex", now); err == nil {
		t.Error("Expected an error for a non-hex secret")
	}

	token, err := createAdminToken("id:"+hex.EncodeToString([]byte("secret")), now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("Expected a JWT, got '%s'", token)
	}
}
