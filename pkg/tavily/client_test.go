package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.APIKey != "test-key" {
			t.Errorf("api_key = %q, want test-key", req.APIKey)
		}
		if req.SearchDepth != "basic" {
			t.Errorf("search_depth = %q, want basic", req.SearchDepth)
		}
		if !req.IncludeAnswer {
			t.Error("include_answer not set")
		}

		json.NewEncoder(w).Encode(SearchResponse{
			Query:  req.Query,
			Answer: "Metformin is first-line therapy.",
			Results: []SearchResult{
				{Title: "Guideline", URL: "https://example.org", Content: "snippet", Score: 0.92},
			},
		})
	}))
	defer srv.Close()

	c := &Client{apiKey: "test-key", baseURL: srv.URL, client: srv.Client()}

	res, err := c.Search(context.Background(), "metformin first line", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Answer != "Metformin is first-line therapy." {
		t.Errorf("Answer = %q", res.Answer)
	}
	if len(res.Results) != 1 || res.Results[0].Title != "Guideline" {
		t.Errorf("unexpected results: %+v", res.Results)
	}
}

func TestSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := &Client{apiKey: "test-key", baseURL: srv.URL, client: srv.Client()}

	if _, err := c.Search(context.Background(), "anything", 5); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestSearchWithoutKey(t *testing.T) {
	c := NewClient("")
	if _, err := c.Search(context.Background(), "anything", 5); err == nil {
		t.Fatal("expected error without api key")
	}
}
