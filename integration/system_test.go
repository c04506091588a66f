//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var storefrontURL = getenv("E2E_STOREFRONT_URL", "http://localhost:8080")

// TestSystem_E2E drives a running storefront wired to a running catalog.
func TestSystem_E2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, storefrontURL+"/healthz")

	doJSON(t, http.MethodPost, storefrontURL+"/products/fetch", nil, nil, 200)

	var state struct {
		Loading      bool   `json:"loading"`
		Error        string `json:"error"`
		ProductCount int    `json:"product_count"`
	}
	doJSON(t, http.MethodGet, storefrontURL+"/state", nil, &state, 200)
	if state.Loading || state.Error != "" || state.ProductCount == 0 {
		t.Fatalf("unexpected state after fetch: %+v", state)
	}

	title := fmt.Sprintf("e2e lamp %d", time.Now().UnixNano())
	var created struct {
		ID         int64  `json:"id"`
		PriceLabel string `json:"price_label"`
	}
	doJSON(t, http.MethodPost, storefrontURL+"/products", map[string]any{
		"title":       title,
		"description": "created by the system test",
		"price":       "1999.5",
		"category":    "home office",
		"image":       "https://example.com/lamp.png",
	}, &created, 201)
	if created.ID == 0 || created.PriceLabel != "$1,999.50" {
		t.Fatalf("created=%+v", created)
	}

	var filtered []map[string]any
	doJSON(t, http.MethodPut, storefrontURL+"/filters", map[string]any{"search_query": title, "category": ""}, &filtered, 200)
	if len(filtered) != 1 {
		t.Fatalf("filter by new title: got %d products", len(filtered))
	}

	doJSON(t, http.MethodPut, fmt.Sprintf("%s/products/%d", storefrontURL, 1), map[string]any{"price": "9.99"}, nil, 204)

	var toasts []map[string]any
	doJSON(t, http.MethodGet, storefrontURL+"/toasts", nil, &toasts, 200)
	if len(toasts) < 2 {
		t.Fatalf("expected toasts for add and update, got %d", len(toasts))
	}

	if os.Getenv("E2E_RESTART_STOREFRONT") == "1" {
		restartContainer(t, ctx, "storefront")
		waitReady(t, ctx, storefrontURL+"/healthz")

		// A restarted storefront serves from the redis cache, which still
		// holds the locally synthesized product.
		doJSON(t, http.MethodPost, storefrontURL+"/products/fetch", nil, nil, 200)
		doJSON(t, http.MethodPut, storefrontURL+"/filters", map[string]any{"search_query": title}, &filtered, 200)
		if len(filtered) != 1 {
			t.Fatalf("after restart: got %d products", len(filtered))
		}
	}

	doJSON(t, http.MethodPut, storefrontURL+"/filters", map[string]any{"search_query": "", "category": ""}, nil, 200)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
