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

var baseURL = getenv("E2E_BASE_URL", "http://localhost:4017")

func TestSystem_E2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var before struct {
		Garments []map[string]any `json:"garments"`
	}
	doJSON(t, http.MethodGet, baseURL+"/api/garments?gender=All&season=All", "", nil, &before, 200)

	desc := fmt.Sprintf("e2e shirt %d", time.Now().UnixNano())
	var created struct {
		Status string `json:"status"`
	}
	doJSON(t, http.MethodPost, baseURL+"/api/garments", "", map[string]any{
		"description": desc,
		"img":         "e2e.png",
		"gender":      "Male",
		"season":      "Summer",
		"price":       1,
	}, &created, 200)
	if created.Status != "success" {
		t.Fatalf("create status=%q", created.Status)
	}

	var after struct {
		Garments []map[string]any `json:"garments"`
	}
	doJSON(t, http.MethodGet, baseURL+"/api/garments", "", nil, &after, 200)
	if len(after.Garments) != len(before.Garments)+1 {
		t.Fatalf("garments=%d want=%d", len(after.Garments), len(before.Garments)+1)
	}
	if got := after.Garments[len(after.Garments)-1]["description"]; got != desc {
		t.Fatalf("last description=%v want=%s", got, desc)
	}

	var cheap struct {
		Garments []map[string]any `json:"garments"`
	}
	doJSON(t, http.MethodGet, baseURL+"/api/garments/price/1", "", nil, &cheap, 200)
	if len(cheap.Garments) == 0 {
		t.Fatalf("expected the new garment under price 1")
	}

	var login struct {
		Token string `json:"token"`
	}
	doJSON(t, http.MethodPost, baseURL+"/api/login", "", map[string]any{
		"user": map[string]any{"username": "e2e"},
	}, &login, 200)
	if login.Token == "" {
		t.Fatalf("empty token")
	}

	doJSON(t, http.MethodPost, baseURL+"/api/posts", login.Token, nil, nil, 200)
	doJSON(t, http.MethodPost, baseURL+"/api/posts", "", nil, nil, 403)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(30 * time.Second)
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

func doJSON(t *testing.T, method, url, token string, body any, out any, want int) {
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
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 5 * time.Second}
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
