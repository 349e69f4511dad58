package matchably

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/me/matchably/pkg/model"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		Token:      "test-token",
		AdminToken: "admin-token",
		Timeout:    5 * time.Second,
		MaxRetries: 0,
	}
}

func TestClient_Verify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/auth/verify" {
			t.Errorf("expected /auth/verify, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "test-token" {
			t.Errorf("expected test-token authorization, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"user": map[string]any{
				"id":    "u1",
				"name":  "Alice",
				"email": "alice@example.com",
			},
		})
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), nil)
	user, err := c.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %q", user.Email)
	}
}

func TestClient_Verify_NoToken(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://unused"}, nil)
	_, err := c.Verify(context.Background())
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !IsAuthError(err) {
		t.Errorf("expected auth error, got %v", err)
	}
}

func TestClient_Verify_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "error",
			"message": "invalid token",
		})
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), nil)
	_, err := c.Verify(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected token")
	}
	if !IsAuthError(err) {
		t.Errorf("expected auth error, got %v", err)
	}
}

func TestClient_CampaignsPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page=2, got %q", r.URL.Query().Get("page"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"campaigns": []map[string]any{
				{"id": "c1", "campaignTitle": "Launch", "brandName": "GlowCo", "campaignStatus": "Active"},
				{"id": "c2", "campaignTitle": "Teaser", "brandName": "#OpenBrand", "campaignStatus": "Active"},
			},
		})
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), nil)
	campaigns, err := c.CampaignsPage(context.Background(), 2)
	if err != nil {
		t.Fatalf("CampaignsPage failed: %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(campaigns))
	}
	if campaigns[0].ID != "c1" || campaigns[0].Status != model.CampaignStatusActive {
		t.Errorf("unexpected first campaign: %+v", campaigns[0])
	}
}

func TestClient_CampaignsPage_Exhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "failed",
			"message": "No campaigns found",
		})
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), nil)
	campaigns, err := c.CampaignsPage(context.Background(), 99)
	if err != nil {
		t.Fatalf("CampaignsPage failed: %v", err)
	}
	if len(campaigns) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(campaigns))
	}
}

func TestClient_AppliedCampaigns_CountFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Backend omits appliedThisMonth; client falls back to the
		// applied total.
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"campaigns": []map[string]any{
				{"id": "c1", "applicationStatus": "Pending"},
				{"id": "c2", "applicationStatus": "Approved"},
			},
		})
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), nil)
	result, err := c.AppliedCampaigns(context.Background())
	if err != nil {
		t.Fatalf("AppliedCampaigns failed: %v", err)
	}
	if result.AppliedThisMonth != 2 {
		t.Errorf("expected fallback count 2, got %d", result.AppliedThisMonth)
	}
	app := result.Campaigns[1].Application()
	if app.CampaignID != "c2" || app.Status != model.ApplicationStatusApproved {
		t.Errorf("unexpected application: %+v", app)
	}
}

func TestClient_Apply_ValidatesLocally(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), nil)
	err := c.Apply(context.Background(), model.ApplyRequest{CampaignID: "c1"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if called {
		t.Error("invalid request must not reach the server")
	}
}

func TestClient_Apply_BusinessError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "error",
			"code":    "SEATS_FULL",
			"message": "recruiting seats are full",
		})
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), nil)
	err := c.Apply(context.Background(), model.ApplyRequest{
		CampaignID: "c1", Address: "1 Main St", City: "Austin", State: "Texas", Zip: "78701",
	})
	if err == nil {
		t.Fatal("expected business error")
	}
	if !IsBusinessError(err) {
		t.Errorf("expected business error, got %v", err)
	}
	if IsRetryable(err) {
		t.Error("business errors must not retry")
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "success",
			"campaigns": []map[string]any{},
		})
	}))
	defer server.Close()

	cfg := testConfig(server.URL).WithRetries(2, time.Millisecond)
	c := NewClient(cfg, nil)
	if _, err := c.ActiveCampaigns(context.Background()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ActiveCampaigns(ctx)
	if err == nil {
		t.Fatal("expected error after context timeout")
	}
}

func TestClient_AdminUsesAdminToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "admin-token" {
			t.Errorf("expected admin-token, got %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"users":  []map[string]any{{"id": "u1", "email": "a@b.c"}},
		})
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), nil)
	users, err := c.AdminUsers(context.Background(), 1)
	if err != nil {
		t.Fatalf("AdminUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user, got %d", len(users))
	}
}

func TestHTTPError_IsRetryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{500, true},
		{502, true},
		{429, true},
		{400, false},
		{401, false},
		{404, false},
	}
	for _, tt := range tests {
		e := &HTTPError{StatusCode: tt.status}
		if got := e.IsRetryable(); got != tt.want {
			t.Errorf("HTTPError(%d).IsRetryable() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
