package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

// startTestBackend serves a minimal fake of the Matchably API.
func startTestBackend(t *testing.T) string {
	t.Helper()

	closes := time.Now().Add(72 * time.Hour).Format(time.RFC3339)
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"status": "fail", "message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "success", "token": "tok-cli"})
	})

	mux.HandleFunc("/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "tok-cli" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"status": "fail", "message": "Unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"user": map[string]any{
				"id": "user1", "name": "Creator One", "email": "creator@example.com",
			},
		})
	})

	mux.HandleFunc("/user/campaigns/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "", "1":
			json.NewEncoder(w).Encode(map[string]any{
				"status": "success",
				"campaigns": []map[string]any{
					{
						"id": "camp1", "campaignTitle": "Serum Launch", "brandName": "#GlowCo",
						"campaignStatus": "Active", "recruiting": 10, "approvedApplicantsCount": 2,
						"recruitmentEndDate": closes,
					},
					{
						"id": "camp2", "campaignTitle": "Private Drop", "brandName": "HushBrand",
						"campaignStatus": "Active", "recruiting": 5, "approvedApplicantsCount": 0,
						"recruitmentEndDate": closes,
					},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"status": "fail", "message": "No campaigns found"})
		}
	})

	mux.HandleFunc("/user/campaigns/appliedCampaigns", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"campaigns": []map[string]any{
				{
					"id": "camp2", "campaignTitle": "Private Drop", "brandName": "HushBrand",
					"campaignStatus": "Active", "recruiting": 5, "approvedApplicantsCount": 0,
					"recruitmentEndDate": closes,
					"applicationStatus":  "Pending",
				},
			},
			"appliedThisMonth": 1,
		})
	})

	mux.HandleFunc("/user/campaigns/apply", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	})

	mux.HandleFunc("/user/campaigns/points", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success", "points": 120,
			"tiers": []map[string]any{{"id": "tier1", "name": "Gift Card", "points": 100}},
		})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts.URL
}

// runCLI executes the root command with stdout captured.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	var errBuf bytes.Buffer
	root.SetOut(&errBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)

	execErr := root.Execute()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	if execErr != nil {
		return buf.String() + errBuf.String(), execErr
	}
	return buf.String(), nil
}

func setupCLIHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MATCHABLY_SERVER", "")
	t.Setenv("MATCHABLY_ADMIN_TOKEN", "")
}

func TestLoginAndWhoami(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	out, err := runCLI(t, "--server", url, "login", "--email", "creator@example.com", "--password", "hunter2")
	if err != nil {
		t.Fatalf("login error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Signed in as Creator One") {
		t.Errorf("expected sign-in confirmation, got: %s", out)
	}

	out, err = runCLI(t, "--server", url, "whoami")
	if err != nil {
		t.Fatalf("whoami error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "creator@example.com") {
		t.Errorf("expected account email, got: %s", out)
	}
}

func TestLogin_BadPassword(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	out, err := runCLI(t, "--server", url, "login", "--email", "creator@example.com", "--password", "wrong")
	if err == nil {
		t.Fatalf("expected login to fail, output: %s", out)
	}
}

func TestWhoami_NotSignedIn(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	out, err := runCLI(t, "--server", url, "whoami")
	if err != nil {
		t.Fatalf("whoami error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Not signed in") {
		t.Errorf("expected anonymous message, got: %s", out)
	}
}

func TestCampaignsList_Anonymous(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	out, err := runCLI(t, "--server", url, "campaigns", "list")
	if err != nil {
		t.Fatalf("campaigns list error: %v\noutput: %s", err, out)
	}

	// Anonymous visitors only see the "#" public campaign.
	if !strings.Contains(out, "Serum Launch") {
		t.Errorf("expected public campaign in output: %s", out)
	}
	if strings.Contains(out, "Private Drop") {
		t.Errorf("expected private campaign hidden from anonymous viewer: %s", out)
	}
	if !strings.Contains(out, "SignInRequired") {
		t.Errorf("expected SignInRequired state for anonymous viewer: %s", out)
	}
}

func TestCampaignsList_Authenticated(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	if out, err := runCLI(t, "--server", url, "login", "--email", "creator@example.com", "--password", "hunter2"); err != nil {
		t.Fatalf("login error: %v\noutput: %s", err, out)
	}

	out, err := runCLI(t, "--server", url, "campaigns", "list")
	if err != nil {
		t.Fatalf("campaigns list error: %v\noutput: %s", err, out)
	}

	if !strings.Contains(out, "Serum Launch") || !strings.Contains(out, "Private Drop") {
		t.Errorf("expected both campaigns for signed-in viewer: %s", out)
	}
	if !strings.Contains(out, "Pending") {
		t.Errorf("expected Pending state on applied campaign: %s", out)
	}
	if !strings.Contains(out, fmt.Sprintf("1 of %d applications", 5)) {
		t.Errorf("expected monthly usage line: %s", out)
	}
}

func TestCampaignsShow_HiddenFromAnonymous(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	out, err := runCLI(t, "--server", url, "campaigns", "show", "camp2")
	if err == nil {
		t.Fatalf("expected not-found error for private campaign, output: %s", out)
	}
}

func TestApply_RequiresLogin(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	out, err := runCLI(t, "--server", url, "apply", "camp1", "--phone", "555-0100", "--address", "1 Main St", "--city", "Austin", "--state", "TX", "--zip", "78701")
	if err == nil {
		t.Fatalf("expected apply to fail when signed out, output: %s", out)
	}
	if !strings.Contains(err.Error(), "not signed in") {
		t.Errorf("expected sign-in hint, got: %v", err)
	}
}

func TestApply_SignedIn(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	if out, err := runCLI(t, "--server", url, "login", "--email", "creator@example.com", "--password", "hunter2"); err != nil {
		t.Fatalf("login error: %v\noutput: %s", err, out)
	}

	out, err := runCLI(t, "--server", url, "apply", "camp1", "--phone", "555-0100", "--address", "1 Main St", "--city", "Austin", "--state", "TX", "--zip", "78701")
	if err != nil {
		t.Fatalf("apply error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Applied to campaign camp1") {
		t.Errorf("expected apply confirmation: %s", out)
	}
}

func TestApplications(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	if out, err := runCLI(t, "--server", url, "login", "--email", "creator@example.com", "--password", "hunter2"); err != nil {
		t.Fatalf("login error: %v\noutput: %s", err, out)
	}

	out, err := runCLI(t, "--server", url, "applications")
	if err != nil {
		t.Fatalf("applications error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Private Drop") || !strings.Contains(out, "Pending") {
		t.Errorf("expected applied campaign with status: %s", out)
	}
}

func TestRewardsPoints(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	if out, err := runCLI(t, "--server", url, "login", "--email", "creator@example.com", "--password", "hunter2"); err != nil {
		t.Fatalf("login error: %v\noutput: %s", err, out)
	}

	out, err := runCLI(t, "--server", url, "rewards", "points")
	if err != nil {
		t.Fatalf("rewards points error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Points: 120") {
		t.Errorf("expected point balance: %s", out)
	}
	if !strings.Contains(out, "Gift Card") {
		t.Errorf("expected reward tier: %s", out)
	}
}

func TestLogout(t *testing.T) {
	setupCLIHome(t)
	url := startTestBackend(t)

	if out, err := runCLI(t, "--server", url, "login", "--email", "creator@example.com", "--password", "hunter2"); err != nil {
		t.Fatalf("login error: %v\noutput: %s", err, out)
	}

	out, err := runCLI(t, "--server", url, "logout")
	if err != nil {
		t.Fatalf("logout error: %v\noutput: %s", err, out)
	}

	out, err = runCLI(t, "--server", url, "whoami")
	if err != nil {
		t.Fatalf("whoami error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Not signed in") {
		t.Errorf("expected anonymous after logout: %s", out)
	}
}
