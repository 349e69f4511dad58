package ui

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/me/matchably/internal/store"
	"github.com/me/matchably/pkg/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    "user1",
		Name:  "Creator One",
		Email: "creator@example.com",
		Role:  model.RoleUser,
	}
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessionManager(st)
	ctx := context.Background()

	tokenExp := time.Now().Add(48 * time.Hour)
	sess, err := sm.CreateSession(ctx, testUser(), "test-token", tokenExp)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if sess.ID == "" {
		t.Error("expected session ID to be set")
	}
	if sess.UserID != "user1" {
		t.Errorf("expected UserID 'user1', got %q", sess.UserID)
	}
	if sess.Email != "creator@example.com" {
		t.Errorf("expected Email 'creator@example.com', got %q", sess.Email)
	}
	if sess.Token != "test-token" {
		t.Errorf("expected Token 'test-token', got %q", sess.Token)
	}

	retrieved, err := sm.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected session to be found")
	}
	if retrieved.Email != sess.Email {
		t.Errorf("expected Email %q, got %q", sess.Email, retrieved.Email)
	}
}

func TestSessionManager_CreateSession_CapsExpiryToToken(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessionManager(st)
	ctx := context.Background()

	// Token expires before the default session lifetime.
	tokenExp := time.Now().Add(time.Hour)
	sess, err := sm.CreateSession(ctx, testUser(), "test-token", tokenExp)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if sess.ExpiresAt.After(tokenExp.Add(time.Second)) {
		t.Errorf("expected session expiry capped at token expiry, got %v", sess.ExpiresAt)
	}
}

func TestSessionManager_GetSession_NotFound(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessionManager(st)
	ctx := context.Background()

	sess, err := sm.GetSession(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if sess != nil {
		t.Error("expected nil session for nonexistent ID")
	}
}

func TestSessionManager_GetSession_Expired(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessionManager(st)
	ctx := context.Background()

	// Create an expired session directly.
	sess := &model.Session{
		ID:        "sess_expired",
		UserID:    "user1",
		Name:      "Creator One",
		Email:     "creator@example.com",
		Role:      model.RoleUser,
		Token:     "test-token",
		TokenExp:  time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}
	if err := st.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	// GetSession should return nil for expired sessions.
	retrieved, err := sm.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if retrieved != nil {
		t.Error("expected nil session for expired session")
	}
}

func TestSessionManager_GetSession_ExpiredToken(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessionManager(st)
	ctx := context.Background()

	// Session itself valid, backend token past its expiry.
	sess := &model.Session{
		ID:        "sess_stale_token",
		UserID:    "user1",
		Email:     "creator@example.com",
		Role:      model.RoleUser,
		Token:     "test-token",
		TokenExp:  time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := st.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	retrieved, err := sm.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if retrieved != nil {
		t.Error("expected nil session for expired token")
	}
}

func TestSessionManager_DeleteSession(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessionManager(st)
	ctx := context.Background()

	sess, err := sm.CreateSession(ctx, testUser(), "test-token", time.Time{})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := sm.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	retrieved, err := sm.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if retrieved != nil {
		t.Error("expected nil session after deletion")
	}
}

func TestSessionManager_GetSessionFromRequest(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessionManager(st)
	ctx := context.Background()

	sess, err := sm.CreateSession(ctx, testUser(), "test-token", time.Time{})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  SessionCookieName,
		Value: sess.ID,
	})

	retrieved, err := sm.GetSessionFromRequest(req)
	if err != nil {
		t.Fatalf("GetSessionFromRequest failed: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected session to be found")
	}
	if retrieved.Email != sess.Email {
		t.Errorf("expected Email %q, got %q", sess.Email, retrieved.Email)
	}
}

func TestSessionManager_GetSessionFromRequest_NoCookie(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	sm := NewSessionManager(st)

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	retrieved, err := sm.GetSessionFromRequest(req)
	if err != nil {
		t.Fatalf("GetSessionFromRequest failed: %v", err)
	}
	if retrieved != nil {
		t.Error("expected nil session when no cookie")
	}
}

func TestSetSessionCookie(t *testing.T) {
	sess := &model.Session{
		ID:        "sess_test123",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	w := httptest.NewRecorder()
	SetSessionCookie(w, sess, false)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Name != SessionCookieName {
		t.Errorf("expected cookie name %q, got %q", SessionCookieName, cookie.Name)
	}
	if cookie.Value != sess.ID {
		t.Errorf("expected cookie value %q, got %q", sess.ID, cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly to be true")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("expected SameSite Strict, got %v", cookie.SameSite)
	}
}

func TestClearSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSessionCookie(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Name != SessionCookieName {
		t.Errorf("expected cookie name %q, got %q", SessionCookieName, cookie.Name)
	}
	if cookie.MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookie.MaxAge)
	}
}

func TestSession_IsExpired(t *testing.T) {
	tests := []struct {
		name     string
		expires  time.Time
		expected bool
	}{
		{"future", time.Now().Add(time.Hour), false},
		{"past", time.Now().Add(-time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &model.Session{ExpiresAt: tt.expires}
			if got := sess.IsExpired(); got != tt.expected {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSession_IsAdmin(t *testing.T) {
	tests := []struct {
		role     model.UserRole
		expected bool
	}{
		{model.RoleAdmin, true},
		{model.RoleUser, false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			sess := &model.Session{Role: tt.role}
			if got := sess.IsAdmin(); got != tt.expected {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func setupTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := st.Migrate(context.Background()); err != nil {
		st.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	return st
}
