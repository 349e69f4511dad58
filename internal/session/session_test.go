package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/me/matchably/pkg/matchably"
	"github.com/me/matchably/pkg/model"
)

type fakeGateway struct {
	verifyCalls atomic.Int64
	verifyUser  *model.User
	verifyErr   error
	verifyGate  chan struct{} // when non-nil, VerifyToken blocks until closed

	signInToken string
	signInErr   error
}

func (f *fakeGateway) VerifyToken(ctx context.Context, token string) (*model.User, error) {
	f.verifyCalls.Add(1)
	if f.verifyGate != nil {
		select {
		case <-f.verifyGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyUser, nil
}

func (f *fakeGateway) SignIn(ctx context.Context, creds matchably.Credentials) (string, error) {
	return f.signInToken, f.signInErr
}

func (f *fakeGateway) SignUp(ctx context.Context, req matchably.SignUpRequest) (string, error) {
	return f.signInToken, f.signInErr
}

func (f *fakeGateway) GoogleAuth(ctx context.Context, idToken string) (string, error) {
	return f.signInToken, f.signInErr
}

func testUser() *model.User {
	return &model.User{ID: "u1", Name: "Kim", Email: "kim@example.com", Role: model.RoleUser}
}

func TestVerifyNoToken(t *testing.T) {
	gw := &fakeGateway{verifyUser: testUser()}
	store := NewStore(gw, &MemoryTokenSource{}, nil)

	user, err := store.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if user != nil {
		t.Errorf("Verify() user = %v, want nil", user)
	}
	if store.Status() != StatusAnonymous {
		t.Errorf("Status() = %v, want %v", store.Status(), StatusAnonymous)
	}
	if n := gw.verifyCalls.Load(); n != 0 {
		t.Errorf("backend called %d times without a token", n)
	}
}

func TestVerifySuccess(t *testing.T) {
	gw := &fakeGateway{verifyUser: testUser()}
	store := NewStore(gw, &MemoryTokenSource{Token: "tok"}, nil)

	user, err := store.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if user == nil || user.Email != "kim@example.com" {
		t.Fatalf("Verify() user = %v, want kim@example.com", user)
	}
	if store.Status() != StatusAuthenticated {
		t.Errorf("Status() = %v, want %v", store.Status(), StatusAuthenticated)
	}

	// A second call should return the cached result.
	if _, err := store.Verify(context.Background()); err != nil {
		t.Fatalf("second Verify() error = %v", err)
	}
	if n := gw.verifyCalls.Load(); n != 1 {
		t.Errorf("backend called %d times, want 1", n)
	}
}

func TestVerifyRejectedTokenClearsCredentials(t *testing.T) {
	gw := &fakeGateway{verifyErr: &matchably.Error{
		Op:   "auth.verify",
		Code: model.ErrUnauthorized,
	}}
	tokens := &MemoryTokenSource{Token: "stale"}
	store := NewStore(gw, tokens, nil)

	user, err := store.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if user != nil {
		t.Errorf("Verify() user = %v, want nil", user)
	}
	if store.Status() != StatusAnonymous {
		t.Errorf("Status() = %v, want %v", store.Status(), StatusAnonymous)
	}
	if tokens.Token != "" {
		t.Errorf("rejected token not cleared, still %q", tokens.Token)
	}
}

func TestVerifyTransportErrorKeepsState(t *testing.T) {
	gw := &fakeGateway{verifyErr: errors.New("connection refused")}
	tokens := &MemoryTokenSource{Token: "tok"}
	store := NewStore(gw, tokens, nil)

	if _, err := store.Verify(context.Background()); err == nil {
		t.Fatal("Verify() error = nil, want transport error")
	}
	if store.Status() != StatusUnknown {
		t.Errorf("Status() = %v, want %v after transport failure", store.Status(), StatusUnknown)
	}
	if tokens.Token != "tok" {
		t.Errorf("token cleared on transport failure")
	}
}

func TestVerifyDeduplicatesConcurrentCalls(t *testing.T) {
	gate := make(chan struct{})
	gw := &fakeGateway{verifyUser: testUser(), verifyGate: gate}
	store := NewStore(gw, &MemoryTokenSource{Token: "tok"}, nil)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*model.User, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = store.Verify(context.Background())
		}(i)
	}

	// Let the goroutines pile up behind the in-flight call, then
	// release the backend.
	for gw.verifyCalls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	close(gate)
	wg.Wait()

	if n := gw.verifyCalls.Load(); n != 1 {
		t.Errorf("backend called %d times, want 1", n)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Errorf("caller %d: error = %v", i, errs[i])
		}
		if results[i] == nil {
			t.Errorf("caller %d: user = nil", i)
		}
	}
}

func TestVerifyWaiterHonorsContext(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	gw := &fakeGateway{verifyUser: testUser(), verifyGate: gate}
	store := NewStore(gw, &MemoryTokenSource{Token: "tok"}, nil)

	go store.Verify(context.Background())
	for gw.verifyCalls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Verify(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Verify() error = %v, want context.Canceled", err)
	}
}

func TestSignInStoresTokenAndVerifies(t *testing.T) {
	gw := &fakeGateway{verifyUser: testUser(), signInToken: "fresh"}
	tokens := &MemoryTokenSource{}
	store := NewStore(gw, tokens, nil)

	user, err := store.SignIn(context.Background(), matchably.Credentials{
		Email:    "kim@example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if user == nil {
		t.Fatal("SignIn() user = nil")
	}
	if tokens.Token != "fresh" {
		t.Errorf("stored token = %q, want fresh", tokens.Token)
	}
	if store.Status() != StatusAuthenticated {
		t.Errorf("Status() = %v, want %v", store.Status(), StatusAuthenticated)
	}
}

func TestSignOut(t *testing.T) {
	gw := &fakeGateway{verifyUser: testUser()}
	tokens := &MemoryTokenSource{Token: "tok"}
	store := NewStore(gw, tokens, nil)

	if _, err := store.Verify(context.Background()); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if err := store.SignOut(); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if tokens.Token != "" {
		t.Errorf("token not cleared on sign out")
	}
	if store.Status() != StatusAnonymous {
		t.Errorf("Status() = %v, want %v", store.Status(), StatusAnonymous)
	}
	if store.User() != nil {
		t.Errorf("User() = %v, want nil", store.User())
	}
}

func TestInvalidateForcesReverify(t *testing.T) {
	gw := &fakeGateway{verifyUser: testUser()}
	store := NewStore(gw, &MemoryTokenSource{Token: "tok"}, nil)

	if _, err := store.Verify(context.Background()); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	store.Invalidate()
	if store.Status() != StatusUnknown {
		t.Errorf("Status() = %v after Invalidate, want %v", store.Status(), StatusUnknown)
	}
	if _, err := store.Verify(context.Background()); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if n := gw.verifyCalls.Load(); n != 2 {
		t.Errorf("backend called %d times, want 2", n)
	}
}

func TestFileTokenSourceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	src := &FileTokenSource{Path: path}

	if tok, err := src.Load(); err != nil || tok != "" {
		t.Fatalf("Load() on missing file = (%q, %v), want empty", tok, err)
	}
	if err := src.Store("secret"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat credentials: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("credentials mode = %o, want 0600", perm)
	}

	tok, err := src.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tok != "secret" {
		t.Errorf("Load() = %q, want secret", tok)
	}

	if err := src.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if tok, _ := src.Load(); tok != "" {
		t.Errorf("Load() after Clear = %q, want empty", tok)
	}
	// Clearing twice is fine.
	if err := src.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}
