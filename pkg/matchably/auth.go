package matchably

import (
	"context"

	"github.com/me/matchably/pkg/model"
)

// verifyResponse is the body of GET /auth/verify.
type verifyResponse struct {
	Envelope
	User *model.User `json:"user"`
}

// tokenResponse is the body of the sign-in and sign-up endpoints.
type tokenResponse struct {
	Envelope
	Token string `json:"token"`
}

// SignUpRequest is the body for POST /auth/signup.
type SignUpRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ReferralCode   string `json:"referralCode,omitempty"`
	RecaptchaToken string `json:"recaptchaToken,omitempty"`
}

// Credentials is the body for POST /auth/signin.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Verify exchanges the configured token for the user identity.
func (c *Client) Verify(ctx context.Context) (*model.User, error) {
	return c.VerifyToken(ctx, c.config.Token)
}

// VerifyToken exchanges an explicit token for the user identity.
// A rejected token surfaces as an auth error.
func (c *Client) VerifyToken(ctx context.Context, token string) (*model.User, error) {
	const op = "auth.verify"
	if token == "" {
		return nil, WrapError(op, ErrNotAuthenticated)
	}

	var resp verifyResponse
	if err := c.request(ctx, op, "GET", "/auth/verify", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &Error{Op: op, Code: model.ErrUnauthorized, Message: "verify response missing user"}
	}
	return resp.User, nil
}

// SignIn authenticates with email and password and returns a bearer
// token. The token is not stored on the client; callers decide where
// it persists.
func (c *Client) SignIn(ctx context.Context, creds Credentials) (string, error) {
	const op = "auth.signin"
	var resp tokenResponse
	if err := c.post(ctx, op, "/auth/signin", creds, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// SignUp registers a new account and returns a bearer token when the
// backend issues one immediately (email verification may be required
// first, in which case the token is empty).
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (string, error) {
	const op = "auth.signup"
	var resp tokenResponse
	if err := c.post(ctx, op, "/auth/signup", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// GoogleAuth exchanges a Google ID token for a bearer token.
func (c *Client) GoogleAuth(ctx context.Context, idToken string) (string, error) {
	const op = "auth.google"
	body := map[string]string{"idToken": idToken}
	var resp tokenResponse
	if err := c.post(ctx, op, "/auth/google-auth", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ChangePassword updates the current user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	const op = "auth.change_password"
	body := map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}
	var resp Envelope
	return c.post(ctx, op, "/user/campaigns/change-password", body, &resp)
}

// UpdateSocial updates the current user's social handles.
func (c *Client) UpdateSocial(ctx context.Context, instagramID, tiktokID string) error {
	const op = "auth.update_social"
	body := map[string]string{
		"instagramId": instagramID,
		"tiktokId":    tiktokID,
	}
	var resp Envelope
	return c.post(ctx, op, "/user/campaigns/update-social", body, &resp)
}
