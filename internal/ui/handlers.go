package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/me/matchably/internal/cache"
	"github.com/me/matchably/internal/store"
	"github.com/me/matchably/pkg/matchably"
	"github.com/me/matchably/pkg/model"
)

// UI handles the web portal.
type UI struct {
	store     store.Store
	sessions  *SessionManager
	client    *matchably.Client
	logger    *slog.Logger
	startTime time.Time
	secure    bool // Use secure cookies (HTTPS)
}

// Config holds UI configuration.
type Config struct {
	Secure bool // Use secure cookies for HTTPS
}

// New creates a new UI handler. The client carries the admin token
// when one is configured; user requests go out with per-session
// tokens via AsUser.
func New(st store.Store, client *matchably.Client, logger *slog.Logger, cfg Config) *UI {
	return &UI{
		store:     st,
		sessions:  NewSessionManager(st),
		client:    client,
		logger:    logger.With("component", "ui"),
		startTime: time.Now(),
		secure:    cfg.Secure,
	}
}

// Sessions exposes the session manager for background cleanup.
func (ui *UI) Sessions() *SessionManager {
	return ui.sessions
}

// gatewayFor returns a client scoped to the session's token. A nil
// session gets the anonymous client.
func (ui *UI) gatewayFor(sess *model.Session) *matchably.Client {
	if sess == nil {
		return ui.client.AsUser("")
	}
	return ui.client.AsUser(sess.Token)
}

// campaignRow is one campaign prepared for rendering: the record plus
// the viewer-specific derived state.
type campaignRow struct {
	Campaign model.CampaignSummary
	State    model.EffectiveCampaignState
	Button   model.Button
	Reason   string
}

// --- Auth Handlers ---

// HandleLogin renders the login page.
func (ui *UI) HandleLogin(w http.ResponseWriter, r *http.Request) {
	// If already logged in, redirect to the campaign list.
	if sess, _ := ui.sessions.GetSessionFromRequest(r); sess != nil {
		http.Redirect(w, r, "/campaigns", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Title": "Sign In - Matchably",
		"Error": r.URL.Query().Get("error"),
	}
	ui.render(w, "login", data)
}

// HandleLoginPost processes the login form.
func (ui *UI) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?error=Invalid+request", http.StatusSeeOther)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		http.Redirect(w, r, "/login?error=Email+and+password+required", http.StatusSeeOther)
		return
	}

	token, err := ui.client.SignIn(r.Context(), matchably.Credentials{Email: email, Password: password})
	if err != nil {
		ui.logger.Warn("login failed", "email", email, "error", err)
		http.Redirect(w, r, "/login?error=Invalid+credentials", http.StatusSeeOther)
		return
	}

	ui.establishSession(w, r, token, "/campaigns")
}

// HandleSignup renders the signup page.
func (ui *UI) HandleSignup(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title": "Sign Up - Matchably",
		"Error": r.URL.Query().Get("error"),
	}
	ui.render(w, "signup", data)
}

// HandleSignupPost processes the signup form.
func (ui *UI) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/signup?error=Invalid+request", http.StatusSeeOther)
		return
	}

	req := matchably.SignUpRequest{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Email:        strings.TrimSpace(r.FormValue("email")),
		Password:     r.FormValue("password"),
		ReferralCode: strings.TrimSpace(r.FormValue("referral_code")),
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Redirect(w, r, "/signup?error=Name,+email+and+password+required", http.StatusSeeOther)
		return
	}

	token, err := ui.client.SignUp(r.Context(), req)
	if err != nil {
		ui.logger.Warn("signup failed", "email", req.Email, "error", err)
		http.Redirect(w, r, "/signup?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}
	if token == "" {
		// Backend wants email verification before issuing a token.
		http.Redirect(w, r, "/login?error=Check+your+email+to+verify+your+account", http.StatusSeeOther)
		return
	}

	ui.establishSession(w, r, token, "/campaigns")
}

// establishSession verifies a fresh token and installs the session
// cookie.
func (ui *UI) establishSession(w http.ResponseWriter, r *http.Request, token, target string) {
	user, err := ui.client.VerifyToken(r.Context(), token)
	if err != nil {
		ui.logger.Error("token verification failed after auth", "error", err)
		http.Redirect(w, r, "/login?error=Sign+in+failed", http.StatusSeeOther)
		return
	}

	sess, err := ui.sessions.CreateSession(r.Context(), user, token, time.Time{})
	if err != nil {
		ui.logger.Error("create session failed", "error", err)
		http.Redirect(w, r, "/login?error=Session+creation+failed", http.StatusSeeOther)
		return
	}

	SetSessionCookie(w, sess, ui.secure)
	ui.logger.Info("user logged in", "email", user.Email, "session", sess.ID)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// HandleLogout clears the session and redirects to the campaign list.
func (ui *UI) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, _ := ui.sessions.GetSessionFromRequest(r); sess != nil {
		_ = ui.sessions.DeleteSession(r.Context(), sess.ID)
		ui.logger.Info("user logged out", "email", sess.Email, "session", sess.ID)
	}
	ClearSessionCookie(w)
	http.Redirect(w, r, "/campaigns", http.StatusSeeOther)
}

// --- Campaign Handlers ---

// loadViewerCache builds a cache with all campaign pages and, for
// signed-in viewers, their application outcomes. On backend failure it
// falls back to the last stored snapshot so the list still renders.
func (ui *UI) loadViewerCache(r *http.Request, sess *model.Session) (*cache.Cache, error) {
	gateway := ui.gatewayFor(sess)
	c := cache.New(gateway, ui.logger)

	if err := c.LoadAll(r.Context()); err != nil {
		ui.logger.Warn("campaign fetch failed, using snapshot", "error", err)
		snapshot, snapErr := ui.store.ListCampaigns(r.Context())
		if snapErr != nil || len(snapshot) == 0 {
			return nil, err
		}
		for _, campaign := range snapshot {
			c.Replace(campaign)
		}
		return c, nil
	}

	// Persist the fresh list for the next outage.
	if err := ui.store.UpsertCampaigns(r.Context(), c.Campaigns()); err != nil {
		ui.logger.Warn("campaign snapshot write failed", "error", err)
	}

	if sess != nil {
		if err := c.RefreshApplied(r.Context()); err != nil {
			ui.logger.Warn("applied refresh failed", "error", err)
		}
	}
	return c, nil
}

// HandleCampaignList renders the campaign list for the current viewer.
func (ui *UI) HandleCampaignList(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	now := time.Now()

	c, err := ui.loadViewerCache(r, sess)
	if err != nil {
		ui.renderError(w, "Failed to load campaigns", err)
		return
	}

	authenticated := sess != nil
	var rows []campaignRow
	for _, campaign := range c.VisibleCampaigns(authenticated, now) {
		state := c.StateFor(campaign.ID, authenticated, now)
		rows = append(rows, campaignRow{
			Campaign: campaign,
			State:    state,
			Button:   model.ButtonFor(state),
		})
	}

	data := map[string]any{
		"Title":            "Campaigns - Matchably",
		"Session":          sess,
		"Rows":             rows,
		"AppliedThisMonth": c.AppliedThisMonth(),
		"ApplyLimit":       model.MonthlyApplyLimit,
		"Error":            r.URL.Query().Get("error"),
		"Notice":           r.URL.Query().Get("notice"),
	}
	ui.render(w, "campaigns/list", data)
}

// HandleCampaignDetail renders a single campaign with the viewer's
// derived state and, when applicable, the apply form.
func (ui *UI) HandleCampaignDetail(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := ui.pathParam(r, "id")
	now := time.Now()

	c, err := ui.loadViewerCache(r, sess)
	if err != nil {
		ui.renderError(w, "Failed to load campaign", err)
		return
	}

	campaign, ok := c.Get(id)
	if !ok {
		ui.renderNotFound(w, "Campaign not found")
		return
	}
	authenticated := sess != nil
	if !model.VisibleTo(authenticated, campaign, c.Applied(id), now) {
		ui.renderNotFound(w, "Campaign not found")
		return
	}

	state := c.StateFor(id, authenticated, now)
	row := campaignRow{
		Campaign: campaign,
		State:    state,
		Button:   model.ButtonFor(state),
	}
	if app := c.Application(id); app != nil {
		row.Reason = app.VisibleRejectionReason()
	}

	data := map[string]any{
		"Title":   campaign.Title + " - Matchably",
		"Session": sess,
		"Row":     row,
		"Error":   r.URL.Query().Get("error"),
	}
	ui.render(w, "campaigns/detail", data)
}

// HandleApplyPost submits an application for the signed-in user.
func (ui *UI) HandleApplyPost(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := ui.pathParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/campaigns/"+id+"?error=Invalid+request", http.StatusSeeOther)
		return
	}

	req := model.ApplyRequest{
		CampaignID:  id,
		Name:        strings.TrimSpace(r.FormValue("name")),
		Email:       sess.Email,
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		Address:     strings.TrimSpace(r.FormValue("address")),
		City:        strings.TrimSpace(r.FormValue("city")),
		State:       strings.TrimSpace(r.FormValue("state")),
		Zip:         strings.TrimSpace(r.FormValue("zip")),
		InstagramID: strings.TrimSpace(r.FormValue("instagram_id")),
		TikTokID:    strings.TrimSpace(r.FormValue("tiktok_id")),
	}
	if req.Name == "" {
		req.Name = sess.Name
	}

	gateway := ui.gatewayFor(sess)
	if err := gateway.Apply(r.Context(), req); err != nil {
		ui.logger.Warn("apply failed", "campaign", id, "email", sess.Email, "error", err)
		http.Redirect(w, r, "/campaigns/"+id+"?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}

	ui.logger.Info("application submitted", "campaign", id, "email", sess.Email)
	http.Redirect(w, r, "/campaigns?notice=Application+submitted", http.StatusSeeOther)
}

// HandleMyApplications renders the viewer's applications with their
// outcomes.
func (ui *UI) HandleMyApplications(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	gateway := ui.gatewayFor(sess)

	result, err := gateway.AppliedCampaigns(r.Context())
	if err != nil {
		ui.renderError(w, "Failed to load applications", err)
		return
	}

	type applicationRow struct {
		Campaign model.CampaignSummary
		Status   model.ApplicationStatus
		Reason   string
	}
	rows := make([]applicationRow, 0, len(result.Campaigns))
	for i := range result.Campaigns {
		ac := &result.Campaigns[i]
		rows = append(rows, applicationRow{
			Campaign: ac.CampaignSummary,
			Status:   ac.ApplicationStatus,
			Reason:   ac.Application().VisibleRejectionReason(),
		})
	}

	data := map[string]any{
		"Title":            "My Applications - Matchably",
		"Session":          sess,
		"Rows":             rows,
		"AppliedThisMonth": result.AppliedThisMonth,
		"ApplyLimit":       model.MonthlyApplyLimit,
	}
	ui.render(w, "applications/list", data)
}

// --- Submission Handlers ---

// HandleSubmissionForm renders the post-URL submission form for an
// approved campaign.
func (ui *UI) HandleSubmissionForm(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := ui.pathParam(r, "id")
	gateway := ui.gatewayFor(sess)

	sub, err := gateway.GetSubmission(r.Context(), id)
	if err != nil {
		ui.renderError(w, "Failed to load submission", err)
		return
	}

	data := map[string]any{
		"Title":      "Content Submission - Matchably",
		"Session":    sess,
		"CampaignID": id,
		"Submission": sub,
		"Error":      r.URL.Query().Get("error"),
	}
	ui.render(w, "submissions/form", data)
}

// HandleSubmissionPost creates or replaces the viewer's post URLs.
func (ui *UI) HandleSubmissionPost(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := ui.pathParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/campaigns/"+id+"/submission?error=Invalid+request", http.StatusSeeOther)
		return
	}

	sub := model.PostSubmission{
		CampaignID:    id,
		InstagramURLs: splitLines(r.FormValue("instagram_urls")),
		TikTokURLs:    splitLines(r.FormValue("tiktok_urls")),
	}
	if len(sub.InstagramURLs) == 0 && len(sub.TikTokURLs) == 0 {
		http.Redirect(w, r, "/campaigns/"+id+"/submission?error=At+least+one+post+URL+required", http.StatusSeeOther)
		return
	}

	gateway := ui.gatewayFor(sess)
	existing, err := gateway.GetSubmission(r.Context(), id)
	if err != nil {
		ui.renderError(w, "Failed to load submission", err)
		return
	}

	if existing != nil {
		err = gateway.UpdateSubmission(r.Context(), id, sub)
	} else {
		err = gateway.CreateSubmission(r.Context(), sub)
	}
	if err != nil {
		http.Redirect(w, r, "/campaigns/"+id+"/submission?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}

	ui.logger.Info("submission saved", "campaign", id, "email", sess.Email)
	http.Redirect(w, r, "/applications?notice=Submission+saved", http.StatusSeeOther)
}

// HandleSubmissionDelete removes the viewer's post-URL record.
func (ui *UI) HandleSubmissionDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := ui.pathParam(r, "id")

	gateway := ui.gatewayFor(sess)
	if err := gateway.DeleteSubmission(r.Context(), id); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("HX-Redirect", "/applications")
	w.WriteHeader(http.StatusOK)
}

// --- Reward Handlers ---

// HandleRewards renders the viewer's points, reward tiers, and
// referral progress.
func (ui *UI) HandleRewards(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	gateway := ui.gatewayFor(sess)

	balance, tiers, err := gateway.Points(r.Context())
	if err != nil {
		ui.renderError(w, "Failed to load points", err)
		return
	}
	referral, err := gateway.Referral(r.Context())
	if err != nil {
		ui.logger.Warn("referral fetch failed", "error", err)
	}

	data := map[string]any{
		"Title":    "Rewards - Matchably",
		"Session":  sess,
		"Balance":  balance,
		"Tiers":    tiers,
		"Referral": referral,
		"Error":    r.URL.Query().Get("error"),
		"Notice":   r.URL.Query().Get("notice"),
	}
	ui.render(w, "rewards", data)
}

// HandleRedeemPost exchanges points for a reward tier.
func (ui *UI) HandleRedeemPost(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/rewards?error=Invalid+request", http.StatusSeeOther)
		return
	}

	tierID := r.FormValue("tier_id")
	gateway := ui.gatewayFor(sess)
	if err := gateway.Redeem(r.Context(), tierID); err != nil {
		http.Redirect(w, r, "/rewards?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}

	ui.logger.Info("redemption requested", "email", sess.Email, "tier", tierID)
	http.Redirect(w, r, "/rewards?notice=Redemption+requested", http.StatusSeeOther)
}

// --- Profile Handlers ---

// HandleProfile renders the profile page.
func (ui *UI) HandleProfile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	gateway := ui.gatewayFor(sess)

	user, err := gateway.Verify(r.Context())
	if err != nil {
		ui.renderError(w, "Failed to load profile", err)
		return
	}

	data := map[string]any{
		"Title":   "Profile - Matchably",
		"Session": sess,
		"User":    user,
		"Error":   r.URL.Query().Get("error"),
		"Notice":  r.URL.Query().Get("notice"),
	}
	ui.render(w, "profile", data)
}

// HandleSocialPost updates the viewer's social handles.
func (ui *UI) HandleSocialPost(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/profile?error=Invalid+request", http.StatusSeeOther)
		return
	}

	gateway := ui.gatewayFor(sess)
	instagram := strings.TrimSpace(r.FormValue("instagram_id"))
	tiktok := strings.TrimSpace(r.FormValue("tiktok_id"))
	if err := gateway.UpdateSocial(r.Context(), instagram, tiktok); err != nil {
		http.Redirect(w, r, "/profile?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/profile?notice=Social+handles+updated", http.StatusSeeOther)
}

// HandlePasswordPost changes the viewer's password.
func (ui *UI) HandlePasswordPost(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/profile?error=Invalid+request", http.StatusSeeOther)
		return
	}

	oldPassword := r.FormValue("old_password")
	newPassword := r.FormValue("new_password")
	if newPassword == "" {
		http.Redirect(w, r, "/profile?error=New+password+required", http.StatusSeeOther)
		return
	}

	gateway := ui.gatewayFor(sess)
	if err := gateway.ChangePassword(r.Context(), oldPassword, newPassword); err != nil {
		http.Redirect(w, r, "/profile?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}

	// Other sessions of this user keep stale tokens; drop them.
	if _, err := ui.store.DeleteSessionsByEmail(r.Context(), sess.Email); err != nil {
		ui.logger.Warn("session cleanup after password change failed", "error", err)
	}
	ClearSessionCookie(w)
	http.Redirect(w, r, "/login?error=Password+changed,+please+sign+in+again", http.StatusSeeOther)
}

// --- Admin Handlers ---

// HandleAdminCampaigns renders the admin campaign table.
func (ui *UI) HandleAdminCampaigns(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	page := ui.pageParam(r)

	campaigns, err := ui.client.AdminCampaigns(r.Context(), page)
	if err != nil {
		ui.renderError(w, "Failed to load campaigns", err)
		return
	}

	data := map[string]any{
		"Title":     "Admin Campaigns - Matchably",
		"Session":   sess,
		"Campaigns": campaigns,
		"Page":      page,
		"NextPage":  page + 1,
		"PrevPage":  max(1, page-1),
		"Notice":    r.URL.Query().Get("notice"),
		"Error":     r.URL.Query().Get("error"),
	}
	ui.render(w, "admin/campaigns", data)
}

// HandleAdminCampaignNew renders the campaign creation form.
func (ui *UI) HandleAdminCampaignNew(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	brands, err := ui.client.AdminBrands(r.Context())
	if err != nil {
		ui.logger.Warn("brand list fetch failed", "error", err)
	}

	data := map[string]any{
		"Title":   "New Campaign - Matchably",
		"Session": sess,
		"Brands":  brands,
		"Error":   r.URL.Query().Get("error"),
	}
	ui.render(w, "admin/campaign_form", data)
}

// HandleAdminCampaignCreate creates a campaign from the form.
func (ui *UI) HandleAdminCampaignCreate(w http.ResponseWriter, r *http.Request) {
	in, err := ui.parseCampaignForm(r)
	if err != nil {
		http.Redirect(w, r, "/admin/campaigns/new?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	id, err := ui.client.AdminCreateCampaign(r.Context(), in)
	if err != nil {
		http.Redirect(w, r, "/admin/campaigns/new?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}

	ui.logger.Info("campaign created", "id", id, "title", in.Title)
	http.Redirect(w, r, "/admin/campaigns?notice=Campaign+created", http.StatusSeeOther)
}

// HandleAdminCampaignEdit renders the edit form pre-filled with the
// current record.
func (ui *UI) HandleAdminCampaignEdit(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := ui.pathParam(r, "id")

	campaign, err := ui.store.GetCampaign(r.Context(), id)
	if err != nil {
		ui.renderError(w, "Failed to load campaign", err)
		return
	}
	if campaign == nil {
		ui.renderNotFound(w, "Campaign not found")
		return
	}

	data := map[string]any{
		"Title":    "Edit Campaign - Matchably",
		"Session":  sess,
		"Campaign": campaign,
		"ID":       id,
		"Error":    r.URL.Query().Get("error"),
	}
	ui.render(w, "admin/campaign_form", data)
}

// HandleAdminCampaignUpdate replaces a campaign record.
func (ui *UI) HandleAdminCampaignUpdate(w http.ResponseWriter, r *http.Request) {
	id := ui.pathParam(r, "id")

	in, err := ui.parseCampaignForm(r)
	if err != nil {
		http.Redirect(w, r, "/admin/campaigns/"+id+"/edit?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	if err := ui.client.AdminEditCampaign(r.Context(), id, in); err != nil {
		http.Redirect(w, r, "/admin/campaigns/"+id+"/edit?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}

	ui.logger.Info("campaign updated", "id", id)
	http.Redirect(w, r, "/admin/campaigns?notice=Campaign+updated", http.StatusSeeOther)
}

// HandleAdminCampaignDelete deletes a campaign (HTMX).
func (ui *UI) HandleAdminCampaignDelete(w http.ResponseWriter, r *http.Request) {
	id := ui.pathParam(r, "id")

	if err := ui.client.AdminDeleteCampaign(r.Context(), id); err != nil {
		w.Header().Set("HX-Reswap", "none")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := ui.store.DeleteCampaign(r.Context(), id); err != nil {
		ui.logger.Debug("snapshot delete skipped", "id", id, "error", err)
	}

	ui.logger.Info("campaign deleted", "id", id)
	w.WriteHeader(http.StatusOK)
}

// HandleAdminApplicants renders the applicant review table for a
// campaign.
func (ui *UI) HandleAdminApplicants(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	id := ui.pathParam(r, "id")
	page := ui.pageParam(r)

	applicants, approvedCount, err := ui.client.AdminApplicants(r.Context(), id, page)
	if err != nil {
		ui.renderError(w, "Failed to load applicants", err)
		return
	}

	data := map[string]any{
		"Title":         "Applicants - Matchably",
		"Session":       sess,
		"CampaignID":    id,
		"Applicants":    applicants,
		"ApprovedCount": approvedCount,
		"Page":          page,
		"NextPage":      page + 1,
		"PrevPage":      max(1, page-1),
		"Notice":        r.URL.Query().Get("notice"),
		"Error":         r.URL.Query().Get("error"),
	}
	ui.render(w, "admin/applicants", data)
}

// HandleAdminApplicantStatus decides one application.
func (ui *UI) HandleAdminApplicantStatus(w http.ResponseWriter, r *http.Request) {
	campaignID := ui.pathParam(r, "id")
	applicantID := ui.pathParam(r, "aid")

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	status := model.ApplicationStatus(r.FormValue("status"))
	if status != model.ApplicationStatusApproved && status != model.ApplicationStatusRejected {
		http.Redirect(w, r, "/admin/campaigns/"+campaignID+"/applicants?error=Invalid+status", http.StatusSeeOther)
		return
	}

	update := matchably.StatusUpdate{
		Status:                 status,
		RejectionReason:        strings.TrimSpace(r.FormValue("rejection_reason")),
		ShowReasonToInfluencer: r.FormValue("show_reason") == "on",
	}
	if err := ui.client.AdminSetApplicationStatus(r.Context(), applicantID, update); err != nil {
		http.Redirect(w, r, "/admin/campaigns/"+campaignID+"/applicants?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}

	ui.logger.Info("application decided", "applicant", applicantID, "status", status)
	http.Redirect(w, r, "/admin/campaigns/"+campaignID+"/applicants?notice=Status+updated", http.StatusSeeOther)
}

// HandleAdminApplicantsExport streams the applicant CSV export.
func (ui *UI) HandleAdminApplicantsExport(w http.ResponseWriter, r *http.Request) {
	id := ui.pathParam(r, "id")

	data, err := ui.client.AdminExportApplicants(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to export applicants", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=applicants_%s_%s.csv", id, time.Now().Format("20060102_150405")))
	w.Write(data)
}

// HandleAdminUsers renders the user management table.
func (ui *UI) HandleAdminUsers(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	page := ui.pageParam(r)

	users, err := ui.client.AdminUsers(r.Context(), page)
	if err != nil {
		ui.renderError(w, "Failed to load users", err)
		return
	}

	data := map[string]any{
		"Title":    "Users - Matchably",
		"Session":  sess,
		"Users":    users,
		"Page":     page,
		"NextPage": page + 1,
		"PrevPage": max(1, page-1),
		"Notice":   r.URL.Query().Get("notice"),
		"Error":    r.URL.Query().Get("error"),
	}
	ui.render(w, "admin/users", data)
}

// HandleAdminUserBlock toggles a user's blocked flag.
func (ui *UI) HandleAdminUserBlock(w http.ResponseWriter, r *http.Request) {
	userID := ui.pathParam(r, "id")
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	blocked := r.FormValue("blocked") == "true"
	if err := ui.client.AdminBlockUser(r.Context(), userID, blocked); err != nil {
		http.Redirect(w, r, "/admin/users?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}

	ui.logger.Info("user block toggled", "user", userID, "blocked", blocked)
	http.Redirect(w, r, "/admin/users?notice=User+updated", http.StatusSeeOther)
}

// HandleAdminUserVerify marks a user's email verified.
func (ui *UI) HandleAdminUserVerify(w http.ResponseWriter, r *http.Request) {
	userID := ui.pathParam(r, "id")

	if err := ui.client.AdminVerifyUser(r.Context(), userID); err != nil {
		http.Redirect(w, r, "/admin/users?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/admin/users?notice=User+verified", http.StatusSeeOther)
}

// HandleAdminPointsPost applies a manual point adjustment.
func (ui *UI) HandleAdminPointsPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	points, err := strconv.Atoi(r.FormValue("points"))
	if err != nil {
		http.Redirect(w, r, "/admin/rewards?error=Points+must+be+a+number", http.StatusSeeOther)
		return
	}
	adj := matchably.PointAdjustment{
		Email:  strings.TrimSpace(r.FormValue("email")),
		Points: points,
		Reason: strings.TrimSpace(r.FormValue("reason")),
	}
	if adj.Email == "" || adj.Reason == "" {
		http.Redirect(w, r, "/admin/rewards?error=Email+and+reason+required", http.StatusSeeOther)
		return
	}

	if err := ui.client.AdminAdjustPoints(r.Context(), adj); err != nil {
		http.Redirect(w, r, "/admin/rewards?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}

	ui.logger.Info("points adjusted", "email", adj.Email, "points", adj.Points)
	http.Redirect(w, r, "/admin/rewards?notice=Points+adjusted", http.StatusSeeOther)
}

// HandleAdminRewards lists redemption requests and the adjust form.
func (ui *UI) HandleAdminRewards(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())

	transactions, err := ui.client.AdminRewardTransactions(r.Context())
	if err != nil {
		ui.renderError(w, "Failed to load reward transactions", err)
		return
	}

	data := map[string]any{
		"Title":        "Rewards Admin - Matchably",
		"Session":      sess,
		"Transactions": transactions,
		"Notice":       r.URL.Query().Get("notice"),
		"Error":        r.URL.Query().Get("error"),
	}
	ui.render(w, "admin/rewards", data)
}

// HandleAdminRewardDecision approves or denies a redemption.
func (ui *UI) HandleAdminRewardDecision(w http.ResponseWriter, r *http.Request) {
	id := ui.pathParam(r, "id")
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	decision := r.FormValue("decision")
	if decision != "approved" && decision != "denied" {
		http.Redirect(w, r, "/admin/rewards?error=Invalid+decision", http.StatusSeeOther)
		return
	}

	if err := ui.client.AdminDecideRewardTransaction(r.Context(), id, decision); err != nil {
		http.Redirect(w, r, "/admin/rewards?error="+url.QueryEscape(userMessage(err)), http.StatusSeeOther)
		return
	}

	ui.logger.Info("redemption decided", "transaction", id, "decision", decision)
	http.Redirect(w, r, "/admin/rewards?notice=Decision+recorded", http.StatusSeeOther)
}

// HandleHealth reports portal liveness as JSON.
func (ui *UI) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{
		"status":     "success",
		"uptime":     time.Since(ui.startTime).Round(time.Second).String(),
		"start_time": ui.startTime.Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		ui.logger.Error("health encode failed", "error", err)
	}
}

// --- Helper Methods ---

// parseCampaignForm builds a CampaignInput from the admin form.
func (ui *UI) parseCampaignForm(r *http.Request) (matchably.CampaignInput, error) {
	if err := r.ParseForm(); err != nil {
		return matchably.CampaignInput{}, fmt.Errorf("invalid request")
	}

	in := matchably.CampaignInput{
		Title:              strings.TrimSpace(r.FormValue("title")),
		Brand:              strings.TrimSpace(r.FormValue("brand")),
		Description:        strings.TrimSpace(r.FormValue("description")),
		Image:              strings.TrimSpace(r.FormValue("image")),
		Deadline:           r.FormValue("deadline"),
		RecruitmentEndDate: r.FormValue("recruitment_end_date"),
		Status:             r.FormValue("status"),
	}
	in.Platforms = append(in.Platforms, r.Form["platforms"]...)
	if in.Title == "" || in.Brand == "" {
		return in, fmt.Errorf("title and brand required")
	}
	if in.Status == "" {
		in.Status = string(model.CampaignStatusActive)
	}
	if recruiting := r.FormValue("recruiting"); recruiting != "" {
		n, err := strconv.Atoi(recruiting)
		if err != nil || n < 0 {
			return in, fmt.Errorf("recruiting must be a non-negative number")
		}
		in.Recruiting = n
	}
	return in, nil
}

// userMessage extracts a message fit for a query-string banner.
func userMessage(err error) string {
	var apiErr *matchably.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Request failed, please try again"
}

func (ui *UI) pageParam(r *http.Request) int {
	if page := r.URL.Query().Get("page"); page != "" {
		if n, err := strconv.Atoi(page); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

func (ui *UI) pathParam(r *http.Request, name string) string {
	// Chi uses path value context.
	return r.PathValue(name)
}

// splitLines splits a textarea value into trimmed non-empty lines.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (ui *UI) render(w http.ResponseWriter, template string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var buf bytes.Buffer
	if err := renderTemplate(&buf, template, data); err != nil {
		ui.logger.Error("template render failed", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (ui *UI) renderError(w http.ResponseWriter, message string, err error) {
	ui.logger.Error(message, "error", err)
	data := map[string]any{
		"Title":   "Error - Matchably",
		"Message": message,
	}
	w.WriteHeader(http.StatusInternalServerError)
	ui.render(w, "error", data)
}

func (ui *UI) renderNotFound(w http.ResponseWriter, message string) {
	data := map[string]any{
		"Title":   "Not Found - Matchably",
		"Message": message,
	}
	w.WriteHeader(http.StatusNotFound)
	ui.render(w, "error", data)
}
