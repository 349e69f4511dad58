package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portal routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	// Public routes (no auth required).
	r.Get("/healthz", ui.HandleHealth)
	r.Get("/login", ui.HandleLogin)
	r.Post("/login", ui.HandleLoginPost)
	r.Get("/signup", ui.HandleSignup)
	r.Post("/signup", ui.HandleSignupPost)
	r.Get("/logout", ui.HandleLogout)

	// Campaign browsing works for anonymous visitors too; they see
	// the public subset.
	r.Group(func(r chi.Router) {
		r.Use(ui.OptionalAuthMiddleware)
		r.Get("/", ui.HandleCampaignList)
		r.Get("/campaigns", ui.HandleCampaignList)
		r.Get("/campaigns/{id}", ui.HandleCampaignDetail)
	})

	// Protected routes (auth required).
	r.Group(func(r chi.Router) {
		r.Use(ui.AuthMiddleware)

		r.Post("/campaigns/{id}/apply", ui.HandleApplyPost)
		r.Get("/applications", ui.HandleMyApplications)

		r.Route("/campaigns/{id}/submission", func(r chi.Router) {
			r.Get("/", ui.HandleSubmissionForm)
			r.Post("/", ui.HandleSubmissionPost)
			r.Delete("/", ui.HandleSubmissionDelete)
		})

		r.Get("/rewards", ui.HandleRewards)
		r.Post("/rewards/redeem", ui.HandleRedeemPost)

		r.Get("/profile", ui.HandleProfile)
		r.Post("/profile/social", ui.HandleSocialPost)
		r.Post("/profile/password", ui.HandlePasswordPost)

		// Admin routes (admin role required).
		r.Route("/admin", func(r chi.Router) {
			r.Use(ui.AdminMiddleware)

			r.Get("/", ui.HandleAdminCampaigns)
			r.Route("/campaigns", func(r chi.Router) {
				r.Get("/", ui.HandleAdminCampaigns)
				r.Get("/new", ui.HandleAdminCampaignNew)
				r.Post("/", ui.HandleAdminCampaignCreate)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/edit", ui.HandleAdminCampaignEdit)
					r.Post("/edit", ui.HandleAdminCampaignUpdate)
					r.Delete("/", ui.HandleAdminCampaignDelete)
					r.Get("/applicants", ui.HandleAdminApplicants)
					r.Post("/applicants/{aid}/status", ui.HandleAdminApplicantStatus)
					r.Get("/applicants/export", ui.HandleAdminApplicantsExport)
				})
			})
			r.Route("/users", func(r chi.Router) {
				r.Get("/", ui.HandleAdminUsers)
				r.Post("/{id}/block", ui.HandleAdminUserBlock)
				r.Post("/{id}/verify", ui.HandleAdminUserVerify)
			})
			r.Route("/rewards", func(r chi.Router) {
				r.Get("/", ui.HandleAdminRewards)
				r.Post("/adjust", ui.HandleAdminPointsPost)
				r.Post("/{id}/decision", ui.HandleAdminRewardDecision)
			})
		})
	})
}

// StaticHandler returns an http.Handler that serves static files from the given directory.
func StaticHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.StripPrefix("/static/", fs)
}
