package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/model-status", s.handleModelStatus)

		// Learner surface, bearer token required.
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Post("/auth/logout", s.handleLogout)

			r.Get("/profile", s.handleGetProfile)
			r.Put("/profile/photo", s.handleUpdateProfilePhoto)
			r.Post("/profile/certificate", s.handleRefreshCertificate)

			r.Get("/units", s.handleListUnits)
			r.Get("/lessons/{id}", s.handleGetLesson)
			r.Get("/lessons/{id}/progress", s.handleGetLessonProgress)
			r.Post("/lessons/{id}/check-progress", s.handleCheckProgress)
			r.Post("/recognition/check-sign/{signID}", s.handleCheckSign)
			r.Get("/progress", s.handleListProgress)

			r.Get("/shop/hearts", s.handleListHeartPackages)
			r.Post("/shop/hearts/{id}/purchase", s.handlePurchaseHearts)

			r.Get("/practice/levels", s.handleListPracticeLevels)
			r.Post("/practice/score", s.handleSubmitPracticeScore)
			r.Get("/practice/signs", s.handlePracticeSigns)
		})

		// Admin surface.
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Use(s.adminMiddleware)

			r.Get("/analytics/overview", s.handleAnalyticsOverview)
			r.Get("/analytics/users", s.handleAnalyticsUsers)
			r.Get("/analytics/lessons", s.handleAnalyticsLessons)
			r.Get("/analytics/signs", s.handleAnalyticsSigns)
			r.Get("/analytics/most-failed", s.handleAnalyticsMostFailed)

			r.Get("/units", s.handleAdminListUnits)
			r.Post("/units", s.handleAdminCreateUnit)
			r.Put("/units/{id}", s.handleAdminUpdateUnit)
			r.Delete("/units/{id}", s.handleAdminArchiveUnit)
			r.Post("/lessons", s.handleAdminCreateLesson)
			r.Put("/lessons/{id}", s.handleAdminUpdateLesson)
			r.Delete("/lessons/{id}", s.handleAdminArchiveLesson)
			r.Post("/signs", s.handleAdminCreateSign)
			r.Delete("/signs/{id}", s.handleAdminArchiveSign)
		})
	})

	return r
}
