package api

import (
	"net/http"
)

func (s *Server) handleAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	report, err := s.AnalyticsService.Overview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleAnalyticsUsers(w http.ResponseWriter, r *http.Request) {
	report, err := s.AnalyticsService.UserStats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleAnalyticsLessons(w http.ResponseWriter, r *http.Request) {
	stats, err := s.AnalyticsService.LessonAnalytics(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"lessons": stats})
}

func (s *Server) handleAnalyticsSigns(w http.ResponseWriter, r *http.Request) {
	stats, err := s.AnalyticsService.SignAnalytics(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"signs": stats})
}

func (s *Server) handleAnalyticsMostFailed(w http.ResponseWriter, r *http.Request) {
	stats, err := s.AnalyticsService.MostFailedLessons(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"lessons": stats})
}
