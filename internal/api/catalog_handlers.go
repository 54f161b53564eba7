package api

import (
	"net/http"
)

func (s *Server) handleListUnits(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	units, err := s.CatalogService.ListUnitsForUser(r.Context(), principal.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"units": units})
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	lesson, err := s.CatalogService.GetLesson(r.Context(), id, false)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, lesson)
}

func (s *Server) handleGetLessonProgress(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	progress, err := s.ProgressService.GetLessonProgress(r.Context(), principal.UserID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"state":    progress.State(),
		"progress": progress,
	})
}

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	list, err := s.ProgressService.ListProgress(r.Context(), principal.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"progress": list})
}
