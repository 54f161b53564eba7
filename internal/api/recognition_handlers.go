package api

import (
	"net/http"
)

// handleCheckSign judges an image against one sign without touching progress.
func (s *Server) handleCheckSign(w http.ResponseWriter, r *http.Request) {
	signID, err := urlParamInt64(r, "signID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req imageRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	image, err := req.decode()
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ProgressService.VerifySign(r.Context(), signID, image)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleCheckProgress runs one attempt at the lesson's current question and
// commits the outcome.
func (s *Server) handleCheckProgress(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	lessonID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req imageRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	image, err := req.decode()
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ProgressService.Advance(r.Context(), principal.UserID, lessonID, image)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleModelStatus reports whether the classifier has its model loaded.
func (s *Server) handleModelStatus(w http.ResponseWriter, r *http.Request) {
	loaded, err := s.Classifier.Status(r.Context())
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]any{"model_loaded": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"model_loaded": loaded})
}
