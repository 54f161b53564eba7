package api

import (
	"net/http"
	"strconv"
)

func (s *Server) handleListPracticeLevels(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	levels, err := s.PracticeService.ListLevels(r.Context(), principal.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"levels": levels})
}

type practiceScoreRequest struct {
	LevelID    int64  `json:"level_id"`
	GameID     string `json:"game_id"`
	Score      int    `json:"score"`
	HeartsLost int    `json:"hearts_lost"`
}

func (s *Server) handleSubmitPracticeScore(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	var req practiceScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.PracticeService.SubmitScore(r.Context(), principal.UserID, req.LevelID,
		req.GameID, req.Score, req.HeartsLost)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handlePracticeSigns(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	signs, err := s.PracticeService.GameSigns(r.Context(), difficulty, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"signs": signs})
}
