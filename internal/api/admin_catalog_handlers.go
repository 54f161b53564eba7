package api

import (
	"net/http"

	"github.com/senya/senya/internal/models"
)

func (s *Server) handleAdminListUnits(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	units, err := s.CatalogService.ListUnits(r.Context(), includeArchived)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"units": units})
}

type unitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

func (s *Server) handleAdminCreateUnit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	unit, err := s.CatalogService.CreateUnit(r.Context(), models.Unit{
		Title:       req.Title,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, unit)
}

func (s *Server) handleAdminUpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req unitRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	err = s.CatalogService.UpdateUnit(r.Context(), models.Unit{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "updated"})
}

func (s *Server) handleAdminArchiveUnit(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CatalogService.ArchiveUnit(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "archived"})
}

type lessonRequest struct {
	UnitID       int64  `json:"unit_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	RubiesReward int    `json:"rubies_reward"`
	OrderIndex   int    `json:"order_index"`
}

func (s *Server) handleAdminCreateLesson(w http.ResponseWriter, r *http.Request) {
	var req lessonRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lesson, err := s.CatalogService.CreateLesson(r.Context(), models.Lesson{
		UnitID:       req.UnitID,
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		RubiesReward: req.RubiesReward,
		OrderIndex:   req.OrderIndex,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, lesson)
}

func (s *Server) handleAdminUpdateLesson(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req lessonRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	err = s.CatalogService.UpdateLesson(r.Context(), models.Lesson{
		ID:           id,
		UnitID:       req.UnitID,
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		RubiesReward: req.RubiesReward,
		OrderIndex:   req.OrderIndex,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "updated"})
}

func (s *Server) handleAdminArchiveLesson(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CatalogService.ArchiveLesson(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "archived"})
}

type signRequest struct {
	LessonID        int64  `json:"lesson_id"`
	Text            string `json:"text"`
	VideoURL        string `json:"video_url"`
	DifficultyLevel string `json:"difficulty_level"`
}

func (s *Server) handleAdminCreateSign(w http.ResponseWriter, r *http.Request) {
	var req signRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sign, err := s.CatalogService.CreateSign(r.Context(), models.Sign{
		LessonID:        req.LessonID,
		Text:            req.Text,
		VideoURL:        req.VideoURL,
		DifficultyLevel: req.DifficultyLevel,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sign)
}

func (s *Server) handleAdminArchiveSign(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CatalogService.ArchiveSign(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "archived"})
}
