package api

import (
	"net/http"
	"strings"

	apperrors "github.com/senya/senya/internal/errors"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	profile, err := s.EconomyService.GetProfile(r.Context(), principal.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

type profilePhotoRequest struct {
	ProfileURL string `json:"profile_url"`
}

func (s *Server) handleUpdateProfilePhoto(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	var req profilePhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if strings.TrimSpace(req.ProfileURL) == "" {
		handleError(w, r, apperrors.NewValidationError("profile_url", "cannot be empty"))
		return
	}

	if err := s.EconomyService.UpdateProfileURL(r.Context(), principal.UserID, req.ProfileURL); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"profile_url": req.ProfileURL})
}

func (s *Server) handleRefreshCertificate(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())

	granted, err := s.EconomyService.RefreshCertificate(r.Context(), principal.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"certificate": granted})
}

func (s *Server) handleListHeartPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := s.ShopService.ListHeartPackages(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"packages": packages})
}

func (s *Server) handlePurchaseHearts(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	packageID, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ShopService.PurchaseHearts(r.Context(), principal.UserID, packageID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
