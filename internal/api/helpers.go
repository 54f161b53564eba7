package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/senya/senya/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewBadRequestError("invalid JSON body")
	}
	return nil
}

func urlParamInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

// imageRequest is the payload of every recognition endpoint: the captured
// frame as base64.
type imageRequest struct {
	Image string `json:"image"`
}

func (req imageRequest) decode() ([]byte, error) {
	if req.Image == "" {
		return nil, apperrors.NewInvalidImageError("missing image field")
	}
	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return nil, apperrors.NewInvalidImageError("image is not valid base64")
	}
	return data, nil
}
