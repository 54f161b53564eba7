package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/senya/senya/internal/logger"
)

// ErrUnavailable is returned when the model service cannot be reached or
// cannot produce a judgment. Callers treat the attempt as unjudged.
var ErrUnavailable = errors.New("classifier unavailable")

// ErrRejected is returned when the model service rejects the payload itself.
var ErrRejected = errors.New("classifier rejected payload")

// Client talks to the sign-recognition model service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Default().WithPrefix("classifier"),
	}
}

type predictRequest struct {
	Image string `json:"image"` // base64 encoded
}

type predictResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classify submits raw image bytes and returns the model's label with its
// confidence in [0,1].
func (c *Client) Classify(ctx context.Context, image []byte) (Prediction, error) {
	log := logger.FromContext(ctx).WithPrefix("classifier")

	payload, err := json.Marshal(predictRequest{Image: base64.StdEncoding.EncodeToString(image)})
	if err != nil {
		return Prediction{}, err
	}

	url := c.baseURL + "/predict"
	log.Debug("posting image for classification: %d bytes", len(image))
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("classification request failed: %v", err)
		return Prediction{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug("classifier response received in %v, status=%d", time.Since(start), resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("classifier error: status=%d, body=%s", resp.StatusCode, string(body))
		return Prediction{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn("classifier rejected payload: status=%d, body=%s", resp.StatusCode, string(body))
		return Prediction{}, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode classifier response: %v", err)
		return Prediction{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	log.Debug("classified as %q with confidence %.3f", out.Label, out.Confidence)
	return Prediction{Label: out.Label, Confidence: out.Confidence}, nil
}

// Status reports whether the model service considers its model loaded.
func (c *Client) Status(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/model-status", nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	var out struct {
		ModelLoaded bool `json:"model_loaded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	return out.ModelLoaded, nil
}
