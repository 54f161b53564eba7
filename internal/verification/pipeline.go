package verification

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/senya/senya/internal/classifier"
	apperrors "github.com/senya/senya/internal/errors"
	"github.com/senya/senya/internal/logger"
	"github.com/senya/senya/internal/models"
)

// DefaultThreshold is the confidence an attempt must clear before the
// progress engine treats a correct label as an accepted pass.
const DefaultThreshold = 0.70

// Pipeline turns a raw image plus an expected sign into a pass/fail judgment.
// It is stateless and never touches persisted progress; applying the
// acceptance threshold is the caller's responsibility.
type Pipeline struct {
	classifier classifier.Classifier
}

func NewPipeline(c classifier.Classifier) *Pipeline {
	return &Pipeline{classifier: c}
}

// Verify judges the image against the expected sign text. It returns
// INVALID_IMAGE for payloads that are not images and CLASSIFIER_UNAVAILABLE
// when no judgment could be obtained; neither mutates any state.
func (p *Pipeline) Verify(ctx context.Context, image []byte, expected string) (models.VerificationResult, error) {
	log := logger.FromContext(ctx).WithPrefix("verification")

	if err := checkImage(image); err != nil {
		log.Warn("rejected image payload: %v", err)
		return models.VerificationResult{}, err
	}

	pred, err := p.classifier.Classify(ctx, image)
	if err != nil {
		if errors.Is(err, classifier.ErrRejected) {
			log.Warn("classifier rejected image: %v", err)
			return models.VerificationResult{}, apperrors.NewInvalidImageError("rejected by classifier")
		}
		log.Error("classification failed: %v", err)
		return models.VerificationResult{}, apperrors.NewClassifierUnavailableError(err)
	}

	result := models.VerificationResult{
		IsCorrect:     fold(pred.Label) == fold(expected),
		Confidence:    pred.Confidence,
		DetectedLabel: pred.Label,
		ExpectedLabel: expected,
	}
	log.Debug("verified sign: expected=%q detected=%q correct=%t confidence=%.3f",
		expected, pred.Label, result.IsCorrect, pred.Confidence)
	return result, nil
}

func checkImage(image []byte) error {
	if len(image) == 0 {
		return apperrors.NewInvalidImageError("empty payload")
	}
	contentType := http.DetectContentType(image)
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewInvalidImageError("unsupported content type " + contentType)
	}
	return nil
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
