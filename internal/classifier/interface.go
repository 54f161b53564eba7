package classifier

import "context"

// Prediction is the classifier's judgment of a single image.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier abstracts the sign-recognition model so the failure path stays
// testable via substitution. Implementations own the model lifecycle.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (Prediction, error)
	Status(ctx context.Context) (bool, error)
}

// Ensure Client implements the interface
var _ Classifier = (*Client)(nil)
