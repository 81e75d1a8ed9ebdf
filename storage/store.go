package storage

import (
	"context"

	"github.com/surveyline/intake/model"
)

// Store is the append-only sink for accepted submissions. There is no read,
// update or delete path at runtime.
type Store interface {
	Append(ctx context.Context, rec model.StoredSurveyRecord) error
	Close() error
}
