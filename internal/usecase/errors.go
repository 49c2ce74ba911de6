package usecase

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-ingest/internal/domain/match"
	"github.com/riskibarqy/match-ingest/internal/domain/storage"
)

var (
	// ErrValidation marks a malformed feed or input.
	ErrValidation = errors.New("validation failed")
	// ErrConsistency marks an entered score that disagrees with the feed.
	ErrConsistency = errors.New("score inconsistency")
	// ErrDuplicate marks a match, snapshot or statistics set that already exists. Storage
	// unique-key violations carry the same sentinel.
	ErrDuplicate = storage.ErrDuplicate
	// ErrNotFound marks a missing club or match. Mid-pipeline it is an internal invariant violation.
	ErrNotFound = storage.ErrNotFound
)

// ScoreMismatchError reports both tallies when the entered score disagrees with the feed.
type ScoreMismatchError struct {
	Venue    match.Venue
	Entered  match.Score
	Computed match.Score
}

func (e *ScoreMismatchError) Error() string {
	return fmt.Sprintf("%s: entered=%s computed=%s", ErrConsistency, e.Entered, e.Computed)
}

func (e *ScoreMismatchError) Unwrap() error {
	return ErrConsistency
}
