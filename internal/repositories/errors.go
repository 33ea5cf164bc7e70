package repositories

import "errors"

var (
	// ErrObservationNotFound signals absence, not failure.
	ErrObservationNotFound = errors.New("no matching observation")
	ErrPersonNotFound      = errors.New("person not found")
	ErrLocationNotFound    = errors.New("location not found")

	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	ErrUpstreamBadRequest  = errors.New("upstream rejected request")
	ErrUpstreamStatus      = errors.New("unexpected upstream status")
	ErrEmptyTimeline       = errors.New("upstream returned no intervals")
)
