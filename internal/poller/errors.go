package poller

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable means the live match list could not be fetched.
	// The whole cycle is skipped and the published snapshot is left untouched.
	ErrProviderUnavailable = errors.New("scrape provider unavailable")

	// ErrItemFetchFailed means one match's details could not be fetched.
	// Only that match is left out of the cycle's details.
	ErrItemFetchFailed = errors.New("match details fetch failed")
)

// ItemFetchError reports a failed details fetch for one DetailRef
type ItemFetchError struct {
	Ref string
	Err error
}

func (e *ItemFetchError) Error() string {
	return fmt.Sprintf("%s for %s: %v", ErrItemFetchFailed, e.Ref, e.Err)
}

func (e *ItemFetchError) Unwrap() error {
	return e.Err
}

func (e *ItemFetchError) Is(target error) bool {
	return target == ErrItemFetchFailed
}

// panicError turns a recovered panic into an error
func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
