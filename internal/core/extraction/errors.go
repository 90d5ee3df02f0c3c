package extraction

import (
	"errors"
	"fmt"
	"time"
)

// RemoteError is a non-2xx response from the extraction service.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("extraction service returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("extraction service returned %d", e.StatusCode)
}

// ServerSide reports whether the error indicates the backend itself is
// unavailable rather than a problem with the request.
func (e *RemoteError) ServerSide() bool {
	return e.StatusCode >= 500
}

// IsServerUnavailable reports whether err is a 5xx-class remote error.
func IsServerUnavailable(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.ServerSide()
}

// ShouldAbortRetry decides whether a failed attempt ends the retry loop
// early. A saturated or down backend will not be fixed by hammering it, so
// a server-side failure on the first attempt fails immediately. All other
// failures (4xx, network, parse) retry per the fixed schedule since the
// cause may be transient.
func ShouldAbortRetry(attempt int, err error) bool {
	return attempt == 0 && IsServerUnavailable(err)
}

// DelayFor returns the wait before retry number attempt+1 from a fixed
// schedule. Past the end of the schedule the last entry repeats.
func DelayFor(attempt int, schedule []time.Duration) time.Duration {
	if len(schedule) == 0 {
		return 0
	}
	if attempt >= len(schedule) {
		return schedule[len(schedule)-1]
	}
	return schedule[attempt]
}
