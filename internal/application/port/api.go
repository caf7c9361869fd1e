package port

import "time"

// RequestObserver is notified after every REST request completes.
// status is 0 when the request failed before a response arrived.
type RequestObserver interface {
	ObserveRequest(method string, status int, elapsed time.Duration)
}
