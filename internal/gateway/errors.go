package gateway

import "fmt"

// StatusError reports a non-2xx response from the POS server. It is a
// distinct failure kind from transport errors so repositories can tell a
// rejection apart from unreachability.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}
