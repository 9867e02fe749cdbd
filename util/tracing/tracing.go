package tracing

import "fmt"

// Context carries the request id and source through a request's lifetime.
type Context struct {
	RequestID     string
	RequestSource string
}

func (c Context) String() string {
	return fmt.Sprintf("[%s] %s", c.RequestSource, c.RequestID)
}
