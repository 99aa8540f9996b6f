package api

import "fmt"

// Outcome is the result of one request attempt: exactly one of Success or
// Error. Transport failures, parse failures and non-2xx statuses all
// normalize into Error; nothing else ever leaves the executor.
type Outcome interface {
	outcome()
}

// Success wraps the parsed response body of a 2xx response. A body that
// could not be parsed yields an empty Document with a diagnostic "message"
// field, still classified as Success.
type Success struct {
	Data Document
}

// Error carries a non-2xx HTTP status (Code > 0) or a transport/parse
// failure (Code == 0) together with a human-readable message.
type Error struct {
	Code    int
	Message string
}

func (Success) outcome() {}
func (Error) outcome()   {}

func (e Error) String() string {
	if e.Code > 0 {
		return fmt.Sprintf("error %d: %s", e.Code, e.Message)
	}
	return e.Message
}
