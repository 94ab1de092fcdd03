// Package httpresult wraps the outcome of a single HTTP call so callers can
// tell a rejected request apart from an accepted one without losing the
// status code.
package httpresult

// Result pairs an HTTP status code with a value that is only present when
// the call succeeded. Construct via Success or Error; instances are
// read-only afterwards.
type Result[T any] struct {
	statusCode int
	value      T
	hasValue   bool
}

// Success wraps a 2xx status code and its decoded payload.
func Success[T any](statusCode int, value T) Result[T] {
	return Result[T]{
		statusCode: statusCode,
		value:      value,
		hasValue:   true,
	}
}

// Error wraps a non-success status code. The value is absent.
func Error[T any](statusCode int) Result[T] {
	return Result[T]{statusCode: statusCode}
}

func (r Result[T]) StatusCode() int {
	return r.statusCode
}

func (r Result[T]) IsSuccess() bool {
	return r.hasValue
}

// Value returns the payload and whether it is present. On an error result
// it returns the zero value and false.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.hasValue
}
