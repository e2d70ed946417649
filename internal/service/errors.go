package service

// ValidationError and NotFoundError carry messages safe to show to the
// calling admin client. Any other error is surfaced as a generic failure
// message by the transport layer, with detail kept in the server logs.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(message string) error {
	return &ValidationError{Message: message}
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func notFoundErr(message string) error {
	return &NotFoundError{Message: message}
}
